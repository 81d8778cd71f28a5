package dashboard

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dfagundes/prodboard/internal/export"
	"github.com/dfagundes/prodboard/internal/period"
	"github.com/dfagundes/prodboard/internal/report"
)

// registerRoutes sets up all dashboard routes on the Gin router.
func registerRoutes(router *gin.Engine, opts StartOpts) {
	// Embedded static assets (served from assets/ subdir of the embed.FS).
	staticFS, _ := fs.Sub(assetsFS, "assets")
	router.StaticFS("/static", http.FS(staticFS))

	router.GET("/", handleIndex(opts))
	router.POST("/register", handleRegister(opts))
	router.POST("/records/:id/delete", handleDeleteRecord(opts))
	router.POST("/records/delete-all", handleDeleteAll(opts))
	router.GET("/download-excel", handleDownload(opts))
}

func handleIndex(opts StartOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := period.Canonical(c.Query("period"))
		rng := period.Resolve(token, time.Now())

		rep, err := report.Build(opts.Store, rng)
		if err != nil {
			opts.Logger.Error("build report failed", zap.Error(err))
			c.HTML(http.StatusInternalServerError, "error.html", gin.H{
				"Message": "Erro ao consultar a produção.",
			})
			return
		}

		labels, values := chartSeries(rep.ByModel)
		labelsJSON, _ := json.Marshal(labels)
		valuesJSON, _ := json.Marshal(values)

		c.HTML(http.StatusOK, "index.html", gin.H{
			"Period":      token,
			"PeriodLabel": period.Label(token),
			"Totals":      rep.Totals,
			"Records":     rep.Detail,
			"HasCharts":   len(labels) > 0,
			"ChartLabels": template.JS(labelsJSON),
			"ChartValues": template.JS(valuesJSON),
			"Operators":   opts.Config.Operators,
			"Models":      opts.Config.Models,
			"Flash":       c.Query("msg"),
			"FlashKind":   flashKind(c.Query("kind")),
		})
	}
}

func handleRegister(opts StartOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sub Submission
		if err := c.ShouldBind(&sub); err != nil {
			redirectFlash(c, "Quantidades devem ser números inteiros.", "warning")
			return
		}
		if verr := sub.Validate(); verr != nil {
			redirectFlash(c, verr.Message, "warning")
			return
		}

		id, err := opts.Store.Insert(sub.Draft())
		if err != nil {
			opts.Logger.Error("register failed", zap.Error(err))
			redirectFlash(c, "Erro ao registrar produção.", "danger")
			return
		}
		opts.Logger.Info("production registered",
			zap.Int64("id", id), zap.String("model", sub.Model))
		redirectFlash(c, "Produção registrada com sucesso!", "success")
	}
}

func handleDeleteRecord(opts StartOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			redirectFlash(c, "Registro inválido.", "warning")
			return
		}
		removed, err := opts.Store.DeleteByID(id)
		if err != nil {
			opts.Logger.Error("delete failed", zap.Int64("id", id), zap.Error(err))
			redirectFlash(c, "Erro ao excluir registro.", "danger")
			return
		}
		if !removed {
			redirectFlash(c, "Registro não encontrado.", "warning")
			return
		}
		redirectFlash(c, "Registro excluído.", "success")
	}
}

func handleDeleteAll(opts StartOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := opts.Store.DeleteAll()
		if err != nil {
			opts.Logger.Error("delete all failed", zap.Error(err))
			redirectFlash(c, "Erro ao limpar o histórico.", "danger")
			return
		}
		redirectFlash(c, fmt.Sprintf("%d registros removidos.", count), "success")
	}
}

func handleDownload(opts StartOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := period.Canonical(c.Query("period"))
		rng := period.Resolve(token, time.Now())

		rows, err := opts.Store.ListInRange(rng)
		if err != nil {
			opts.Logger.Error("export query failed", zap.Error(err))
			c.String(http.StatusInternalServerError, "Erro ao consultar a produção.")
			return
		}
		if len(rows) == 0 {
			c.String(http.StatusNotFound, "Nenhum dado para exportar.")
			return
		}

		data, err := export.Workbook(rows)
		if err != nil {
			opts.Logger.Error("export encode failed", zap.Error(err))
			c.String(http.StatusInternalServerError, "Erro ao gerar a planilha.")
			return
		}

		c.Header("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", export.Filename(time.Now())))
		c.Data(http.StatusOK, export.ContentType, data)
	}
}

// chartSeries flattens the per-model aggregate into parallel slices,
// sorted by model name so chart colors stay stable across reloads.
func chartSeries(byModel map[string]int) ([]string, []int) {
	labels := make([]string, 0, len(byModel))
	for m := range byModel {
		labels = append(labels, m)
	}
	sort.Strings(labels)
	values := make([]int, len(labels))
	for i, m := range labels {
		values[i] = byModel[m]
	}
	return labels, values
}

// redirectFlash sends the browser back to the dashboard with a one-shot
// message in the query string.
func redirectFlash(c *gin.Context, msg, kind string) {
	c.Redirect(http.StatusSeeOther,
		"/?msg="+url.QueryEscape(msg)+"&kind="+url.QueryEscape(kind))
}

// flashKind restricts the banner style to the known classes.
func flashKind(kind string) string {
	switch kind {
	case "warning", "danger":
		return kind
	default:
		return "success"
	}
}
