package dashboard

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dfagundes/prodboard/internal/export"
	"github.com/dfagundes/prodboard/internal/models"
	"github.com/dfagundes/prodboard/internal/store"
)

func newTestServer(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.ProductionRecord{}))

	st := store.New(db)
	router, err := NewRouter(StartOpts{Store: st})
	require.NoError(t, err)
	return router, st
}

func postForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestIndex_RendersEmptyDashboard(t *testing.T) {
	router, _ := newTestServer(t)

	w := get(router, "/")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Produção de Cabeçotes")
	assert.Contains(t, body, "Hoje")
	assert.Contains(t, body, "Nenhum registro no período.")
}

func TestIndex_ShowsRecordsAndCharts(t *testing.T) {
	router, st := newTestServer(t)

	_, err := st.Insert(store.Draft{Model: "Unidade Compressora 20+", TestedQty: 3, TestOp: "FELIPE DOMINGOS MOREIRA"})
	require.NoError(t, err)

	w := get(router, "/?period=hoje")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Unidade Compressora 20+")
	assert.Contains(t, body, "chart-pie")
	assert.Contains(t, body, "chart-bar")
}

func TestIndex_UnknownPeriodFallsBackToToday(t *testing.T) {
	router, _ := newTestServer(t)

	w := get(router, "/?period=bogus")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Registros — Hoje")
}

func TestRegister_InsertsAndRedirects(t *testing.T) {
	router, st := newTestServer(t)

	w := postForm(router, "/register", url.Values{
		"modelo":      {"Unidade Compressora 20+"},
		"op_montagem": {"GILSON ROBERTO DE OLIVEIRA"},
		"qty_montado": {"5"},
		"observacao":  {"turno da manhã"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "kind=success")

	recs, err := st.ListAll()
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Unidade Compressora 20+", recs[0].Model)
	assert.Equal(t, 5, recs[0].AssembledQty)
	assert.Equal(t, "turno da manhã", recs[0].Note)
	assert.NotEmpty(t, recs[0].Timestamp)
}

func TestRegister_MissingModelRejected(t *testing.T) {
	router, st := newTestServer(t)

	w := postForm(router, "/register", url.Values{"qty_montado": {"5"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "kind=warning")

	recs, err := st.ListAll()
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestRegister_NonNumericQuantityRejected(t *testing.T) {
	router, st := newTestServer(t)

	w := postForm(router, "/register", url.Values{
		"modelo":      {"Unidade Compressora 20+"},
		"qty_montado": {"cinco"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "kind=warning")

	recs, err := st.ListAll()
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestRegister_EmptyQuantityBindsToZero(t *testing.T) {
	router, st := newTestServer(t)

	w := postForm(router, "/register", url.Values{
		"modelo":      {"Unidade Compressora 15+"},
		"qty_montado": {""},
		"qty_testado": {"2"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "kind=success")

	recs, err := st.ListAll()
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 0, recs[0].AssembledQty)
	assert.Equal(t, 2, recs[0].TestedQty)
}

func TestDeleteRecord(t *testing.T) {
	router, st := newTestServer(t)

	id, err := st.Insert(store.Draft{Model: "Unidade Compressora 20+"})
	require.NoError(t, err)

	w := postForm(router, fmt.Sprintf("/records/%d/delete", id), url.Values{})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "kind=success")

	recs, err := st.ListAll()
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestDeleteRecord_MissingIDWarns(t *testing.T) {
	router, _ := newTestServer(t)

	w := postForm(router, "/records/424242/delete", url.Values{})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "kind=warning")
}

func TestDeleteRecord_BadIDWarns(t *testing.T) {
	router, _ := newTestServer(t)

	w := postForm(router, "/records/abc/delete", url.Values{})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "kind=warning")
}

func TestDeleteAll(t *testing.T) {
	router, st := newTestServer(t)

	for i := 0; i < 3; i++ {
		_, err := st.Insert(store.Draft{Model: "Unidade Compressora 20+"})
		require.NoError(t, err)
	}

	w := postForm(router, "/records/delete-all", url.Values{})
	require.Equal(t, http.StatusSeeOther, w.Code)

	recs, err := st.ListAll()
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestDownload_EmptyReturns404(t *testing.T) {
	router, _ := newTestServer(t)

	w := get(router, "/download-excel?period=completo")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Nenhum dado para exportar.", w.Body.String())
}

func TestDownload_ReturnsWorkbook(t *testing.T) {
	router, st := newTestServer(t)

	_, err := st.Insert(store.Draft{Model: "Unidade Compressora 20+", TestedQty: 3})
	require.NoError(t, err)

	w := get(router, "/download-excel?period=completo")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, export.ContentType, w.Header().Get("Content-Type"))
	disposition := w.Header().Get("Content-Disposition")
	assert.Contains(t, disposition, "attachment")
	assert.Contains(t, disposition, time.Now().Format("20060102"))

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(export.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, export.Headers, rows[0])
}

func TestFlashKind(t *testing.T) {
	assert.Equal(t, "warning", flashKind("warning"))
	assert.Equal(t, "danger", flashKind("danger"))
	assert.Equal(t, "success", flashKind("success"))
	assert.Equal(t, "success", flashKind("evil\"class"))
}

func TestChartSeries_SortedByModel(t *testing.T) {
	labels, values := chartSeries(map[string]int{"B": 2, "A": 1, "C": 3})
	assert.Equal(t, []string{"A", "B", "C"}, labels)
	assert.Equal(t, []int{1, 2, 3}, values)
}
