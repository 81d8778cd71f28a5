// Package export encodes detail rows into a downloadable spreadsheet.
package export

import (
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/dfagundes/prodboard/internal/models"
)

// ErrNoRows is returned when there is nothing to export. Callers surface
// it as a "no data" response, not as an empty file.
var ErrNoRows = errors.New("export: no rows to export")

// ContentType is the MIME type of the produced workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// SheetName is the single sheet holding the detail rows.
const SheetName = "Producao_Detalhada"

// Headers is the fixed column order of the exported sheet.
var Headers = []string{
	"ID", "Modelo",
	"Op. Montagem", "Qtd. Montado",
	"Op. Pintura", "Qtd. Pintado",
	"Op. Teste", "Qtd. Testado",
	"Op. Retrabalho", "Qtd. Retrabalho",
	"Observação", "Data/Hora",
}

// Workbook encodes rows into a single-sheet xlsx document: one header row
// followed by one row per record, preserving the input order.
func Workbook(rows []models.ProductionRecord) ([]byte, error) {
	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("export: rename sheet: %w", err)
	}

	header := make([]interface{}, len(Headers))
	for i, h := range Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("export: write header: %w", err)
	}

	for i, rec := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("export: row %d: %w", i+2, err)
		}
		row := []interface{}{
			rec.ID, rec.Model,
			rec.AssemblyOp, rec.AssembledQty,
			rec.PaintOp, rec.PaintedQty,
			rec.TestOp, rec.TestedQty,
			rec.ReworkOp, rec.ReworkQty,
			rec.Note, rec.Timestamp,
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("export: row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export: encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename returns the download name for an export taken at now.
func Filename(now time.Time) string {
	return fmt.Sprintf("producao_cabecotes_%s.xlsx", now.Format("20060102"))
}
