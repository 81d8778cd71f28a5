// Package models defines the GORM models persisted by prodboard.
package models

// TimeLayout is the storage format of the timestamp column.
const TimeLayout = "2006-01-02 15:04:05"

// ProductionRecord is one manufacturing event: how many compressor unit
// heads were assembled, painted, tested and reworked in a single shop-floor
// submission. Column names match the legacy producao table so existing
// databases keep working.
type ProductionRecord struct {
	ID           int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Model        string `gorm:"column:modelo;size:64;index"`
	AssemblyOp   string `gorm:"column:op_montagem;size:64"`
	AssembledQty int    `gorm:"column:qty_montado;default:0"`
	PaintOp      string `gorm:"column:op_pintura;size:64"`
	PaintedQty   int    `gorm:"column:qty_pintado;default:0"`
	TestOp       string `gorm:"column:op_teste;size:64"`
	TestedQty    int    `gorm:"column:qty_testado;default:0"`
	ReworkOp     string `gorm:"column:op_retrabalho;size:64"`
	ReworkQty    int    `gorm:"column:qty_retrabalho;default:0"`
	Note         string `gorm:"column:observacao;type:text"`
	// Timestamp is set by the store at insert time, formatted with
	// TimeLayout. It is never updated afterwards.
	Timestamp string `gorm:"column:timestamp;size:19;index"`
}

// TableName keeps the legacy table name.
func (ProductionRecord) TableName() string { return "producao" }
