// Package store persists and queries production records.
package store

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/dfagundes/prodboard/internal/models"
	"github.com/dfagundes/prodboard/internal/period"
)

// Store is the record store over an injected GORM handle. The handle's
// lifecycle (open, migrate, close) belongs to the process entry point.
// SQLite serializes writes itself, so no application-level locking is
// needed for single-statement operations.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

// New returns a Store using the wall clock for insert timestamps.
func New(db *gorm.DB) *Store {
	return NewWithClock(db, time.Now)
}

// NewWithClock is New with an injected clock, for tests and scheduled jobs
// that need deterministic timestamps.
func NewWithClock(db *gorm.DB, now func() time.Time) *Store {
	return &Store{db: db, now: now}
}

// Draft is a production record as submitted, before the store assigns
// an id and timestamp.
type Draft struct {
	Model        string
	AssemblyOp   string
	AssembledQty int
	PaintOp      string
	PaintedQty   int
	TestOp       string
	TestedQty    int
	ReworkOp     string
	ReworkQty    int
	Note         string
}

// StatTotals are the four independent quantity sums over a range.
type StatTotals struct {
	Assembled int
	Painted   int
	Tested    int
	Reworked  int
}

// Insert persists a new record, assigning the next id and the current
// timestamp. Returns the assigned id.
func (s *Store) Insert(d Draft) (int64, error) {
	rec := models.ProductionRecord{
		Model:        d.Model,
		AssemblyOp:   d.AssemblyOp,
		AssembledQty: d.AssembledQty,
		PaintOp:      d.PaintOp,
		PaintedQty:   d.PaintedQty,
		TestOp:       d.TestOp,
		TestedQty:    d.TestedQty,
		ReworkOp:     d.ReworkOp,
		ReworkQty:    d.ReworkQty,
		Note:         d.Note,
		Timestamp:    s.now().Format(models.TimeLayout),
	}
	if err := s.db.Create(&rec).Error; err != nil {
		return 0, fmt.Errorf("store: insert: %w", err)
	}
	return rec.ID, nil
}

// DeleteByID removes one record. Returns whether a row was removed;
// a missing id is not an error.
func (s *Store) DeleteByID(id int64) (bool, error) {
	res := s.db.Delete(&models.ProductionRecord{}, id)
	if res.Error != nil {
		return false, fmt.Errorf("store: delete %d: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// DeleteAll clears the table and returns the number of rows removed.
func (s *Store) DeleteAll() (int64, error) {
	res := s.db.Where("1 = 1").Delete(&models.ProductionRecord{})
	if res.Error != nil {
		return 0, fmt.Errorf("store: delete all: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// ListAll returns every record, newest first.
func (s *Store) ListAll() ([]models.ProductionRecord, error) {
	return s.ListInRange(period.Unbounded())
}

// ListInRange returns records whose timestamp date falls inside r,
// newest first. Same-second inserts order by id descending so listings
// are deterministic.
func (s *Store) ListInRange(r period.Range) ([]models.ProductionRecord, error) {
	var recs []models.ProductionRecord
	err := s.inRange(r).
		Order("timestamp DESC, id DESC").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	return recs, nil
}

// AggregateByModel sums tested quantity per model over r. Only rows with
// a positive tested quantity contribute; a model that assembled but never
// tested in the window does not appear.
func (s *Store) AggregateByModel(r period.Range) (map[string]int, error) {
	var rows []struct {
		Modelo string
		Total  int
	}
	err := s.inRange(r).
		Where("qty_testado > 0").
		Select("modelo, SUM(qty_testado) AS total").
		Group("modelo").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("store: aggregate by model: %w", err)
	}
	byModel := make(map[string]int, len(rows))
	for _, row := range rows {
		byModel[row.Modelo] = row.Total
	}
	return byModel, nil
}

// StatsInRange sums each quantity column independently over r. An empty
// window yields all-zero totals, never an error.
func (s *Store) StatsInRange(r period.Range) (StatTotals, error) {
	var row struct {
		Assembled int
		Painted   int
		Tested    int
		Reworked  int
	}
	err := s.inRange(r).
		Select(
			"IFNULL(SUM(qty_montado), 0) AS assembled, " +
				"IFNULL(SUM(qty_pintado), 0) AS painted, " +
				"IFNULL(SUM(qty_testado), 0) AS tested, " +
				"IFNULL(SUM(qty_retrabalho), 0) AS reworked").
		Scan(&row).Error
	if err != nil {
		return StatTotals{}, fmt.Errorf("store: stats: %w", err)
	}
	return StatTotals{
		Assembled: row.Assembled,
		Painted:   row.Painted,
		Tested:    row.Tested,
		Reworked:  row.Reworked,
	}, nil
}

// inRange starts a query scoped to r. Bounded ranges filter on the date
// part of the timestamp, inclusive on both ends; unbounded ranges add no
// predicate at all.
func (s *Store) inRange(r period.Range) *gorm.DB {
	q := s.db.Model(&models.ProductionRecord{})
	if r.Bounded {
		q = q.Where("date(timestamp) BETWEEN ? AND ?", r.StartDate(), r.EndDate())
	}
	return q
}
