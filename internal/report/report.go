// Package report assembles the dashboard report from the record store.
package report

import (
	"github.com/dfagundes/prodboard/internal/models"
	"github.com/dfagundes/prodboard/internal/period"
	"github.com/dfagundes/prodboard/internal/store"
)

// Report is the unified view for one period: overall totals, the detail
// rows (newest first) and the tested-output breakdown per model. The three
// parts are independent projections of the same table; totals can include
// rows that never show up in ByModel (zero tested quantity).
type Report struct {
	Totals  store.StatTotals
	Detail  []models.ProductionRecord
	ByModel map[string]int
}

// Build runs the three read queries over the same range and composes the
// result. Read-only; the first query error fails the whole report.
func Build(s *store.Store, r period.Range) (*Report, error) {
	totals, err := s.StatsInRange(r)
	if err != nil {
		return nil, err
	}
	detail, err := s.ListInRange(r)
	if err != nil {
		return nil, err
	}
	byModel, err := s.AggregateByModel(r)
	if err != nil {
		return nil, err
	}
	return &Report{Totals: totals, Detail: detail, ByModel: byModel}, nil
}
