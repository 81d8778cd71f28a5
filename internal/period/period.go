// Package period resolves named reporting periods to concrete date windows.
package period

import "time"

// Period tokens accepted by the dashboard.
const (
	TokenToday   = "hoje"
	TokenWeek    = "7dias"
	TokenMonth   = "mes"
	TokenAllTime = "completo"
)

// DateLayout is the civil-date format used in queries and URLs.
const DateLayout = "2006-01-02"

// Range is an inclusive civil-date window. The zero value is unbounded
// (full history); bounded ranges carry both endpoints.
type Range struct {
	Start   time.Time
	End     time.Time
	Bounded bool
}

// Unbounded returns the full-history range.
func Unbounded() Range { return Range{} }

// Between returns the inclusive range [start, end], truncated to dates.
func Between(start, end time.Time) Range {
	return Range{Start: dateOf(start), End: dateOf(end), Bounded: true}
}

// StartDate returns the start endpoint formatted for queries.
func (r Range) StartDate() string { return r.Start.Format(DateLayout) }

// EndDate returns the end endpoint formatted for queries.
func (r Range) EndDate() string { return r.End.Format(DateLayout) }

// Resolve maps a period token to a concrete range relative to now.
// Unrecognized or empty tokens behave like TokenToday; the UI only ever
// sends the four known tokens, so anything else is a hand-edited URL.
func Resolve(token string, now time.Time) Range {
	today := dateOf(now)
	switch token {
	case TokenWeek:
		return Range{Start: today.AddDate(0, 0, -6), End: today, Bounded: true}
	case TokenMonth:
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		return Range{Start: first, End: today, Bounded: true}
	case TokenAllTime:
		return Unbounded()
	default:
		return Range{Start: today, End: today, Bounded: true}
	}
}

// Canonical normalizes a token to one of the four known values,
// defaulting to TokenToday.
func Canonical(token string) string {
	switch token {
	case TokenToday, TokenWeek, TokenMonth, TokenAllTime:
		return token
	default:
		return TokenToday
	}
}

// Label returns the display name for a period token.
func Label(token string) string {
	switch Canonical(token) {
	case TokenWeek:
		return "Últimos 7 dias"
	case TokenMonth:
		return "Este Mês"
	case TokenAllTime:
		return "Histórico Completo"
	default:
		return "Hoje"
	}
}

// dateOf strips the time-of-day component.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
