// Package query filters and aggregates transaction sets. Every function is
// pure: inputs are never modified and no state survives between calls.
package query

import (
	"fmt"

	"ledger/internal/core"
)

// DateRange is the closed interval [Start, End].
type DateRange struct {
	Start core.Date
	End   core.Date
}

// ParseRange parses both bounds in DD-MM-YYYY form.
func ParseRange(start, end string) (DateRange, error) {
	s, err := core.ParseDate(start)
	if err != nil {
		return DateRange{}, fmt.Errorf("start date: %w", err)
	}
	e, err := core.ParseDate(end)
	if err != nil {
		return DateRange{}, fmt.Errorf("end date: %w", err)
	}
	return DateRange{Start: s, End: e}, nil
}

// Contains reports whether d lies within the range, both ends included.
// A reversed range contains nothing.
func (r DateRange) Contains(d core.Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// Reversed reports whether Start is after End.
func (r DateRange) Reversed() bool {
	return r.Start.After(r.End)
}

func (r DateRange) String() string {
	return r.Start.String() + " to " + r.End.String()
}

// FilterByRange parses the bounds and returns the records inside them in
// their original order. Malformed bounds fail before any record is looked at.
func FilterByRange(records []core.Transaction, start, end string) ([]core.Transaction, error) {
	r, err := ParseRange(start, end)
	if err != nil {
		return nil, err
	}
	return FilterRange(records, r), nil
}

// FilterRange returns the records whose date r contains. The result never
// shares its backing array with records.
func FilterRange(records []core.Transaction, r DateRange) []core.Transaction {
	out := []core.Transaction{}
	if r.Reversed() {
		return out
	}
	for _, tx := range records {
		if r.Contains(tx.Date) {
			out = append(out, tx)
		}
	}
	return out
}
