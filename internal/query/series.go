package query

import (
	"errors"
	"fmt"
	"time"

	"ledger/internal/core"
)

// MaxSeriesDays bounds the span of a daily series, about a century.
const MaxSeriesDays = 36600

var ErrRangeTooWide = errors.New("date span too wide to plot")

// DailySeries buckets records by day. The result covers every day from the
// earliest to the latest record date in ascending order; days without
// activity carry zero sums. Other categories are not plotted. A span longer
// than MaxSeriesDays fails with ErrRangeTooWide before anything is allocated.
func DailySeries(records []core.Transaction) ([]core.DailyPoint, error) {
	if len(records) == 0 {
		return []core.DailyPoint{}, nil
	}

	first, last := records[0].Date, records[0].Date
	for _, tx := range records[1:] {
		if tx.Date.Before(first) {
			first = tx.Date
		}
		if tx.Date.After(last) {
			last = tx.Date
		}
	}

	days := int(last.Sub(first.Time)/(24*time.Hour)) + 1
	if days > MaxSeriesDays {
		return nil, fmt.Errorf("%w: %s to %s is %d days, limit is %d",
			ErrRangeTooWide, first, last, days, MaxSeriesDays)
	}

	index := make(map[string]int, days)
	points := make([]core.DailyPoint, 0, days)
	for d := first; !d.After(last); d = d.AddDays(1) {
		index[d.String()] = len(points)
		points = append(points, core.DailyPoint{Date: d})
	}

	for _, tx := range records {
		i := index[tx.Date.String()]
		switch tx.Category.Kind {
		case core.Income:
			points[i].Income = points[i].Income.Add(tx.Amount)
		case core.Expense:
			points[i].Expense = points[i].Expense.Add(tx.Amount)
		case core.Other:
		}
	}
	return points, nil
}
