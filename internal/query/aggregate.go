package query

import "ledger/internal/core"

// Summary is a filtered record set together with its totals.
type Summary struct {
	// Range is nil when every record was considered.
	Range   *DateRange
	Records []core.Transaction
	Totals  core.Totals
}

// NoData reports that nothing matched, which presentation must treat
// differently from a zero net.
func (s Summary) NoData() bool {
	return len(s.Records) == 0
}

// Aggregate sums Income and Expense amounts. Records of any other category
// are counted in Unrecognized and left out of both sums.
func Aggregate(records []core.Transaction) core.Totals {
	var t core.Totals
	for _, tx := range records {
		switch tx.Category.Kind {
		case core.Income:
			t.Income = t.Income.Add(tx.Amount)
		case core.Expense:
			t.Expense = t.Expense.Add(tx.Amount)
		case core.Other:
			t.Unrecognized++
		}
	}
	return t
}

// Summarize restricts records to r when r is non-nil and aggregates the rest.
func Summarize(records []core.Transaction, r *DateRange) Summary {
	var selected []core.Transaction
	if r != nil {
		selected = FilterRange(records, *r)
	} else {
		selected = append([]core.Transaction{}, records...)
	}
	return Summary{
		Range:   r,
		Records: selected,
		Totals:  Aggregate(selected),
	}
}
