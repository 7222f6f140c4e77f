package core

import "github.com/shopspring/decimal"

// Totals is the aggregate of a transaction set.
type Totals struct {
	Income  Amount
	Expense Amount
	// Unrecognized counts records whose category is neither Income nor
	// Expense. They are excluded from both sums.
	Unrecognized int
}

// Net is Income minus Expense and may be negative.
func (t Totals) Net() decimal.Decimal {
	return t.Income.Sub(t.Expense.Decimal)
}

// DailyPoint is the per-day income and expense sum used for plotting.
type DailyPoint struct {
	Date    Date
	Income  Amount
	Expense Amount
}
