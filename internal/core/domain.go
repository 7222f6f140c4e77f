package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the fixed day-month-year textual form used everywhere a date
// is read or written.
const DateLayout = "02-01-2006"

const (
	Other CategoryKind = iota
	Income
	Expense
)

type (
	CategoryKind int

	Date struct {
		time.Time
	}

	// Category is either one of the two recognized kinds or an Other value
	// carrying the label exactly as it was stored.
	Category struct {
		Kind  CategoryKind
		Label string
	}

	Transaction struct {
		Date        Date
		Amount      Amount
		Category    Category
		Description string
	}
)

var (
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyCategory = errors.New("empty category")
)

var (
	IncomeCategory  = Category{Kind: Income, Label: "Income"}
	ExpenseCategory = Category{Kind: Expense, Label: "Expense"}
)

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses s in DD-MM-YYYY form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w %q: %v", ErrInvalidDate, s, err)
	}
	return Date{Time: t}, nil
}

// String formats the date as DD-MM-YYYY.
func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return fmt.Errorf("%w: date cannot be zero", ErrInvalidDate)
	}
	return nil
}

// AddDays returns the date n calendar days later.
func (d Date) AddDays(n int) Date {
	return Date{Time: d.AddDate(0, 0, n)}
}

// Before and After compare calendar days.
func (d Date) Before(o Date) bool { return d.Time.Before(o.Time) }
func (d Date) After(o Date) bool  { return d.Time.After(o.Time) }
func (d Date) Equal(o Date) bool  { return d.Time.Equal(o.Time) }

// ParseCategory maps "Income" and "Expense" (exact, case-sensitive) to their
// kinds. Anything else is kept as an Other category.
func ParseCategory(s string) (Category, error) {
	switch s {
	case "Income":
		return IncomeCategory, nil
	case "Expense":
		return ExpenseCategory, nil
	}
	if strings.TrimSpace(s) == "" {
		return Category{}, ErrEmptyCategory
	}
	return Category{Kind: Other, Label: s}, nil
}

func (c Category) String() string {
	switch c.Kind {
	case Income:
		return "Income"
	case Expense:
		return "Expense"
	default:
		return c.Label
	}
}

// Recognized reports whether the category takes part in aggregation.
func (c Category) Recognized() bool {
	return c.Kind == Income || c.Kind == Expense
}

func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Category.String()) == "" {
		return ErrEmptyCategory
	}
	return nil
}

// Equal compares all fields, amounts by value.
func (t Transaction) Equal(o Transaction) bool {
	return t.Date.Equal(o.Date) &&
		t.Amount.Equal(o.Amount) &&
		t.Category == o.Category &&
		t.Description == o.Description
}
