package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"ledger/internal/core"
)

const (
	incomeMark  = '+'
	expenseMark = '*'
	bothMark    = '#'
)

// ChartOptions sets the plot area size in characters.
type ChartOptions struct {
	Width  int
	Height int
}

// WriteChart draws the income and expense series of points as a text line
// chart. Points are expected in ascending date order, one per day.
func WriteChart(w io.Writer, points []core.DailyPoint, opts ChartOptions) error {
	if len(points) == 0 {
		_, err := io.WriteString(w, "No data to plot\n")
		return err
	}
	width, height := opts.Width, opts.Height
	if width < 2 {
		width = 2
	}
	if height < 2 {
		height = 2
	}

	top := decimal.Zero
	income := make([]float64, len(points))
	expense := make([]float64, len(points))
	for i, p := range points {
		top = decimal.Max(top, p.Income.Decimal, p.Expense.Decimal)
		income[i] = p.Income.InexactFloat64()
		expense[i] = p.Expense.InexactFloat64()
	}
	scale := top.InexactFloat64()
	if scale == 0 {
		scale = 1
	}

	grid := make([][]rune, height)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", width))
	}
	plot := func(values []float64, mark rune) {
		for c, v := range resample(values, width) {
			r := int(v/scale*float64(height-1) + 0.5)
			row := grid[height-1-r]
			switch row[c] {
			case ' ':
				row[c] = mark
			case mark:
			default:
				row[c] = bothMark
			}
		}
	}
	plot(income, incomeMark)
	plot(expense, expenseMark)

	topLabel := top.StringFixed(2)
	labelWidth := len(topLabel)
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "Income and Expense Over Time")
	for r, row := range grid {
		label := ""
		switch r {
		case 0:
			label = topLabel
		case height - 1:
			label = "0.00"
		}
		fmt.Fprintf(&buf, "%*s |%s\n", labelWidth, label, string(row))
	}
	fmt.Fprintf(&buf, "%*s +%s\n", labelWidth, "", strings.Repeat("-", width))

	first, last := points[0].Date.String(), points[len(points)-1].Date.String()
	axis := first
	if len(points) > 1 {
		gap := width - len(first) - len(last)
		if gap < 1 {
			gap = 1
		}
		axis = first + strings.Repeat(" ", gap) + last
	}
	fmt.Fprintf(&buf, "%*s  %s\n", labelWidth, "", axis)
	fmt.Fprintf(&buf, "%*s  %c Income  %c Expense  %c both\n", labelWidth, "", incomeMark, expenseMark, bothMark)

	_, err := w.Write(buf.Bytes())
	return err
}

// resample maps values onto width columns. Shorter series are linearly
// interpolated; longer ones keep the maximum of each bucket so peaks survive.
func resample(values []float64, width int) []float64 {
	out := make([]float64, width)
	n := len(values)
	if n == 1 {
		for c := range out {
			out[c] = values[0]
		}
		return out
	}
	if n <= width {
		for c := range out {
			x := float64(c) * float64(n-1) / float64(width-1)
			i := int(x)
			if i >= n-1 {
				out[c] = values[n-1]
				continue
			}
			frac := x - float64(i)
			out[c] = values[i] + (values[i+1]-values[i])*frac
		}
		return out
	}
	for i, v := range values {
		c := i * width / n
		if v > out[c] {
			out[c] = v
		}
	}
	return out
}
