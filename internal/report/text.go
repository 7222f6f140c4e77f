// Package report renders summaries and daily series as plain text.
package report

import (
	"bytes"
	"fmt"
	"io"
	"text/tabwriter"

	"ledger/internal/query"
)

// Options controls text rendering.
type Options struct {
	// Currency prefixes every total, e.g. "Rs".
	Currency string
}

// WriteSummary prints the records of s as a table followed by the totals.
// A summary without records prints a single "No transactions found" line.
func WriteSummary(w io.Writer, s query.Summary, opts Options) error {
	var buf bytes.Buffer

	if s.NoData() {
		if s.Range != nil {
			fmt.Fprintf(&buf, "No transactions found from %s\n", s.Range)
		} else {
			fmt.Fprintln(&buf, "No transactions found")
		}
		_, err := w.Write(buf.Bytes())
		return err
	}

	if s.Range != nil {
		fmt.Fprintf(&buf, "Transactions from %s\n", s.Range)
	} else {
		fmt.Fprintln(&buf, "Transactions:")
	}

	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "date\tamount\tcategory\tdescription")
	for _, tx := range s.Records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", tx.Date, tx.Amount.Fixed2(), tx.Category, tx.Description)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	prefix := opts.Currency
	if prefix != "" {
		prefix += " "
	}
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "Summary:")
	fmt.Fprintf(&buf, "Total Income: %s%s\n", prefix, s.Totals.Income.Fixed2())
	fmt.Fprintf(&buf, "Total Expense: %s%s\n", prefix, s.Totals.Expense.Fixed2())
	fmt.Fprintf(&buf, "Net Savings: %s%s\n", prefix, s.Totals.Net().StringFixed(2))
	if n := s.Totals.Unrecognized; n > 0 {
		fmt.Fprintf(&buf, "Note: %d transaction(s) with a category other than Income or Expense are not counted\n", n)
	}

	_, err := w.Write(buf.Bytes())
	return err
}
