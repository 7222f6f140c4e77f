package entry

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"ledger/internal/core"
)

func fixedClock() time.Time {
	return time.Date(2024, 6, 15, 18, 30, 0, 0, time.UTC)
}

func newPrompter(input string) (*Prompter, *strings.Builder) {
	out := &strings.Builder{}
	return NewPrompter(strings.NewReader(input), out).WithClock(fixedClock), out
}

func TestDateDefaultsToToday(t *testing.T) {
	p, _ := newPrompter("\n")
	d, err := p.Date(context.Background(), "date: ", true)
	if err != nil || !d.Equal(core.NewDate(2024, 6, 15)) {
		t.Fatalf("expected today, got %v (err=%v)", d, err)
	}
}

func TestDateRepromptsOnBadInput(t *testing.T) {
	p, out := newPrompter("\n2024-01-01\n05-01-2024\n")
	d, err := p.Date(context.Background(), "date: ", false)
	if err != nil || !d.Equal(core.NewDate(2024, 1, 5)) {
		t.Fatalf("unexpected date %v (err=%v)", d, err)
	}
	if got := strings.Count(out.String(), "Invalid date format"); got != 2 {
		t.Fatalf("expected 2 complaints, got %d:\n%s", got, out.String())
	}
}

func TestAmountRejectsZeroAndNegative(t *testing.T) {
	p, out := newPrompter("0\n-5\nabc\n12,50\n")
	a, err := p.Amount(context.Background())
	if err != nil || !a.Equal(core.MustAmount("12.5")) {
		t.Fatalf("unexpected amount %v (err=%v)", a, err)
	}
	if got := strings.Count(out.String(), "Amount must be a positive number."); got != 3 {
		t.Fatalf("expected 3 complaints, got %d", got)
	}
}

func TestCategory(t *testing.T) {
	p, _ := newPrompter("x\ni\n")
	c, err := p.Category(context.Background())
	if err != nil || c != core.IncomeCategory {
		t.Fatalf("unexpected category %v (err=%v)", c, err)
	}
	p, _ = newPrompter("E")
	c, err = p.Category(context.Background())
	if err != nil || c != core.ExpenseCategory {
		t.Fatalf("unexpected category %v (err=%v)", c, err)
	}
}

func TestTransactionSequence(t *testing.T) {
	p, _ := newPrompter("01-01-2024\n100\nI\nsalary, january\n")
	tx, err := p.Transaction(context.Background())
	if err != nil {
		t.Fatalf("transaction: %v", err)
	}
	want := core.Transaction{Date: core.NewDate(2024, 1, 1), Amount: core.MustAmount("100"), Category: core.IncomeCategory, Description: "salary, january"}
	if !tx.Equal(want) {
		t.Fatalf("got %+v want %+v", tx, want)
	}
}

func TestEndOfInput(t *testing.T) {
	p, _ := newPrompter("bad-date\n")
	if _, err := p.Date(context.Background(), "date: ", false); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestConfirm(t *testing.T) {
	p, _ := newPrompter("Y\nno\n\n")
	for i, want := range []bool{true, false, false} {
		got, err := p.Confirm(context.Background(), "plot? ")
		if err != nil || got != want {
			t.Fatalf("answer %d: got %v (err=%v), want %v", i, got, err, want)
		}
	}
}

// stallingReader blocks every read until the test ends, like a terminal with
// no input.
type stallingReader struct {
	started chan struct{}
	release chan struct{}
}

func (r *stallingReader) Read([]byte) (int, error) {
	select {
	case <-r.started:
	default:
		close(r.started)
	}
	<-r.release
	return 0, io.EOF
}

func TestAskReturnsWhenContextCancelled(t *testing.T) {
	in := &stallingReader{started: make(chan struct{}), release: make(chan struct{})}
	defer close(in.release)
	p := NewPrompter(in, io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-in.started
		cancel()
	}()

	if _, err := p.Ask(ctx, "choice: "); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestAskAfterCancelReadsNothing(t *testing.T) {
	p, out := newPrompter("01-01-2024\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Date(ctx, "date: ", false); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("no prompt expected after cancel, got %q", out.String())
	}
}
