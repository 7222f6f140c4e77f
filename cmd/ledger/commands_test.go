package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ledger/internal/config"
	"ledger/internal/ledger/csvfile"
	applog "ledger/internal/log"
	"ledger/internal/services"
)

type harness struct {
	app    *app
	out    *strings.Builder
	errOut *strings.Builder
}

func newHarness(t *testing.T, input string) *harness {
	t.Helper()
	cfg := &config.Config{
		Backend:      config.BackendCSV,
		LedgerFile:   filepath.Join(t.TempDir(), "ledger.csv"),
		StrictHeader: true,
		Currency:     "Rs",
		ChartWidth:   20,
		ChartHeight:  5,
		LogLevel:     "warn",
	}
	store := csvfile.New(csvfile.Config{Path: cfg.LedgerFile, StrictHeader: cfg.StrictHeader})
	logger := applog.Discard()
	h := &harness{out: &strings.Builder{}, errOut: &strings.Builder{}}
	h.app = &app{
		service: services.NewLedgerService(store, logger),
		cfg:     cfg,
		logger:  logger,
		in:      strings.NewReader(input),
		out:     h.out,
		errOut:  h.errOut,
		now:     func() time.Time { return time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC) },
	}
	return h
}

func (h *harness) run(t *testing.T, args ...string) int {
	t.Helper()
	return h.app.run(context.Background(), args)
}

func TestAddAndList(t *testing.T) {
	h := newHarness(t, "")
	if code := h.run(t, "add", "-date", "01-01-2024", "-amount", "100", "-category", "Income", "-desc", "salary"); code != 0 {
		t.Fatalf("add exit %d: %s", code, h.errOut)
	}
	if code := h.run(t, "add", "-date", "05-01-2024", "-amount", "40", "-category", "E", "-desc", "food"); code != 0 {
		t.Fatalf("add exit %d: %s", code, h.errOut)
	}

	h.out.Reset()
	if code := h.run(t, "list"); code != 0 {
		t.Fatalf("list exit %d: %s", code, h.errOut)
	}
	got := h.out.String()
	for _, want := range []string{"salary", "food", "Net Savings: Rs 60.00"} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in:\n%s", want, got)
		}
	}
}

func TestAddDefaultsToToday(t *testing.T) {
	h := newHarness(t, "")
	if code := h.run(t, "add", "-amount", "3", "-category", "I"); code != 0 {
		t.Fatalf("add exit %d: %s", code, h.errOut)
	}
	h.out.Reset()
	h.run(t, "list")
	if !strings.Contains(h.out.String(), "10-01-2024") {
		t.Fatalf("expected today's date:\n%s", h.out.String())
	}
}

func TestAddValidation(t *testing.T) {
	cases := []struct {
		args []string
		code int
	}{
		{[]string{"add", "-category", "Income"}, 2},
		{[]string{"add", "-amount", "5", "-category", "Savings"}, 2},
		{[]string{"add", "-amount", "0", "-category", "Income"}, 1},
		{[]string{"add", "-amount", "-4", "-category", "Income"}, 1},
		{[]string{"add", "-amount", "4", "-category", "Income", "-date", "2024-01-01"}, 1},
	}
	for _, tc := range cases {
		h := newHarness(t, "")
		if code := h.run(t, tc.args...); code != tc.code {
			t.Fatalf("%v: exit %d, want %d (%s)", tc.args, code, tc.code, h.errOut)
		}
		h.out.Reset()
		h.run(t, "list")
		if !strings.Contains(h.out.String(), "No transactions found") {
			t.Fatalf("%v: rejected input must not be stored:\n%s", tc.args, h.out.String())
		}
	}
}

func TestListMissingLedger(t *testing.T) {
	h := newHarness(t, "")
	if code := h.run(t, "list"); code != 0 {
		t.Fatalf("list exit %d: %s", code, h.errOut)
	}
	got := h.out.String()
	if !strings.Contains(got, string(services.NoticeNoLedger)) || !strings.Contains(got, "No transactions found") {
		t.Fatalf("unexpected output:\n%s", got)
	}
}

func TestRange(t *testing.T) {
	h := newHarness(t, "")
	h.run(t, "add", "-date", "01-01-2024", "-amount", "100", "-category", "Income", "-desc", "salary")
	h.run(t, "add", "-date", "05-01-2024", "-amount", "40", "-category", "Expense", "-desc", "food")

	h.out.Reset()
	if code := h.run(t, "range", "-from", "02-01-2024", "-to", "05-01-2024", "-plot"); code != 0 {
		t.Fatalf("range exit %d: %s", code, h.errOut)
	}
	got := h.out.String()
	if strings.Contains(got, "salary") || !strings.Contains(got, "Net Savings: Rs -40.00") {
		t.Fatalf("unexpected range output:\n%s", got)
	}
	if !strings.Contains(got, "Income and Expense Over Time") {
		t.Fatalf("expected chart:\n%s", got)
	}

	if code := h.run(t, "range", "-from", "02-01-2024"); code != 2 {
		t.Fatalf("missing -to should be a usage error, got %d", code)
	}
	if code := h.run(t, "range", "-from", "bad", "-to", "05-01-2024"); code != 1 {
		t.Fatalf("malformed date should fail, got %d", code)
	}
	if !strings.Contains(h.errOut.String(), "invalid date") {
		t.Fatalf("expected parse error message, got %s", h.errOut)
	}
}

func TestPlotEmpty(t *testing.T) {
	h := newHarness(t, "")
	if code := h.run(t, "plot"); code != 0 {
		t.Fatalf("plot exit %d", code)
	}
	if !strings.Contains(h.out.String(), "No data to plot") {
		t.Fatalf("unexpected output:\n%s", h.out.String())
	}
}

func TestUnknownCommand(t *testing.T) {
	h := newHarness(t, "")
	if code := h.run(t, "delete"); code != 2 {
		t.Fatalf("expected usage exit, got %d", code)
	}
	if !strings.Contains(h.errOut.String(), "Usage: ledger") {
		t.Fatalf("expected usage text, got %s", h.errOut)
	}
}

func TestMenuSession(t *testing.T) {
	input := strings.Join([]string{
		"1", "01-01-2024", "100", "I", "salary",
		"1", "", "40", "E", "food",
		"9",
		"2", "n",
		"3", "02-01-2024", "31-01-2024", "y",
		"4",
	}, "\n") + "\n"
	h := newHarness(t, input)
	if code := h.run(t); code != 0 {
		t.Fatalf("menu exit %d: %s", code, h.errOut)
	}
	got := h.out.String()
	for _, want := range []string{
		"Entry added successfully",
		"Invalid choice. Select from 1-4",
		"Net Savings: Rs 60.00",
		"Transactions from 02-01-2024 to 31-01-2024",
		"Net Savings: Rs -40.00",
		"Income and Expense Over Time",
		"Exiting...",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in:\n%s", want, got)
		}
	}
	if !strings.Contains(got, "10-01-2024") {
		t.Fatalf("default date not applied:\n%s", got)
	}
}

func TestMenuEndsOnEOF(t *testing.T) {
	h := newHarness(t, "1\n01-01-2024\n")
	if code := h.run(t); code != 0 {
		t.Fatalf("menu exit %d", code)
	}
	if !strings.Contains(h.out.String(), "Exiting...") {
		t.Fatalf("expected clean exit:\n%s", h.out.String())
	}
}

// interruptingReader serves one chunk per Read and calls interrupt just
// before handing out chunk number at.
type interruptingReader struct {
	chunks    []string
	at        int
	interrupt func()
	next      int
}

func (r *interruptingReader) Read(p []byte) (int, error) {
	if r.next >= len(r.chunks) {
		return 0, io.EOF
	}
	if r.next == r.at {
		r.interrupt()
	}
	n := copy(p, r.chunks[r.next])
	r.next++
	return n, nil
}

func TestMenuInterruptedDuringAddRecordsNothing(t *testing.T) {
	h := newHarness(t, "")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h.app.in = &interruptingReader{
		chunks:    []string{"1\n", "01-01-2024\n", "100\n", "I\n", "salary\n"},
		at:        4,
		interrupt: cancel,
	}

	if code := h.app.run(ctx, nil); code != 0 {
		t.Fatalf("menu exit %d: %s", code, h.errOut)
	}
	if strings.Contains(h.out.String(), "Entry added successfully") {
		t.Fatalf("interrupted add must not be recorded:\n%s", h.out)
	}
	if !strings.Contains(h.out.String(), "Exiting...") {
		t.Fatalf("expected exit message:\n%s", h.out)
	}
	if _, err := os.Stat(h.app.cfg.LedgerFile); !os.IsNotExist(err) {
		t.Fatalf("ledger must not be created, stat err=%v", err)
	}
}

func TestPlotRejectsHugeSpan(t *testing.T) {
	h := newHarness(t, "")
	content := "date,amount,category,description\n01-01-0224,5,Expense,typo\n01-01-2024,100,Income,salary\n"
	if err := os.WriteFile(h.app.cfg.LedgerFile, []byte(content), 0o644); err != nil {
		t.Fatalf("write ledger: %v", err)
	}
	if code := h.run(t, "plot"); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(h.errOut.String(), "too wide to plot") {
		t.Fatalf("expected span error, got %q", h.errOut.String())
	}
}
