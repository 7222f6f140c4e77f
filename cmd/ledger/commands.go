package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"ledger/internal/config"
	"ledger/internal/core"
	"ledger/internal/entry"
	applog "ledger/internal/log"
	"ledger/internal/query"
	"ledger/internal/report"
	"ledger/internal/services"
)

const usage = `Usage: ledger [command] [flags]

Commands:
  add    -amount N -category Income|Expense [-date DD-MM-YYYY] [-desc TEXT]
  list   [-plot]                              all transactions and summary
  range  -from DD-MM-YYYY -to DD-MM-YYYY [-plot]
  plot   [-from DD-MM-YYYY -to DD-MM-YYYY]    daily income and expense chart

Without a command an interactive menu is started.
`

var errUsage = errors.New("invalid usage")

type app struct {
	service *services.LedgerService
	cfg     *config.Config
	logger  *applog.Logger
	in      io.Reader
	out     io.Writer
	errOut  io.Writer
	now     func() time.Time
}

// run executes one command and returns the process exit status.
func (a *app) run(ctx context.Context, args []string) int {
	if a.now == nil {
		a.now = time.Now
	}
	ctx = applog.NewContext(ctx, a.logger)

	var err error
	if len(args) == 0 {
		err = a.menu(ctx)
	} else {
		err = a.dispatch(ctx, args[0], args[1:])
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, errUsage):
		fmt.Fprintf(a.errOut, "error: %v\n\n%s", err, usage)
		return 2
	default:
		a.logger.Error("Command failed", applog.FieldError, err)
		fmt.Fprintf(a.errOut, "error: %v\n", err)
		return 1
	}
}

func (a *app) dispatch(ctx context.Context, name string, args []string) error {
	switch name {
	case "add":
		return a.add(ctx, args)
	case "list":
		return a.view(ctx, "list", args, false)
	case "range":
		return a.view(ctx, "range", args, true)
	case "plot":
		return a.plot(ctx, args)
	case "help", "-h", "--help":
		fmt.Fprint(a.out, usage)
		return nil
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, name)
	}
}

func (a *app) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	return fs
}

func (a *app) add(ctx context.Context, args []string) error {
	fs := a.newFlagSet("add")
	date := fs.String("date", "", "transaction date (DD-MM-YYYY), defaults to today")
	amount := fs.String("amount", "", "positive amount")
	category := fs.String("category", "", "Income or Expense (I/E accepted)")
	desc := fs.String("desc", "", "description")
	if err := fs.Parse(args); err != nil {
		return err
	}

	tx, err := a.transactionFromFlags(*date, *amount, *category, *desc)
	if err != nil {
		return err
	}
	if err := a.service.Record(ctx, tx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Entry added successfully")
	return nil
}

func (a *app) transactionFromFlags(date, amount, category, desc string) (core.Transaction, error) {
	d := core.DateOf(a.now())
	if strings.TrimSpace(date) != "" {
		parsed, err := core.ParseDate(date)
		if err != nil {
			return core.Transaction{}, err
		}
		d = parsed
	}

	if strings.TrimSpace(amount) == "" {
		return core.Transaction{}, fmt.Errorf("%w: -amount is required", errUsage)
	}
	amt, err := core.ParseAmount(amount)
	if err != nil {
		return core.Transaction{}, err
	}
	if !amt.IsPositive() {
		return core.Transaction{}, fmt.Errorf("%w: amount must be positive", core.ErrInvalidAmount)
	}

	var cat core.Category
	switch strings.ToUpper(strings.TrimSpace(category)) {
	case "I", "INCOME":
		cat = core.IncomeCategory
	case "E", "EXPENSE":
		cat = core.ExpenseCategory
	default:
		return core.Transaction{}, fmt.Errorf("%w: -category must be Income or Expense", errUsage)
	}

	return core.Transaction{Date: d, Amount: amt, Category: cat, Description: strings.TrimSpace(desc)}, nil
}

// view backs both list and range.
func (a *app) view(ctx context.Context, name string, args []string, ranged bool) error {
	fs := a.newFlagSet(name)
	withPlot := fs.Bool("plot", false, "also draw the daily chart")
	var from, to *string
	if ranged {
		from = fs.String("from", "", "start date (DD-MM-YYYY), inclusive")
		to = fs.String("to", "", "end date (DD-MM-YYYY), inclusive")
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	start, end := "", ""
	if ranged {
		if *from == "" || *to == "" {
			return fmt.Errorf("%w: -from and -to are required", errUsage)
		}
		start, end = *from, *to
	}
	return a.show(ctx, start, end, *withPlot)
}

func (a *app) plot(ctx context.Context, args []string) error {
	fs := a.newFlagSet("plot")
	from := fs.String("from", "", "start date (DD-MM-YYYY), inclusive")
	to := fs.String("to", "", "end date (DD-MM-YYYY), inclusive")
	if err := fs.Parse(args); err != nil {
		return err
	}
	summary, notice, err := a.service.Summary(ctx, *from, *to)
	if err != nil {
		return err
	}
	a.printNotice(notice)
	return a.chart(ctx, summary)
}

func (a *app) show(ctx context.Context, start, end string, withPlot bool) error {
	summary, notice, err := a.service.Summary(ctx, start, end)
	if err != nil {
		return err
	}
	a.printNotice(notice)
	if err := report.WriteSummary(a.out, summary, report.Options{Currency: a.cfg.Currency}); err != nil {
		return err
	}
	if withPlot {
		fmt.Fprintln(a.out)
		return a.chart(ctx, summary)
	}
	return nil
}

func (a *app) chart(ctx context.Context, summary query.Summary) error {
	points, err := a.service.Series(ctx, summary)
	if err != nil {
		return err
	}
	return report.WriteChart(a.out, points, report.ChartOptions{
		Width:  a.cfg.ChartWidth,
		Height: a.cfg.ChartHeight,
	})
}

func (a *app) printNotice(n services.Notice) {
	if n != services.NoNotice {
		fmt.Fprintln(a.out, string(n))
	}
}

// menu runs the interactive loop until the user exits or input ends.
func (a *app) menu(ctx context.Context) error {
	p := entry.NewPrompter(a.in, a.out).WithClock(a.now)
	for {
		if ctx.Err() != nil {
			fmt.Fprintln(a.out, "\nExiting...")
			return nil
		}
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "1. Add a New Transaction")
		fmt.Fprintln(a.out, "2. View All Transactions and Summary")
		fmt.Fprintln(a.out, "3. View Transactions and Summary within a Date Range")
		fmt.Fprintln(a.out, "4. Exit")
		choice, err := p.Ask(ctx, "Enter your choice (1-4): ")
		if endOfSession(ctx, err) {
			fmt.Fprintln(a.out, "\nExiting...")
			return nil
		}
		if err != nil {
			return err
		}

		switch strings.TrimSpace(choice) {
		case "1":
			err = a.menuAdd(ctx, p)
		case "2":
			err = a.menuView(ctx, p, "", "")
		case "3":
			err = a.menuRange(ctx, p)
		case "4":
			fmt.Fprintln(a.out, "\nExiting...")
			return nil
		default:
			fmt.Fprintln(a.out, "Invalid choice. Select from 1-4")
			continue
		}

		if endOfSession(ctx, err) {
			fmt.Fprintln(a.out, "\nExiting...")
			return nil
		}
		if err != nil {
			applog.FromContext(ctx).WarnContext(ctx, "Menu action failed", applog.FieldError, err)
			fmt.Fprintf(a.out, "Error: %v\n", err)
		}
	}
}

// endOfSession reports whether err means the user is gone: input ended or
// the process was interrupted.
func endOfSession(ctx context.Context, err error) bool {
	return errors.Is(err, io.EOF) || (err != nil && ctx.Err() != nil)
}

func (a *app) menuAdd(ctx context.Context, p *entry.Prompter) error {
	tx, err := p.Transaction(ctx)
	if err != nil {
		return err
	}
	if err := a.service.Record(ctx, tx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Entry added successfully")
	return nil
}

func (a *app) menuRange(ctx context.Context, p *entry.Prompter) error {
	start, err := p.Date(ctx, "Enter the start date (dd-mm-yyyy): ", false)
	if err != nil {
		return err
	}
	end, err := p.Date(ctx, "Enter the end date (dd-mm-yyyy): ", false)
	if err != nil {
		return err
	}
	return a.menuView(ctx, p, start.String(), end.String())
}

func (a *app) menuView(ctx context.Context, p *entry.Prompter, start, end string) error {
	summary, notice, err := a.service.Summary(ctx, start, end)
	if err != nil {
		return err
	}
	a.printNotice(notice)
	if err := report.WriteSummary(a.out, summary, report.Options{Currency: a.cfg.Currency}); err != nil {
		return err
	}
	plot, err := p.Confirm(ctx, "Do you want to see the plot? (y/n) ")
	if err != nil {
		return err
	}
	if plot {
		return a.chart(ctx, summary)
	}
	return nil
}
