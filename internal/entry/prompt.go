// Package entry collects validated transaction fields from an interactive
// session. Invalid input is reported and asked again until it parses, the
// input ends or the context is cancelled.
package entry

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"ledger/internal/core"
)

type readResult struct {
	text string
	err  error
}

// Prompter reads answers line by line from in and writes prompts to out.
// Lines are read on a background goroutine so a blocked read never hides a
// cancelled context.
type Prompter struct {
	in    *bufio.Reader
	out   io.Writer
	now   func() time.Time
	lines chan readResult
	err   error
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out, now: time.Now}
}

// WithClock replaces the source of "today" used for default dates.
func (p *Prompter) WithClock(now func() time.Time) *Prompter {
	p.now = now
	return p
}

func (p *Prompter) readLines() {
	for {
		line, err := p.in.ReadString('\n')
		p.lines <- readResult{text: line, err: err}
		if err != nil {
			return
		}
	}
}

// Ask prints prompt and returns the next line without its line ending.
// A final line without a newline is still returned; io.EOF is reported only
// when nothing was read. Cancelling ctx abandons the pending read and returns
// ctx.Err().
func (p *Prompter) Ask(ctx context.Context, prompt string) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if p.lines == nil {
		p.lines = make(chan readResult)
		go p.readLines()
	}

	fmt.Fprint(p.out, prompt)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-p.lines:
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if r.err != nil {
			p.err = r.err
			if !(r.err == io.EOF && r.text != "") {
				return "", r.err
			}
		}
		return strings.TrimRight(r.text, "\r\n"), nil
	}
}

// Date asks for a DD-MM-YYYY date. With allowDefault an empty answer means
// today.
func (p *Prompter) Date(ctx context.Context, prompt string, allowDefault bool) (core.Date, error) {
	for {
		answer, err := p.Ask(ctx, prompt)
		if err != nil {
			return core.Date{}, err
		}
		answer = strings.TrimSpace(answer)
		if answer == "" && allowDefault {
			return core.DateOf(p.now()), nil
		}
		d, err := core.ParseDate(answer)
		if err == nil {
			return d, nil
		}
		fmt.Fprintln(p.out, "Invalid date format. Please enter the date in dd-mm-yyyy format.")
	}
}

// Amount asks until a positive decimal is given.
func (p *Prompter) Amount(ctx context.Context) (core.Amount, error) {
	for {
		answer, err := p.Ask(ctx, "Enter the amount: ")
		if err != nil {
			return core.Amount{}, err
		}
		a, err := core.ParseAmount(answer)
		if err == nil && a.IsPositive() {
			return a, nil
		}
		fmt.Fprintln(p.out, "Amount must be a positive number.")
	}
}

// Category asks for 'I' (Income) or 'E' (Expense), case-insensitive.
func (p *Prompter) Category(ctx context.Context) (core.Category, error) {
	for {
		answer, err := p.Ask(ctx, "Enter the category ('I' for Income or 'E' for Expense): ")
		if err != nil {
			return core.Category{}, err
		}
		switch strings.ToUpper(strings.TrimSpace(answer)) {
		case "I":
			return core.IncomeCategory, nil
		case "E":
			return core.ExpenseCategory, nil
		}
		fmt.Fprintln(p.out, "Invalid category. Please enter 'I' for Income or 'E' for Expense.")
	}
}

// Description asks for optional free text.
func (p *Prompter) Description(ctx context.Context) (string, error) {
	answer, err := p.Ask(ctx, "Enter a description (optional): ")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

// Confirm asks a y/n question; anything other than y or yes is a no.
func (p *Prompter) Confirm(ctx context.Context, prompt string) (bool, error) {
	answer, err := p.Ask(ctx, prompt)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// Transaction runs the full sequence of prompts for a new record.
func (p *Prompter) Transaction(ctx context.Context) (core.Transaction, error) {
	date, err := p.Date(ctx, "Enter the date of the transaction (dd-mm-yyyy) or enter for today's date: ", true)
	if err != nil {
		return core.Transaction{}, err
	}
	amount, err := p.Amount(ctx)
	if err != nil {
		return core.Transaction{}, err
	}
	category, err := p.Category(ctx)
	if err != nil {
		return core.Transaction{}, err
	}
	desc, err := p.Description(ctx)
	if err != nil {
		return core.Transaction{}, err
	}
	return core.Transaction{Date: date, Amount: amount, Category: category, Description: desc}, nil
}
