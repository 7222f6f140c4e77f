package services

import (
	"context"
	"errors"
	"fmt"

	"ledger/internal/core"
	"ledger/internal/ledger"
	applog "ledger/internal/log"
	"ledger/internal/query"
)

var ErrIncompleteRange = errors.New("both start and end dates are required")

// Notice is a user-facing message about a recovered condition.
type Notice string

const (
	NoNotice       Notice = ""
	NoticeNoLedger Notice = "Ledger file not found, no transactions recorded yet"
)

// LedgerService orchestrates recording and querying transactions
type LedgerService struct {
	store  ledger.Store
	logger *applog.Logger
	events *applog.StructuredLogger
}

func NewLedgerService(store ledger.Store, logger *applog.Logger) *LedgerService {
	if logger == nil {
		logger = applog.Discard()
	}
	logger = logger.WithComponent(applog.ComponentLedger)
	return &LedgerService{
		store:  store,
		logger: logger,
		events: applog.NewStructuredLogger(logger),
	}
}

// Record appends tx. The store validates it and creates the ledger on first
// use. A cancelled ctx records nothing.
func (s *LedgerService) Record(ctx context.Context, tx core.Transaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.store.Append(ctx, tx); err != nil {
		errType := applog.ErrorTypeStorage
		if isValidationError(err) {
			errType = applog.ErrorTypeValidation
		}
		s.events.LogError(ctx, "Failed to append transaction", err, applog.OpAppend,
			applog.NewFields().WithErrorType(errType).WithTransaction(tx))
		return fmt.Errorf("append transaction: %w", err)
	}
	s.events.LogTransactionRecorded(ctx, applog.NewFields().WithTransaction(tx))
	return nil
}

func isValidationError(err error) bool {
	return errors.Is(err, core.ErrInvalidDate) ||
		errors.Is(err, core.ErrInvalidAmount) ||
		errors.Is(err, core.ErrEmptyCategory)
}

// Transactions returns the whole ledger. A ledger that was never created is
// reported as empty together with NoticeNoLedger.
func (s *LedgerService) Transactions(ctx context.Context) ([]core.Transaction, Notice, error) {
	records, err := s.store.ReadAll(ctx)
	if errors.Is(err, ledger.ErrNotFound) {
		s.logger.WarnContext(ctx, "Ledger not found, treating as empty",
			applog.FieldOperation, applog.OpRead,
			applog.FieldErrorType, applog.ErrorTypeNotFound)
		return []core.Transaction{}, NoticeNoLedger, nil
	}
	if err != nil {
		errType := applog.ErrorTypeStorage
		if errors.Is(err, ledger.ErrCorruptLedger) {
			errType = applog.ErrorTypeCorrupt
		}
		s.events.LogError(ctx, "Failed to read ledger", err, applog.OpRead,
			applog.NewFields().WithErrorType(errType))
		return nil, NoNotice, fmt.Errorf("read ledger: %w", err)
	}
	return records, NoNotice, nil
}

// Summary summarizes the ledger, restricted to [start, end] when both are
// given. Both empty means the whole ledger; exactly one empty is an error.
// Bounds are parsed before storage is touched.
func (s *LedgerService) Summary(ctx context.Context, start, end string) (query.Summary, Notice, error) {
	var r *query.DateRange
	switch {
	case start == "" && end == "":
	case start == "" || end == "":
		return query.Summary{}, NoNotice, ErrIncompleteRange
	default:
		parsed, err := query.ParseRange(start, end)
		if err != nil {
			s.events.LogError(ctx, "Invalid date range", err, applog.OpFilter,
				applog.NewFields().WithErrorType(applog.ErrorTypeParse).WithRange(start, end))
			return query.Summary{}, NoNotice, err
		}
		r = &parsed
	}

	records, notice, err := s.Transactions(ctx)
	if err != nil {
		return query.Summary{}, notice, err
	}

	summary := query.Summarize(records, r)
	fields := applog.NewFields().WithTotals(len(summary.Records), summary.Totals)
	if r != nil {
		fields = fields.WithRange(r.Start.String(), r.End.String())
	}
	s.events.LogSummary(ctx, fields)
	return summary, notice, nil
}

// Series returns the daily plot series of the summary's records.
func (s *LedgerService) Series(ctx context.Context, summary query.Summary) ([]core.DailyPoint, error) {
	points, err := query.DailySeries(summary.Records)
	if err != nil {
		s.events.LogError(ctx, "Cannot build daily series", err, applog.OpSummarize,
			applog.NewFields().WithErrorType(applog.ErrorTypeValidation))
		return nil, err
	}
	return points, nil
}
