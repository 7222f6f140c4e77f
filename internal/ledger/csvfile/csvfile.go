// Package csvfile implements the ledger store on top of a single CSV file.
//
// The file holds a header row followed by one row per transaction in the
// column order of ledger.Columns. Rows are only ever appended. The store is
// meant for one process at a time: there is no locking.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"ledger/internal/core"
	"ledger/internal/ledger"
	applog "ledger/internal/log"
)

const DefaultPath = "financial_records.csv"

// Config holds everything the store needs to locate and read its file.
type Config struct {
	Path string
	// StrictHeader rejects files whose header differs from ledger.Columns.
	StrictHeader bool
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{Path: DefaultPath, StrictHeader: true}
}

type Store struct {
	cfg Config
}

var _ ledger.Store = (*Store)(nil)

func New(cfg Config) *Store {
	if cfg.Path == "" {
		cfg.Path = DefaultPath
	}
	return &Store{cfg: cfg}
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.cfg.Path
}

// Initialize creates the file with only the header row when it is absent.
// An existing file is left untouched.
func (s *Store) Initialize(ctx context.Context) error {
	if _, err := os.Stat(s.cfg.Path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat ledger: %w", err)
	}

	if dir := filepath.Dir(s.cfg.Path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create ledger directory: %w", err)
		}
	}

	f, err := os.OpenFile(s.cfg.Path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil
		}
		return fmt.Errorf("create ledger: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(ledger.Columns); err != nil {
		f.Close()
		return fmt.Errorf("write header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("write header: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close ledger: %w", err)
	}

	logger(ctx).InfoContext(ctx, "Ledger initialized",
		applog.FieldOperation, applog.OpInitialize,
		applog.FieldPath, s.Path())
	return nil
}

// Append implements ledger.Appender
func (s *Store) Append(ctx context.Context, tx core.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}
	if err := s.Initialize(ctx); err != nil {
		return err
	}

	f, err := os.OpenFile(s.cfg.Path, os.O_RDWR|os.O_APPEND, 0)
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}

	empty, missingNewline, err := inspectTail(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("inspect ledger: %w", err)
	}
	if !empty {
		header, err := readHeader(f)
		if err != nil {
			f.Close()
			return err
		}
		switch {
		case header == nil:
			empty = true
		case s.cfg.StrictHeader:
			if err := checkHeader(header); err != nil {
				f.Close()
				return err
			}
		}
	}
	// A hand-edited file may lack the final newline.
	if missingNewline {
		if _, err := f.WriteString("\n"); err != nil {
			f.Close()
			return fmt.Errorf("write ledger: %w", err)
		}
	}

	w := csv.NewWriter(f)
	if empty {
		if err := w.Write(ledger.Columns); err != nil {
			f.Close()
			return fmt.Errorf("write header: %w", err)
		}
	}
	if err := w.Write(encode(tx)); err != nil {
		f.Close()
		return fmt.Errorf("write record: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("write record: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close ledger: %w", err)
	}

	logger(ctx).DebugContext(ctx, "Transaction appended",
		append([]any{applog.FieldPath, s.Path()}, applog.NewFields().WithTransaction(tx).ToSlice()...)...)
	return nil
}

// ReadAll implements ledger.Reader
func (s *Store) ReadAll(ctx context.Context) ([]core.Transaction, error) {
	f, err := os.Open(s.cfg.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ledger.ErrNotFound, s.cfg.Path)
		}
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	defer f.Close()

	records, err := s.decodeAll(f)
	if err != nil {
		return nil, err
	}

	logger(ctx).DebugContext(ctx, "Ledger read",
		applog.FieldOperation, applog.OpRead,
		applog.FieldPath, s.Path(),
		applog.FieldRecords, len(records))
	return records, nil
}

func (s *Store) decodeAll(r io.Reader) ([]core.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return []core.Transaction{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", ledger.ErrCorruptLedger, err)
	}
	if s.cfg.StrictHeader {
		if err := checkHeader(header); err != nil {
			return nil, err
		}
	}

	records := []core.Transaction{}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ledger.ErrCorruptLedger, err)
		}
		tx, err := decode(row)
		if err != nil {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("%w: line %d: %v", ledger.ErrCorruptLedger, line, err)
		}
		records = append(records, tx)
	}
	return records, nil
}

// readHeader returns the first record of f, or nil when f holds no records.
func readHeader(f *os.File) ([]string, error) {
	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("inspect ledger: %w", err)
	}
	header, err := csv.NewReader(io.NewSectionReader(f, 0, info.Size())).Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", ledger.ErrCorruptLedger, err)
	}
	return header, nil
}

func checkHeader(header []string) error {
	got := make([]string, len(header))
	for i, h := range header {
		got[i] = strings.TrimSpace(h)
	}
	if len(got) > 0 {
		got[0] = strings.TrimPrefix(got[0], "\ufeff")
	}
	if len(got) != len(ledger.Columns) {
		return fmt.Errorf("%w: unexpected header %v, want %v", ledger.ErrCorruptLedger, got, ledger.Columns)
	}
	for i := range got {
		if got[i] != ledger.Columns[i] {
			return fmt.Errorf("%w: unexpected header %v, want %v", ledger.ErrCorruptLedger, got, ledger.Columns)
		}
	}
	return nil
}

func encode(tx core.Transaction) []string {
	return []string{
		tx.Date.String(),
		tx.Amount.Text(),
		tx.Category.String(),
		tx.Description,
	}
}

func decode(row []string) (core.Transaction, error) {
	if len(row) != len(ledger.Columns) {
		return core.Transaction{}, fmt.Errorf("expected %d fields, got %d", len(ledger.Columns), len(row))
	}
	date, err := core.ParseDate(row[0])
	if err != nil {
		return core.Transaction{}, err
	}
	amount, err := core.ParseAmount(row[1])
	if err != nil {
		return core.Transaction{}, err
	}
	category, err := core.ParseCategory(row[2])
	if err != nil {
		return core.Transaction{}, err
	}
	return core.Transaction{
		Date:        date,
		Amount:      amount,
		Category:    category,
		Description: row[3],
	}, nil
}

// inspectTail reports whether f is empty and whether its last byte is
// something other than a newline.
func inspectTail(f *os.File) (empty bool, missingNewline bool, err error) {
	info, err := f.Stat()
	if err != nil {
		return false, false, err
	}
	if info.Size() == 0 {
		return true, false, nil
	}
	buf := make([]byte, 1)
	if _, err := f.ReadAt(buf, info.Size()-1); err != nil {
		return false, false, err
	}
	return false, buf[0] != '\n', nil
}

func logger(ctx context.Context) *applog.Logger {
	return applog.FromContext(ctx).WithComponent(applog.ComponentStorage)
}
