// Package ledger defines the storage ports for the append-only transaction
// log and the errors shared by every implementation.
package ledger

import (
	"context"
	"errors"

	"ledger/internal/core"
)

// Columns is the fixed header and field order of the backing dataset.
var Columns = []string{"date", "amount", "category", "description"}

var (
	// ErrNotFound is returned by ReadAll when the dataset was never initialized.
	ErrNotFound = errors.New("ledger not found")
	// ErrCorruptLedger is returned when stored data cannot be mapped onto Columns.
	ErrCorruptLedger = errors.New("corrupt ledger")
)

// Ports for the ledger store.
type (
	Initializer interface {
		// Initialize creates an empty dataset if none exists. It is idempotent.
		Initialize(ctx context.Context) error
	}

	Appender interface {
		Append(ctx context.Context, tx core.Transaction) error
	}

	Reader interface {
		// ReadAll returns every record in insertion order.
		ReadAll(ctx context.Context) ([]core.Transaction, error)
	}

	Store interface {
		Initializer
		Appender
		Reader
	}
)
