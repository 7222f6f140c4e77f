package log

import "ledger/internal/core"

// Common field names for structured logging
const (
	FieldComponent    = "component"
	FieldError        = "error"
	FieldErrorType    = "error_type"
	FieldOperation    = "operation"
	FieldPath         = "path"
	FieldDate         = "date"
	FieldAmount       = "amount"
	FieldCategory     = "category"
	FieldDescription  = "description"
	FieldRangeStart   = "range_start"
	FieldRangeEnd     = "range_end"
	FieldRecords      = "records"
	FieldUnrecognized = "unrecognized"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentLedger  = "ledger"
	ComponentStorage = "storage"
)

// Operations defines standard operation names
const (
	OpInitialize = "initialize"
	OpAppend     = "append"
	OpRead       = "read"
	OpFilter     = "filter"
	OpSummarize  = "summarize"
	OpStartup    = "startup"
)

// ErrorTypes defines standard error type categories
const (
	ErrorTypeValidation = "validation_error"
	ErrorTypeStorage    = "storage_error"
	ErrorTypeNotFound   = "not_found_error"
	ErrorTypeCorrupt    = "corrupt_error"
	ErrorTypeParse      = "parse_error"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithErrorType adds the error category
func (f LogFields) WithErrorType(errType string) LogFields {
	f[FieldErrorType] = errType
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithTransaction adds transaction fields
func (f LogFields) WithTransaction(tx core.Transaction) LogFields {
	f[FieldDate] = tx.Date.String()
	f[FieldAmount] = tx.Amount.Text()
	f[FieldCategory] = tx.Category.String()
	f[FieldDescription] = tx.Description
	return f
}

// WithRange adds range bounds as given by the caller
func (f LogFields) WithRange(start, end string) LogFields {
	f[FieldRangeStart] = start
	f[FieldRangeEnd] = end
	return f
}

// WithTotals adds aggregate fields
func (f LogFields) WithTotals(records int, totals core.Totals) LogFields {
	f[FieldRecords] = records
	f["income"] = totals.Income.Text()
	f["expense"] = totals.Expense.Text()
	f["net"] = totals.Net().String()
	f[FieldUnrecognized] = totals.Unrecognized
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
