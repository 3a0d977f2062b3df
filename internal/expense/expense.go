package expense

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when an expense id does not resolve.
	ErrNotFound = errors.New("expense not found")
	// ErrCategoryNotFound is returned when a category name or id does not resolve.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrInvalidFilter is returned for a malformed month token or an
	// out-of-range month component.
	ErrInvalidFilter = errors.New("invalid filter")
)

// Expense is a single dated spending record tied to one user and one category.
type Expense struct {
	ID          uuid.UUID
	UserID      string
	Description string
	Amount      decimal.Decimal
	Date        time.Time // day granularity, UTC
	CategoryID  string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// Category is a named spending bucket referenced by expenses. Categories are
// administered outside this service; names are assumed unique.
type Category struct {
	ID   string
	Name string
}

// ValidationError carries per-field problems detected before any store write.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}

	sort.Strings(names)

	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}
