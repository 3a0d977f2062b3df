package expense

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=expense
type Repository interface {
	FindCategoryByName(ctx context.Context, name string) (*Category, error)
	FindCategoryByID(ctx context.Context, id string) (*Category, error)
	ListCategories(ctx context.Context) ([]Category, error)

	QueryExpenses(ctx context.Context, filter Filter) ([]*Expense, error)
	InsertExpense(ctx context.Context, e *Expense) error
	UpdateExpense(ctx context.Context, e *Expense) error
	DeleteExpense(ctx context.Context, id uuid.UUID) (*Expense, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	UserID       string
	Description  string
	Amount       decimal.Decimal
	Date         time.Time
	CategoryName string
}

type UpdateParams struct {
	Description  string
	Amount       decimal.Decimal
	Date         time.Time
	CategoryName string
}

// Create resolves the category by name, validates the fields and inserts the
// expense. The category id is fixed at creation time and never re-resolved.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Expense, error) {
	fields := validateFields(params.Description, params.Amount, params.Date, params.CategoryName)
	if params.UserID == "" {
		fields["user_id"] = "owning user is required"
	}

	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	category, err := s.repo.FindCategoryByName(ctx, params.CategoryName)
	if err != nil {
		return nil, fmt.Errorf("resolving category %q: %w", params.CategoryName, err)
	}

	e := &Expense{
		UserID:      params.UserID,
		Description: params.Description,
		Amount:      params.Amount,
		Date:        dayStart(params.Date),
		CategoryID:  category.ID,
	}

	if err := s.repo.InsertExpense(ctx, e); err != nil {
		return nil, fmt.Errorf("inserting expense: %w", err)
	}

	return e, nil
}

// Update replaces description, amount, date and category together. The
// category name is re-resolved before the store is touched.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Expense, error) {
	fields := validateFields(params.Description, params.Amount, params.Date, params.CategoryName)
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	category, err := s.repo.FindCategoryByName(ctx, params.CategoryName)
	if err != nil {
		return nil, fmt.Errorf("resolving category %q: %w", params.CategoryName, err)
	}

	e := &Expense{
		ID:          id,
		Description: params.Description,
		Amount:      params.Amount,
		Date:        dayStart(params.Date),
		CategoryID:  category.ID,
	}

	if err := s.repo.UpdateExpense(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

// Delete removes the expense and returns the deleted record. Deleting an
// expense never touches its category.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) (*Expense, error) {
	return s.repo.DeleteExpense(ctx, id)
}

// Categories returns all category names, ascending.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}

	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}

	sort.Strings(names)

	return names, nil
}

func validateFields(description string, amount decimal.Decimal, date time.Time, categoryName string) map[string]string {
	fields := make(map[string]string)

	if strings.TrimSpace(description) == "" {
		fields["description"] = "description is required"
	}

	if !amount.IsPositive() {
		fields["amount"] = "amount must be a positive number"
	}

	if date.IsZero() {
		fields["date"] = "date is required"
	}

	if categoryName == "" {
		fields["categoryName"] = "category name is required"
	}

	return fields
}

// dayStart normalizes a timestamp to the start of its UTC calendar day.
// Time-of-day carries no meaning on an expense.
func dayStart(t time.Time) time.Time {
	t = t.UTC()

	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
