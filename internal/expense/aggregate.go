package expense

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseLine is one row of a list report, with the category joined by name.
type ExpenseLine struct {
	Date         time.Time
	Amount       decimal.Decimal
	Description  string
	CategoryName string
}

// ListReport pairs the matching expenses with their exact total.
type ListReport struct {
	Total decimal.Decimal
	Items []ExpenseLine
}

// CategoryShare is one category's slice of the filtered total. Percentage is
// the numeric value in [0,100]; rendering it is a presentation concern.
type CategoryShare struct {
	CategoryName string
	Percentage   decimal.Decimal
}

// ListWithTotal returns the expenses matching the filter, joined to their
// category names, ordered by date descending (creation order for equal
// dates), together with the exact sum of the included amounts.
func (s *Service) ListWithTotal(ctx context.Context, filter Filter) (*ListReport, error) {
	expenses, directory, err := s.matchingExpenses(ctx, filter, "list")
	if err != nil {
		return nil, err
	}

	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].Date.After(expenses[j].Date)
	})

	total := decimal.Zero
	items := make([]ExpenseLine, 0, len(expenses))

	for _, e := range expenses {
		total = total.Add(e.Amount)

		items = append(items, ExpenseLine{
			Date:         e.Date,
			Amount:       e.Amount,
			Description:  e.Description,
			CategoryName: directory[e.CategoryID].Name,
		})
	}

	return &ListReport{Total: total, Items: items}, nil
}

// SummaryByCategory groups the matching expenses by category and returns each
// category's percentage of the filtered total, ordered by category name
// ascending (case-insensitive). If nothing matches, or every amount is zero,
// the result is empty: there is no total to take percentages of.
//
// Displayed percentages are not adjusted to sum to exactly 100.00; each entry
// rounds independently.
func (s *Service) SummaryByCategory(ctx context.Context, filter Filter) ([]CategoryShare, error) {
	expenses, directory, err := s.matchingExpenses(ctx, filter, "summary")
	if err != nil {
		return nil, err
	}

	totals := make(map[string]decimal.Decimal)
	grand := decimal.Zero

	for _, e := range expenses {
		totals[e.CategoryID] = totals[e.CategoryID].Add(e.Amount)
		grand = grand.Add(e.Amount)
	}

	if grand.IsZero() {
		return []CategoryShare{}, nil
	}

	hundred := decimal.NewFromInt(100)

	shares := make([]CategoryShare, 0, len(totals))
	for id, amount := range totals {
		shares = append(shares, CategoryShare{
			CategoryName: directory[id].Name,
			Percentage:   amount.Div(grand).Mul(hundred),
		})
	}

	sort.Slice(shares, func(i, j int) bool {
		a := strings.ToLower(shares[i].CategoryName)

		b := strings.ToLower(shares[j].CategoryName)
		if a != b {
			return a < b
		}

		return shares[i].CategoryName < shares[j].CategoryName
	})

	return shares, nil
}

// matchingExpenses queries the store and joins each expense to the category
// directory. Expenses whose category no longer resolves are excluded from
// aggregation: each one is logged as a data-integrity warning rather than
// failing the request.
func (s *Service) matchingExpenses(ctx context.Context, filter Filter, operation string) ([]*Expense, map[string]Category, error) {
	expenses, err := s.repo.QueryExpenses(ctx, filter)
	if err != nil {
		return nil, nil, fmt.Errorf("querying expenses (%s, %s): %w", operation, filter, err)
	}

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("listing categories (%s, %s): %w", operation, filter, err)
	}

	directory := make(map[string]Category, len(categories))
	for _, c := range categories {
		directory[c.ID] = c
	}

	matched := make([]*Expense, 0, len(expenses))

	for _, e := range expenses {
		_, ok := directory[e.CategoryID]
		if !ok {
			slog.Warn("excluding expense with dangling category reference",
				"operation", operation,
				"expense_id", e.ID,
				"category_id", e.CategoryID,
				"filter", filter.String(),
			)

			continue
		}

		matched = append(matched, e)
	}

	return matched, directory, nil
}
