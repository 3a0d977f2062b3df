package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/finlogger/finlogger/internal/expense"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, user_id, description, amount, date, category_id, created_at, updated_at
func scanExpense(s scanner) (*expense.Expense, error) {
	var e expense.Expense

	if err := s.Scan(
		&e.ID, &e.UserID, &e.Description, &e.Amount, &e.Date,
		&e.CategoryID, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &e, nil
}

const selectExpenseColumns = `
	e.id, e.user_id, e.description, e.amount, e.date, e.category_id, e.created_at, e.updated_at
`

func (s *Store) FindCategoryByName(ctx context.Context, name string) (*expense.Category, error) {
	query := `SELECT id, name FROM expense_categories WHERE name = $1`

	var c expense.Category
	if err := s.db.QueryRowContext(ctx, query, name).Scan(&c.ID, &c.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, expense.ErrCategoryNotFound
		}

		return nil, fmt.Errorf("finding category by name: %w", err)
	}

	return &c, nil
}

func (s *Store) FindCategoryByID(ctx context.Context, id string) (*expense.Category, error) {
	query := `SELECT id, name FROM expense_categories WHERE id = $1`

	var c expense.Category
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, expense.ErrCategoryNotFound
		}

		return nil, fmt.Errorf("finding category by id: %w", err)
	}

	return &c, nil
}

func (s *Store) ListCategories(ctx context.Context) ([]expense.Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM expense_categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []expense.Category

	for rows.Next() {
		var c expense.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}

		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category rows: %w", err)
	}

	return categories, nil
}

// QueryExpenses returns matching expenses in creation order; callers impose
// their own presentation ordering.
func (s *Store) QueryExpenses(ctx context.Context, filter expense.Filter) ([]*expense.Expense, error) {
	query := `SELECT ` + selectExpenseColumns + `
		FROM expenses e
		WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.UserID != nil {
		query += fmt.Sprintf(" AND e.user_id = $%d", argIdx)

		args = append(args, *filter.UserID)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND e.date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND e.date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	query += " ORDER BY e.created_at ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*expense.Expense

	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning expense: %w", err)
		}

		expenses = append(expenses, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating expense rows: %w", err)
	}

	return expenses, nil
}

func (s *Store) InsertExpense(ctx context.Context, e *expense.Expense) error {
	query := `
		INSERT INTO expenses (user_id, description, amount, date, category_id, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		e.UserID,
		e.Description,
		e.Amount,
		e.Date,
		e.CategoryID,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting expense: %w", err)
	}

	return nil
}

func (s *Store) UpdateExpense(ctx context.Context, e *expense.Expense) error {
	query := `
		UPDATE expenses
		SET description = $1, amount = $2, date = $3, category_id = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING user_id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		e.Description,
		e.Amount,
		e.Date,
		e.CategoryID,
		e.ID,
	).Scan(&e.UserID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return expense.ErrNotFound
		}

		return fmt.Errorf("updating expense: %w", err)
	}

	return nil
}

func (s *Store) DeleteExpense(ctx context.Context, id uuid.UUID) (*expense.Expense, error) {
	query := `DELETE FROM expenses e WHERE e.id = $1
		RETURNING ` + selectExpenseColumns

	e, err := scanExpense(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, expense.ErrNotFound
		}

		return nil, fmt.Errorf("deleting expense: %w", err)
	}

	return e, nil
}
