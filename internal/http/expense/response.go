package expense

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finlogger/finlogger/internal/expense"
)

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type validationFailedResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details"`
}

type createExpenseResponse struct {
	ID      uuid.UUID `json:"id"`
	Message string    `json:"message"`
}

type expenseResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      string    `json:"user_id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date"`
	CategoryID  string    `json:"category_id"`
}

type deleteExpenseResponse struct {
	Message        string          `json:"message"`
	DeletedExpense expenseResponse `json:"deletedExpense"`
}

type expenseLineResponse struct {
	Date         time.Time `json:"date"`
	Amount       float64   `json:"amount"`
	Description  string    `json:"description"`
	CategoryName string    `json:"categoryName"`
}

type listResponse struct {
	TotalExpenses float64               `json:"totalExpenses"`
	Expenses      []expenseLineResponse `json:"expenses"`
}

type categoryShareResponse struct {
	CategoryName string `json:"categoryName"`
	Percentage   string `json:"percentage"`
}

type categoriesResponse struct {
	Categories []string `json:"categories"`
}

func toExpenseResponse(e *expense.Expense) expenseResponse {
	return expenseResponse{
		ID:          e.ID,
		UserID:      e.UserID,
		Description: e.Description,
		Amount:      e.Amount.InexactFloat64(),
		Date:        e.Date,
		CategoryID:  e.CategoryID,
	}
}

func toListResponse(report *expense.ListReport) listResponse {
	items := make([]expenseLineResponse, len(report.Items))
	for i, item := range report.Items {
		items[i] = expenseLineResponse{
			Date:         item.Date,
			Amount:       item.Amount.InexactFloat64(),
			Description:  item.Description,
			CategoryName: item.CategoryName,
		}
	}

	return listResponse{
		TotalExpenses: report.Total.InexactFloat64(),
		Expenses:      items,
	}
}

func toSummaryResponse(shares []expense.CategoryShare) []categoryShareResponse {
	resp := make([]categoryShareResponse, len(shares))
	for i, share := range shares {
		resp[i] = categoryShareResponse{
			CategoryName: share.CategoryName,
			Percentage:   formatPercent(share.Percentage),
		}
	}

	return resp
}

// formatPercent renders a numeric percentage with exactly two decimal digits
// and a trailing unit marker, e.g. "72.73%". StringFixed rounds half away
// from zero, which is half-up for the non-negative values produced here.
func formatPercent(percentage decimal.Decimal) string {
	return percentage.StringFixed(2) + "%"
}
