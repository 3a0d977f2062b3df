package expense

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finlogger/finlogger/internal/expense"
)

func TestFormatPercent(t *testing.T) {
	type testCase struct {
		name  string
		value string
		want  string
	}

	tests := []testCase{
		{name: "RoundsDown", value: "72.727272727272727", want: "72.73%"},
		{name: "RoundsUp", value: "27.272727272727272", want: "27.27%"},
		{name: "HalfRoundsUp", value: "33.335", want: "33.34%"},
		{name: "Whole", value: "50", want: "50.00%"},
		{name: "Full", value: "100", want: "100.00%"},
		{name: "PadsZeros", value: "0.1", want: "0.10%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatPercent(decimal.RequireFromString(tt.value))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToListResponse(t *testing.T) {
	date := time.Date(2020, 7, 8, 0, 0, 0, 0, time.UTC)

	report := &expense.ListReport{
		Total: decimal.RequireFromString("55.50"),
		Items: []expense.ExpenseLine{
			{Date: date, Amount: decimal.RequireFromString("30"), Description: "Lunch", CategoryName: "Food"},
			{Date: date, Amount: decimal.RequireFromString("25.50"), Description: "Bus", CategoryName: "Transport"},
		},
	}

	resp := toListResponse(report)

	assert.InDelta(t, 55.50, resp.TotalExpenses, 0.001)
	require.Len(t, resp.Expenses, 2)
	assert.Equal(t, "Food", resp.Expenses[0].CategoryName)
	assert.InDelta(t, 25.50, resp.Expenses[1].Amount, 0.001)
}

func TestToListResponse_EmptyMarshalsAsEmptyArray(t *testing.T) {
	resp := toListResponse(&expense.ListReport{Total: decimal.Zero, Items: []expense.ExpenseLine{}})

	body, err := json.Marshal(resp)
	require.NoError(t, err)

	assert.JSONEq(t, `{"totalExpenses":0,"expenses":[]}`, string(body))
}

func TestToSummaryResponse(t *testing.T) {
	shares := []expense.CategoryShare{
		{CategoryName: "Food", Percentage: decimal.RequireFromString("72.727272727272727")},
		{CategoryName: "Transport", Percentage: decimal.RequireFromString("27.272727272727272")},
	}

	resp := toSummaryResponse(shares)

	require.Len(t, resp, 2)
	assert.Equal(t, categoryShareResponse{CategoryName: "Food", Percentage: "72.73%"}, resp[0])
	assert.Equal(t, categoryShareResponse{CategoryName: "Transport", Percentage: "27.27%"}, resp[1])

	body, err := json.Marshal(toSummaryResponse(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(body))
}
