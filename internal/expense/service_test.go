package expense_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/finlogger/finlogger/internal/expense"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name       string
		params     expense.CreateParams
		setupMock  func(m *expense.MockRepository)
		wantErr    error
		wantFields []string
	}

	validParams := expense.CreateParams{
		UserID:       "USER_2",
		Description:  "Fees",
		Amount:       decimal.NewFromInt(70),
		Date:         time.Date(2020, 7, 8, 0, 0, 0, 0, time.UTC),
		CategoryName: "Education",
	}

	tests := []testCase{
		{
			name:   "Success",
			params: validParams,
			setupMock: func(m *expense.MockRepository) {
				m.EXPECT().
					FindCategoryByName(gomock.Any(), "Education").
					Return(&expense.Category{ID: "EDUCATION", Name: "Education"}, nil)
				m.EXPECT().
					InsertExpense(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, e *expense.Expense) error {
						e.ID = uuid.New()
						e.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name: "CategoryNotFound",
			params: expense.CreateParams{
				UserID:       "USER_2",
				Description:  "Fees",
				Amount:       decimal.NewFromInt(70),
				Date:         time.Date(2020, 7, 8, 0, 0, 0, 0, time.UTC),
				CategoryName: "Nonexistent",
			},
			setupMock: func(m *expense.MockRepository) {
				m.EXPECT().
					FindCategoryByName(gomock.Any(), "Nonexistent").
					Return(nil, expense.ErrCategoryNotFound)
			},
			wantErr: expense.ErrCategoryNotFound,
		},
		{
			name: "MissingDescription",
			params: expense.CreateParams{
				UserID:       "USER_2",
				Amount:       decimal.NewFromInt(100),
				Date:         time.Date(2020, 7, 1, 0, 0, 0, 0, time.UTC),
				CategoryName: "Housing",
			},
			wantFields: []string{"description"},
		},
		{
			name: "NonPositiveAmount",
			params: expense.CreateParams{
				UserID:       "USER_2",
				Description:  "Rent",
				Amount:       decimal.NewFromInt(-100),
				Date:         time.Date(2020, 7, 1, 0, 0, 0, 0, time.UTC),
				CategoryName: "Housing",
			},
			wantFields: []string{"amount"},
		},
		{
			name:       "MissingEverything",
			params:     expense.CreateParams{},
			wantFields: []string{"user_id", "description", "amount", "date", "categoryName"},
		},
		{
			name:   "RepoError",
			params: validParams,
			setupMock: func(m *expense.MockRepository) {
				m.EXPECT().
					FindCategoryByName(gomock.Any(), "Education").
					Return(&expense.Category{ID: "EDUCATION", Name: "Education"}, nil)
				m.EXPECT().
					InsertExpense(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := expense.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := expense.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params)

			if len(tt.wantFields) > 0 {
				var validationErr *expense.ValidationError
				require.ErrorAs(t, err, &validationErr)

				for _, field := range tt.wantFields {
					assert.Contains(t, validationErr.Fields, field)
				}

				assert.Len(t, validationErr.Fields, len(tt.wantFields))

				return
			}

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)

			assert.NotEmpty(t, got.ID)
			assert.Equal(t, "EDUCATION", got.CategoryID)
		})
	}
}

func TestService_Create_NormalizesDateToUTCDay(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := expense.NewMockRepository(ctrl)
	svc := expense.NewService(repo)

	lisbon := time.FixedZone("WEST", 1*60*60)

	repo.EXPECT().
		FindCategoryByName(gomock.Any(), "Food").
		Return(&expense.Category{ID: "FOOD", Name: "Food"}, nil)
	repo.EXPECT().
		InsertExpense(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *expense.Expense) error {
			assert.True(t, e.Date.Equal(time.Date(2020, 7, 8, 0, 0, 0, 0, time.UTC)))
			return nil
		})

	_, err := svc.Create(context.Background(), expense.CreateParams{
		UserID:       "USER_2",
		Description:  "Lunch",
		Amount:       decimal.NewFromInt(10),
		Date:         time.Date(2020, 7, 8, 13, 45, 0, 0, lisbon),
		CategoryName: "Food",
	})
	require.NoError(t, err)
}

func TestService_Update(t *testing.T) {
	id := uuid.New()

	params := expense.UpdateParams{
		Description:  "Train",
		Amount:       decimal.NewFromInt(15),
		Date:         time.Date(2020, 7, 9, 0, 0, 0, 0, time.UTC),
		CategoryName: "Transport",
	}

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := expense.NewMockRepository(ctrl)
		svc := expense.NewService(repo)

		repo.EXPECT().
			FindCategoryByName(gomock.Any(), "Transport").
			Return(&expense.Category{ID: "TRANSPORT", Name: "Transport"}, nil)
		repo.EXPECT().
			UpdateExpense(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, e *expense.Expense) error {
				assert.Equal(t, id, e.ID)
				assert.Equal(t, "TRANSPORT", e.CategoryID)
				return nil
			})

		got, err := svc.Update(context.Background(), id, params)
		require.NoError(t, err)

		assert.Equal(t, "Train", got.Description)
	})

	t.Run("NotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := expense.NewMockRepository(ctrl)
		svc := expense.NewService(repo)

		repo.EXPECT().
			FindCategoryByName(gomock.Any(), "Transport").
			Return(&expense.Category{ID: "TRANSPORT", Name: "Transport"}, nil)
		repo.EXPECT().
			UpdateExpense(gomock.Any(), gomock.Any()).
			Return(expense.ErrNotFound)

		_, err := svc.Update(context.Background(), id, params)
		assert.ErrorIs(t, err, expense.ErrNotFound)
	})

	t.Run("CategoryNotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := expense.NewMockRepository(ctrl)
		svc := expense.NewService(repo)

		repo.EXPECT().
			FindCategoryByName(gomock.Any(), "Transport").
			Return(nil, expense.ErrCategoryNotFound)

		_, err := svc.Update(context.Background(), id, params)
		assert.ErrorIs(t, err, expense.ErrCategoryNotFound)
	})
}

func TestService_Delete(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := expense.NewMockRepository(ctrl)
		svc := expense.NewService(repo)

		id := uuid.New()
		deleted := &expense.Expense{ID: id, Description: "Movie"}

		repo.EXPECT().DeleteExpense(gomock.Any(), id).Return(deleted, nil)

		got, err := svc.Delete(context.Background(), id)
		require.NoError(t, err)

		assert.Equal(t, deleted, got)
	})

	t.Run("NotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := expense.NewMockRepository(ctrl)
		svc := expense.NewService(repo)

		id := uuid.New()

		repo.EXPECT().DeleteExpense(gomock.Any(), id).Return(nil, expense.ErrNotFound)

		_, err := svc.Delete(context.Background(), id)
		assert.ErrorIs(t, err, expense.ErrNotFound)
	})
}

func TestService_Categories(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := expense.NewMockRepository(ctrl)
	svc := expense.NewService(repo)

	repo.EXPECT().ListCategories(gomock.Any()).Return([]expense.Category{
		{ID: "TRANSPORT", Name: "Transport"},
		{ID: "FOOD", Name: "Food"},
	}, nil)

	names, err := svc.Categories(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Food", "Transport"}, names)
}
