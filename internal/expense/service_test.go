package expense_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/fleet/internal/expense"
	"github.com/MrJamesThe3rd/fleet/internal/fleet"
	"github.com/MrJamesThe3rd/fleet/internal/truck"
)

func newService(ctrl *gomock.Controller) (*expense.Service, *expense.MockRepository, *expense.MockTruckLookup) {
	repo := expense.NewMockRepository(ctrl)
	trucks := expense.NewMockTruckLookup(ctrl)

	return expense.NewService(repo, trucks), repo, trucks
}

var day = time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    expense.CreateParams
		setupMock func(repo *expense.MockRepository, trucks *expense.MockTruckLookup)
		wantField string
	}

	tests := []testCase{
		{
			name: "Valid",
			params: expense.CreateParams{
				TruckID: 3, Category: expense.CategoryFuel, Amount: decimal.RequireFromString("120.50"), Date: day,
			},
			setupMock: func(repo *expense.MockRepository, trucks *expense.MockTruckLookup) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
				trucks.EXPECT().GetMany(gomock.Any(), []int64{3}).
					Return(map[int64]*truck.Truck{3: {ID: 3, Plate: "1234ABC"}}, nil)
			},
		},
		{
			name:      "UnknownCategory",
			params:    expense.CreateParams{TruckID: 3, Category: "tolls", Amount: decimal.NewFromInt(1), Date: day},
			wantField: "tipo_gasto",
		},
		{
			name: "TooManyDecimals",
			params: expense.CreateParams{
				TruckID: 3, Category: expense.CategoryOther, Amount: decimal.RequireFromString("1.005"), Date: day,
			},
			wantField: "monto",
		},
		{
			name:      "MissingTruck",
			params:    expense.CreateParams{Category: expense.CategoryOther, Amount: decimal.NewFromInt(1), Date: day},
			wantField: "camion_id",
		},
		{
			name:      "MissingDate",
			params:    expense.CreateParams{TruckID: 3, Category: expense.CategoryOther, Amount: decimal.NewFromInt(1)},
			wantField: "fecha",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, repo, trucks := newService(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo, trucks)
			}

			got, err := svc.Create(context.Background(), tt.params)
			if tt.wantField != "" {
				var vErr *fleet.ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Equal(t, tt.wantField, vErr.Field)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got.Truck)
			assert.Equal(t, "1234ABC", got.Truck.Plate)
		})
	}
}

func TestService_SumForTruck(t *testing.T) {
	month := fleet.Month{Year: 2024, Month: time.May}

	t.Run("MissingTruck", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, _, _ := newService(ctrl)

		_, err := svc.SumForTruck(context.Background(), nil, &month)
		assert.ErrorIs(t, err, fleet.ErrInvalidParameter)
	})

	t.Run("MissingMonth", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, _, _ := newService(ctrl)

		_, err := svc.SumForTruck(context.Background(), new(int64(3)), nil)
		assert.ErrorIs(t, err, fleet.ErrInvalidParameter)
	})

	t.Run("Total", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, repo, _ := newService(ctrl)
		repo.EXPECT().
			Sum(gomock.Any(), expense.ListFilter{TruckID: new(int64(3)), Month: &month}).
			Return(decimal.RequireFromString("170.50"), nil)

		got, err := svc.SumForTruck(context.Background(), new(int64(3)), &month)
		require.NoError(t, err)
		assert.Equal(t, "170.50", got.StringFixed(2))
	})
}

func TestService_SumTotal_AllMonths(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, _ := newService(ctrl)
	repo.EXPECT().Sum(gomock.Any(), expense.ListFilter{}).Return(decimal.Zero, nil)

	got, err := svc.SumTotal(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestService_Update_KeepsComments(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, trucks := newService(ctrl)
	repo.EXPECT().
		Update(gomock.Any(), int64(5), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, apply func(*expense.Expense) error) (*expense.Expense, error) {
			e := &expense.Expense{
				ID: 5, TruckID: 3, Category: expense.CategoryRepair,
				Amount: decimal.NewFromInt(80), Date: day, Comments: new("brakes"),
			}
			if err := apply(e); err != nil {
				return nil, err
			}

			return e, nil
		})
	trucks.EXPECT().GetMany(gomock.Any(), []int64{3}).Return(map[int64]*truck.Truck{}, nil)

	got, err := svc.Update(context.Background(), 5, expense.Patch{Amount: new(decimal.NewFromInt(95))})
	require.NoError(t, err)

	assert.Equal(t, "95.00", got.Amount.StringFixed(2))
	require.NotNil(t, got.Comments)
	assert.Equal(t, "brakes", *got.Comments)
}

func TestService_Replace_ClearsComments(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, trucks := newService(ctrl)
	repo.EXPECT().
		Update(gomock.Any(), int64(5), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, apply func(*expense.Expense) error) (*expense.Expense, error) {
			e := &expense.Expense{ID: 5, TruckID: 3, Category: expense.CategoryRepair, Comments: new("brakes")}
			if err := apply(e); err != nil {
				return nil, err
			}

			return e, nil
		})
	trucks.EXPECT().GetMany(gomock.Any(), []int64{4}).Return(map[int64]*truck.Truck{}, nil)

	got, err := svc.Replace(context.Background(), 5, expense.CreateParams{
		TruckID: 4, Category: expense.CategoryInsurance, Amount: decimal.NewFromInt(300), Date: day,
	})
	require.NoError(t, err)

	assert.Nil(t, got.Comments)
	assert.Equal(t, expense.CategoryInsurance, got.Category)
}

func TestService_ImportBatch(t *testing.T) {
	rows := []expense.ImportRow{
		{Line: 2, Plate: "1234ABC", Category: expense.CategoryFuel, Amount: decimal.RequireFromString("60.25"), Date: day},
		{Line: 3, Plate: "5678DEF", Category: expense.CategoryFilters, Amount: decimal.RequireFromString("35.00"), Date: day},
		{Line: 4, Plate: "1234ABC", Category: expense.CategoryFuel, Amount: decimal.RequireFromString("55.10"), Date: day},
	}

	t.Run("StoresAll", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, repo, trucks := newService(ctrl)
		trucks.EXPECT().
			ResolvePlates(gomock.Any(), []string{"1234ABC", "5678DEF"}).
			Return(map[string]int64{"1234ABC": 1, "5678DEF": 2}, nil)
		repo.EXPECT().
			CreateBatch(gomock.Any(), gomock.Len(3)).
			DoAndReturn(func(_ context.Context, expenses []*expense.Expense) error {
				for i, e := range expenses {
					e.ID = int64(i + 1)
				}

				return nil
			})
		trucks.EXPECT().GetMany(gomock.Any(), []int64{1, 2, 1}).
			Return(map[int64]*truck.Truck{1: {ID: 1}, 2: {ID: 2}}, nil)

		got, err := svc.ImportBatch(context.Background(), rows)
		require.NoError(t, err)
		require.Len(t, got, 3)

		assert.Equal(t, int64(2), got[1].TruckID)
		assert.Equal(t, int64(3), got[2].ID)
		assert.NotNil(t, got[2].Truck)
	})

	t.Run("UnknownPlate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, _, trucks := newService(ctrl)
		trucks.EXPECT().
			ResolvePlates(gomock.Any(), gomock.Any()).
			Return(map[string]int64{"1234ABC": 1}, nil)

		_, err := svc.ImportBatch(context.Background(), rows)

		var vErr *fleet.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "placa", vErr.Field)
		assert.Contains(t, err.Error(), "line 3")
		assert.Contains(t, err.Error(), "5678DEF")
	})

	t.Run("MixedCasePlate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, repo, trucks := newService(ctrl)
		trucks.EXPECT().
			ResolvePlates(gomock.Any(), []string{"ABC-123"}).
			Return(map[string]int64{"ABC-123": 9}, nil)
		repo.EXPECT().CreateBatch(gomock.Any(), gomock.Len(2)).Return(nil)
		trucks.EXPECT().GetMany(gomock.Any(), []int64{9, 9}).
			Return(map[int64]*truck.Truck{9: {ID: 9, Plate: "abc-123"}}, nil)

		mixed := []expense.ImportRow{
			{Line: 2, Plate: "abc-123", Category: expense.CategoryFuel, Amount: decimal.RequireFromString("10.00"), Date: day},
			{Line: 3, Plate: "ABC-123", Category: expense.CategoryRepair, Amount: decimal.RequireFromString("20.00"), Date: day},
		}

		got, err := svc.ImportBatch(context.Background(), mixed)
		require.NoError(t, err)
		require.Len(t, got, 2)

		assert.Equal(t, int64(9), got[0].TruckID)
		assert.Equal(t, int64(9), got[1].TruckID)
	})

	t.Run("InvalidRowRejectsBatch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, _, trucks := newService(ctrl)
		trucks.EXPECT().
			ResolvePlates(gomock.Any(), gomock.Any()).
			Return(map[string]int64{"1234ABC": 1}, nil)

		bad := []expense.ImportRow{{Line: 7, Plate: "1234ABC", Category: "tolls", Amount: decimal.NewFromInt(1), Date: day}}

		_, err := svc.ImportBatch(context.Background(), bad)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 7")
	})

	t.Run("StoreFailure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, repo, trucks := newService(ctrl)
		trucks.EXPECT().ResolvePlates(gomock.Any(), gomock.Any()).
			Return(map[string]int64{"1234ABC": 1, "5678DEF": 2}, nil)
		repo.EXPECT().CreateBatch(gomock.Any(), gomock.Any()).Return(errors.New("tx aborted"))

		_, err := svc.ImportBatch(context.Background(), rows)
		assert.Error(t, err)
	})
}
