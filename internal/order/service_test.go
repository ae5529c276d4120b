package order_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/fleet/internal/client"
	"github.com/MrJamesThe3rd/fleet/internal/driver"
	"github.com/MrJamesThe3rd/fleet/internal/fleet"
	"github.com/MrJamesThe3rd/fleet/internal/order"
	"github.com/MrJamesThe3rd/fleet/internal/truck"
)

type mocks struct {
	repo    *order.MockRepository
	clients *order.MockClientLookup
	trucks  *order.MockTruckLookup
	drivers *order.MockDriverLookup
}

func newService(ctrl *gomock.Controller) (*order.Service, mocks) {
	m := mocks{
		repo:    order.NewMockRepository(ctrl),
		clients: order.NewMockClientLookup(ctrl),
		trucks:  order.NewMockTruckLookup(ctrl),
		drivers: order.NewMockDriverLookup(ctrl),
	}

	return order.NewService(m.repo, m.clients, m.trucks, m.drivers), m
}

func TestService_Create(t *testing.T) {
	type testCase struct {
		name       string
		params     order.CreateParams
		setupMock  func(m mocks)
		wantStatus order.Status
		wantField  string
	}

	tests := []testCase{
		{
			name:   "DefaultsToPending",
			params: order.CreateParams{ClientID: 1, Description: "Pallets to Valencia"},
			setupMock: func(m mocks) {
				m.repo.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, o *order.Order) error {
						o.ID = 10
						return nil
					})
				m.clients.EXPECT().
					GetMany(gomock.Any(), []int64{1}).
					Return(map[int64]*client.Client{1: {ID: 1, Name: "Sur"}}, nil)
			},
			wantStatus: order.StatusPending,
		},
		{
			name: "AssignedTruckAndDriver",
			params: order.CreateParams{
				ClientID: 1, TruckID: new(int64(2)), DriverID: new(int64(3)),
				Description: "Steel", Status: order.StatusInProgress,
			},
			setupMock: func(m mocks) {
				m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
				m.clients.EXPECT().GetMany(gomock.Any(), []int64{1}).
					Return(map[int64]*client.Client{1: {ID: 1}}, nil)
				m.trucks.EXPECT().GetMany(gomock.Any(), []int64{2}).
					Return(map[int64]*truck.Truck{2: {ID: 2}}, nil)
				m.drivers.EXPECT().GetMany(gomock.Any(), []int64{3}).
					Return(map[int64]*driver.Driver{3: {ID: 3}}, nil)
			},
			wantStatus: order.StatusInProgress,
		},
		{
			name:      "UnknownStatus",
			params:    order.CreateParams{ClientID: 1, Description: "x", Status: "lost"},
			wantField: "estado",
		},
		{
			name:      "MissingClient",
			params:    order.CreateParams{Description: "x"},
			wantField: "cliente_id",
		},
		{
			name:      "MissingDescription",
			params:    order.CreateParams{ClientID: 1},
			wantField: "descripcion",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, m := newService(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(m)
			}

			got, err := svc.Create(context.Background(), tt.params)
			if tt.wantField != "" {
				var vErr *fleet.ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Equal(t, tt.wantField, vErr.Field)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got.Status)
			require.NotNil(t, got.Client)

			if tt.params.TruckID != nil {
				require.NotNil(t, got.Truck)
				require.NotNil(t, got.Driver)
			}
		})
	}
}

func TestService_List_LookupError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newService(ctrl)
	m.repo.EXPECT().
		List(gomock.Any(), order.ListFilter{}).
		Return([]*order.Order{{ID: 1, ClientID: 4}}, nil)
	m.clients.EXPECT().GetMany(gomock.Any(), []int64{4}).Return(nil, errors.New("db error"))

	_, err := svc.List(context.Background(), order.ListFilter{})
	assert.Error(t, err)
}

func TestService_Update_PartialKeepsFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newService(ctrl)
	m.repo.EXPECT().
		Update(gomock.Any(), int64(7), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, apply func(*order.Order) error) (*order.Order, error) {
			o := &order.Order{ID: 7, ClientID: 1, Description: "Fruit", Status: order.StatusPending, TruckID: new(int64(2))}
			if err := apply(o); err != nil {
				return nil, err
			}

			return o, nil
		})
	m.clients.EXPECT().GetMany(gomock.Any(), gomock.Any()).Return(map[int64]*client.Client{}, nil)
	m.trucks.EXPECT().GetMany(gomock.Any(), []int64{2}).Return(map[int64]*truck.Truck{}, nil)

	got, err := svc.Update(context.Background(), 7, order.Patch{Status: new(order.StatusCompleted)})
	require.NoError(t, err)

	assert.Equal(t, order.StatusCompleted, got.Status)
	assert.Equal(t, "Fruit", got.Description)
	assert.Equal(t, int64(2), *got.TruckID)
}

func TestService_CountByStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newService(ctrl)
	want := []order.StatusCount{{Status: order.StatusPending, Total: 3}, {Status: order.StatusCompleted, Total: 1}}
	m.repo.EXPECT().CountByStatus(gomock.Any()).Return(want, nil)

	got, err := svc.CountByStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestService_Update_ClearsOptionalFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	delivery := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	svc, m := newService(ctrl)
	m.repo.EXPECT().
		Update(gomock.Any(), int64(7), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, apply func(*order.Order) error) (*order.Order, error) {
			o := &order.Order{
				ID: 7, ClientID: 1, Description: "Fruit", Status: order.StatusPending,
				TruckID: new(int64(2)), DriverID: new(int64(3)), DeliveryDate: &delivery,
			}
			if err := apply(o); err != nil {
				return nil, err
			}

			return o, nil
		})
	m.clients.EXPECT().GetMany(gomock.Any(), gomock.Any()).Return(map[int64]*client.Client{}, nil)

	got, err := svc.Update(context.Background(), 7, order.Patch{
		ClearTruck:        true,
		ClearDriver:       true,
		ClearDeliveryDate: true,
	})
	require.NoError(t, err)

	assert.Nil(t, got.TruckID)
	assert.Nil(t, got.DriverID)
	assert.Nil(t, got.DeliveryDate)
	assert.Equal(t, "Fruit", got.Description)
}
