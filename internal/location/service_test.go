package location_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/fleet/internal/fleet"
	"github.com/MrJamesThe3rd/fleet/internal/location"
	"github.com/MrJamesThe3rd/fleet/internal/truck"
)

func TestService_Latest(t *testing.T) {
	t.Run("MissingTruck", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := location.NewService(location.NewMockRepository(ctrl), location.NewMockTruckLookup(ctrl))

		_, err := svc.Latest(context.Background(), nil)
		assert.ErrorIs(t, err, fleet.ErrInvalidParameter)
	})

	t.Run("NoneRecorded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := location.NewMockRepository(ctrl)
		svc := location.NewService(repo, location.NewMockTruckLookup(ctrl))

		repo.EXPECT().Latest(gomock.Any(), int64(2)).Return(nil, fleet.ErrNotFound)

		_, err := svc.Latest(context.Background(), new(int64(2)))
		assert.ErrorIs(t, err, fleet.ErrNotFound)
	})

	t.Run("Found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := location.NewMockRepository(ctrl)
		trucks := location.NewMockTruckLookup(ctrl)
		svc := location.NewService(repo, trucks)

		recorded := time.Date(2025, time.March, 3, 10, 30, 0, 0, time.UTC)
		repo.EXPECT().Latest(gomock.Any(), int64(2)).
			Return(&location.Location{ID: 8, TruckID: 2, Latitude: 40.4168, Longitude: -3.7038, RecordedAt: recorded}, nil)
		trucks.EXPECT().GetMany(gomock.Any(), []int64{2}).
			Return(map[int64]*truck.Truck{2: {ID: 2, Plate: "9999ZZZ"}}, nil)

		got, err := svc.Latest(context.Background(), new(int64(2)))
		require.NoError(t, err)

		assert.Equal(t, int64(8), got.ID)
		assert.Equal(t, recorded, got.RecordedAt)
		require.NotNil(t, got.Truck)
		assert.Equal(t, "9999ZZZ", got.Truck.Plate)
	})
}

func TestService_Create_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		params    location.CreateParams
		wantField string
	}{
		{name: "MissingTruck", params: location.CreateParams{Latitude: 1, Longitude: 1}, wantField: "camion_id"},
		{name: "LatitudeRange", params: location.CreateParams{TruckID: 1, Latitude: 91}, wantField: "latitud"},
		{name: "LongitudeRange", params: location.CreateParams{TruckID: 1, Longitude: -180.5}, wantField: "longitud"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := location.NewService(location.NewMockRepository(ctrl), location.NewMockTruckLookup(ctrl))

			_, err := svc.Create(context.Background(), tt.params)

			var vErr *fleet.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantField, vErr.Field)
		})
	}
}

func TestService_Update_KeepsRecordedAt(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := location.NewMockRepository(ctrl)
	trucks := location.NewMockTruckLookup(ctrl)
	svc := location.NewService(repo, trucks)

	recorded := time.Date(2025, time.March, 3, 10, 30, 0, 0, time.UTC)
	repo.EXPECT().
		Update(gomock.Any(), int64(8), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, apply func(*location.Location) error) (*location.Location, error) {
			l := &location.Location{ID: 8, TruckID: 2, Latitude: 1, Longitude: 2, RecordedAt: recorded}
			if err := apply(l); err != nil {
				return nil, err
			}

			return l, nil
		})
	trucks.EXPECT().GetMany(gomock.Any(), []int64{2}).Return(map[int64]*truck.Truck{}, nil)

	got, err := svc.Update(context.Background(), 8, location.Patch{Latitude: new(41.3874)})
	require.NoError(t, err)

	assert.InDelta(t, 41.3874, got.Latitude, 1e-9)
	assert.InDelta(t, 2.0, got.Longitude, 1e-9)
	assert.Equal(t, recorded, got.RecordedAt)
}
