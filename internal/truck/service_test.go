package truck_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/fleet/internal/driver"
	"github.com/MrJamesThe3rd/fleet/internal/truck"
)

func TestService_Create(t *testing.T) {
	type args struct {
		params truck.CreateParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(repo *truck.MockRepository, drivers *truck.MockDriverLookup)
		wantErr   bool
		check     func(t *testing.T, got *truck.Truck)
	}

	tests := []testCase{
		{
			name: "WithDriver",
			args: args{params: truck.CreateParams{
				Brand: "Volvo", Model: "FH16", Plate: "1234-ABC", Capacity: 24.5, Year: 2021, DriverID: new(int64(7)),
			}},
			setupMock: func(repo *truck.MockRepository, drivers *truck.MockDriverLookup) {
				repo.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tr *truck.Truck) error {
						tr.ID = 11
						return nil
					})
				drivers.EXPECT().
					GetMany(gomock.Any(), []int64{7}).
					Return(map[int64]*driver.Driver{7: {ID: 7, FirstName: "Ana"}}, nil)
			},
			check: func(t *testing.T, got *truck.Truck) {
				assert.Equal(t, int64(11), got.ID)
				require.NotNil(t, got.Driver)
				assert.Equal(t, "Ana", got.Driver.FirstName)
			},
		},
		{
			name: "WithoutDriverSkipsLookup",
			args: args{params: truck.CreateParams{Brand: "MAN", Model: "TGX", Plate: "9999-ZZZ", Year: 2019}},
			setupMock: func(repo *truck.MockRepository, _ *truck.MockDriverLookup) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, got *truck.Truck) {
				assert.Nil(t, got.Driver)
			},
		},
		{
			name:    "MissingPlate",
			args:    args{params: truck.CreateParams{Brand: "MAN", Model: "TGX", Year: 2019}},
			wantErr: true,
		},
		{
			name: "RepoError",
			args: args{params: truck.CreateParams{Brand: "MAN", Model: "TGX", Plate: "1-A", Year: 2019}},
			setupMock: func(repo *truck.MockRepository, _ *truck.MockDriverLookup) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := truck.NewMockRepository(ctrl)
			drivers := truck.NewMockDriverLookup(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(repo, drivers)
			}

			got, err := truck.NewService(repo, drivers).Create(context.Background(), tt.args.params)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestService_List_LoadsDriversOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := truck.NewMockRepository(ctrl)
	drivers := truck.NewMockDriverLookup(ctrl)

	repo.EXPECT().List(gomock.Any()).Return([]*truck.Truck{
		{ID: 1, DriverID: new(int64(5))},
		{ID: 2},
		{ID: 3, DriverID: new(int64(6))},
	}, nil)
	drivers.EXPECT().
		GetMany(gomock.Any(), []int64{5, 6}).
		Return(map[int64]*driver.Driver{5: {ID: 5}, 6: {ID: 6}}, nil).
		Times(1)

	got, err := truck.NewService(repo, drivers).List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, int64(5), got[0].Driver.ID)
	assert.Nil(t, got[1].Driver)
	assert.Equal(t, int64(6), got[2].Driver.ID)
}

func TestService_Update_ReassignsDriver(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := truck.NewMockRepository(ctrl)
	drivers := truck.NewMockDriverLookup(ctrl)

	repo.EXPECT().
		Update(gomock.Any(), int64(1), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, apply func(*truck.Truck) error) (*truck.Truck, error) {
			tr := &truck.Truck{ID: 1, Brand: "Volvo", Model: "FH", Plate: "1-A", Year: 2020, DriverID: new(int64(5))}
			if err := apply(tr); err != nil {
				return nil, err
			}

			return tr, nil
		})
	drivers.EXPECT().
		GetMany(gomock.Any(), []int64{8}).
		Return(map[int64]*driver.Driver{8: {ID: 8}}, nil)

	got, err := truck.NewService(repo, drivers).Update(context.Background(), 1, truck.Patch{DriverID: new(int64(8))})
	require.NoError(t, err)

	assert.Equal(t, int64(8), *got.DriverID)
	assert.Equal(t, int64(8), got.Driver.ID)
	assert.Equal(t, "Volvo", got.Brand)
}

func TestService_ResolvePlates(t *testing.T) {
	type testCase struct {
		name      string
		plates    []string
		setupMock func(repo *truck.MockRepository)
		want      map[string]int64
		wantErr   bool
	}

	tests := []testCase{
		{
			name:   "AllKnown",
			plates: []string{"1-A", "2-B"},
			setupMock: func(repo *truck.MockRepository) {
				repo.EXPECT().
					GetByPlates(gomock.Any(), []string{"1-A", "2-B"}).
					Return([]*truck.Truck{{ID: 1, Plate: "1-A"}, {ID: 2, Plate: "2-B"}}, nil)
			},
			want: map[string]int64{"1-A": 1, "2-B": 2},
		},
		{
			name:   "UnknownPlateLeftOut",
			plates: []string{"1-A", "X-X"},
			setupMock: func(repo *truck.MockRepository) {
				repo.EXPECT().
					GetByPlates(gomock.Any(), gomock.Any()).
					Return([]*truck.Truck{{ID: 1, Plate: "1-A"}}, nil)
			},
			want: map[string]int64{"1-A": 1},
		},
		{
			name:   "IgnoresCase",
			plates: []string{"abc-123"},
			setupMock: func(repo *truck.MockRepository) {
				repo.EXPECT().
					GetByPlates(gomock.Any(), []string{"ABC-123"}).
					Return([]*truck.Truck{{ID: 5, Plate: "abc-123"}}, nil)
			},
			want: map[string]int64{"ABC-123": 5},
		},
		{
			name:   "StoreFailure",
			plates: []string{"1-A"},
			setupMock: func(repo *truck.MockRepository) {
				repo.EXPECT().
					GetByPlates(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("connection reset"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := truck.NewMockRepository(ctrl)
			tt.setupMock(repo)

			got, err := truck.NewService(repo, truck.NewMockDriverLookup(ctrl)).ResolvePlates(context.Background(), tt.plates)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_Update_ClearsDriver(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := truck.NewMockRepository(ctrl)

	repo.EXPECT().
		Update(gomock.Any(), int64(1), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, apply func(*truck.Truck) error) (*truck.Truck, error) {
			tr := &truck.Truck{ID: 1, Brand: "Volvo", Model: "FH", Plate: "1-A", Year: 2020, DriverID: new(int64(5))}
			if err := apply(tr); err != nil {
				return nil, err
			}

			return tr, nil
		})

	got, err := truck.NewService(repo, truck.NewMockDriverLookup(ctrl)).
		Update(context.Background(), 1, truck.Patch{ClearDriver: true})
	require.NoError(t, err)

	assert.Nil(t, got.DriverID)
	assert.Nil(t, got.Driver)
	assert.Equal(t, "1-A", got.Plate)
}
