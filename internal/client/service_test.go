package client_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/fleet/internal/client"
	"github.com/MrJamesThe3rd/fleet/internal/fleet"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    client.CreateParams
		setupMock func(m *client.MockRepository)
		wantField string
	}

	tests := []testCase{
		{
			name:   "Success",
			params: client.CreateParams{Name: "Transportes Sur", Email: "ops@sur.example", Company: new("Sur SL")},
			setupMock: func(m *client.MockRepository) {
				m.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *client.Client) error {
						c.ID = 5
						c.RegisteredAt = time.Now()
						return nil
					})
			},
		},
		{
			name:      "MissingEmail",
			params:    client.CreateParams{Name: "Transportes Sur"},
			wantField: "email",
		},
		{
			name:      "MissingName",
			params:    client.CreateParams{Email: "ops@sur.example"},
			wantField: "nombre",
		},
		{
			name:   "DuplicateEmail",
			params: client.CreateParams{Name: "Otro", Email: "ops@sur.example"},
			setupMock: func(m *client.MockRepository) {
				m.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Return(&fleet.ValidationError{Field: "email", Message: "a record with this value already exists"})
			},
			wantField: "email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := client.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			got, err := client.NewService(repo).Create(context.Background(), tt.params)
			if tt.wantField != "" {
				var vErr *fleet.ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Equal(t, tt.wantField, vErr.Field)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, int64(5), got.ID)
			assert.False(t, got.RegisteredAt.IsZero())
		})
	}
}

func TestService_Update_KeepsUnspecifiedFields(t *testing.T) {
	registered := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := client.NewMockRepository(ctrl)
	repo.EXPECT().
		Update(gomock.Any(), int64(2), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, apply func(*client.Client) error) (*client.Client, error) {
			c := &client.Client{
				ID: 2, Name: "Norte", Email: "a@norte.example", Address: new("Calle 1"), RegisteredAt: registered,
			}
			if err := apply(c); err != nil {
				return nil, err
			}

			return c, nil
		})

	got, err := client.NewService(repo).Update(context.Background(), 2, client.Patch{Phone: new("911000000")})
	require.NoError(t, err)

	assert.Equal(t, "Norte", got.Name)
	assert.Equal(t, "a@norte.example", got.Email)
	assert.Equal(t, "Calle 1", *got.Address)
	assert.Equal(t, "911000000", *got.Phone)
	assert.Equal(t, registered, got.RegisteredAt)
}

func TestService_Delete_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := client.NewMockRepository(ctrl)
	repo.EXPECT().Delete(gomock.Any(), int64(9)).Return(fleet.NotFound("client", 9))

	err := client.NewService(repo).Delete(context.Background(), 9)
	assert.ErrorIs(t, err, fleet.ErrNotFound)
}
