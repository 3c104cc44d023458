package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/pageza/healthtracker/backend/internal/service"
	"github.com/pageza/healthtracker/backend/internal/testhelpers"
	"github.com/pageza/healthtracker/backend/internal/types"
	"github.com/pageza/healthtracker/backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfile(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewProfileService(db, logger.NewNop())
	user := testhelpers.CreateTestUser(t, db, "alice")
	ctx := context.Background()

	profile, err := svc.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, 2000, profile.TargetCalories)
	assert.Nil(t, profile.Age)

	name := "Alice A."
	err = svc.UpdateProfile(ctx, user.ID, types.UpdateProfileRequest{
		Name:           &name,
		Age:            types.NewNumber(34),
		Height:         types.NewNumber(170.5),
		TargetCalories: types.NewNumber(1800),
	})
	require.NoError(t, err)

	profile, err = svc.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice A.", profile.Name)
	require.NotNil(t, profile.Age)
	assert.Equal(t, 34, *profile.Age)
	require.NotNil(t, profile.Height)
	assert.Equal(t, 170.5, *profile.Height)
	assert.Equal(t, 1800, profile.TargetCalories)

	t.Run("unparseable values fall back", func(t *testing.T) {
		bad := types.Number{Present: true}
		require.NoError(t, svc.UpdateProfile(ctx, user.ID, types.UpdateProfileRequest{
			Age:            bad,
			Height:         bad,
			TargetCalories: bad,
		}))

		profile, err := svc.GetProfile(ctx, user.ID)
		require.NoError(t, err)
		assert.Nil(t, profile.Age)
		assert.Nil(t, profile.Height)
		assert.Equal(t, 2000, profile.TargetCalories)
		assert.Equal(t, "Alice A.", profile.Name, "absent name is kept")
	})

	t.Run("range errors", func(t *testing.T) {
		cases := []struct {
			req  types.UpdateProfileRequest
			want string
		}{
			{types.UpdateProfileRequest{Age: types.NewNumber(0)}, "Invalid age (must be 1-150)"},
			{types.UpdateProfileRequest{Age: types.NewNumber(151)}, "Invalid age (must be 1-150)"},
			{types.UpdateProfileRequest{Height: types.NewNumber(49)}, "Invalid height (must be 50-300 cm)"},
			{types.UpdateProfileRequest{TargetCalories: types.NewNumber(499)}, "Invalid calorie target (must be 500-10000)"},
			{types.UpdateProfileRequest{TargetCalories: types.NewNumber(10001)}, "Invalid calorie target (must be 500-10000)"},
		}
		for _, tc := range cases {
			err := svc.UpdateProfile(ctx, user.ID, tc.req)
			var verr *types.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tc.want, verr.Message)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.GetProfile(ctx, uuid.New())
		assert.ErrorIs(t, err, service.ErrUserNotFound)
		assert.ErrorIs(t, svc.UpdateProfile(ctx, uuid.New(), types.UpdateProfileRequest{}), service.ErrUserNotFound)
	})
}
