package service_test

import (
	"context"
	"testing"

	"github.com/devmatch/backend/internal/domain"
	"github.com/devmatch/backend/internal/repository/postgres"
	"github.com/devmatch/backend/internal/service"
	"github.com/devmatch/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileService_UpdateProfile(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	profileService := service.NewProfileService(repos.User, repos.Technology)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().WithName("before").Build(t, testDB.DB)

	name := "after"
	bio := "distributed systems person"
	age := 31
	updated, err := profileService.UpdateProfile(ctx, user.ID, service.UpdateProfileInput{
		Name: &name,
		Bio:  &bio,
		Age:  &age,
	})
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Name)
	assert.Equal(t, bio, updated.Bio)
	require.NotNil(t, updated.Age)
	assert.Equal(t, 31, *updated.Age)

	// Omitted fields are untouched
	role := "backend"
	updated, err = profileService.UpdateProfile(ctx, user.ID, service.UpdateProfileInput{
		Role: &role,
	})
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Name)
	assert.Equal(t, "backend", updated.Role)
}

func TestProfileService_TechStack(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	profileService := service.NewProfileService(repos.User, repos.Technology)
	ctx := context.Background()

	require.NoError(t, postgres.SeedTechnologies(ctx, repos.Technology))

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	t.Run("add catalog technology", func(t *testing.T) {
		updated, err := profileService.AddTechnology(ctx, user.ID, "go")
		require.NoError(t, err)
		assert.Contains(t, []string(updated.TechStack), "go")
	})

	t.Run("duplicate add rejected", func(t *testing.T) {
		_, err := profileService.AddTechnology(ctx, user.ID, "go")
		assert.ErrorIs(t, err, domain.ErrTechAlreadySet)
	})

	t.Run("unknown technology rejected", func(t *testing.T) {
		_, err := profileService.AddTechnology(ctx, user.ID, "brainfuck")
		assert.ErrorIs(t, err, domain.ErrTechNotFound)
	})

	t.Run("remove technology", func(t *testing.T) {
		updated, err := profileService.RemoveTechnology(ctx, user.ID, "go")
		require.NoError(t, err)
		assert.NotContains(t, []string(updated.TechStack), "go")
	})

	t.Run("remove absent technology rejected", func(t *testing.T) {
		_, err := profileService.RemoveTechnology(ctx, user.ID, "go")
		assert.ErrorIs(t, err, domain.ErrTechNotOnStack)
	})

	t.Run("catalog listing", func(t *testing.T) {
		techs, err := profileService.ListTechnologies(ctx)
		require.NoError(t, err)
		assert.NotEmpty(t, techs)
	})
}
