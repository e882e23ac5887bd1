package service_test

import (
	"context"
	"testing"

	"github.com/devmatch/backend/internal/repository/postgres"
	"github.com/devmatch/backend/internal/service"
	"github.com/devmatch/backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoveryService_Discover(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	swipeService := service.NewSwipeService(repos.User, repos.Like, repos.Match, nil)
	discoveryService := service.NewDiscoveryService(repos.User, repos.Like, repos.Match)
	ctx := context.Background()

	t.Run("ranks by shared stack", func(t *testing.T) {
		testDB.Truncate(t)

		self, _ := testutil.NewUserBuilder().
			WithTechStack("go", "postgres", "redis").
			Build(t, testDB.DB)
		closeMatch, _ := testutil.NewUserBuilder().
			WithTechStack("go", "postgres", "kafka").
			Build(t, testDB.DB)
		farMatch, _ := testutil.NewUserBuilder().
			WithTechStack("rust", "postgres").
			Build(t, testDB.DB)
		noOverlap, _ := testutil.NewUserBuilder().
			WithTechStack("cobol").
			Build(t, testDB.DB)

		ranked, err := discoveryService.Discover(ctx, self.ID)
		require.NoError(t, err)
		require.Len(t, ranked, 3)

		assert.Equal(t, closeMatch.ID, ranked[0].User.ID)
		assert.InDelta(t, 0.5, ranked[0].Score, 1e-9)
		assert.Equal(t, farMatch.ID, ranked[1].User.ID)
		assert.InDelta(t, 0.25, ranked[1].Score, 1e-9)
		assert.Equal(t, noOverlap.ID, ranked[2].User.ID)
		assert.Zero(t, ranked[2].Score)
	})

	t.Run("excludes liked and matched users", func(t *testing.T) {
		testDB.Truncate(t)

		self, _ := testutil.NewUserBuilder().WithTechStack("go").Build(t, testDB.DB)
		liked, _ := testutil.NewUserBuilder().WithTechStack("go").Build(t, testDB.DB)
		matched, _ := testutil.NewUserBuilder().WithTechStack("go").Build(t, testDB.DB)
		fresh, _ := testutil.NewUserBuilder().WithTechStack("go").Build(t, testDB.DB)

		_, err := swipeService.RecordLike(ctx, self.ID, liked.ID)
		require.NoError(t, err)
		testutil.CreateMatch(t, testDB.DB, self, matched)

		ranked, err := discoveryService.Discover(ctx, self.ID)
		require.NoError(t, err)
		require.Len(t, ranked, 1)
		assert.Equal(t, fresh.ID, ranked[0].User.ID)
	})

	t.Run("passed profiles resurface", func(t *testing.T) {
		testDB.Truncate(t)

		self, _ := testutil.NewUserBuilder().WithTechStack("go").Build(t, testDB.DB)
		other, _ := testutil.NewUserBuilder().WithTechStack("go").Build(t, testDB.DB)

		// No pass/dismiss state exists server-side, so repeated calls
		// return the same candidate.
		for i := 0; i < 2; i++ {
			ranked, err := discoveryService.Discover(ctx, self.ID)
			require.NoError(t, err)
			require.Len(t, ranked, 1)
			assert.Equal(t, other.ID, ranked[0].User.ID)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		testDB.Truncate(t)

		_, err := discoveryService.Discover(ctx, uuid.New())
		assert.Error(t, err)
	})
}
