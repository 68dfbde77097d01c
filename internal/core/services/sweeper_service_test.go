package services_test

import (
	"context"
	"testing"
	"time"

	"loanhub-portal/internal/adapters/persistence/models"
	"loanhub-portal/internal/core/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweeperPurgesOnlyExpiredSessions(t *testing.T) {
	repo := newSessionRepoFake()
	require.NoError(t, repo.Create(context.Background(), &models.PortalSession{
		ID: "sid-live", Token: "t1", Record: "{}", ExpiresAt: time.Now().Add(time.Hour),
	}))
	require.NoError(t, repo.Create(context.Background(), &models.PortalSession{
		ID: "sid-dead", Token: "t2", Record: "{}", ExpiresAt: time.Now().Add(-time.Hour),
	}))

	sweeper := services.NewSweeperService(repo)
	sweeper.Start()
	defer sweeper.Stop()

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, err = repo.GetByID(context.Background(), "sid-live")
	assert.NoError(t, err)
}
