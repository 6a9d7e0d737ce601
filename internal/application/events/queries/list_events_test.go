package queries_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarwn/consuming-logs/internal/adapters/persistence"
	"github.com/tarwn/consuming-logs/internal/application/events/queries"
	"github.com/tarwn/consuming-logs/internal/domain/events"
	"github.com/tarwn/consuming-logs/test/helpers"
)

func TestListEvents_DefaultLimitNewestFirst(t *testing.T) {
	// Arrange
	repo := persistence.NewGormEventRepository(helpers.NewTestDB(t))
	for i := 1; i <= queries.DefaultLimit+5; i++ {
		require.NoError(t, repo.Publish(context.Background(), events.NewHeartbeat(helpers.TestStart, i)))
	}
	handler := queries.NewListEventsHandler(repo)

	// Act
	resp, err := handler.Handle(context.Background(), &queries.ListEventsQuery{})

	// Assert
	require.NoError(t, err)
	list := resp.(*queries.ListEventsResponse).Events
	require.Len(t, list, queries.DefaultLimit)
	assert.Equal(t, "Heartbeat", list[0].Type)
	assert.Contains(t, string(list[0].Payload), `"interval":25`)
}

func TestListEvents_FiltersByType(t *testing.T) {
	// Arrange
	repo := persistence.NewGormEventRepository(helpers.NewTestDB(t))
	require.NoError(t, repo.Publish(context.Background(),
		events.NewSystem(helpers.TestStart, events.SystemStarting),
		events.NewHeartbeat(helpers.TestStart, 10),
	))
	handler := queries.NewListEventsHandler(repo)
	system := "System"

	// Act
	resp, err := handler.Handle(context.Background(), &queries.ListEventsQuery{Type: &system, Limit: 5})

	// Assert
	require.NoError(t, err)
	list := resp.(*queries.ListEventsResponse).Events
	require.Len(t, list, 1)
	assert.Equal(t, "System", list[0].Type)
}

func TestListEvents_RejectsUnknownType(t *testing.T) {
	handler := queries.NewListEventsHandler(persistence.NewGormEventRepository(helpers.NewTestDB(t)))
	unknown := "Explosion"

	_, err := handler.Handle(context.Background(), &queries.ListEventsQuery{Type: &unknown})

	assert.Error(t, err)
}
