package simulation_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarwn/consuming-logs/internal/application/common"
	"github.com/tarwn/consuming-logs/internal/application/simulation"
	"github.com/tarwn/consuming-logs/test/helpers"
)

func TestHandlers_RunIntervalAndStatus(t *testing.T) {
	// Arrange
	sim, _, _ := newPlant(t, helpers.WidgetParams(), simulation.DefaultConfig())
	med := common.NewMediator()
	require.NoError(t, simulation.RegisterHandlers(med, sim))

	// Act
	tickResp, err := med.Send(context.Background(), &simulation.RunIntervalCommand{})
	require.NoError(t, err)
	statusResp, err := med.Send(context.Background(), &simulation.GetPlantStatusQuery{})
	require.NoError(t, err)

	// Assert
	tick := tickResp.(*simulation.TickResult)
	assert.True(t, tick.Ran)
	assert.Equal(t, 1, tick.Interval)

	status := statusResp.(*simulation.PlantStatus)
	assert.Equal(t, 1, status.Interval)
	assert.False(t, status.Running)
	assert.Equal(t, 2, status.OpenSalesOrders)
}

func TestHandlers_RejectWrongRequestType(t *testing.T) {
	sim, _, _ := newPlant(t, helpers.WidgetParams(), simulation.DefaultConfig())

	_, err := simulation.NewRunIntervalHandler(sim).Handle(context.Background(), &simulation.GetPlantStatusQuery{})

	assert.Error(t, err)
}
