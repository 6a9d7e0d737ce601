package simulation

import (
	"context"
	"fmt"

	"github.com/tarwn/consuming-logs/internal/application/common"
	"github.com/tarwn/consuming-logs/internal/domain/world"
)

// RunIntervalCommand requests one tick outside the wall-clock loop
type RunIntervalCommand struct{}

// RunIntervalHandler handles RunIntervalCommand
type RunIntervalHandler struct {
	simulator *Simulator
}

// NewRunIntervalHandler creates a new RunIntervalHandler
func NewRunIntervalHandler(simulator *Simulator) *RunIntervalHandler {
	return &RunIntervalHandler{simulator: simulator}
}

// Handle runs one tick and returns its *TickResult
func (h *RunIntervalHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	if _, ok := request.(*RunIntervalCommand); !ok {
		return nil, fmt.Errorf("invalid request type: expected *RunIntervalCommand")
	}

	result, err := h.simulator.RunInterval(ctx)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GetPlantStatusQuery asks for the current plant summary
type GetPlantStatusQuery struct{}

// PlantStatus is the store summary plus the simulator's own state
type PlantStatus struct {
	world.Status
	Interval int  `json:"interval"`
	Running  bool `json:"running"`
}

// GetPlantStatusHandler handles GetPlantStatusQuery
type GetPlantStatusHandler struct {
	simulator *Simulator
}

// NewGetPlantStatusHandler creates a new GetPlantStatusHandler
func NewGetPlantStatusHandler(simulator *Simulator) *GetPlantStatusHandler {
	return &GetPlantStatusHandler{simulator: simulator}
}

// Handle returns a *PlantStatus
func (h *GetPlantStatusHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	if _, ok := request.(*GetPlantStatusQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetPlantStatusQuery")
	}

	return &PlantStatus{
		Status:   h.simulator.Store().Status(),
		Interval: h.simulator.Interval(),
		Running:  h.simulator.IsRunning(),
	}, nil
}

// RegisterHandlers wires the simulator's commands and queries into med
func RegisterHandlers(med common.Mediator, simulator *Simulator) error {
	if err := common.RegisterHandler[*RunIntervalCommand](med, NewRunIntervalHandler(simulator)); err != nil {
		return fmt.Errorf("failed to register RunIntervalCommand handler: %w", err)
	}
	if err := common.RegisterHandler[*GetPlantStatusQuery](med, NewGetPlantStatusHandler(simulator)); err != nil {
		return fmt.Errorf("failed to register GetPlantStatusQuery handler: %w", err)
	}
	return nil
}
