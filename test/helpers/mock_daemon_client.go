package helpers

import (
	"context"
	"sync"
	"time"

	daemongrpc "github.com/tarwn/consuming-logs/internal/adapters/grpc"
	"github.com/tarwn/consuming-logs/internal/application/simulation"
)

// MockDaemonClient is an in-memory stand-in for the daemon's gRPC client
type MockDaemonClient struct {
	mu sync.Mutex

	StatusResult   *simulation.PlantStatus
	TickResult     *daemongrpc.TickView
	CashFlowResult *daemongrpc.CashFlowView
	EventsResult   *daemongrpc.EventsView
	Err            error

	calls  []string
	closed bool

	CashFlowStart, CashFlowEnd *time.Time
	EventsType                 string
	EventsLimit                int
}

// NewMockDaemonClient creates a client returning empty results
func NewMockDaemonClient() *MockDaemonClient {
	return &MockDaemonClient{
		StatusResult:   &simulation.PlantStatus{},
		TickResult:     &daemongrpc.TickView{},
		CashFlowResult: &daemongrpc.CashFlowView{},
		EventsResult:   &daemongrpc.EventsView{},
	}
}

func (m *MockDaemonClient) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

func (m *MockDaemonClient) Status(ctx context.Context) (*simulation.PlantStatus, error) {
	m.record("Status")
	return m.StatusResult, m.Err
}

func (m *MockDaemonClient) Tick(ctx context.Context) (*daemongrpc.TickView, error) {
	m.record("Tick")
	return m.TickResult, m.Err
}

func (m *MockDaemonClient) CashFlow(ctx context.Context, start, end *time.Time) (*daemongrpc.CashFlowView, error) {
	m.record("CashFlow")
	m.mu.Lock()
	m.CashFlowStart, m.CashFlowEnd = start, end
	m.mu.Unlock()
	return m.CashFlowResult, m.Err
}

func (m *MockDaemonClient) Events(ctx context.Context, eventType string, limit int) (*daemongrpc.EventsView, error) {
	m.record("Events")
	m.mu.Lock()
	m.EventsType, m.EventsLimit = eventType, limit
	m.mu.Unlock()
	return m.EventsResult, m.Err
}

func (m *MockDaemonClient) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Calls returns the methods invoked so far, in order
func (m *MockDaemonClient) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// Closed reports whether Close was called
func (m *MockDaemonClient) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
