package cli

import (
	"context"
	"time"

	daemongrpc "github.com/tarwn/consuming-logs/internal/adapters/grpc"
	"github.com/tarwn/consuming-logs/internal/application/simulation"
)

const requestTimeout = 30 * time.Second

// DaemonClient is what the commands need from the daemon connection
type DaemonClient interface {
	Status(ctx context.Context) (*simulation.PlantStatus, error)
	Tick(ctx context.Context) (*daemongrpc.TickView, error)
	CashFlow(ctx context.Context, start, end *time.Time) (*daemongrpc.CashFlowView, error)
	Events(ctx context.Context, eventType string, limit int) (*daemongrpc.EventsView, error)
	Close() error
}

// ClientFactory opens a client for the socket path
type ClientFactory func(socketPath string) (DaemonClient, error)

// DialDaemon opens a gRPC client on the socket
func DialDaemon(path string) (DaemonClient, error) {
	return daemongrpc.NewDaemonClient(path)
}

// withClient opens a client, runs fn with a bounded context and closes the client
func withClient(dial ClientFactory, fn func(ctx context.Context, client DaemonClient) error) error {
	client, err := dial(socketPath)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	return fn(ctx, client)
}
