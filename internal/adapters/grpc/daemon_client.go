package grpc

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/tarwn/consuming-logs/internal/application/simulation"
)

// DaemonClient talks to a running plant daemon
type DaemonClient struct {
	conn *grpc.ClientConn
}

// NewDaemonClient connects to the daemon's unix socket. The connection is made
// lazily on the first call.
func NewDaemonClient(socketPath string) (*DaemonClient, error) {
	conn, err := grpc.NewClient(
		"unix:"+socketPath,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon socket: %w", err)
	}
	return NewDaemonClientFromConn(conn), nil
}

// NewDaemonClientFromConn wraps an existing connection
func NewDaemonClientFromConn(conn *grpc.ClientConn) *DaemonClient {
	return &DaemonClient{conn: conn}
}

// Close closes the connection
func (c *DaemonClient) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Status returns the plant summary
func (c *DaemonClient) Status(ctx context.Context) (*simulation.PlantStatus, error) {
	out := &simulation.PlantStatus{}
	if err := c.call(ctx, "Status", &emptypb.Empty{}, out); err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}
	return out, nil
}

// Tick requests one interval outside the wall-clock loop
func (c *DaemonClient) Tick(ctx context.Context) (*TickView, error) {
	out := &TickView{}
	if err := c.call(ctx, "Tick", &emptypb.Empty{}, out); err != nil {
		return nil, fmt.Errorf("failed to tick: %w", err)
	}
	return out, nil
}

// CashFlow returns the cash flow statement. Nil dates leave the period open.
func (c *DaemonClient) CashFlow(ctx context.Context, start, end *time.Time) (*CashFlowView, error) {
	fields := map[string]interface{}{}
	if start != nil {
		fields["start"] = start.Format(dateLayout)
	}
	if end != nil {
		fields["end"] = end.Format(dateLayout)
	}
	in, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, err
	}

	out := &CashFlowView{}
	if err := c.call(ctx, "CashFlow", in, out); err != nil {
		return nil, fmt.Errorf("failed to get cash flow: %w", err)
	}
	return out, nil
}

// Events lists recent events, optionally of one type. A zero limit uses the
// daemon's default.
func (c *DaemonClient) Events(ctx context.Context, eventType string, limit int) (*EventsView, error) {
	fields := map[string]interface{}{}
	if eventType != "" {
		fields["type"] = eventType
	}
	if limit > 0 {
		fields["limit"] = limit
	}
	in, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, err
	}

	out := &EventsView{}
	if err := c.call(ctx, "Events", in, out); err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return out, nil
}

func (c *DaemonClient) call(ctx context.Context, method string, in interface{}, v interface{}) error {
	out := &structpb.Struct{}
	if err := c.conn.Invoke(ctx, fullMethod(method), in, out); err != nil {
		return err
	}
	return fromStruct(out, v)
}
