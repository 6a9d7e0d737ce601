package grpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/tarwn/consuming-logs/internal/application/common"
	eventQueries "github.com/tarwn/consuming-logs/internal/application/events/queries"
	ledgerCommands "github.com/tarwn/consuming-logs/internal/application/ledger/commands"
	ledgerQueries "github.com/tarwn/consuming-logs/internal/application/ledger/queries"
	"github.com/tarwn/consuming-logs/internal/application/simulation"
	"github.com/tarwn/consuming-logs/internal/domain/events"
)

const dateLayout = "2006-01-02"

// DaemonServer answers CLI requests by dispatching them through the mediator
type DaemonServer struct {
	mediator common.Mediator
	logger   common.Logger
	limiter  *rate.Limiter
	listener net.Listener
	server   *grpc.Server
}

// ServerOption configures a DaemonServer
type ServerOption func(*DaemonServer)

// WithLogger attaches logger to every request context
func WithLogger(logger common.Logger) ServerOption {
	return func(s *DaemonServer) {
		s.logger = logger
	}
}

// WithTickLimit throttles manual tick requests to r per second with the given burst
func WithTickLimit(r float64, burst int) ServerOption {
	return func(s *DaemonServer) {
		s.limiter = rate.NewLimiter(rate.Limit(r), burst)
	}
}

// NewDaemonServer listens on a unix socket readable by the owner only. A
// stale socket file at socketPath is removed first.
func NewDaemonServer(mediator common.Mediator, socketPath string, opts ...ServerOption) (*DaemonServer, error) {
	if err := os.RemoveAll(socketPath); err != nil {
		return nil, fmt.Errorf("failed to remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create unix socket listener: %w", err)
	}

	if err := os.Chmod(socketPath, 0600); err != nil {
		listener.Close()
		return nil, fmt.Errorf("failed to set socket permissions: %w", err)
	}

	return NewDaemonServerWithListener(mediator, listener, opts...), nil
}

// NewDaemonServerWithListener serves on an existing listener
func NewDaemonServerWithListener(mediator common.Mediator, listener net.Listener, opts ...ServerOption) *DaemonServer {
	s := &DaemonServer{
		mediator: mediator,
		listener: listener,
		limiter:  rate.NewLimiter(rate.Limit(5), 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = common.LoggerFromContext(context.Background())
	}

	s.server = grpc.NewServer(grpc.UnaryInterceptor(s.intercept))
	RegisterPlantDaemonServer(s.server, &daemonService{server: s})
	return s
}

// Addr returns the listening address
func (s *DaemonServer) Addr() string {
	return s.listener.Addr().String()
}

// Serve blocks until the server stops. A graceful stop returns nil.
func (s *DaemonServer) Serve() error {
	s.logger.Log("INFO", "[Daemon] Listening on "+s.Addr(), nil)
	if err := s.server.Serve(s.listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("gRPC server error: %w", err)
	}
	return nil
}

// Stop drains in-flight requests, forcing the stop once ctx is done
func (s *DaemonServer) Stop(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		s.logger.Log("WARNING", "[Daemon] Graceful stop timed out, forcing shutdown", nil)
		s.server.Stop()
		<-done
	}
}

func (s *DaemonServer) intercept(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(common.WithLogger(ctx, s.logger), req)

	level := "DEBUG"
	meta := map[string]interface{}{
		"method":      info.FullMethod,
		"duration_ms": time.Since(start).Milliseconds(),
	}
	if err != nil {
		level = "WARNING"
		meta["error"] = err.Error()
	}
	s.logger.Log(level, "[Daemon] "+info.FullMethod, meta)
	return resp, err
}

// daemonService implements PlantDaemonServer
type daemonService struct {
	server *DaemonServer
}

func (d *daemonService) Status(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	resp, err := d.server.mediator.Send(ctx, &simulation.GetPlantStatusQuery{})
	if err != nil {
		return nil, toStatusError(err)
	}
	st, ok := resp.(*simulation.PlantStatus)
	if !ok {
		return nil, status.Errorf(codes.Internal, "unexpected response type %T", resp)
	}
	return toStruct(st)
}

func (d *daemonService) Tick(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	if !d.server.limiter.Allow() {
		return nil, status.Error(codes.ResourceExhausted, "manual tick rate exceeded")
	}

	resp, err := d.server.mediator.Send(ctx, &simulation.RunIntervalCommand{})
	if err != nil {
		return nil, toStatusError(err)
	}
	result, ok := resp.(*simulation.TickResult)
	if !ok {
		return nil, status.Errorf(codes.Internal, "unexpected response type %T", resp)
	}
	return toStruct(tickView(result))
}

func (d *daemonService) CashFlow(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	query := &ledgerQueries.GetCashFlowQuery{}
	var err error
	if query.StartDate, err = dateField(in, "start"); err != nil {
		return nil, err
	}
	if query.EndDate, err = dateField(in, "end"); err != nil {
		return nil, err
	}

	// bring the database ledger up to date before reading it
	if _, err := d.server.mediator.Send(ctx, &ledgerCommands.SyncLedgerCommand{}); err != nil {
		return nil, toStatusError(err)
	}

	resp, err := d.server.mediator.Send(ctx, query)
	if err != nil {
		return nil, toStatusError(err)
	}
	flow, ok := resp.(*ledgerQueries.GetCashFlowResponse)
	if !ok {
		return nil, status.Errorf(codes.Internal, "unexpected response type %T", resp)
	}
	return toStruct(cashFlowView(flow))
}

func (d *daemonService) Events(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	query := &eventQueries.ListEventsQuery{}
	fields := in.GetFields()

	if v, ok := fields["type"]; ok && v.GetStringValue() != "" {
		t := v.GetStringValue()
		if _, err := events.ParseType(t); err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		query.Type = &t
	}
	if v, ok := fields["limit"]; ok {
		limit := v.GetNumberValue()
		if limit < 0 {
			return nil, status.Error(codes.InvalidArgument, "limit must not be negative")
		}
		query.Limit = int(limit)
	}

	resp, err := d.server.mediator.Send(ctx, query)
	if err != nil {
		return nil, toStatusError(err)
	}
	list, ok := resp.(*eventQueries.ListEventsResponse)
	if !ok {
		return nil, status.Errorf(codes.Internal, "unexpected response type %T", resp)
	}
	return toStruct(eventsView(list))
}

func dateField(in *structpb.Struct, name string) (*time.Time, error) {
	v, ok := in.GetFields()[name]
	if !ok || v.GetStringValue() == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, v.GetStringValue())
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "%s must be a YYYY-MM-DD date: %v", name, err)
	}
	if name == "end" {
		// inclusive of the whole end day
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

// toStatusError maps an application error onto a gRPC status
func toStatusError(err error) error {
	if errors.Is(err, common.ErrNoHandler) {
		return status.Error(codes.Unimplemented, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}

var _ PlantDaemonServer = (*daemonService)(nil)
