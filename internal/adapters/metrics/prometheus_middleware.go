package metrics

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/tarwn/consuming-logs/internal/application/common"
)

// PrometheusMiddleware records duration and outcome of every request the
// mediator handles. A nil collector turns it into a pass-through.
func PrometheusMiddleware(collector *CommandMetricsCollector) common.Middleware {
	return func(ctx context.Context, request common.Request, next common.HandlerFunc) (common.Response, error) {
		if collector == nil {
			return next(ctx, request)
		}

		start := time.Now()
		response, err := next(ctx, request)
		collector.RecordCommandExecution(RequestName(request), time.Since(start).Seconds(), err == nil)

		return response, err
	}
}

// RequestName strips pointer and package prefixes from a request's type:
// "*simulation.RunIntervalCommand" becomes "RunIntervalCommand".
func RequestName(request common.Request) string {
	if request == nil {
		return "UnknownCommand"
	}

	fullName := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")
	if i := strings.LastIndex(fullName, "."); i >= 0 {
		return fullName[i+1:]
	}
	return fullName
}
