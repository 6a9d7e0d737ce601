package cli_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarwn/consuming-logs/internal/adapters/cli"
	daemongrpc "github.com/tarwn/consuming-logs/internal/adapters/grpc"
	"github.com/tarwn/consuming-logs/internal/application/simulation"
	"github.com/tarwn/consuming-logs/internal/domain/world"
	"github.com/tarwn/consuming-logs/test/helpers"
)

func run(t *testing.T, client *helpers.MockDaemonClient, args ...string) (string, string, error) {
	t.Helper()

	var dialed string
	root := cli.NewRootCommandWithClient(func(path string) (cli.DaemonClient, error) {
		dialed = path
		return client, nil
	})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), dialed, err
}

func TestStatusCommand(t *testing.T) {
	// Arrange
	client := helpers.NewMockDaemonClient()
	client.StatusResult = &simulation.PlantStatus{
		Status: world.Status{
			Cash:               decimal.RequireFromString("850.5"),
			AvailableCapacity:  4,
			OpenSalesOrders:    2,
			ShippedSalesOrders: 1,
			PartsInventory:     map[string]int{"raw-1": 12},
		},
		Interval: 9,
	}

	// Act
	out, dialed, err := run(t, client, "status", "--socket", "/tmp/test.sock")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "/tmp/test.sock", dialed)
	assert.Contains(t, out, "Interval:  9 (idle)")
	assert.Contains(t, out, "850.50")
	assert.Contains(t, out, "raw-1")
	assert.True(t, client.Closed())
}

func TestTickCommand(t *testing.T) {
	// Arrange
	client := helpers.NewMockDaemonClient()
	client.TickResult = &daemongrpc.TickView{
		Interval: 4, Ran: true, Actions: 3, Events: 5, DurationMs: 2,
		Steps: []daemongrpc.StepView{{Step: "sales.GenerateOrdersIfCapacityIsAvailable", Actions: 1}, {Step: "finance.PayForPurchaseOrders", Actions: 0}},
	}

	// Act
	out, _, err := run(t, client, "tick")

	// Assert
	require.NoError(t, err)
	assert.Contains(t, out, "Interval 4: 3 actions, 5 events")
	assert.Contains(t, out, "sales.GenerateOrdersIfCapacityIsAvailable")
	assert.NotContains(t, out, "finance.PayForPurchaseOrders")
}

func TestTickCommand_Dropped(t *testing.T) {
	// Arrange
	client := helpers.NewMockDaemonClient()
	client.TickResult = &daemongrpc.TickView{Interval: 4, Ran: false}

	// Act
	out, _, err := run(t, client, "tick")

	// Assert
	require.NoError(t, err)
	assert.Contains(t, out, "tick dropped")
}

func TestLedgerCommand_ParsesDates(t *testing.T) {
	// Arrange
	client := helpers.NewMockDaemonClient()
	client.CashFlowResult = &daemongrpc.CashFlowView{
		Period:  "2024-01-01 to 2024-01-31",
		NetFlow: "-150.00",
		Entries: 1,
		Categories: []daemongrpc.CategoryView{
			{Category: "PURCHASING", Inflow: "0.00", Outflow: "150.00", NetFlow: "-150.00", Entries: 1},
		},
	}

	// Act
	out, _, err := run(t, client, "ledger", "--start-date", "2024-01-01", "--end-date", "2024-01-31")

	// Assert
	require.NoError(t, err)
	require.NotNil(t, client.CashFlowStart)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *client.CashFlowStart)
	assert.Contains(t, out, "PURCHASING")
	assert.Contains(t, out, "-150.00")
}

func TestLedgerCommand_RejectsBadDate(t *testing.T) {
	// Arrange
	client := helpers.NewMockDaemonClient()

	// Act
	_, _, err := run(t, client, "ledger", "--start-date", "01/02/2024")

	// Assert
	require.Error(t, err)
	assert.Empty(t, client.Calls())
}

func TestEventsCommand(t *testing.T) {
	// Arrange
	client := helpers.NewMockDaemonClient()
	client.EventsResult = &daemongrpc.EventsView{Events: []daemongrpc.EventView{{
		ID:         "evt-1",
		Type:       "Heartbeat",
		OccurredAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		Payload:    json.RawMessage(`{"interval":10}`),
	}}}

	// Act
	out, _, err := run(t, client, "events", "--type", "Heartbeat", "--limit", "3", "--payload")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Heartbeat", client.EventsType)
	assert.Equal(t, 3, client.EventsLimit)
	assert.Contains(t, out, "evt-1")
	assert.Contains(t, out, `{"interval":10}`)
}

func TestEventsCommand_Empty(t *testing.T) {
	// Act
	out, _, err := run(t, helpers.NewMockDaemonClient(), "events")

	// Assert
	require.NoError(t, err)
	assert.Contains(t, out, "No events found")
}

func TestCommand_PropagatesClientError(t *testing.T) {
	// Arrange
	client := helpers.NewMockDaemonClient()
	client.Err = errors.New("daemon unavailable")

	// Act
	_, _, err := run(t, client, "status")

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "daemon unavailable")
}

const validConfig = `
plant:
  capacity_per_interval: 10
  products:
    - part_number: widget
      name: Widget
      unit_price: 10
      bom:
        - part_number: raw-1
          quantity: 1
  parts:
    - part_number: raw-1
      unit_price: 1
database:
  password: hunter2
`

func TestConfigValidateAndShow(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validConfig), 0o600))

	// Act
	validateOut, _, validateErr := run(t, helpers.NewMockDaemonClient(), "config", "validate", "--config", path)
	showOut, _, showErr := run(t, helpers.NewMockDaemonClient(), "config", "show", "--config", path)

	// Assert
	require.NoError(t, validateErr)
	assert.Contains(t, validateOut, "Configuration is valid: 1 products, 1 parts")
	require.NoError(t, showErr)
	assert.Contains(t, showOut, "capacity_per_interval: 10")
	assert.NotContains(t, showOut, "hunter2")
}

func TestConfigValidate_ReportsErrors(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("simulation:\n  interval: 1s\n"), 0o600))

	// Act
	_, _, err := run(t, helpers.NewMockDaemonClient(), "config", "validate", "--config", path)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "plant section is required")
}
