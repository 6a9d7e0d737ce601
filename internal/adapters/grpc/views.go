package grpc

import (
	"encoding/json"
	"fmt"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	eventQueries "github.com/tarwn/consuming-logs/internal/application/events/queries"
	ledgerQueries "github.com/tarwn/consuming-logs/internal/application/ledger/queries"
	"github.com/tarwn/consuming-logs/internal/application/simulation"
)

// TickView is the outcome of a manual tick
type TickView struct {
	Interval   int        `json:"interval"`
	Ran        bool       `json:"ran"`
	Actions    int        `json:"actions"`
	Events     int        `json:"events"`
	DurationMs int64      `json:"durationMs"`
	Steps      []StepView `json:"steps"`
}

// StepView is one department decision within a tick
type StepView struct {
	Step    string `json:"step"`
	Actions int    `json:"actions"`
}

// CashFlowView is the cash flow statement. Amounts are decimal strings.
type CashFlowView struct {
	Period     string         `json:"period"`
	NetFlow    string         `json:"netFlow"`
	Entries    int            `json:"entries"`
	Categories []CategoryView `json:"categories"`
}

// CategoryView is one ledger category within a CashFlowView
type CategoryView struct {
	Category string `json:"category"`
	Inflow   string `json:"inflow"`
	Outflow  string `json:"outflow"`
	NetFlow  string `json:"netFlow"`
	Entries  int    `json:"entries"`
}

// EventView is one stored event
type EventView struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurredAt"`
	Payload    json.RawMessage `json:"payload"`
}

// EventsView holds events newest first
type EventsView struct {
	Events []EventView `json:"events"`
}

func tickView(r *simulation.TickResult) *TickView {
	v := &TickView{
		Interval:   r.Interval,
		Ran:        r.Ran,
		Actions:    r.Actions(),
		Events:     r.Events,
		DurationMs: r.Duration.Milliseconds(),
		Steps:      make([]StepView, len(r.Decisions)),
	}
	for i, d := range r.Decisions {
		v.Steps[i] = StepView{Step: d.Step, Actions: d.Actions}
	}
	return v
}

func cashFlowView(r *ledgerQueries.GetCashFlowResponse) *CashFlowView {
	v := &CashFlowView{
		Period:     r.Period,
		NetFlow:    r.NetFlow.StringFixed(2),
		Entries:    r.Entries,
		Categories: make([]CategoryView, len(r.Categories)),
	}
	for i, c := range r.Categories {
		v.Categories[i] = CategoryView{
			Category: c.Category,
			Inflow:   c.TotalInflow.StringFixed(2),
			Outflow:  c.TotalOutflow.StringFixed(2),
			NetFlow:  c.NetFlow.StringFixed(2),
			Entries:  c.Entries,
		}
	}
	return v
}

func eventsView(r *eventQueries.ListEventsResponse) *EventsView {
	v := &EventsView{Events: make([]EventView, len(r.Events))}
	for i, e := range r.Events {
		v.Events[i] = EventView{ID: e.ID, Type: e.Type, OccurredAt: e.OccurredAt, Payload: e.Payload}
	}
	return v
}

// toStruct converts any JSON-encodable value to a Struct
func toStruct(v interface{}) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode response: %w", err)
	}
	s := &structpb.Struct{}
	if err := s.UnmarshalJSON(data); err != nil {
		return nil, fmt.Errorf("failed to convert response: %w", err)
	}
	return s, nil
}

// fromStruct decodes a Struct into v through its JSON form
func fromStruct(s *structpb.Struct, v interface{}) error {
	data, err := s.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
