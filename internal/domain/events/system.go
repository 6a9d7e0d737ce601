package events

import "time"

type Heartbeat struct {
	Envelope
	Interval int `json:"interval"`
}

func NewHeartbeat(at time.Time, interval int) Heartbeat {
	return Heartbeat{Envelope: newEnvelope(TypeHeartbeat, at), Interval: interval}
}

func (Heartbeat) isEvent() {}

// SystemAction is the process lifecycle step a System event reports
type SystemAction string

const (
	SystemStarting SystemAction = "starting"
	SystemExiting  SystemAction = "exiting"
)

type System struct {
	Envelope
	Action SystemAction `json:"action"`
}

func NewSystem(at time.Time, action SystemAction) System {
	return System{Envelope: newEnvelope(TypeSystem, at), Action: action}
}

func (System) isEvent() {}
