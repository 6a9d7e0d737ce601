package world

import "time"

// Checkpoint is a status summary saved at a heartbeat
type Checkpoint struct {
	Interval int
	Status   Status
	SavedAt  time.Time
}
