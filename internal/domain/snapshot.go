package domain

import "time"

type Snapshot struct {
	ID         int64        `db:"id"         json:"id"`
	DeviceID   string       `db:"device_id"  json:"device_id"`
	Names      string       `db:"names"      json:"names"`
	TakenAt    time.Time    `db:"taken_at"   json:"taken_at"`
	Parameters []*Parameter `db:"-"          json:"parameters,omitempty"`
}
