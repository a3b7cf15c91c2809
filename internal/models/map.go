package models

type Coordinate struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

type MapUpdateStatus string

const (
	MapUpdateStatusActive   MapUpdateStatus = "active"
	MapUpdateStatusInactive MapUpdateStatus = "inactive"
)

type MapAction string

const (
	MapActionDispatch MapAction = "dispatch"
	MapActionHold     MapAction = "hold"
)

// MapUpdate is one actor's position and intent for the map view.
type MapUpdate struct {
	VolunteerID     string          `json:"volunteer_id"`
	Name            string          `json:"name"`
	Role            string          `json:"role"`
	Status          MapUpdateStatus `json:"status"`
	Action          MapAction       `json:"action"`
	CurrentLocation Coordinate      `json:"current_location"`
	TargetLocation  *Coordinate     `json:"target_location"` // nil while holding position
	PathColor       string          `json:"path_color"`      // hex, e.g. "#FF0000"
}
