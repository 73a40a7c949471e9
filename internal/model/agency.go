package model

// Orientation is how an agency's display is mounted.
type Orientation string

const (
	OrientationHorizontal Orientation = "horizontal"
	OrientationVertical   Orientation = "vertical"
)

// Agency is a branch location with a display and an optional nightly hibernation window.
// HibernationStart/End are "HH:MM" and only meaningful when HibernationEnabled is set.
type Agency struct {
	ID                 int         `db:"id"                  json:"id,omitempty"`
	Name               string      `db:"name"                json:"name"`
	IPAddress          string      `db:"ip_address"          json:"ip_address"`
	Orientation        Orientation `db:"orientation"         json:"orientation"`
	HibernationEnabled bool        `db:"hibernation_enabled" json:"hibernation_enabled"`
	HibernationStart   string      `db:"hibernation_start"   json:"hibernation_start"`
	HibernationEnd     string      `db:"hibernation_end"     json:"hibernation_end"`
}

func (a Agency) Key() int { return a.ID }
