package model

import "time"

type DeviceStatus string

const (
	DeviceOnline      DeviceStatus = "online"
	DeviceOffline     DeviceStatus = "offline"
	DeviceError       DeviceStatus = "error"
	DeviceMaintenance DeviceStatus = "maintenance"
)

func (s DeviceStatus) Valid() bool {
	switch s {
	case DeviceOnline, DeviceOffline, DeviceError, DeviceMaintenance:
		return true
	}
	return false
}

// Device is a playback unit registered to an agency.
type Device struct {
	ID         int          `db:"id"          json:"id,omitempty"`
	Name       string       `db:"name"        json:"name"`
	AgencyID   int          `db:"agency_id"   json:"agency_id"`
	IPAddress  string       `db:"ip_address"  json:"ip_address"`
	MACAddress *string      `db:"mac_address" json:"mac_address"`
	Status     DeviceStatus `db:"status"      json:"status"`
	LastSeen   *time.Time   `db:"last_seen"   json:"last_seen"`
	Version    string       `db:"version"     json:"version"`
}

func (d Device) Key() int { return d.ID }
