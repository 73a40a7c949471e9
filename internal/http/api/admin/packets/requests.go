package packets

import (
	"regexp"
	"strings"
	"time"

	"github.com/Nixie-Tech-LLC/signage-console/internal/model"
)

type AgencyRequest struct {
	Name               string `json:"name"                binding:"required,max=100"`
	IPAddress          string `json:"ip_address"          binding:"omitempty,ip"`
	Orientation        string `json:"orientation"         binding:"omitempty,oneof=horizontal vertical"`
	HibernationEnabled bool   `json:"hibernation_enabled"`
	HibernationStart   string `json:"hibernation_start"   binding:"omitempty,datetime=15:04"`
	HibernationEnd     string `json:"hibernation_end"     binding:"omitempty,datetime=15:04"`
}

func (r AgencyRequest) Model() model.Agency {
	orientation := model.Orientation(r.Orientation)
	if orientation == "" {
		orientation = model.OrientationHorizontal
	}
	start, end := r.HibernationStart, r.HibernationEnd
	if start == "" {
		start = "18:00"
	}
	if end == "" {
		end = "08:00"
	}
	return model.Agency{
		Name:               strings.TrimSpace(r.Name),
		IPAddress:          r.IPAddress,
		Orientation:        orientation,
		HibernationEnabled: r.HibernationEnabled,
		HibernationStart:   start,
		HibernationEnd:     end,
	}
}

type ContentRequest struct {
	Title       string `json:"title"       binding:"required,max=200"`
	Type        string `json:"type"        binding:"required,oneof=link image video"`
	URL         string `json:"url"         binding:"required"`
	Description string `json:"description"`
	Duration    int    `json:"duration"    binding:"required,min=5,max=3600"`
}

func (r ContentRequest) Model() model.Content {
	return model.Content{
		Title:       strings.TrimSpace(r.Title),
		Type:        model.ContentType(r.Type),
		URL:         r.URL,
		Description: r.Description,
		Duration:    r.Duration,
	}
}

var daysPattern = regexp.MustCompile(`^([0-6](,[0-6])*)?$`)

type ScheduleRequest struct {
	ContentID  int    `json:"content_id"   binding:"required"`
	AgencyID   int    `json:"agency_id"    binding:"required"`
	StartTime  string `json:"start_time"   binding:"required,datetime=15:04"`
	EndTime    string `json:"end_time"     binding:"required,datetime=15:04"`
	DaysOfWeek string `json:"days_of_week"`
	Priority   int    `json:"priority"     binding:"required,min=1,max=10"`
	IsActive   bool   `json:"is_active"`
}

// ValidDays reports whether DaysOfWeek is a comma-joined list of weekday codes 0..6.
func (r ScheduleRequest) ValidDays() bool {
	return daysPattern.MatchString(r.DaysOfWeek)
}

func (r ScheduleRequest) Model() model.Schedule {
	return model.Schedule{
		ContentID:  r.ContentID,
		AgencyID:   r.AgencyID,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		DaysOfWeek: r.DaysOfWeek,
		Priority:   r.Priority,
		IsActive:   r.IsActive,
	}
}

type DeviceRequest struct {
	Name       string     `json:"name"        binding:"required,max=100"`
	AgencyID   int        `json:"agency_id"   binding:"required"`
	IPAddress  string     `json:"ip_address"  binding:"required,ip"`
	MACAddress *string    `json:"mac_address" binding:"omitempty,mac"`
	Status     string     `json:"status"      binding:"omitempty,oneof=online offline error maintenance"`
	LastSeen   *time.Time `json:"last_seen"`
	Version    string     `json:"version"     binding:"max=20"`
}

func (r DeviceRequest) Model() model.Device {
	status := model.DeviceStatus(r.Status)
	if status == "" {
		status = model.DeviceOffline
	}
	version := r.Version
	if version == "" {
		version = "1.0.0"
	}
	mac := r.MACAddress
	if mac != nil && *mac == "" {
		mac = nil
	}
	return model.Device{
		Name:       strings.TrimSpace(r.Name),
		AgencyID:   r.AgencyID,
		IPAddress:  r.IPAddress,
		MACAddress: mac,
		Status:     status,
		LastSeen:   r.LastSeen,
		Version:    version,
	}
}

type StatusRequest struct {
	Status string `json:"status" binding:"required,oneof=online offline error maintenance"`
}
