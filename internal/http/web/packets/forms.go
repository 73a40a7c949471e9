// Package packets holds the HTML form bodies posted to the console.
package packets

import (
	"strings"

	"github.com/Nixie-Tech-LLC/signage-console/internal/console"
	"github.com/Nixie-Tech-LLC/signage-console/internal/model"
)

type LoginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
	Next     string `form:"next"`
}

type RegisterForm struct {
	Username string `form:"username"`
	Email    string `form:"email"`
	FullName string `form:"full_name"`
	Password string `form:"password"`
}

func (f RegisterForm) Registration() model.Registration {
	return model.Registration{
		Username: strings.TrimSpace(f.Username),
		Email:    strings.TrimSpace(f.Email),
		FullName: strings.TrimSpace(f.FullName),
		Password: f.Password,
	}
}

type AgencyForm struct {
	Name               string `form:"name"`
	IPAddress          string `form:"ip_address"`
	Orientation        string `form:"orientation"`
	HibernationEnabled bool   `form:"hibernation_enabled"`
	HibernationStart   string `form:"hibernation_start"`
	HibernationEnd     string `form:"hibernation_end"`
}

func (f AgencyForm) Console() console.AgencyForm {
	return console.AgencyForm{
		Name:               f.Name,
		IPAddress:          f.IPAddress,
		Orientation:        model.Orientation(f.Orientation),
		HibernationEnabled: f.HibernationEnabled,
		HibernationStart:   f.HibernationStart,
		HibernationEnd:     f.HibernationEnd,
	}
}

// ContentForm is also posted to the upload side-channel; ID is set while editing.
type ContentForm struct {
	ID          int    `form:"id"`
	Title       string `form:"title"`
	Type        string `form:"type"`
	URL         string `form:"url"`
	Description string `form:"description"`
	Duration    int    `form:"duration"`
}

func (f ContentForm) Console() console.ContentForm {
	return console.ContentForm{
		Title:       f.Title,
		Type:        model.ContentType(f.Type),
		URL:         f.URL,
		Description: f.Description,
		Duration:    f.Duration,
	}
}

type ScheduleForm struct {
	ContentID int      `form:"content_id"`
	AgencyID  int      `form:"agency_id"`
	StartTime string   `form:"start_time"`
	EndTime   string   `form:"end_time"`
	Days      []string `form:"days_of_week"`
	Priority  int      `form:"priority"`
	IsActive  bool     `form:"is_active"`
}

func (f ScheduleForm) Console() console.ScheduleForm {
	return console.ScheduleForm{
		ContentID: f.ContentID,
		AgencyID:  f.AgencyID,
		StartTime: f.StartTime,
		EndTime:   f.EndTime,
		Days:      console.DaysOf(f.Days...),
		Priority:  f.Priority,
		IsActive:  f.IsActive,
	}
}

type DeviceForm struct {
	Name       string `form:"name"`
	AgencyID   int    `form:"agency_id"`
	IPAddress  string `form:"ip_address"`
	MACAddress string `form:"mac_address"`
	Status     string `form:"status"`
	Version    string `form:"version"`
}

// Console keeps lastSeen from the record being edited; the form never changes it.
func (f DeviceForm) Console(current console.DeviceForm) console.DeviceForm {
	return console.DeviceForm{
		Name:       f.Name,
		AgencyID:   f.AgencyID,
		IPAddress:  f.IPAddress,
		MACAddress: f.MACAddress,
		Status:     model.DeviceStatus(f.Status),
		Version:    f.Version,
		LastSeen:   current.LastSeen,
	}
}

type StatusForm struct {
	Status string `form:"status"`
}

// ConfirmForm answers a delete confirmation page.
type ConfirmForm struct {
	Confirm string `form:"confirm"`
}

func (f ConfirmForm) Accepted() bool { return f.Confirm == "yes" }
