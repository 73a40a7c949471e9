package model

import (
	"errors"
	"fmt"
)

const (
	MinSchedulePriority = 1
	MaxSchedulePriority = 10
)

var ErrPriorityOutOfRange = errors.New("priority out of range")

// Schedule binds one Content to one Agency for a daily time window on a subset of weekdays.
// DaysOfWeek travels as comma-joined weekday codes, 0 = Sunday ("1,3,5").
type Schedule struct {
	ID         int    `db:"id"           json:"id,omitempty"`
	ContentID  int    `db:"content_id"   json:"content_id"`
	AgencyID   int    `db:"agency_id"    json:"agency_id"`
	StartTime  string `db:"start_time"   json:"start_time"`
	EndTime    string `db:"end_time"     json:"end_time"`
	DaysOfWeek string `db:"days_of_week" json:"days_of_week"`
	Priority   int    `db:"priority"     json:"priority"`
	IsActive   bool   `db:"is_active"    json:"is_active"`
}

func (s Schedule) Key() int { return s.ID }

func (s Schedule) Validate() error {
	if s.Priority < MinSchedulePriority || s.Priority > MaxSchedulePriority {
		return fmt.Errorf("%w: %d not in [%d,%d]", ErrPriorityOutOfRange, s.Priority, MinSchedulePriority, MaxSchedulePriority)
	}
	return nil
}
