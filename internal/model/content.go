package model

import (
	"errors"
	"fmt"
)

type ContentType string

const (
	ContentLink  ContentType = "link"
	ContentImage ContentType = "image"
	ContentVideo ContentType = "video"
)

// duration bounds, in seconds
const (
	MinContentDuration = 5
	MaxContentDuration = 3600
)

var ErrDurationOutOfRange = errors.New("duration out of range")

type Content struct {
	ID          int         `db:"id"          json:"id,omitempty"`
	Title       string      `db:"title"       json:"title"`
	Type        ContentType `db:"type"        json:"type"`
	URL         string      `db:"url"         json:"url"`
	Description string      `db:"description" json:"description"`
	Duration    int         `db:"duration"    json:"duration"`
}

func (c Content) Key() int { return c.ID }

// Validate checks the client-enforced invariants; the backend stays authoritative.
func (c Content) Validate() error {
	if c.Duration < MinContentDuration || c.Duration > MaxContentDuration {
		return fmt.Errorf("%w: %d not in [%d,%d]", ErrDurationOutOfRange, c.Duration, MinContentDuration, MaxContentDuration)
	}
	return nil
}

func (t ContentType) Valid() bool {
	switch t {
	case ContentLink, ContentImage, ContentVideo:
		return true
	}
	return false
}
