package mcp

import (
	"regexp"
	"time"

	"github.com/pkg/errors"

	"github.com/ivikasavnish/scriptgen/pkg/browser"
)

var (
	ErrRecordingNotFound = errors.New("recording not found")
	ErrRecordingExists   = errors.New("recording already exists")
	ErrInvalidID         = errors.New("invalid recording ID")
	ErrInvalidEvents     = errors.New("invalid events")
)

var validIDPattern = regexp.MustCompile(`^[a-zA-Z0-9-_]+$`)

// Recording is a named, ordered list of captured events
type Recording struct {
	ID        string                  `json:"id"`
	Name      string                  `json:"name,omitempty"`
	Events    []browser.RecordedEvent `json:"events"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}

// Validate checks if the recording is valid
func (r *Recording) Validate() error {
	if !validIDPattern.MatchString(r.ID) {
		return ErrInvalidID
	}
	if r.Events == nil {
		return ErrInvalidEvents
	}
	return nil
}

// Clone creates a deep copy of the recording
func (r *Recording) Clone() *Recording {
	return &Recording{
		ID:        r.ID,
		Name:      r.Name,
		Events:    cloneEvents(r.Events),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func cloneEvents(events []browser.RecordedEvent) []browser.RecordedEvent {
	if events == nil {
		return nil
	}
	cloned := make([]browser.RecordedEvent, len(events))
	for i, e := range events {
		if e.KeyCode != nil {
			keyCode := *e.KeyCode
			e.KeyCode = &keyCode
		}
		if e.Value.Fields != nil {
			fields := make(map[string]string, len(e.Value.Fields))
			for k, v := range e.Value.Fields {
				fields[k] = v
			}
			e.Value.Fields = fields
		}
		cloned[i] = e
	}
	return cloned
}
