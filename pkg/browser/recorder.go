package browser

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Format identifies how a recording is serialized
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the recording format from the file extension
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.Errorf("unsupported recording type: %s", ext)
	}
}

// DecodeEvents parses a recording. Empty input and a null document both yield no events.
func DecodeEvents(data []byte, format Format) ([]RecordedEvent, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var events []RecordedEvent
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &events); err != nil {
			return nil, errors.Wrap(err, "failed to parse JSON recording")
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &events); err != nil {
			return nil, errors.Wrap(err, "failed to parse YAML recording")
		}
	default:
		return nil, errors.Errorf("unsupported recording format: %q", format)
	}
	return events, nil
}

// LoadFile reads a recording from disk, choosing the format by extension
func LoadFile(path string) ([]RecordedEvent, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read recording")
	}
	return DecodeEvents(data, format)
}

// Recorder collects recorded events in arrival order. It is not safe for
// concurrent use.
type Recorder struct {
	events []RecordedEvent
}

func NewRecorder() *Recorder {
	return &Recorder{
		events: make([]RecordedEvent, 0),
	}
}

func (r *Recorder) Record(events ...RecordedEvent) {
	r.events = append(r.events, events...)
}

// Events returns a copy of everything recorded so far
func (r *Recorder) Events() []RecordedEvent {
	events := make([]RecordedEvent, len(r.events))
	copy(events, r.events)
	return events
}

func (r *Recorder) Reset() {
	r.events = r.events[:0]
}

// SaveToFile saves the recorded events to a JSON file
func (r *Recorder) SaveToFile(filename string) error {
	data, err := json.MarshalIndent(r.events, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode recording")
	}
	return errors.Wrap(os.WriteFile(filename, data, 0644), "failed to write recording")
}
