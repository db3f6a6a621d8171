package browser

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Action is the kind of a recorded user interaction
type Action string

const (
	ActionClick      Action = "click"
	ActionChange     Action = "change"
	ActionKeydown    Action = "keydown"
	ActionSubmit     Action = "submit"
	ActionNavigate   Action = "navigate"
	ActionScreenshot Action = "screenshot"
	ActionViewport   Action = "viewport"
)

// Known reports whether the action is one the generator understands
func (a Action) Known() bool {
	switch a {
	case ActionClick, ActionChange, ActionKeydown, ActionSubmit,
		ActionNavigate, ActionScreenshot, ActionViewport:
		return true
	}
	return false
}

// Tag names used to disambiguate change events
const (
	TagSelect = "SELECT"
	TagInput  = "INPUT"
)

// RecordedEvent represents a single interaction captured in the page
type RecordedEvent struct {
	Action   Action     `json:"action" yaml:"action"`
	Selector string     `json:"selector,omitempty" yaml:"selector,omitempty"`
	Value    EventValue `json:"value,omitzero" yaml:"value,omitempty"`
	Href     string     `json:"href,omitempty" yaml:"href,omitempty"`
	TagName  string     `json:"tagName,omitempty" yaml:"tagName,omitempty"`
	KeyCode  *int       `json:"keyCode,omitempty" yaml:"keyCode,omitempty"`
	FrameID  int        `json:"frameId,omitempty" yaml:"frameId,omitempty"`
	FrameURL string     `json:"frameUrl,omitempty" yaml:"frameUrl,omitempty"`
}

// EventValue holds the event payload. Depending on the action it is either
// plain text (input text, select value) or a set of named fields (screenshot
// crop region, viewport dimensions). Field values are kept in their textual form.
type EventValue struct {
	Text   string
	Fields map[string]string
}

// TextValue wraps a string payload
func TextValue(text string) EventValue {
	return EventValue{Text: text}
}

// FieldsValue wraps a structured payload
func FieldsValue(fields map[string]string) EventValue {
	return EventValue{Fields: fields}
}

// IsZero reports whether the payload is absent
func (v EventValue) IsZero() bool {
	return v.Text == "" && len(v.Fields) == 0
}

// Field returns a named field of a structured payload
func (v EventValue) Field(name string) (string, bool) {
	f, ok := v.Fields[name]
	return f, ok
}

func (v EventValue) MarshalJSON() ([]byte, error) {
	if v.Fields != nil {
		return json.Marshal(v.Fields)
	}
	return json.Marshal(v.Text)
}

func (v *EventValue) UnmarshalJSON(data []byte) error {
	*v = EventValue{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '"':
		return json.Unmarshal(data, &v.Text)
	case '{':
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return errors.Wrap(err, "invalid value payload")
		}
		v.Fields = make(map[string]string, len(raw))
		for name, field := range raw {
			v.Fields[name] = scalarText(field)
		}
		return nil
	case '[':
		return errors.New("value payload must be a string or an object")
	default:
		// numbers and booleans
		v.Text = string(data)
		return nil
	}
}

func scalarText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func (v EventValue) MarshalYAML() (interface{}, error) {
	if v.Fields != nil {
		return v.Fields, nil
	}
	return v.Text, nil
}

func (v *EventValue) UnmarshalYAML(node *yaml.Node) error {
	*v = EventValue{}
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag != "!!null" {
			v.Text = node.Value
		}
		return nil
	case yaml.MappingNode:
		v.Fields = make(map[string]string, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, val := node.Content[i], node.Content[i+1]
			if val.Kind != yaml.ScalarNode {
				return errors.Errorf("line %d: value field %q must be a scalar", val.Line, key.Value)
			}
			if val.Tag == "!!null" {
				v.Fields[key.Value] = ""
				continue
			}
			v.Fields[key.Value] = val.Value
		}
		return nil
	default:
		return errors.Errorf("line %d: value payload must be a string or a mapping", node.Line)
	}
}
