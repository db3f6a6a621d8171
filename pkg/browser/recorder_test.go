package browser

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEvents(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		format   Format
		expected []RecordedEvent
		wantErr  bool
	}{
		{
			name:   "JSON events",
			format: FormatJSON,
			data: `[
				{"action": "click", "selector": "#a", "frameId": 3, "frameUrl": "https://f"},
				{"action": "change", "selector": "#s", "tagName": "SELECT", "value": "b"},
				{"action": "screenshot", "value": {"x": "1px", "y": 2, "width": null, "height": "4px"}}
			]`,
			expected: []RecordedEvent{
				{Action: ActionClick, Selector: "#a", FrameID: 3, FrameURL: "https://f"},
				{Action: ActionChange, Selector: "#s", TagName: TagSelect, Value: TextValue("b")},
				{Action: ActionScreenshot, Value: FieldsValue(map[string]string{"x": "1px", "y": "2", "width": "", "height": "4px"})},
			},
		},
		{
			name:   "YAML events",
			format: FormatYAML,
			data: `
- action: keydown
  selector: "#q"
  value: hello
  keyCode: 79
- action: viewport
  value:
    width: 1280
    height: 800
- action: navigate
  href: https://example.com
  value: ~
`,
			expected: []RecordedEvent{
				{Action: ActionKeydown, Selector: "#q", Value: TextValue("hello"), KeyCode: intPtr(79)},
				{Action: ActionViewport, Value: FieldsValue(map[string]string{"width": "1280", "height": "800"})},
				{Action: ActionNavigate, Href: "https://example.com"},
			},
		},
		{
			name:     "empty input",
			format:   FormatJSON,
			data:     "  \n",
			expected: nil,
		},
		{
			name:     "null document",
			format:   FormatJSON,
			data:     "null",
			expected: nil,
		},
		{
			name:    "not an array",
			format:  FormatJSON,
			data:    `{"action": "click"}`,
			wantErr: true,
		},
		{
			name:    "array value payload",
			format:  FormatJSON,
			data:    `[{"action": "click", "value": [1, 2]}]`,
			wantErr: true,
		},
		{
			name:    "nested YAML payload",
			format:  FormatYAML,
			data:    "- action: viewport\n  value:\n    width: [1]\n",
			wantErr: true,
		},
		{
			name:    "unknown format",
			format:  Format("xml"),
			data:    "<events/>",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := DecodeEvents([]byte(tt.data), tt.format)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, events)
		})
	}
}

func intPtr(i int) *int {
	return &i
}

func TestEventValue_MarshalJSON(t *testing.T) {
	data, err := json.Marshal([]RecordedEvent{
		{Action: ActionClick, Selector: "#a"},
		{Action: ActionChange, TagName: TagInput, Selector: "#b", Value: TextValue("x")},
		{Action: ActionViewport, Value: FieldsValue(map[string]string{"width": "10", "height": "20"})},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"action": "click", "selector": "#a"},
		{"action": "change", "tagName": "INPUT", "selector": "#b", "value": "x"},
		{"action": "viewport", "value": {"width": "10", "height": "20"}}
	]`, string(data))
}

func TestAction_Known(t *testing.T) {
	for _, a := range []Action{ActionClick, ActionChange, ActionKeydown, ActionSubmit, ActionNavigate, ActionScreenshot, ActionViewport} {
		assert.True(t, a.Known(), string(a))
	}
	assert.False(t, Action("hover").Known())
	assert.False(t, Action("").Known())
}

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("a/b/rec.JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = FormatFromPath("rec.yml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = FormatFromPath("rec.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported recording type")
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	r.Record(LoginEvents("https://example.com/login", "#user", "#pass", "#submit", "jo", "secret")...)
	r.Record(RecordedEvent{Action: ActionScreenshot})

	events := r.Events()
	require.Len(t, events, 5)
	assert.Equal(t, ActionNavigate, events[0].Action)
	assert.Equal(t, "https://example.com/login", events[0].Href)
	assert.Equal(t, "jo", events[1].Value.Text)
	assert.Equal(t, "#submit", events[3].Selector)

	events[0].Href = "changed"
	assert.Equal(t, "https://example.com/login", r.Events()[0].Href)

	path := filepath.Join(t.TempDir(), "recording.json")
	require.NoError(t, r.SaveToFile(path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, r.Events(), loaded)

	r.Reset()
	assert.Empty(t, r.Events())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "rec.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("- action: click\n  selector: '#a'\n"), 0644))
	events, err := LoadFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, []RecordedEvent{{Action: ActionClick, Selector: "#a"}}, events)

	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)

	_, err = LoadFile(filepath.Join(dir, "rec.csv"))
	require.Error(t, err)
}

func TestFormFillEvents(t *testing.T) {
	events := FormFillEvents(map[string]string{"#z": "last", "#a": "first"})
	require.Len(t, events, 2)
	assert.Equal(t, "#a", events[0].Selector)
	assert.Equal(t, "first", events[0].Value.Text)
	assert.Equal(t, TagInput, events[1].TagName)
	assert.Equal(t, "#z", events[1].Selector)
}
