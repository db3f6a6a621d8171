package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ivikasavnish/scriptgen/pkg/browser"
)

// Run holds the state of one translation: the current frame, the blocks
// built so far, the frames awaiting declaration and the screenshot counter.
// A Run is not safe for concurrent use and must not be reused after Finish.
type Run struct {
	opts Options

	frameID int
	frame   string

	blocks      BlockStore
	frames      *FrameRegistry
	screenshots int

	finished []Block
	done     bool
}

func newRun(opts Options) *Run {
	return &Run{
		opts:        opts,
		frame:       topFrameAlias,
		frames:      NewFrameRegistry(),
		screenshots: 1,
	}
}

// Frame returns the id and alias of the frame the last event came from
func (r *Run) Frame() (int, string) {
	return r.frameID, r.frame
}

// Blocks returns the blocks translated so far, before post-processing
func (r *Run) Blocks() []Block {
	return r.blocks.Blocks()
}

// Translate consumes one event. Events the generator cannot express are
// dropped without an error.
func (r *Run) Translate(event browser.RecordedEvent) {
	r.setFrame(event.FrameID, event.FrameURL)

	switch event.Action {
	case browser.ActionClick:
		r.emit(event.Action, fmt.Sprintf("click '%s'", event.Selector))
	case browser.ActionChange:
		r.handleChange(event)
	case browser.ActionKeydown:
		r.handleKeydown(event)
	case browser.ActionSubmit:
		r.emit(event.Action, fmt.Sprintf("submit-form '%s'", event.Selector))
	case browser.ActionNavigate:
		r.handleNavigate(event)
	case browser.ActionViewport:
		r.handleViewport(event)
	case browser.ActionScreenshot:
		r.handleScreenshot(event)
	default:
		// unknown actions produce nothing
	}
}

func (r *Run) setFrame(frameID int, frameURL string) {
	if frameID != 0 {
		r.frameID = frameID
		r.frame = FrameAlias(frameID)
		r.frames.Register(frameID, frameURL)
		return
	}
	r.frameID = 0
	r.frame = topFrameAlias
}

func (r *Run) emit(kind browser.Action, texts ...string) {
	lines := make([]Line, len(texts))
	for i, text := range texts {
		lines[i] = Line{Kind: kind, Text: text}
	}
	r.blocks.Append(newBlock(r.frameID, lines...))
}

func (r *Run) handleChange(event browser.RecordedEvent) {
	switch event.TagName {
	case browser.TagSelect:
		r.emit(event.Action, fmt.Sprintf("select '%s' '%s'", event.Selector, event.Value.Text))
	case browser.TagInput:
		r.emit(event.Action, fmt.Sprintf("fill-field '%s' '%s'", event.Selector, event.Value.Text))
	}
}

// handleKeydown folds consecutive keystrokes on the same field into a single
// fill statement carrying the latest value
func (r *Run) handleKeydown(event browser.RecordedEvent) {
	if event.Value.Text == "" {
		return
	}
	block := newBlock(r.frameID, Line{
		Kind: browser.ActionKeydown,
		Text: fmt.Sprintf("fill-field '%s' '%s'", event.Selector, event.Value.Text),
	})
	r.blocks.AppendOrCollapse(event.Selector, block)
}

func (r *Run) handleNavigate(event browser.RecordedEvent) {
	texts := []string{fmt.Sprintf("go-to-page '%s'", event.Href)}
	if r.opts.WaitForNavigation {
		texts = append(texts, "wait-for-navigation "+r.frame)
	}
	r.emit(event.Action, texts...)
}

func (r *Run) handleViewport(event browser.RecordedEvent) {
	width, okW := event.Value.Field("width")
	height, okH := event.Value.Field("height")
	if !okW || !okH {
		return
	}
	r.emit(event.Action, fmt.Sprintf("viewport %s %s", width, height))
}

func (r *Run) handleScreenshot(event browser.RecordedEvent) {
	n := r.screenshots
	r.screenshots++

	if region, ok := cropRegion(event.Value); ok {
		r.emit(event.Action, fmt.Sprintf("screenshot %s %s %s %s 'Image %d'",
			region[2], region[3], region[0], region[1], n))
		return
	}
	r.emit(event.Action, fmt.Sprintf("screenshot 'Image %d'", n))
}

var regionFields = [...]string{"x", "y", "width", "height"}

// cropRegion returns x, y, width and height with any px unit removed. All
// four must be present and numeric.
func cropRegion(value browser.EventValue) ([4]string, bool) {
	var region [4]string
	for i, name := range regionFields {
		raw, ok := value.Field(name)
		if !ok {
			return region, false
		}
		v := strings.TrimSuffix(strings.TrimSpace(raw), "px")
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return region, false
		}
		region[i] = v
	}
	return region, true
}
