// pkg/recordprocessor/processor.go
package recordprocessor

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gosimple/slug"
	"github.com/maruel/natural"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/ivikasavnish/scriptgen/pkg/browser"
)

// Processor uploads recording files to the recording server
type Processor struct {
	client *Client
	logger *zap.Logger
}

// ProcessorOption defines options for creating a new Processor
type ProcessorOption func(*Processor)

// WithLogger sets a custom logger for the processor
func WithLogger(logger *zap.Logger) ProcessorOption {
	return func(p *Processor) {
		p.logger = logger
	}
}

// NewProcessor creates a new recording processor
func NewProcessor(baseURL string, opts ...ProcessorOption) *Processor {
	p := &Processor{
		client: NewClient(baseURL),
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Client returns the server client used by the processor
func (p *Processor) Client() *Client {
	return p.client
}

// RecordingID derives the recording ID from a file name
func RecordingID(filePath string) string {
	return slug.Make(strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath)))
}

// ProcessFile uploads a single recording file and returns its recording ID
func (p *Processor) ProcessFile(filePath string) (string, error) {
	p.logger.Debug("Processing file", zap.String("file", filePath))

	events, err := browser.LoadFile(filePath)
	if err != nil {
		return "", errors.Wrapf(err, "failed to process %s", filePath)
	}

	id := RecordingID(filePath)
	if err := p.client.CreateRecording(id, filepath.Base(filePath), events); err != nil {
		return "", errors.Wrapf(err, "failed to upload %s", filePath)
	}

	p.logger.Info("Uploaded recording", zap.String("file", filePath), zap.String("id", id), zap.Int("events", len(events)))
	return id, nil
}

// ProcessDirectory uploads every recording in a directory. Files are handled
// in natural name order; a failing file does not stop the others.
func (p *Processor) ProcessDirectory(dirPath string) ([]string, error) {
	p.logger.Debug("Processing directory", zap.String("dir", dirPath))

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read directory")
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Slice(names, func(i, j int) bool {
		return natural.Less(names[i], names[j])
	})

	var (
		ids  []string
		errs error
	)
	for _, name := range names {
		filePath := filepath.Join(dirPath, name)
		id, err := p.ProcessFile(filePath)
		if err != nil {
			p.logger.Warn("Error processing file", zap.String("file", filePath), zap.Error(err))
			errs = multierr.Append(errs, err)
			continue
		}
		ids = append(ids, id)
	}

	return ids, errs
}
