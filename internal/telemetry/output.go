package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"chosenoffset.com/weatherrun/internal/config"
)

const redacted = "REDACTED"

// Output writes run artefacts into a directory.
type Output struct {
	dir           string
	telemetryFile *os.File

	telemetryHeaderWritten bool
}

// NewOutput creates the output directory and opens telemetry.csv.
// Returns nil if dir is empty (output disabled).
func NewOutput(dir string) (*Output, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating telemetry.csv: %w", err)
	}

	return &Output{dir: dir, telemetryFile: f}, nil
}

// WriteConfig saves the effective configuration as YAML with the API key
// masked.
func (o *Output) WriteConfig(cfg *config.Config) error {
	if o == nil {
		return nil
	}
	snapshot := *cfg
	if snapshot.Weather.APIKey != "" {
		snapshot.Weather.APIKey = redacted
	}
	return snapshot.WriteYAML(filepath.Join(o.dir, "config.yaml"))
}

// WriteWindow appends a window record to telemetry.csv.
func (o *Output) WriteWindow(stats WindowStats) error {
	if o == nil {
		return nil
	}

	records := []WindowStats{stats}

	if !o.telemetryHeaderWritten {
		if err := gocsv.Marshal(records, o.telemetryFile); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
		o.telemetryHeaderWritten = true
		return nil
	}

	if err := gocsv.MarshalWithoutHeaders(records, o.telemetryFile); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (o *Output) Dir() string {
	if o == nil {
		return ""
	}
	return o.dir
}

// Close flushes and closes the output files.
func (o *Output) Close() error {
	if o == nil || o.telemetryFile == nil {
		return nil
	}
	return o.telemetryFile.Close()
}
