// Package seed supplies the bundled first-run data for the note store.
package seed

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/pinwall/pinwall-core/internal/domain"
)

//go:embed notes.yaml
var notesYAML []byte

var (
	parseOnce sync.Once
	parsed    []domain.Note
	parseErr  error
)

// Notes returns a fresh copy of the bundled seed notes, newest first.
// The embedded data is parsed once per process.
func Notes() ([]domain.Note, error) {
	parseOnce.Do(func() {
		if err := yaml.Unmarshal(notesYAML, &parsed); err != nil {
			parseErr = fmt.Errorf("failed to parse embedded seed notes: %w", err)
		}
	})
	if parseErr != nil {
		return nil, parseErr
	}
	out := make([]domain.Note, len(parsed))
	copy(out, parsed)
	return out, nil
}
