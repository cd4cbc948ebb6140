package intake

import (
	"errors"
	"fmt"

	"github.com/ncruces/zenity"
)

// ErrPickCanceled is returned when the user dismisses the picker
var ErrPickCanceled = errors.New("file selection canceled")

// Picker selects files interactively
type Picker interface {
	Pick() ([]string, error)
}

// NativePicker opens the platform file dialog filtered to video files
type NativePicker struct {
	title    string
	patterns []string
}

// NewNativePicker creates a picker that offers the resolver's video patterns
func NewNativePicker(r *Resolver) *NativePicker {
	return &NativePicker{
		title:    "Select dashcam videos",
		patterns: r.Patterns(),
	}
}

// Pick shows the dialog and returns the chosen paths
func (p *NativePicker) Pick() ([]string, error) {
	selected, err := zenity.SelectFileMultiple(
		zenity.Title(p.title),
		zenity.FileFilters{
			{
				Name:     "Video files",
				Patterns: p.patterns,
			},
		},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil, ErrPickCanceled
		}
		return nil, fmt.Errorf("file picker failed: %w", err)
	}
	return selected, nil
}
