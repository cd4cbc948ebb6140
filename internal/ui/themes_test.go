package ui

import (
	"testing"

	"github.com/yildizm/RoadReport/internal/common"
)

func TestSetThemeByName(t *testing.T) {
	defer SetTheme(&DefaultTheme)

	for _, name := range GetAvailableThemes() {
		if !SetThemeByName(name) {
			t.Errorf("SetThemeByName(%q) = false", name)
		}
		if GetTheme().Name != name {
			t.Errorf("theme = %q, want %q", GetTheme().Name, name)
		}
	}
	if SetThemeByName("neon") {
		t.Error("unknown theme should be rejected")
	}
}

func TestSeverityColor(t *testing.T) {
	theme := DefaultTheme
	tests := []struct {
		sev  common.Severity
		want string
	}{
		{common.SeverityHigh, theme.SeverityHigh.Dark},
		{common.SeverityMedium, theme.SeverityMedium.Dark},
		{common.SeverityLow, theme.SeverityLow.Dark},
		{common.Severity(42), theme.SeverityLow.Dark},
	}
	for _, tt := range tests {
		if got := theme.SeverityColor(tt.sev).Dark; got != tt.want {
			t.Errorf("SeverityColor(%v) = %s, want %s", tt.sev, got, tt.want)
		}
	}
}

func TestPaletteFollowsTheme(t *testing.T) {
	p := HighContrastTheme.Palette()
	if p.Primary != HighContrastTheme.Primary || p.Body != HighContrastTheme.Foreground {
		t.Error("palette should carry the theme colors")
	}
}
