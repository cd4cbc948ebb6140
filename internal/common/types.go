package common

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Page names one of the closed set of application views
type Page string

const (
	PageLanding Page = "landing"
	PageUpload  Page = "upload"
	PageResults Page = "results"
	PageProfile Page = "profile"
)

// Pages returns all pages in navigation order
func Pages() []Page {
	return []Page{PageLanding, PageUpload, PageResults, PageProfile}
}

// ParsePage resolves a page name
func ParsePage(name string) (Page, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, p := range Pages() {
		if string(p) == name {
			return p, true
		}
	}
	return "", false
}

// PendingFile is a video waiting to be submitted for analysis
type PendingFile struct {
	Name      string `json:"name"`
	Path      string `json:"path"`
	Size      int64  `json:"size"`
	MediaType string `json:"media_type"`
}

// SizeMB returns the file size in mebibytes
func (f PendingFile) SizeMB() float64 {
	return float64(f.Size) / (1024 * 1024)
}

// IsVideoMediaType reports whether a media type denotes video content
func IsVideoMediaType(mediaType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(mediaType)), "video/")
}

// Severity is the ordinal classification of a detected violation
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
)

// String methods for Severity
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	default:
		return "low"
	}
}

// ParseSeverity parses a severity name, unknown values map to low
func ParseSeverity(s string) Severity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return SeverityHigh
	case "medium":
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// MarshalJSON encodes the severity as its name
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts the severity name
func (s *Severity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("severity must be a string: %w", err)
	}
	*s = ParseSeverity(name)
	return nil
}

// AnalysisResult is one detected violation returned by the analysis service
type AnalysisResult struct {
	ID          string        `json:"id"`
	Thumbnail   string        `json:"thumbnail"`
	VideoURL    string        `json:"videoUrl"`
	Timestamp   string        `json:"timestamp"`
	Location    string        `json:"location"`
	EventType   EventCategory `json:"eventType"`
	EventName   string        `json:"eventName"`
	Description string        `json:"description"`
	Severity    Severity      `json:"severity"`
}

// UnmarshalJSON tolerates numeric ids and fills a missing event label from the catalog
func (r *AnalysisResult) UnmarshalJSON(data []byte) error {
	type plain AnalysisResult
	var raw struct {
		plain
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = AnalysisResult(raw.plain)
	r.ID = ""
	if id := bytes.TrimSpace(raw.ID); len(id) > 0 && !bytes.Equal(id, []byte("null")) {
		var s string
		if json.Unmarshal(id, &s) == nil {
			r.ID = s
		} else {
			r.ID = string(id)
		}
	}

	if r.EventName == "" {
		r.EventName = r.EventType.Label()
	}
	return nil
}

// ReportRecord is a violation report copied during the session
type ReportRecord struct {
	ID          string    `json:"id"`
	ResultID    string    `json:"result_id"`
	EventName   string    `json:"event_name"`
	Timestamp   string    `json:"timestamp"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Text        string    `json:"text"`
	CopiedAt    time.Time `json:"copied_at"`
}
