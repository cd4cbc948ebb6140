// Package report renders violation reports and hands them to the clipboard.
package report

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yildizm/RoadReport/internal/common"
)

const reportTemplate = "[교통법규 위반 신고]\n\n" +
	"발생 일시: %s\n" +
	"발생 장소: %s\n" +
	"위반 유형: %s\n\n" +
	"상세 내용:\n%s\n\n" +
	"위 내용에 대해 신고합니다."

// Render formats the plain-text report for a result
func Render(r common.AnalysisResult) string {
	label := r.EventName
	if label == "" {
		label = r.EventType.Label()
	}
	return fmt.Sprintf(reportTemplate, r.Timestamp, r.Location, label, r.Description)
}

// NewRecord builds the history entry for a copied report
func NewRecord(r common.AnalysisResult, text string, now time.Time) common.ReportRecord {
	label := r.EventName
	if label == "" {
		label = r.EventType.Label()
	}
	return common.ReportRecord{
		ID:          uuid.NewString(),
		ResultID:    r.ID,
		EventName:   label,
		Timestamp:   r.Timestamp,
		Location:    r.Location,
		Description: r.Description,
		Text:        text,
		CopiedAt:    now,
	}
}

// Copy renders the report for r and writes it through p. The returned notice
// is non-empty when a fallback provider has something to tell the user.
func Copy(p ClipboardProvider, r common.AnalysisResult, now time.Time) (common.ReportRecord, string, error) {
	text := Render(r)
	if !p.Write(text) {
		return common.ReportRecord{}, "", ErrClipboardUnavailable
	}
	return NewRecord(r, text, now), noticeOf(p), nil
}
