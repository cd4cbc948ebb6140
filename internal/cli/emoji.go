package cli

import (
	"github.com/yildizm/RoadReport/internal/common"
	"github.com/yildizm/RoadReport/internal/emoji"
)

// GetEmoji is a wrapper for the shared emoji package
func GetEmoji(key string) string {
	return emoji.GetEmoji(key)
}

// GetCategoryEmoji returns the emoji of a catalog entry
func GetCategoryEmoji(c common.CategoryInfo) string {
	return GetEmoji(c.Emoji)
}

// GetStatusEmoji returns the pass/fail marker for check output
func GetStatusEmoji(ok bool) string {
	if ok {
		return GetEmoji("success")
	}
	return GetEmoji("error")
}
