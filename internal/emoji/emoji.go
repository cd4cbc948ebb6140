package emoji

// EmojiMap holds emoji and fallback mappings
var emojiMap = map[string][2]string{
	// [emoji, fallback]
	"error":      {"❌", "[ERR]"},
	"warning":    {"⚠️", "[WRN]"},
	"info":       {"ℹ️", "[INF]"},
	"success":    {"✅", "[OK]"},
	"upload":     {"📤", "[UP]"},
	"video":      {"🎬", "[VID]"},
	"results":    {"📊", "[RES]"},
	"profile":    {"👤", "[ME]"},
	"home":       {"🏠", "[HOME]"},
	"copy":       {"📋", "[CPY]"},
	"check":      {"✔", "[x]"},
	"unchecked":  {"▫", "[ ]"},
	"play":       {"▶", "[>]"},
	"location":   {"📍", "[LOC]"},
	"clock":      {"🕒", "[T]"},
	"sparkles":   {"✨", "[*]"},
	"help":       {"❓", "[?]"},
	"door":       {"🚪", "[EXIT]"},
	"speeding":   {"🚀", "[SPD]"},
	"signal":     {"🚦", "[SIG]"},
	"lane":       {"🚗", "[LAN]"},
	"parking":    {"🅿️", "[PRK]"},
	"turn":       {"↩️", "[TRN]"},
	"pedestrian": {"🚶", "[PED]"},
}

var emojiDisabled bool

// SetEmojiDisabled sets the global emoji disabled state
func SetEmojiDisabled(disabled bool) {
	emojiDisabled = disabled
}

// IsEmojiDisabled returns the current emoji disabled state
func IsEmojiDisabled() bool {
	return emojiDisabled
}

// GetEmoji returns emoji or fallback based on no-emoji setting
func GetEmoji(key string) string {
	if mapping, exists := emojiMap[key]; exists {
		if emojiDisabled {
			return mapping[1]
		}
		return mapping[0]
	}
	return "[?]"
}
