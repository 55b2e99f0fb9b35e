package bot

import "unicode/utf16"

// MaxMessageLength is Telegram's limit for a single text message, counted in
// UTF-16 code units.
const MaxMessageLength = 4096

// Chunk splits s into consecutive pieces of at most max UTF-16 code units.
// Pieces never split a character and concatenate back to s. A character
// wider than max gets a piece of its own.
func Chunk(s string, max int) []string {
	if s == "" {
		return nil
	}
	if max <= 0 {
		return []string{s}
	}
	var out []string
	start, n := 0, 0
	for i, r := range s {
		w := utf16.RuneLen(r)
		if w < 0 {
			w = 1
		}
		if n > 0 && n+w > max {
			out = append(out, s[start:i])
			start, n = i, 0
		}
		n += w
	}
	return append(out, s[start:])
}
