package autotag

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxTagLength is the longest tag, in characters, that may be stored.
const MaxTagLength = 50

// SanitizeTags lowercases and trims each tag, drops empty or overlong tags,
// removes duplicates and returns the result sorted. It never returns nil.
func SanitizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, raw := range tags {
		tag := strings.ToLower(strings.TrimSpace(raw))
		if tag == "" || utf8.RuneCountInString(tag) > MaxTagLength {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// FormatTagsForDisplay upper-cases the first character of each tag.
func FormatTagsForDisplay(tags []string) []string {
	out := make([]string, len(tags))
	for i, tag := range tags {
		r, size := utf8.DecodeRuneInString(tag)
		if r == utf8.RuneError {
			out[i] = tag
			continue
		}
		out[i] = string(unicode.ToUpper(r)) + tag[size:]
	}
	return out
}

// Equal reports whether a and b hold the same tags, ignoring order.
// Duplicates are significant.
func Equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
