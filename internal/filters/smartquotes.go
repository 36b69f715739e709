package filters

import (
	"context"
	"strings"
	"unicode"
)

// SmartQuotesFilter replaces straight ASCII quotes and double hyphens
// with their typographic equivalents in text content.
type SmartQuotesFilter struct{}

// Name returns the registry name.
func (f *SmartQuotesFilter) Name() string { return "smartquotes" }

// Apply performs the replacement. Quote direction follows the preceding
// rune: an opening quote after whitespace or start-of-text, a closing
// quote otherwise.
func (f *SmartQuotesFilter) Apply(_ context.Context, content []byte) ([]byte, error) {
	var b strings.Builder
	b.Grow(len(content))

	text := string(content)
	var prev rune
	for i, r := range text {
		switch r {
		case '"':
			if opensQuote(prev) {
				b.WriteRune('“')
			} else {
				b.WriteRune('”')
			}
		case '\'':
			if opensQuote(prev) {
				b.WriteRune('‘')
			} else {
				b.WriteRune('’')
			}
		case '-':
			if prev == '-' {
				// Already emitted as part of the dash below.
				continue
			}
			if i+1 < len(text) && text[i+1] == '-' {
				b.WriteRune('—')
			} else {
				b.WriteRune('-')
			}
		default:
			b.WriteRune(r)
		}
		prev = r
	}

	return []byte(b.String()), nil
}

func opensQuote(prev rune) bool {
	return prev == 0 || unicode.IsSpace(prev) || prev == '(' || prev == '['
}
