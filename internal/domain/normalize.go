package domain

import (
	"strings"
	"unicode"
)

// Normalize converts a dictionary headword into grid form: letters only,
// uppercased. Any Unicode letter is kept (accented letters are not folded
// to A-Z); digits, spaces and punctuation are dropped. Hyphenated and apostrophized entries ("RIGHT-OF-WAY",
// "O'CLOCK") collapse to a single unbroken run of letters, matching how
// the grid stores one rune per cell.
//
// Examples:
//   - "Hello World" -> "HELLOWORLD"
//   - "Don't" -> "DONT"
//   - "Right-of-way" -> "RIGHTOFWAY"
func Normalize(s string) string {
	var result strings.Builder
	result.Grow(len(s))

	for _, r := range s {
		if unicode.IsLetter(r) {
			result.WriteRune(unicode.ToUpper(r))
		}
	}

	return result.String()
}
