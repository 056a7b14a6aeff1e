package lexicon

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

var numberedSenseRe = regexp.MustCompile(`\.\s+\d+\b`)

// extractClue runs the dictionary-specific cleaning pipeline of spec
// section 4.1 "Clue extraction", in the order specified there.
func extractClue(definition string, rules CleaningRules) string {
	s := definition

	s = stripRepeatedPrefixes(s, rules.StyleLabels)
	s = stripEmDashPOSPrefix(s)
	s = stripLeadingPOSMarker(s, rules.POSMarkers)
	s = stripLeadingParenthetical(s, 25)
	s = stripLeadingNumberedSense(s)
	s = stripRepeatedPrefixes(s, rules.UsageLabels)
	s = stripLeadingParentheticalContaining(s, []string{"foll", "usu", "often"})
	s = truncateAtSecondarySense(s)
	s = truncateAtNextNumberedSense(s)
	s = exciseParentheticals(s, 4)
	s = keepBeforeSemicolon(s)
	s = stripEtymologyTail(s)
	s = stripTrailingPOSTail(s, rules.POSMarkers)
	s = truncateAtLetterEnumeration(s)
	s = stripLeadingSingleLetterEnumerator(s)
	s = lowerThenCapitalize(s)
	s = stripReappearingPOSPrefix(s, rules.POSMarkers)

	return strings.TrimSpace(s)
}

func sortedByLengthDesc(items []string) []string {
	out := make([]string, len(items))
	copy(out, items)
	sort.Slice(out, func(i, j int) bool { return len(out[i]) > len(out[j]) })
	return out
}

// stripRepeatedPrefixes strips any number of leading labels from the
// given set (longest first, so "n.pl." is tried before "n.").
func stripRepeatedPrefixes(s string, labels []string) string {
	ordered := sortedByLengthDesc(labels)
	for {
		matched := false
		for _, label := range ordered {
			if strings.HasPrefix(s, label) {
				s = s[len(label):]
				matched = true
				break
			}
		}
		if !matched {
			return s
		}
	}
}

// stripEmDashPOSPrefix drops a leading em-dash (or double hyphen)
// followed by a part-of-speech token terminated by ". ".
func stripEmDashPOSPrefix(s string) string {
	for _, prefix := range []string{"—", "--"} {
		if !strings.HasPrefix(s, prefix) {
			continue
		}
		rest := s[len(prefix):]
		if idx := strings.Index(rest, ". "); idx >= 0 && idx <= 20 {
			return rest[idx+2:]
		}
	}
	return s
}

func stripLeadingPOSMarker(s string, markers []string) string {
	for _, m := range sortedByLengthDesc(markers) {
		if strings.HasPrefix(s, m+" ") {
			return s[len(m)+1:]
		}
		if s == m {
			return ""
		}
	}
	return s
}

// stripLeadingParenthetical drops a leading "(...)" whose contents are at
// most maxLen characters.
func stripLeadingParenthetical(s string, maxLen int) string {
	if !strings.HasPrefix(s, "(") {
		return s
	}
	idx := strings.Index(s, ")")
	if idx <= 0 || idx-1 > maxLen {
		return s
	}
	return strings.TrimSpace(s[idx+1:])
}

// stripLeadingNumberedSense takes the text after a leading digit run (and
// its trailing delimiter) as the first numbered sense.
func stripLeadingNumberedSense(s string) string {
	if s == "" || !unicode.IsDigit(rune(s[0])) {
		return s
	}
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	for i < len(s) && (s[i] == ' ' || s[i] == '.' || s[i] == ':') {
		i++
	}
	return s[i:]
}

func stripLeadingParentheticalContaining(s string, keywords []string) string {
	if !strings.HasPrefix(s, "(") {
		return s
	}
	idx := strings.Index(s, ")")
	if idx <= 0 {
		return s
	}
	inner := strings.ToLower(s[1:idx])
	for _, kw := range keywords {
		if strings.Contains(inner, kw) {
			return strings.TrimSpace(s[idx+1:])
		}
	}
	return s
}

func truncateAtSecondarySense(s string) string {
	if idx := strings.Index(s, " —"); idx >= 0 {
		return s[:idx]
	}
	if idx := strings.Index(s, " --"); idx >= 0 {
		return s[:idx]
	}
	return s
}

func truncateAtNextNumberedSense(s string) string {
	if loc := numberedSenseRe.FindStringIndex(s); loc != nil {
		return s[:loc[0]]
	}
	return s
}

// exciseParentheticals removes up to maxCount "(...)" segments from
// anywhere in the string, collapsing the resulting double space.
func exciseParentheticals(s string, maxCount int) string {
	for i := 0; i < maxCount; i++ {
		start := strings.Index(s, "(")
		if start < 0 {
			break
		}
		end := strings.Index(s[start:], ")")
		if end < 0 {
			break
		}
		end += start
		s = s[:start] + s[end+1:]
		s = strings.Join(strings.Fields(s), " ")
	}
	return s
}

func keepBeforeSemicolon(s string) string {
	if idx := strings.Index(s, "; "); idx >= 0 {
		return s[:idx]
	}
	return s
}

// stripEtymologyTail removes a trailing "[...]" etymology bracket.
func stripEtymologyTail(s string) string {
	start := strings.LastIndex(s, "[")
	if start < 0 {
		return s
	}
	rel := strings.Index(s[start:], "]")
	if rel < 0 {
		return s
	}
	end := start + rel
	return strings.TrimSpace(s[:start] + s[end+1:])
}

func stripTrailingPOSTail(s string, markers []string) string {
	trimmed := strings.TrimSpace(s)
	for _, m := range sortedByLengthDesc(markers) {
		if strings.HasSuffix(trimmed, " "+m) {
			return strings.TrimSuffix(trimmed, " "+m)
		}
	}
	return s
}

var letterEnumerationMarkers = []string{". a ", ". b ", ". c ", ". d ", ". e "}

func truncateAtLetterEnumeration(s string) string {
	best := -1
	for _, marker := range letterEnumerationMarkers {
		if idx := strings.Index(s, marker); idx >= 0 && (best < 0 || idx < best) {
			best = idx
		}
	}
	if best < 0 {
		return s
	}
	return s[:best]
}

// stripLeadingSingleLetterEnumerator strips a lone lowercase letter used
// as a bullet marker, e.g. a leftover "b " from a list the earlier steps
// didn't fully truncate. "a" is excluded: it is almost always the
// indefinite article, not an enumerator.
func stripLeadingSingleLetterEnumerator(s string) string {
	if len(s) >= 2 && s[1] == ' ' && s[0] >= 'b' && s[0] <= 'e' {
		return s[2:]
	}
	return s
}

func lowerThenCapitalize(s string) string {
	s = strings.ToLower(s)
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// stripReappearingPOSPrefix removes a part-of-speech marker that survived
// all earlier steps and got capitalized along with the rest of the clue.
func stripReappearingPOSPrefix(s string, markers []string) string {
	for _, m := range sortedByLengthDesc(markers) {
		cap := strings.ToUpper(m[:1]) + m[1:]
		if strings.HasPrefix(s, cap+" ") {
			rest := s[len(cap)+1:]
			return lowerThenCapitalize(strings.ToLower(rest[:1]) + rest[1:])
		}
	}
	return s
}

// admissible implements spec section 4.1's admissibility filter.
func admissible(word, definition, clue string) bool {
	if len(word) < 3 || len(word) > 15 {
		return false
	}
	if !isAllLetters(word) {
		return false
	}

	defLower := strings.ToLower(definition)
	if strings.HasPrefix(defLower, "prefix") || strings.HasPrefix(defLower, "suffix") ||
		strings.HasPrefix(defLower, "abbr.") || strings.Contains(defLower, "abbr. ") {
		return false
	}

	if clue == "Definition not available" {
		return false
	}
	if len(clue) < 10 {
		return false
	}
	if strings.Contains(strings.ToLower(clue), strings.ToLower(word)) {
		return false
	}
	if strings.HasPrefix(clue, "of ") {
		return false
	}
	if strings.Contains(clue, ") ") {
		return false
	}
	if strings.HasSuffix(clue, ")") {
		return false
	}
	if strings.Contains(clue, "*") {
		return false
	}

	return true
}
