// Package lexicon parses a raw English dictionary text file into the set
// of admissible crossword words and a word -> clue map, per spec section
// 4.1. Clue extraction is a heuristic pipeline tuned to one dictionary's
// formatting conventions (style labels, part-of-speech abbreviations,
// numbered senses); a different source file can supply a different
// CleaningRules without touching this package's code, resolving the
// "clue-extraction heuristics are dictionary-specific" design question.
package lexicon

import (
	"bufio"
	"io"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"crossword/internal/domain"
)

// Stats summarizes the admitted word list.
type Stats struct {
	WordCount     int
	AvgWordLength float64
	MaxWordLength int
}

// CleaningRules holds the tunable vocabulary the clue-extraction pipeline
// strips. DefaultCleaningRules matches spec section 4.1 exactly.
type CleaningRules struct {
	StyleLabels  []string
	POSMarkers   []string
	UsageLabels  []string
	CrossRefs    []string
}

// DefaultCleaningRules returns the rule set spec section 4.1 specifies.
func DefaultCleaningRules() CleaningRules {
	return CleaningRules{
		StyleLabels: []string{"literary ", "formal ", "archaic "},
		POSMarkers: []string{
			"n.pl.", "v.tr.", "v.intr.", "attrib. adj.",
			"n.", "v.", "adj.", "adv.", "prep.", "conj.",
		},
		UsageLabels: []string{"colloq.", "esp.", "usu."},
		CrossRefs:   []string{"var. of", "variant of", "see ", "= ", "of *"},
	}
}

// Lexicon is an immutable, concurrency-safe word -> clue store built once
// from a dictionary file and shared read-only across generation jobs.
type Lexicon struct {
	clues    map[string]string
	words    []string
	byLength map[int][]string
	stats    Stats
}

// Load parses a raw dictionary file. Lines whose first non-whitespace
// character is not an uppercase letter are ignored (spec section 6,
// "External interfaces / Lexicon input file").
func Load(r io.Reader, rules CleaningRules) (*Lexicon, error) {
	lex := &Lexicon{
		clues:    make(map[string]string),
		byLength: make(map[int][]string),
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		lex.ingestLine(line, rules)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	lex.finalize()
	return lex, nil
}

func (l *Lexicon) ingestLine(line string, rules CleaningRules) {
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return
	}
	first := []rune(trimmed)[0]
	if !unicode.IsUpper(first) || !unicode.IsLetter(first) {
		return
	}

	idx := strings.Index(line, "  ")
	if idx < 0 {
		return
	}
	rawHeadword := strings.TrimSpace(line[:idx])
	definition := norm.NFC.String(strings.TrimSpace(line[idx+2:]))
	if definition == "" {
		return
	}

	if strings.HasSuffix(rawHeadword, ".") {
		return
	}

	headword := normalizeHeadword(rawHeadword)
	if headword == "" || !isAllLetters(headword) {
		return
	}

	defLower := strings.ToLower(definition)
	for _, ref := range rules.CrossRefs {
		if strings.HasPrefix(defLower, strings.ToLower(ref)) {
			return
		}
	}

	clue := extractClue(definition, rules)

	if !admissible(headword, definition, clue) {
		return
	}

	if _, exists := l.clues[headword]; exists {
		return
	}
	l.clues[headword] = clue
	l.words = append(l.words, headword)
	l.byLength[len(headword)] = append(l.byLength[len(headword)], headword)
}

func (l *Lexicon) finalize() {
	sort.Strings(l.words)
	for _, bucket := range l.byLength {
		sort.Strings(bucket)
	}

	l.stats.WordCount = len(l.words)
	if len(l.words) == 0 {
		return
	}
	total := 0
	for _, w := range l.words {
		if len(w) > l.stats.MaxWordLength {
			l.stats.MaxWordLength = len(w)
		}
		total += len(w)
	}
	l.stats.AvgWordLength = float64(total) / float64(len(l.words))
}

// normalizeHeadword removes hyphens and trailing ASCII digits, then
// uppercases, per spec section 4.1 "Parsing rules".
func normalizeHeadword(s string) string {
	s = strings.ReplaceAll(s, "-", "")
	s = strings.TrimRight(s, "0123456789")
	return domain.Normalize(s)
}

func isAllLetters(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return len(s) > 0
}

// Words returns every admitted headword, sorted.
func (l *Lexicon) Words() []string {
	return l.words
}

// WordsByLength returns the admitted headwords bucketed by length, for
// the word-selection heuristic (internal/wordselect).
func (l *Lexicon) WordsByLength() map[int][]string {
	return l.byLength
}

// Size returns the number of admitted words.
func (l *Lexicon) Size() int {
	return len(l.words)
}

// Clue returns the cleaned clue text for word. Unknown words return the
// fixed placeholder "Definition not available"; Clue never errors.
func (l *Lexicon) Clue(word string) string {
	if c, ok := l.clues[word]; ok {
		return c
	}
	return "Definition not available"
}

// Contains reports whether word was admitted into the lexicon.
func (l *Lexicon) Contains(word string) bool {
	_, ok := l.clues[word]
	return ok
}

// Stats summarizes the admitted word list (word count, average and
// maximum word length).
func (l *Lexicon) Stats() Stats {
	return l.stats
}
