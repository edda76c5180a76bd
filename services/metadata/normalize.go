package metadata

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// accentFamilies maps groups of accented letters to their unaccented
// ASCII equivalent. The substitution is applied case-insensitively and
// always yields the lowercase base letter.
var accentFamilies = map[string]rune{
	"áàãâä": 'a',
	"éèêë":  'e',
	"íìîï":  'i',
	"óòõôö": 'o',
	"úùûü":  'u',
	"ç":     'c',
}

var accentFold = buildAccentFold()

func buildAccentFold() map[rune]rune {
	fold := make(map[rune]rune)
	for family, base := range accentFamilies {
		for _, r := range family {
			fold[r] = base
			fold[unicode.ToUpper(r)] = base
		}
	}
	return fold
}

// stopWords is the fixed mixed Portuguese/English stop-word set dropped
// during normalization.
var stopWords = map[string]struct{}{
	"a": {}, "o": {}, "os": {}, "as": {}, "de": {}, "da": {}, "do": {},
	"das": {}, "dos": {}, "the": {}, "and": {}, "e": {},
	"um": {}, "uma": {}, "para": {}, "por": {}, "com": {}, "sem": {},
	"em": {}, "na": {}, "no": {}, "nos": {}, "nas": {},
}

var (
	nonAlnumRE       = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
	bracketRE        = regexp.MustCompile(`[\(\[\{][^\)\]\}]*[\)\]\}]`)
	tagRE            = regexp.MustCompile(`(?i)\b(temporada|season|dublado|legendado|dual|nacional|original|completo|torrent|1080p|720p|4k|s\d{1,2}e?\d{0,2})\b`)
	trailingSeasonRE = regexp.MustCompile(`(?i)\b(temporada|season)\b.*$`)
	whitespaceRE     = regexp.MustCompile(`\s+`)
	yearRE           = regexp.MustCompile(`\b(19|20)\d{2}\b`)
)

// foldAccents replaces known accented letters with their ASCII base and
// drops every other non-ASCII rune. Characters outside the fixed accent
// families are removed, never transliterated.
func foldAccents(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if base, ok := accentFold[r]; ok {
			b.WriteRune(base)
			continue
		}
		if r > unicode.MaxASCII {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// NormalizeTitle produces the canonical comparison form of a title:
// accent-folded, lowercase, punctuation collapsed to spaces, stop words
// removed and tokens rejoined with single spaces. The result is always
// ASCII and the function is idempotent.
func NormalizeTitle(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToLower(foldAccents(s))
	s = strings.ReplaceAll(s, "&", " ")
	s = strings.ReplaceAll(s, "+", " ")
	s = nonAlnumRE.ReplaceAllString(s, " ")

	tokens := strings.Fields(s)
	kept := tokens[:0]
	for _, t := range tokens {
		if _, stop := stopWords[t]; stop {
			continue
		}
		kept = append(kept, t)
	}
	return strings.Join(kept, " ")
}

// CleanQueryTitle strips bracketed segments and the known release-tag
// vocabulary (quality markers, dubbing tags, season shorthand) from a raw
// title, producing a cleaner term for outbound searches. Everything after
// a standalone "temporada"/"season" word is dropped as well.
func CleanQueryTitle(title string) string {
	t := strings.TrimSpace(title)
	t = bracketRE.ReplaceAllString(t, " ")
	t = tagRE.ReplaceAllString(t, " ")
	t = trailingSeasonRE.ReplaceAllString(t, " ")
	t = whitespaceRE.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}

// GuessYear extracts a plausible release year embedded in a title.
// Returns 0 when no 4-digit year within [1900, current year+1] is found.
func GuessYear(title string) int {
	match := yearRE.FindString(title)
	if match == "" {
		return 0
	}
	year, err := strconv.Atoi(match)
	if err != nil {
		return 0
	}
	if year < 1900 || year > time.Now().Year()+1 {
		return 0
	}
	return year
}
