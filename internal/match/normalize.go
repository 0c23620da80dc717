package match

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// diacriticStripper decomposes runes and drops combining marks, so
// "NÚÑEZ" compares equal to "NUNEZ".
var diacriticStripper = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// RemoveAccents strips diacritics from text. Falls back to the input
// unchanged if the transform fails.
func RemoveAccents(text string) string {
	out, _, err := transform.String(diacriticStripper, text)
	if err != nil {
		return text
	}
	return out
}

// preprocess lowercases, trims, and strips accents. Every name on either
// side of a comparison goes through this first.
func preprocess(text string) string {
	return RemoveAccents(strings.ToLower(strings.TrimSpace(text)))
}

// trimPunct removes trailing commas and periods from a token, so
// "gamma," and "s.l." reduce to their bare spellings.
func trimPunct(token string) string {
	return strings.TrimRight(token, ".,")
}

// NormalizeBusinessName normalizes a Spanish business name for matching:
// lowercase without accents, trade synonyms collapsed to canonical tokens,
// legal-entity suffix variants unified, commas removed, whitespace
// collapsed. Idempotent.
func NormalizeBusinessName(text string) string {
	cleaned := strings.ReplaceAll(preprocess(text), ",", " ")

	tokens := strings.Fields(cleaned)
	out := tokens[:0]
	for _, tok := range tokens {
		tok = trimPunct(tok)
		if tok == "" {
			continue
		}
		if canonical, ok := legalSuffixes[tok]; ok {
			tok = canonical
		}
		if canonical, ok := businessSynonyms[tok]; ok {
			tok = canonical
		}
		out = append(out, tok)
	}
	return strings.Join(out, " ")
}

// NormalizePersonalName normalizes a Spanish personal name: gendered
// given-name variants unified to the lexicographically smaller spelling,
// tokens sorted alphabetically and de-duplicated. Word order and
// grammatical gender no longer affect matching afterwards.
func NormalizePersonalName(text string) string {
	tokens := strings.Fields(preprocess(text))
	for i, tok := range tokens {
		tok = trimPunct(tok)
		if variant, ok := genderedNames[tok]; ok && variant < tok {
			tok = variant
		}
		tokens[i] = tok
	}
	sort.Strings(tokens)

	seen := make(map[string]bool, len(tokens))
	unique := tokens[:0]
	for _, tok := range tokens {
		if tok == "" || seen[tok] {
			continue
		}
		seen[tok] = true
		unique = append(unique, tok)
	}
	return strings.Join(unique, " ")
}

// IsPersonalName classifies a name as personal or business. Legal-entity
// suffixes, more than six tokens, or a business keyword all mark it as a
// business name.
func IsPersonalName(text string) bool {
	text = preprocess(text)
	tokens := strings.Fields(text)
	for _, tok := range tokens {
		tok = trimPunct(tok)
		if _, ok := legalSuffixes[tok]; ok {
			return false
		}
		switch tok {
		case "sl", "sa", "sc":
			return false
		}
	}

	if len(tokens) > 6 {
		return false
	}

	for _, kw := range businessKeywords {
		if strings.Contains(text, kw) {
			return false
		}
	}
	return true
}

// BuyingGroupKeywords returns the buying-group keywords present in the
// name as whole tokens, lowercase.
func BuyingGroupKeywords(text string) []string {
	tokenSet := make(map[string]bool)
	for _, tok := range strings.Fields(preprocess(text)) {
		tokenSet[trimPunct(tok)] = true
	}

	var matched []string
	for _, kw := range buyingGroupKeywords {
		if tokenSet[kw] {
			matched = append(matched, kw)
		}
	}
	return matched
}
