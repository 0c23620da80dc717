// Package sku resolves free-text product attributes to canonical codes and
// composes the fixed 13-character product SKU.
package sku

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/ohmyshower/order-cli/internal/match"
)

// DefaultThreshold is the minimum similarity for a family or color match.
const DefaultThreshold = 0.6

// Family is a canonical product family with its 3-character SKU prefix.
type Family struct {
	Description string
	Prefix      string
}

// Color is a canonical color with its 4-character code.
type Color struct {
	Description string
	Code        string
}

// colorSynonyms maps colloquial color names from emails to the canonical
// descriptions the registry uses. Grey shades are the usual offenders.
var colorSynonyms = map[string]string{
	"gris claro":  "gris perla",
	"gris clara":  "gris perla",
	"gris light":  "gris perla",
	"light grey":  "gris perla",
	"light gray":  "gris perla",
	"gris oscuro": "gris",
	"gris oscura": "gris",
	"dark grey":   "gris",
	"dark gray":   "gris",
}

// MatchDetails records the outcome of a fuzzy lookup for diagnostics.
type MatchDetails struct {
	Input     string
	Closest   string
	BestScore float64
	Threshold float64
}

// ResolveFamily fuzzy-matches a family description against the registry
// list. Returns the best record and ok when it clears the threshold;
// MatchDetails is populated either way.
func ResolveFamily(text string, families []Family, threshold float64) (Family, MatchDetails, bool) {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	needle := strings.ToLower(strings.TrimSpace(text))
	det := MatchDetails{Input: text, Threshold: threshold}

	var best Family
	for _, f := range families {
		score := match.SequenceRatio(needle, strings.ToLower(strings.TrimSpace(f.Description)))
		if score > det.BestScore {
			det.BestScore = score
			det.Closest = f.Description
			best = f
		}
	}
	return best, det, det.BestScore >= threshold
}

// ResolveColor fuzzy-matches a color description against the registry list.
// A 4-digit numeric value is a RAL code and is used directly without
// matching; known colloquial synonyms are canonicalized first.
func ResolveColor(text string, colors []Color, threshold float64) (string, MatchDetails, bool) {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	trimmed := strings.TrimSpace(text)
	if isRALCode(trimmed) {
		return trimmed, MatchDetails{Input: text, Closest: trimmed, BestScore: 1.0, Threshold: threshold}, true
	}

	needle := strings.ToLower(trimmed)
	if canonical, ok := colorSynonyms[needle]; ok {
		needle = canonical
	}
	det := MatchDetails{Input: text, Threshold: threshold}

	var bestCode string
	for _, c := range colors {
		score := match.SequenceRatio(needle, strings.ToLower(strings.TrimSpace(c.Description)))
		if score > det.BestScore {
			det.BestScore = score
			det.Closest = c.Description
			bestCode = c.Code
		}
	}
	return bestCode, det, det.BestScore >= threshold
}

func isRALCode(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Compose builds the 13-character SKU: family prefix (3), longer dimension
// (3, zero-padded), shorter dimension (3, zero-padded), color code (4).
// Shower trays have no intrinsic orientation, so the larger dimension
// always comes first regardless of which field it arrived in.
func Compose(familyPrefix string, length, width int, colorCode string) (string, error) {
	if width > length {
		length, width = width, length
	}

	s := fmt.Sprintf("%s%03d%03d%s", familyPrefix, length, width, colorCode)
	if len(s) != 13 {
		return "", eris.Errorf("sku: composed code %q is %d chars, want 13", s, len(s))
	}
	return s, nil
}
