package match

import (
	"sort"
	"strings"
)

// TokenSetRatio computes an order-insensitive similarity between two
// whitespace-tokenized strings. Tokens are de-duplicated and split into the
// shared intersection and the per-side remainders; the score is the best
// sequence ratio among the three pairings. A string whose tokens are a
// subset of the other's scores 1.0, which is what makes short candidate
// names match their longer registry spellings.
func TokenSetRatio(a, b string) float64 {
	ta := uniqueSortedTokens(a)
	tb := uniqueSortedTokens(b)

	if len(ta) == 0 && len(tb) == 0 {
		return 1.0
	}
	if len(ta) == 0 || len(tb) == 0 {
		return 0.0
	}

	inBoth := make([]string, 0, len(ta))
	onlyA := make([]string, 0, len(ta))
	setB := make(map[string]bool, len(tb))
	for _, t := range tb {
		setB[t] = true
	}
	for _, t := range ta {
		if setB[t] {
			inBoth = append(inBoth, t)
		} else {
			onlyA = append(onlyA, t)
		}
	}
	setA := make(map[string]bool, len(ta))
	for _, t := range ta {
		setA[t] = true
	}
	onlyB := make([]string, 0, len(tb))
	for _, t := range tb {
		if !setA[t] {
			onlyB = append(onlyB, t)
		}
	}

	sect := strings.Join(inBoth, " ")
	combinedA := joinNonEmpty(sect, strings.Join(onlyA, " "))
	combinedB := joinNonEmpty(sect, strings.Join(onlyB, " "))

	best := SequenceRatio(combinedA, combinedB)
	if sect != "" {
		if r := SequenceRatio(sect, combinedA); r > best {
			best = r
		}
		if r := SequenceRatio(sect, combinedB); r > best {
			best = r
		}
	}
	return best
}

// SequenceRatio is the classic longest-common-subsequence ratio:
// 2*LCS / (len(a)+len(b)), over runes. Used directly for short product
// attribute text, where token-set scoring would rate any subset a
// perfect match.
func SequenceRatio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0.0
	}

	// Single-row LCS table.
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	lcs := prev[len(rb)]
	return 2.0 * float64(lcs) / float64(len(ra)+len(rb))
}

// JaroWinkler computes Jaro similarity with the Winkler prefix bonus.
// The bonus rewards shared prefixes (up to 4 runes) scaled by prefixWeight,
// which catches abbreviations and trailing typos; it only applies once the
// plain Jaro score clears 0.7, to avoid inflating unrelated short strings.
func JaroWinkler(a, b string, prefixWeight float64) float64 {
	jaro := jaroSimilarity(a, b)
	if jaro < 0.7 {
		return jaro
	}

	ra, rb := []rune(a), []rune(b)
	maxPrefix := 4
	prefix := 0
	for i := 0; i < len(ra) && i < len(rb) && i < maxPrefix; i++ {
		if ra[i] != rb[i] {
			break
		}
		prefix++
	}

	score := jaro + float64(prefix)*prefixWeight*(1.0-jaro)
	if score > 1.0 {
		return 1.0
	}
	return score
}

func jaroSimilarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)
	if la == 0 || lb == 0 {
		return 0.0
	}

	window := la
	if lb > window {
		window = lb
	}
	window = window/2 - 1
	if window < 0 {
		window = 0
	}

	matchedA := make([]bool, la)
	matchedB := make([]bool, lb)
	matches := 0
	for i := 0; i < la; i++ {
		lo := i - window
		if lo < 0 {
			lo = 0
		}
		hi := i + window + 1
		if hi > lb {
			hi = lb
		}
		for j := lo; j < hi; j++ {
			if matchedB[j] || ra[i] != rb[j] {
				continue
			}
			matchedA[i] = true
			matchedB[j] = true
			matches++
			break
		}
	}
	if matches == 0 {
		return 0.0
	}

	transpositions := 0
	k := 0
	for i := 0; i < la; i++ {
		if !matchedA[i] {
			continue
		}
		for !matchedB[k] {
			k++
		}
		if ra[i] != rb[k] {
			transpositions++
		}
		k++
	}

	m := float64(matches)
	return (m/float64(la) + m/float64(lb) + (m-float64(transpositions)/2.0)/m) / 3.0
}

func uniqueSortedTokens(s string) []string {
	fields := strings.Fields(s)
	seen := make(map[string]bool, len(fields))
	out := fields[:0]
	for _, f := range fields {
		if seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " " + b
	}
}
