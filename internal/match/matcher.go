package match

import (
	"strings"
)

// DefaultThreshold is the minimum score for a customer match to be accepted.
const DefaultThreshold = 0.85

// jwPrefixWeight is the Winkler prefix bonus weight used for customer names.
const jwPrefixWeight = 0.15

// Customer is a registry record as seen by the matcher. The matcher owns no
// storage; callers hand it the full customer list once and reuse the index.
type Customer struct {
	ID   int
	Name string
}

type record struct {
	cust       Customer
	normalized string
	personal   bool
	groupKeys  []string
	surnames   map[string]bool
	givens     map[string]bool
}

// Details breaks a pair score down for failure diagnostics and logging.
type Details struct {
	TokenScore     float64
	JaroWinkler    float64
	BusinessBoost  float64
	PersonalAdjust float64
	Final          float64
}

// Match is the winning (candidate, customer) pair.
type Match struct {
	Customer  Customer
	Candidate string
	Score     float64
	Details   Details
}

// Matcher scores extracted candidate names against the customer registry.
// Safe for concurrent use once built.
type Matcher struct {
	threshold float64
	recs      []record
}

// NewMatcher indexes the customer list. Threshold <= 0 falls back to
// DefaultThreshold.
func NewMatcher(customers []Customer, threshold float64) *Matcher {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	recs := make([]record, 0, len(customers))
	for _, c := range customers {
		recs = append(recs, indexCustomer(c))
	}
	return &Matcher{threshold: threshold, recs: recs}
}

// Threshold reports the acceptance threshold the matcher was built with.
func (m *Matcher) Threshold() float64 { return m.threshold }

func indexCustomer(c Customer) record {
	personal := IsPersonalName(c.Name)
	rec := record{
		cust:      c,
		personal:  personal,
		groupKeys: BuyingGroupKeywords(c.Name),
	}
	if personal {
		rec.normalized = NormalizePersonalName(c.Name)
		rec.surnames, rec.givens = nameTokenSets(rec.normalized)
	} else {
		rec.normalized = NormalizeBusinessName(c.Name)
	}
	return rec
}

// Best scores every (candidate, customer) pair and returns the single best
// one across all candidates. The returned Match is populated even when the
// score misses the threshold, so callers can report the closest miss; the
// bool reports whether the threshold was cleared.
func (m *Matcher) Best(candidates []string) (Match, bool) {
	var best Match
	found := false
	for _, cand := range candidates {
		cand = strings.TrimSpace(cand)
		if cand == "" {
			continue
		}
		for i := range m.recs {
			d := m.score(cand, &m.recs[i])
			if !found || d.Final > best.Score {
				found = true
				best = Match{
					Customer:  m.recs[i].cust,
					Candidate: cand,
					Score:     d.Final,
					Details:   d,
				}
			}
		}
	}
	if !found {
		return Match{}, false
	}
	return best, best.Score >= m.threshold
}

func (m *Matcher) score(candidate string, rec *record) Details {
	// Each name normalizes by its own classification; a personal candidate
	// keeps its personal form even against a business record.
	var candNorm string
	candPersonal := IsPersonalName(candidate)
	if candPersonal {
		candNorm = NormalizePersonalName(candidate)
	} else {
		candNorm = NormalizeBusinessName(candidate)
	}

	var d Details
	d.TokenScore = TokenSetRatio(candNorm, rec.normalized)
	score := d.TokenScore

	// Jaro-Winkler only refines pairs the token score already considers
	// plausible; on its own it scores unrelated short names too high.
	if d.TokenScore >= 0.70 {
		d.JaroWinkler = JaroWinkler(candNorm, rec.normalized, jwPrefixWeight)
		if d.JaroWinkler > score {
			score = d.JaroWinkler
		}
	}

	// Type-specific adjustments apply only when both names are the same
	// type; a personal/business pair scores on base similarity alone.
	switch {
	case !candPersonal && !rec.personal:
		shared := sharedKeywords(BuyingGroupKeywords(candidate), rec.groupKeys)
		switch {
		case shared >= 2:
			d.BusinessBoost = 0.15
		case shared == 1:
			d.BusinessBoost = 0.10
		}
		score += d.BusinessBoost
	case candPersonal && rec.personal:
		candSurnames, candGivens := nameTokenSets(candNorm)
		surnameHits := 0
		for s := range candSurnames {
			if rec.surnames[s] {
				surnameHits++
			}
		}
		adjust := 0.03 * float64(surnameHits)
		if adjust > 0.06 {
			adjust = 0.06
		}
		// Shared given names without a shared surname are weak evidence;
		// lots of unrelated contacts are both named Jose or Maria.
		if surnameHits == 0 {
			givenHits := 0
			for g := range candGivens {
				if rec.givens[g] {
					givenHits++
				}
			}
			adjust = -0.02 * float64(givenHits)
			if adjust < -0.04 {
				adjust = -0.04
			}
		}
		d.PersonalAdjust = adjust
		score += adjust
	}

	if score > 1.0 {
		score = 1.0
	}
	if score < 0 {
		score = 0
	}
	d.Final = score
	return d
}

func sharedKeywords(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]bool, len(a))
	for _, k := range a {
		set[k] = true
	}
	n := 0
	for _, k := range b {
		if set[k] {
			n++
		}
	}
	return n
}

func nameTokenSets(normalized string) (surnames, givens map[string]bool) {
	surnames = make(map[string]bool)
	givens = make(map[string]bool)
	for _, tok := range strings.Fields(normalized) {
		if commonSurnames[tok] {
			surnames[tok] = true
		} else if commonGivenNames[tok] {
			givens[tok] = true
		}
	}
	return surnames, givens
}
