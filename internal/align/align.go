// Package align reconciles variable-length extracted attribute lists onto a
// fixed number of order lines. Every function is pure: output length always
// equals the target line count, and ambiguity resolves to the field default
// rather than a guess.
package align

import (
	"strings"

	"github.com/ohmyshower/order-cli/internal/model"
)

// Dates assigns promised-ship dates to n lines. An exact count pairs
// positionally, a single date broadcasts, anything else (including a count
// mismatch) yields nil for every line.
func Dates(values []string, n int) []*string {
	return nullable(values, n, false)
}

// References assigns reference numbers to n lines. Same rule as Dates with
// one exception: multiple references against a single line are joined into
// one comma-separated value, since a one-line order quotes them together.
func References(values []string, n int) []*string {
	return nullable(values, n, true)
}

func nullable(values []string, n int, joinSingle bool) []*string {
	out := make([]*string, n)
	switch {
	case len(values) == n:
		for i, v := range values {
			out[i] = model.Ptr(v)
		}
	case len(values) == 1:
		for i := range out {
			out[i] = model.Ptr(values[0])
		}
	case joinSingle && len(values) > 1 && n == 1:
		out[0] = model.Ptr(strings.Join(values, ", "))
	}
	return out
}

// Valves assigns valve requests to n lines positionally. A short list is
// padded with ValveNone and a long one truncated; valves are per-line
// requests, so a lone valve on a multi-line order applies to the first
// line only, never to all of them. Unknown values degrade to ValveNone.
func Valves(values []model.Valve, n int) []model.Valve {
	out := make([]model.Valve, n)
	for i := range out {
		if i < len(values) && model.ValidValve(values[i]) {
			out[i] = values[i]
		} else {
			out[i] = model.ValveNone
		}
	}
	return out
}
