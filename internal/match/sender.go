package match

import (
	"regexp"
	"strings"
)

// Forwarded Spanish email threads quote the original sender with a "De:"
// header. The bottom-most quoted header belongs to the original customer,
// so extraction scans lines in reverse.
var (
	deAtStartRe  = regexp.MustCompile(`(?i)^\s*\*{0,2}de:\*{0,2}\s*`)
	deInlineRe   = regexp.MustCompile(`(?i)\bde:\s*`)
	bracketAddrRe = regexp.MustCompile(`<([^>]+@[^>]+)>`)
	bareAddrRe    = regexp.MustCompile(`[\w.+-]+@[\w.-]+\.\w+`)
)

// SenderAddress extracts the original sender's address from an email thread.
// It walks the text bottom-up and takes the first "De:" line found. Lines
// starting with "De:" (optionally bold-wrapped) win over inline occurrences,
// and an angle-bracketed address wins over a bare one. Returns "" when no
// address can be recovered.
func SenderAddress(text string) string {
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")

	// Start-of-line pass. A "De:" line with no usable address still ends
	// the search; the quoted header is there, the address just is not.
	for i := len(lines) - 1; i >= 0; i-- {
		line := lines[i]
		if !deAtStartRe.MatchString(line) {
			continue
		}
		return addressIn(line)
	}

	// Inline pass for single-line header blocks like
	// "De: Nombre <a@b.es> Enviado el: ...". Keep scanning on a miss.
	for i := len(lines) - 1; i >= 0; i-- {
		loc := deInlineRe.FindStringIndex(lines[i])
		if loc == nil {
			continue
		}
		if addr := addressIn(lines[i][loc[1]:]); addr != "" {
			return addr
		}
	}
	return ""
}

func addressIn(s string) string {
	if m := bracketAddrRe.FindStringSubmatch(s); m != nil {
		return strings.ToLower(strings.TrimSpace(m[1]))
	}
	if m := bareAddrRe.FindString(s); m != "" {
		return strings.ToLower(strings.TrimSpace(m))
	}
	return ""
}
