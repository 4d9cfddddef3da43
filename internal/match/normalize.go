package match

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	urlPattern       = regexp.MustCompile(`https?://[^\s]+`)
	longDigits       = regexp.MustCompile(`\d{6,}`)
	capitalRun       = regexp.MustCompile(`[A-Z]{3,}`)
	protocolStripper = regexp.MustCompile(`^https?://`)
)

// MessageProfile captures the normalization output for a submitted message.
type MessageProfile struct {
	Original     string
	Lower        string
	URLs         []string
	Hosts        []string
	LongNumbers  bool
	Exclamations int
	CapitalRuns  int
}

// NormalizeMessage prepares a message for rule matching. Phrase lookups run against
// Lower while the surface checks (links, digits, punctuation, capitals) read Original.
func NormalizeMessage(input string) MessageProfile {
	original := norm.NFC.String(input)
	urls := urlPattern.FindAllString(original, -1)

	var hosts []string
	for _, u := range urls {
		hosts = appendUnique(hosts, NormalizeHost(u))
	}

	return MessageProfile{
		Original:     original,
		Lower:        strings.ToLower(original),
		URLs:         urls,
		Hosts:        hosts,
		LongNumbers:  longDigits.MatchString(original),
		Exclamations: strings.Count(original, "!"),
		CapitalRuns:  len(capitalRun.FindAllString(original, -1)),
	}
}

// HasURL reports whether at least one http(s) link was found.
func (p MessageProfile) HasURL() bool {
	return len(p.URLs) > 0
}

// NormalizeHost reduces a link to its lowercase host name.
func NormalizeHost(input string) string {
	lower := strings.ToLower(strings.TrimSpace(input))
	lower = protocolStripper.ReplaceAllString(lower, "")

	for _, sep := range []string{"/", "?", "#"} {
		if idx := strings.Index(lower, sep); idx >= 0 {
			lower = lower[:idx]
		}
	}

	// user:pass@host is a classic phishing disguise; keep what follows the @
	if idx := strings.LastIndex(lower, "@"); idx >= 0 {
		lower = lower[idx+1:]
	}

	lower = strings.Trim(lower, ".")
	lower = strings.TrimPrefix(lower, "www.")

	if idx := strings.IndexRune(lower, ':'); idx >= 0 {
		lower = lower[:idx]
	}
	return strings.TrimRight(lower, ".,;:!?)]}\"'")
}

func appendUnique(s []string, v string) []string {
	if v == "" {
		return s
	}
	for _, existing := range s {
		if existing == v {
			return s
		}
	}
	return append(s, v)
}
