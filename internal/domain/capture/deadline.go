package capture

import (
	"regexp"
	"strconv"
	"time"
)

// deadlineRule pairs a phrase pattern with the offset it resolves to.
// Rules are evaluated in order against the lower-cased, trimmed input and
// the first match wins.
type deadlineRule struct {
	pattern *regexp.Regexp
	resolve func(now time.Time, match []string) time.Time
}

var deadlineRules = []deadlineRule{
	{
		pattern: regexp.MustCompile(`morgen|tomorrow`),
		resolve: func(now time.Time, _ []string) time.Time {
			return now.AddDate(0, 0, 1)
		},
	},
	{
		pattern: regexp.MustCompile(`in (\d+) (?:tag(?:en)?|days?)`),
		resolve: func(now time.Time, match []string) time.Time {
			days, _ := strconv.Atoi(match[1])
			return now.AddDate(0, 0, days)
		},
	},
	{
		pattern: regexp.MustCompile(`n[äa]chste woche|next week`),
		resolve: func(now time.Time, _ []string) time.Time {
			return now.AddDate(0, 0, 7)
		},
	},
}

// dateLayouts are tried in order when no relative phrase matched.
var dateLayouts = []string{
	"2006-01-02",
	"02.01.2006",
	"2006/01/02",
	"02/01/2006",
	"January 2, 2006",
	"2. January 2006",
}

// ResolveDeadline turns a deadline phrase into a calendar date relative to
// now, formatted YYYY-MM-DD. Empty or unparseable input yields an empty
// string; a deadline is optional and never a failure.
func ResolveDeadline(input string, now time.Time) string {
	s := normalizeText(input)
	if s == "" {
		return ""
	}

	for _, rule := range deadlineRules {
		if m := rule.pattern.FindStringSubmatch(s); m != nil {
			return rule.resolve(now, m).Format("2006-01-02")
		}
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, input); err == nil {
			return t.Format("2006-01-02")
		}
	}

	return ""
}
