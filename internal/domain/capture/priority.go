package capture

import "strings"

// Priority levels follow the tracker's 1..5 scale, 1 being most urgent.
const (
	PriorityCritical = 1
	PriorityHigh     = 2
	PriorityMedium   = 3
	PriorityLow      = 4
	PriorityLowest   = 5
)

// priorityByLabel maps free-text labels (German and English) to levels.
// New locales are added here, not in code paths.
var priorityByLabel = map[string]int{
	"critical":     PriorityCritical,
	"urgent":       PriorityCritical,
	"dringend":     PriorityCritical,
	"high":         PriorityHigh,
	"hoch":         PriorityHigh,
	"medium":       PriorityMedium,
	"normal":       PriorityMedium,
	"mittel":       PriorityMedium,
	"low":          PriorityLow,
	"niedrig":      PriorityLow,
	"lowest":       PriorityLowest,
	"sehr niedrig": PriorityLowest,
}

var priorityLabels = map[int]string{
	PriorityCritical: "Critical",
	PriorityHigh:     "High",
	PriorityMedium:   "Medium",
	PriorityLow:      "Low",
	PriorityLowest:   "Lowest",
}

// NormalizePriority maps a label to its level. Unrecognized input falls back
// to medium; an unknown label is never a failure.
func NormalizePriority(label string) int {
	if p, ok := priorityByLabel[strings.ToLower(strings.TrimSpace(label))]; ok {
		return p
	}
	return PriorityMedium
}

// PriorityLabel returns the display name for a level.
func PriorityLabel(priority int) string {
	if l, ok := priorityLabels[priority]; ok {
		return l
	}
	return priorityLabels[PriorityMedium]
}
