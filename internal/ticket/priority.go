package ticket

import (
	"errors"
	"strings"
)

// Priority is one of the four defined tiers.
type Priority int

const (
	PriorityHigh    Priority = 1
	PriorityMedium  Priority = 2
	PriorityLow     Priority = 3
	PriorityWaiting Priority = 4
)

// ErrUnknownPriority reports a level outside the four defined tiers.
var ErrUnknownPriority = errors.New("unknown priority level")

var priorityGlyphs = map[Priority]string{
	PriorityHigh:    "🔴",
	PriorityMedium:  "🟠",
	PriorityLow:     "🟢",
	PriorityWaiting: "⏳",
}

// ParsePriority validates a numeric level.
func ParsePriority(level int) (Priority, error) {
	p := Priority(level)
	if _, ok := priorityGlyphs[p]; !ok {
		return 0, ErrUnknownPriority
	}
	return p, nil
}

// Glyph returns the tier's marker glyph.
func (p Priority) Glyph() string {
	return priorityGlyphs[p]
}

// ApplyPriority strips any existing priority glyph from a channel name and
// prepends the new tier's glyph.
func ApplyPriority(p Priority, name string) string {
	return p.Glyph() + " " + StripPriority(name)
}

// StripPriority removes a leading priority glyph and its separator.
func StripPriority(name string) string {
	for _, glyph := range priorityGlyphs {
		if strings.HasPrefix(name, glyph) {
			return strings.TrimLeft(strings.TrimPrefix(name, glyph), " ")
		}
	}
	return name
}
