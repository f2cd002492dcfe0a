package models

import (
	"strings"

	"github.com/thenoetrevino/lanes/internal/types"
)

// Default lanes of a product board, in display order
const (
	LaneInbox       types.LaneID = "inbox"
	LaneBacklog     types.LaneID = "backlog"
	LaneDiscovery   types.LaneID = "discovery"
	LaneDesign      types.LaneID = "design"
	LaneDevelopment types.LaneID = "development"
	LaneTesting     types.LaneID = "testing"
	LaneReview      types.LaneID = "review"
	LaneDone        types.LaneID = "done"
)

// LaneSet is the fixed, ordered enumeration of lanes a board renders.
// The ordering core is generic over any finite set.
type LaneSet []types.LaneID

// DefaultLanes returns the eight lanes used when no configuration overrides them
func DefaultLanes() LaneSet {
	return LaneSet{
		LaneInbox,
		LaneBacklog,
		LaneDiscovery,
		LaneDesign,
		LaneDevelopment,
		LaneTesting,
		LaneReview,
		LaneDone,
	}
}

// Contains reports whether lane is part of the set
func (s LaneSet) Contains(lane types.LaneID) bool {
	return s.Index(lane) >= 0
}

// Index returns the display index of lane, or -1
func (s LaneSet) Index(lane types.LaneID) int {
	for i, l := range s {
		if l == lane {
			return i
		}
	}
	return -1
}

// Lookup resolves a lane by case-insensitive name
func (s LaneSet) Lookup(name string) (types.LaneID, bool) {
	for _, l := range s {
		if strings.EqualFold(string(l), strings.TrimSpace(name)) {
			return l, true
		}
	}
	return "", false
}

// Title returns a display label for a lane id ("development" -> "Development")
func Title(lane types.LaneID) string {
	s := strings.ReplaceAll(string(lane), "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
