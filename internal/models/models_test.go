package models

import (
	"errors"
	"testing"

	"github.com/thenoetrevino/lanes/internal/types"
)

// ============================================================================
// Error Tests
// ============================================================================

func TestErrors_Unique(t *testing.T) {
	if errors.Is(ErrCardNotFound, ErrUnknownLane) {
		t.Error("ErrCardNotFound should not equal ErrUnknownLane")
	}
}

// ============================================================================
// Lane Tests
// ============================================================================

func TestDefaultLanes_Order(t *testing.T) {
	lanes := DefaultLanes()
	if len(lanes) != 8 {
		t.Fatalf("Expected 8 default lanes, got %d", len(lanes))
	}
	if lanes[0] != LaneInbox || lanes[len(lanes)-1] != LaneDone {
		t.Errorf("Expected inbox first and done last, got %v", lanes)
	}
	if got := lanes.Index(LaneDesign); got != 3 {
		t.Errorf("Expected design at index 3, got %d", got)
	}
}

func TestLaneSet_Lookup(t *testing.T) {
	lanes := DefaultLanes()
	tests := []struct {
		name   string
		want   types.LaneID
		wantOK bool
	}{
		{"review", LaneReview, true},
		{"  Development ", LaneDevelopment, true},
		{"DONE", LaneDone, true},
		{"someday", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := lanes.Lookup(tt.name)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Lookup(%q) = %q, %v; want %q, %v", tt.name, got, ok, tt.want, tt.wantOK)
			}
		})
	}
	if lanes.Contains("someday") {
		t.Error("Expected unknown lane not to be contained")
	}
}

func TestTitle(t *testing.T) {
	tests := map[types.LaneID]string{
		LaneDevelopment: "Development",
		"in_review":     "In review",
		"":              "",
	}
	for lane, want := range tests {
		if got := Title(lane); got != want {
			t.Errorf("Title(%q) = %q, want %q", lane, got, want)
		}
	}
}

// ============================================================================
// Card Tests
// ============================================================================

func TestPlacements(t *testing.T) {
	cards := []Card{
		{ID: "a", Lane: LaneInbox, Position: 0, Title: "a"},
		{ID: "b", Lane: LaneDone, Position: 3, Title: "b"},
	}
	got := Placements(cards)
	if len(got) != 2 {
		t.Fatalf("Expected 2 placements, got %d", len(got))
	}
	if got["b"] != (Placement{Lane: LaneDone, Position: 3}) {
		t.Errorf("Unexpected placement for b: %+v", got["b"])
	}

	retitled := CloneCards(cards)
	retitled[0].Title = "renamed"
	if len(Placements(retitled)) != len(got) || Placements(retitled)["a"] != got["a"] {
		t.Error("Expected placements to ignore titles")
	}
}

func TestCloneCards(t *testing.T) {
	if CloneCards(nil) != nil {
		t.Error("Expected nil clone of nil")
	}
	cards := []Card{{ID: "a", Position: 0}}
	clone := CloneCards(cards)
	clone[0].Position = 9
	if cards[0].Position != 0 {
		t.Error("Expected clone not to share the backing array")
	}
}

func TestCard_GetID(t *testing.T) {
	c := &Card{ID: "c-1"}
	if c.GetID() != "c-1" {
		t.Errorf("Expected c-1, got %s", c.GetID())
	}
}
