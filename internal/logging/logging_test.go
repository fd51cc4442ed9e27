package logging

import (
	"testing"
)

func TestRing_BoundedRetention(t *testing.T) {
	ring := NewRing(3, nil)

	ring.Log(LevelInfo, "one", nil)
	ring.Log(LevelInfo, "two", nil)

	recent := ring.Recent()
	if len(recent) != 2 {
		t.Fatalf("Expected 2 entries before wrap, got %d", len(recent))
	}
	if recent[0].Message != "one" || recent[1].Message != "two" {
		t.Errorf("Expected oldest-first ordering, got %q, %q", recent[0].Message, recent[1].Message)
	}

	ring.Log(LevelWarn, "three", nil)
	ring.Log(LevelError, "four", map[string]any{"k": 1})

	recent = ring.Recent()
	if len(recent) != 3 {
		t.Fatalf("Expected retention capped at 3, got %d", len(recent))
	}
	if recent[0].Message != "two" {
		t.Errorf("Expected oldest retained entry to be %q, got %q", "two", recent[0].Message)
	}
	if recent[2].Message != "four" || recent[2].Level != LevelError {
		t.Errorf("Expected newest entry four/error, got %q/%q", recent[2].Message, recent[2].Level)
	}
}

func TestRing_DefaultSize(t *testing.T) {
	ring := NewRing(0, nil)
	ring.Log(LevelInfo, "entry", nil)
	if len(ring.Recent()) != 1 {
		t.Errorf("Expected 1 entry, got %d", len(ring.Recent()))
	}
}

func TestDiscard_DropsEntries(t *testing.T) {
	// Must not panic; Discard has no state to assert on.
	Discard.Log(LevelError, "dropped", map[string]any{"n": 42})
}
