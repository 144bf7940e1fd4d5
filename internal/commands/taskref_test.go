package commands

import (
	"errors"
	"testing"

	"taskkeep/internal/board"
	"taskkeep/internal/service"
)

func refBoard() *board.Board {
	b := board.New()
	b.ReplaceAll(
		[]service.Task{
			{ID: "abc123", Title: "Water the plants"},
			{ID: "def456", Title: "Water heater repair"},
			{ID: "ghi789", Title: "Call the dentist"},
		},
		[]service.TaskList{
			{ID: "list-a", Title: "Home"},
			{ID: "list-b", Title: "Work"},
		},
		map[string]string{"abc123": "list-a", "def456": "list-a", "ghi789": "list-b"},
	)
	return b
}

func TestResolveTaskRef_ExactID(t *testing.T) {
	got, err := resolveTaskRef(refBoard(), []string{"abc123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Title != "Water the plants" {
		t.Errorf("resolved %+v", got)
	}
}

func TestResolveTaskRef_UniqueTitleSubstring(t *testing.T) {
	got, err := resolveTaskRef(refBoard(), []string{"dentist"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "ghi789" {
		t.Errorf("resolved %+v", got)
	}
}

func TestResolveTaskRef_MultiWord(t *testing.T) {
	got, err := resolveTaskRef(refBoard(), []string{"heater", "repair"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "def456" {
		t.Errorf("resolved %+v", got)
	}
}

func TestResolveTaskRef_Ambiguous(t *testing.T) {
	_, err := resolveTaskRef(refBoard(), []string{"water"})
	if !errors.Is(err, ErrTaskRefAmbiguous) {
		t.Errorf("err = %v, want ErrTaskRefAmbiguous", err)
	}
}

func TestResolveTaskRef_NotFound(t *testing.T) {
	_, err := resolveTaskRef(refBoard(), []string{"zzz"})
	if !errors.Is(err, ErrTaskRefNotFound) {
		t.Errorf("err = %v, want ErrTaskRefNotFound", err)
	}
}

func TestResolveTaskRef_Empty(t *testing.T) {
	_, err := resolveTaskRef(refBoard(), nil)
	if !errors.Is(err, ErrTaskRefRequired) {
		t.Errorf("err = %v, want ErrTaskRefRequired", err)
	}
}

func TestResolveListRef_ByID(t *testing.T) {
	got, err := resolveListRef(refBoard(), "list-b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Title != "Work" {
		t.Errorf("resolved %+v", got)
	}
}

func TestResolveListRef_ByTitleCaseInsensitive(t *testing.T) {
	got, err := resolveListRef(refBoard(), "  hoMe ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "list-a" {
		t.Errorf("resolved %+v", got)
	}
}

func TestResolveListRef_NotFound(t *testing.T) {
	if _, err := resolveListRef(refBoard(), "Errands"); err == nil {
		t.Error("expected an error for an unknown list")
	}
}
