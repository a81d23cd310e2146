package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	entries := []Feedback{
		{Kind: KindBug, Message: "snake froze", Source: "tui"},
		{Kind: KindGameIdea, Message: "  add a lantern maze  ", Email: "player@example.com", Source: "web"},
		{Message: "lovely colors", Source: "cli"},
	}
	for i, f := range entries {
		saved, err := store.SaveFeedback(f)
		if err != nil {
			t.Fatalf("SaveFeedback(%d) failed: %v", i, err)
		}
		if saved.ID == 0 || saved.Ref == "" {
			t.Errorf("entry %d: expected id and ref, got %d %q", i, saved.ID, saved.Ref)
		}
	}

	all, err := store.RecentFeedback("", 10)
	if err != nil {
		t.Fatalf("RecentFeedback() failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(all))
	}
	// Newest first
	if all[0].Message != "lovely colors" || all[0].Kind != KindGeneral {
		t.Errorf("newest entry = %+v", all[0])
	}
	if all[1].Message != "add a lantern maze" {
		t.Errorf("message should be trimmed, got %q", all[1].Message)
	}
	if all[1].Email != "player@example.com" {
		t.Errorf("email = %q", all[1].Email)
	}

	bugs, err := store.RecentFeedback(KindBug, 10)
	if err != nil {
		t.Fatalf("RecentFeedback(bug) failed: %v", err)
	}
	if len(bugs) != 1 || bugs[0].Source != "tui" {
		t.Errorf("bug filter returned %+v", bugs)
	}

	limited, err := store.RecentFeedback("", 2)
	if err != nil {
		t.Fatalf("RecentFeedback(limit) failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("Expected 2 entries with limit, got %d", len(limited))
	}

	counts, err := store.FeedbackCounts()
	if err != nil {
		t.Fatalf("FeedbackCounts() failed: %v", err)
	}
	if counts[KindBug] != 1 || counts[KindGameIdea] != 1 || counts[KindGeneral] != 1 {
		t.Errorf("unexpected counts %v", counts)
	}
}

func TestStoreRejectsInvalidFeedback(t *testing.T) {
	store := openTestStore(t)

	tests := []struct {
		name     string
		feedback Feedback
		expected error
	}{
		{"empty message", Feedback{Message: "   "}, ErrEmptyMessage},
		{"too long", Feedback{Message: strings.Repeat("a", MaxMessageLen+1)}, ErrMessageTooLong},
		{"unknown kind", Feedback{Kind: "praise", Message: "hi"}, ErrInvalidKind},
		{"bad email", Feedback{Message: "hi", Email: "not-an-email"}, ErrInvalidEmail},
		{"display name email", Feedback{Message: "hi", Email: "Ann <ann@example.com>"}, ErrInvalidEmail},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := store.SaveFeedback(tc.feedback); err != tc.expected {
				t.Errorf("SaveFeedback() error = %v, expected %v", err, tc.expected)
			}
		})
	}

	all, err := store.RecentFeedback("", 10)
	if err != nil {
		t.Fatalf("RecentFeedback() failed: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("invalid entries must not be stored, found %d", len(all))
	}
}

func TestMessageLengthCountsRunes(t *testing.T) {
	f := Feedback{Message: strings.Repeat("☾", MaxMessageLen)}
	if err := f.Normalize(); err != nil {
		t.Errorf("2000 crescents should be accepted, got %v", err)
	}
}

func TestKindLabels(t *testing.T) {
	for _, k := range Kinds {
		if !k.Valid() || k.Label() == string(k) {
			t.Errorf("kind %q should be valid with a label", k)
		}
	}
}

func TestNormalizeTrimsBeforeValidating(t *testing.T) {
	f := Feedback{Message: "  lanterns  ", Email: " ann@example.com "}
	if err := f.Normalize(); err != nil {
		t.Fatalf("Normalize() failed: %v", err)
	}
	if f.Message != "lanterns" || f.Email != "ann@example.com" || f.Kind != KindGeneral {
		t.Errorf("Normalize() = %+v, expected trimmed fields and general kind", f)
	}
}

func TestValidationErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		feedback Feedback
		expected error
	}{
		{"kind checked first", Feedback{Kind: "praise", Message: "", Email: "x"}, ErrInvalidKind},
		{"message before email", Feedback{Kind: KindBug, Email: "x"}, ErrEmptyMessage},
		{"length", Feedback{Kind: KindBug, Message: strings.Repeat("b", MaxMessageLen+1)}, ErrMessageTooLong},
		{"email", Feedback{Kind: KindBug, Message: "hi", Email: "ann@"}, ErrInvalidEmail},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := ValidationError(validate.Struct(tc.feedback)); err != tc.expected {
				t.Errorf("ValidationError() = %v, expected %v", err, tc.expected)
			}
		})
	}

	other := errors.New("disk full")
	if err := ValidationError(other); err != other {
		t.Errorf("non-validation errors should pass through, got %v", err)
	}
	if err := ValidationError(nil); err != nil {
		t.Errorf("ValidationError(nil) = %v", err)
	}
}
