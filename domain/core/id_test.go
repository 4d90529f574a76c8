package core

import (
	"errors"
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestParseSessionID tests session ID validation
func TestParseSessionID(t *testing.T) {
	valid := NewSessionID()

	tests := []struct {
		input    string
		hasError bool
	}{
		{valid.String(), false},
		{"  " + valid.String() + "  ", false},
		{"", true},
		{"   ", true},
		{"not-a-uuid", true},
		{"../../etc/passwd", true},
	}

	for _, tt := range tests {
		result, err := ParseSessionID(tt.input)
		if tt.hasError {
			if err == nil {
				t.Errorf("ParseSessionID(%q) expected error, got nil", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseSessionID(%q) unexpected error: %v", tt.input, err)
		}
		if result != valid {
			t.Errorf("ParseSessionID(%q) = %q, want %q", tt.input, result, valid)
		}
	}
}

// TestHashShort tests hash abbreviation
func TestHashShort(t *testing.T) {
	h := NewHash([]byte("a,b\n1,x\n"))
	if len(h) != 64 {
		t.Fatalf("Expected 64 hex digits, got %d", len(h))
	}
	if h.Short() != string(h[:12]) {
		t.Errorf("Short() = %s, want prefix of %s", h.Short(), h)
	}
	if !h.Equals(NewHash([]byte("a,b\n1,x\n"))) {
		t.Error("Expected equal input to hash equally")
	}
	if Hash("abc").Short() != "abc" {
		t.Error("Expected short hash to be returned unchanged")
	}
}

// TestErrorSentinels tests that constructed errors match their sentinels
func TestErrorSentinels(t *testing.T) {
	if !IsLoadError(ErrEmptyFile) || !IsLoadError(ErrMalformed) || !IsLoadError(NewLoadError("bad", nil)) {
		t.Error("Expected load errors to match ErrLoad")
	}
	if !IsEmptyColumnError(NewEmptyColumnError("a")) {
		t.Error("Expected empty column error to match ErrEmptyColumn")
	}
	if !IsNotFoundError(NewColumnNotFoundError("zz")) {
		t.Error("Expected not found error to match ErrColumnNotFound")
	}
	if errors.Is(NewColumnNotFoundError("zz"), ErrLoad) {
		t.Error("Column not found must not be a load error")
	}
}
