package util

import (
	"errors"
	"strings"
	"testing"
)

func TestShortID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		n    int
		want string
	}{
		{name: "default length truncates", id: "3f2b9c1e-7d4a-4b8e", n: 0, want: "3f2b9c1e"},
		{name: "negative uses default", id: "3f2b9c1e-7d4a-4b8e", n: -1, want: "3f2b9c1e"},
		{name: "explicit length", id: "3f2b9c1e-7d4a-4b8e", n: 13, want: "3f2b9c1e-7d4a"},
		{name: "length longer than ID", id: "abc", n: 20, want: "abc"},
		{name: "empty ID", id: "", n: 8, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShortID(tt.id, tt.n); got != tt.want {
				t.Errorf("ShortID(%q, %d) = %q, want %q", tt.id, tt.n, got, tt.want)
			}
		})
	}
}

func TestResolveID(t *testing.T) {
	ids := []string{
		"3f2b9c1e-0000",
		"3f2b0000-1111",
		"a1000000-2222",
		"a1",
	}

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "full id", input: "3f2b9c1e-0000", want: "3f2b9c1e-0000"},
		{name: "unique prefix", input: "3f2b9", want: "3f2b9c1e-0000"},
		{name: "surrounding space ignored", input: "  a1000 ", want: "a1000000-2222"},
		{name: "exact match beats prefix", input: "a1", want: "a1"},
		{name: "ambiguous", input: "3f2b", wantErr: ErrAmbiguousID},
		{name: "no match", input: "ffff", wantErr: ErrNotFound},
		{name: "empty", input: "", wantErr: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveID(ids, tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ResolveID(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveID(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ResolveID(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolveID_AmbiguousListsAtMostFive(t *testing.T) {
	var ids []string
	for _, c := range "abcdefgh" {
		ids = append(ids, "dup-"+string(c))
	}
	_, err := ResolveID(ids, "dup-")
	if !errors.Is(err, ErrAmbiguousID) {
		t.Fatalf("expected ambiguous error, got %v", err)
	}
	if !strings.Contains(err.Error(), "matches 8 tasks") {
		t.Errorf("error should report total count: %v", err)
	}
	if strings.Contains(err.Error(), "dup-f") {
		t.Errorf("error should cap listed candidates at %d: %v", MaxAmbiguousCandidates, err)
	}
}
