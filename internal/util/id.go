// Package util provides shared utility functions.
package util

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// DefaultShortIDLength is the default number of characters for short IDs.
	DefaultShortIDLength = 8
	// MaxAmbiguousCandidates is the max number of candidates to show in ambiguous error.
	MaxAmbiguousCandidates = 5
)

// Errors returned by ID resolution functions.
var (
	ErrAmbiguousID = errors.New("ambiguous ID prefix")
	ErrNotFound    = errors.New("not found")
)

// ShortID returns the first n characters of id.
// If n is 0 or negative, DefaultShortIDLength (8) is used.
//
//	ShortID("3f2b9c1e-7d4a-4b8e-9f00-1a2b3c4d5e6f", 0) → "3f2b9c1e"
func ShortID(id string, n int) string {
	if n <= 0 {
		n = DefaultShortIDLength
	}
	if len(id) <= n {
		return id
	}
	return id[:n]
}

// ResolveID resolves a full task ID or a unique prefix of one against ids.
//
// Resolution rules:
//  1. An exact match wins, even if it is also a prefix of other IDs.
//  2. A prefix matching exactly one ID resolves to it.
//  3. Multiple matches return ErrAmbiguousID with candidates.
//  4. No matches return ErrNotFound.
func ResolveID(ids []string, idOrPrefix string) (string, error) {
	idOrPrefix = strings.TrimSpace(idOrPrefix)
	if idOrPrefix == "" {
		return "", fmt.Errorf("task ID: %w", ErrNotFound)
	}

	var candidates []string
	for _, id := range ids {
		if id == idOrPrefix {
			return id, nil
		}
		if strings.HasPrefix(id, idOrPrefix) {
			candidates = append(candidates, id)
		}
	}
	return resolveFromCandidates(idOrPrefix, candidates)
}

func resolveFromCandidates(prefix string, candidates []string) (string, error) {
	switch len(candidates) {
	case 0:
		return "", fmt.Errorf("task with prefix %q: %w", prefix, ErrNotFound)
	case 1:
		return candidates[0], nil
	default:
		shown := make([]string, 0, MaxAmbiguousCandidates)
		for _, c := range candidates {
			if len(shown) == MaxAmbiguousCandidates {
				break
			}
			shown = append(shown, ShortID(c, 0))
		}
		return "", fmt.Errorf("%w: prefix %q matches %d tasks: %v",
			ErrAmbiguousID, prefix, len(candidates), shown)
	}
}
