package services

import (
	"crypto/rand"
	"fmt"
	"regexp"
	"strings"

	domainerrors "coursebay/contexts/course-catalog/catalog-service/domain/errors"
)

// SuffixPolicy selects how slug collisions are resolved.
//
// PolicyNumeric probes candidate-1, candidate-2, ... and is deterministic
// given a consistent snapshot of existing slugs; PolicyRandom appends a
// 6-character base-36 token and tolerates stale snapshots. Either way the
// store's unique index remains the final race-safety backstop.
type SuffixPolicy string

const (
	PolicyNumeric SuffixPolicy = "numeric"
	PolicyRandom  SuffixPolicy = "random"
)

const (
	maxNumericProbes     = 1000
	randomSuffixLength   = 6
	randomSuffixAttempts = 4
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	invalidChars  = regexp.MustCompile(`[^a-z0-9-]`)
	hyphenRun     = regexp.MustCompile(`-+`)
)

// NormalizeSlug lowercases, trims, turns whitespace runs into single hyphens,
// strips everything outside [a-z0-9-], collapses repeated hyphens, and trims
// leading/trailing hyphens. Empty input normalizes to the empty string; the
// caller must treat that as an error.
func NormalizeSlug(text string) string {
	out := strings.ToLower(strings.TrimSpace(text))
	out = whitespaceRun.ReplaceAllString(out, "-")
	out = invalidChars.ReplaceAllString(out, "")
	out = hyphenRun.ReplaceAllString(out, "-")
	return strings.Trim(out, "-")
}

// ResolveUniqueSlug returns a slug absent from the existing set. Numeric
// probing is capped; on exhaustion it falls back to the random policy rather
// than looping forever. Random candidates are re-checked against the snapshot
// before being returned.
func ResolveUniqueSlug(
	candidate string,
	existing map[string]struct{},
	policy SuffixPolicy,
) (string, error) {
	if candidate == "" {
		return "", domainerrors.ErrInvalidCourseTitle
	}
	if _, taken := existing[candidate]; !taken {
		return candidate, nil
	}

	if policy == PolicyNumeric {
		for i := 1; i <= maxNumericProbes; i++ {
			probe := fmt.Sprintf("%s-%d", candidate, i)
			if _, taken := existing[probe]; !taken {
				return probe, nil
			}
		}
	}

	for attempt := 0; attempt < randomSuffixAttempts; attempt++ {
		suffix, err := randomBase36(randomSuffixLength)
		if err != nil {
			return "", err
		}
		probe := candidate + "-" + suffix
		if _, taken := existing[probe]; !taken {
			return probe, nil
		}
	}
	return "", domainerrors.ErrSlugGenerationExhausted
}

const base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

func randomBase36(length int) (string, error) {
	raw := make([]byte, length)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	out := make([]byte, length)
	for i, b := range raw {
		out[i] = base36Alphabet[int(b)%len(base36Alphabet)]
	}
	return string(out), nil
}
