package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"testing"

	domainerrors "coursebay/contexts/course-catalog/catalog-service/domain/errors"
)

func TestNormalizeSlug(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Intro to Go", "intro-to-go"},
		{"  Intro   to\tGo  ", "intro-to-go"},
		{"Go: Advanced Patterns!", "go-advanced-patterns"},
		{"C++ for Gophers", "c-for-gophers"},
		{"--already--hyphenated--", "already-hyphenated"},
		{"Ünïcode Crash Course", "ncode-crash-course"},
		{"101 Dalmatians 101", "101-dalmatians-101"},
		{"", ""},
		{"   ", ""},
		{"!!!", ""},
	}
	for _, tc := range cases {
		if got := NormalizeSlug(tc.in); got != tc.want {
			t.Errorf("NormalizeSlug(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeSlugOutputAlphabet(t *testing.T) {
	valid := regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)
	inputs := []string{
		"Hello, World!",
		"a          b",
		"-leading and trailing-",
		"snake_case_title",
		"MiXeD CaSe 42",
		"tabs\tand\nnewlines",
	}
	for _, in := range inputs {
		got := NormalizeSlug(in)
		if got == "" {
			continue
		}
		if !valid.MatchString(got) {
			t.Errorf("NormalizeSlug(%q) = %q violates slug alphabet", in, got)
		}
		if strings.Contains(got, "--") {
			t.Errorf("NormalizeSlug(%q) = %q contains a hyphen run", in, got)
		}
	}
}

func TestResolveUniqueSlugNoCollision(t *testing.T) {
	existing := map[string]struct{}{"other-course": {}}
	for _, policy := range []SuffixPolicy{PolicyNumeric, PolicyRandom} {
		got, err := ResolveUniqueSlug("intro-to-go", existing, policy)
		if err != nil {
			t.Fatalf("resolve failed under %s: %v", policy, err)
		}
		if got != "intro-to-go" {
			t.Fatalf("expected untouched candidate under %s, got %q", policy, got)
		}
	}
}

func TestResolveUniqueSlugNumericProbing(t *testing.T) {
	existing := map[string]struct{}{"intro-to-go": {}}
	got, err := ResolveUniqueSlug("intro-to-go", existing, PolicyNumeric)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if got != "intro-to-go-1" {
		t.Fatalf("expected intro-to-go-1, got %q", got)
	}

	existing["intro-to-go-1"] = struct{}{}
	existing["intro-to-go-2"] = struct{}{}
	got, err = ResolveUniqueSlug("intro-to-go", existing, PolicyNumeric)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if got != "intro-to-go-3" {
		t.Fatalf("expected intro-to-go-3, got %q", got)
	}
}

func TestResolveUniqueSlugRandomPolicy(t *testing.T) {
	existing := map[string]struct{}{"intro-to-go": {}}
	got, err := ResolveUniqueSlug("intro-to-go", existing, PolicyRandom)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if !strings.HasPrefix(got, "intro-to-go-") {
		t.Fatalf("expected suffixed candidate, got %q", got)
	}
	suffix := strings.TrimPrefix(got, "intro-to-go-")
	if len(suffix) != 6 {
		t.Fatalf("expected 6-character suffix, got %q", suffix)
	}
	if _, taken := existing[got]; taken {
		t.Fatalf("resolved slug %q is already taken", got)
	}
}

func TestResolveUniqueSlugNeverReturnsExisting(t *testing.T) {
	existing := make(map[string]struct{})
	existing["course"] = struct{}{}
	for i := 1; i <= 50; i++ {
		existing[fmt.Sprintf("course-%d", i)] = struct{}{}
	}
	for _, policy := range []SuffixPolicy{PolicyNumeric, PolicyRandom} {
		got, err := ResolveUniqueSlug("course", existing, policy)
		if err != nil {
			t.Fatalf("resolve failed under %s: %v", policy, err)
		}
		if _, taken := existing[got]; taken {
			t.Fatalf("policy %s returned taken slug %q", policy, got)
		}
	}
}

func TestResolveUniqueSlugNumericExhaustionFallsBackToRandom(t *testing.T) {
	existing := map[string]struct{}{"hot": {}}
	for i := 1; i <= 1000; i++ {
		existing[fmt.Sprintf("hot-%d", i)] = struct{}{}
	}

	got, err := ResolveUniqueSlug("hot", existing, PolicyNumeric)
	if err != nil {
		t.Fatalf("expected random fallback, got error %v", err)
	}
	if _, taken := existing[got]; taken {
		t.Fatalf("fallback returned taken slug %q", got)
	}
	suffix := strings.TrimPrefix(got, "hot-")
	if len(suffix) != 6 {
		t.Fatalf("expected random 6-character suffix after exhaustion, got %q", got)
	}
}

func TestResolveUniqueSlugEmptyCandidate(t *testing.T) {
	_, err := ResolveUniqueSlug("", nil, PolicyNumeric)
	if !errors.Is(err, domainerrors.ErrInvalidCourseTitle) {
		t.Fatalf("expected invalid title error, got %v", err)
	}
}
