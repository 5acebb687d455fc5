package blueprint

import (
	"fmt"
	"strings"
)

// Tension is the emotional axis a story is built on. It determines which
// cast entries, chapter variants and end-state text apply.
type Tension string

const (
	// TensionSafety stories ask "can I trust you with my heart?"
	TensionSafety Tension = "safety"
	// TensionIdentity stories ask "can you love who I really am?"
	// Identity is a restricted regime: it forces a HEA ending and
	// disallows the love triangle.
	TensionIdentity Tension = "identity"
)

// Ending is the resolution type of the story.
type Ending string

const (
	EndingHEA         Ending = "hea"
	EndingBittersweet Ending = "bittersweet"
	// EndingTragic is only valid for safety tension.
	EndingTragic Ending = "tragic"
)

// Modifier encodes the (secret, triangle) pair as a single axis,
// matching how blueprints are keyed.
type Modifier string

const (
	ModifierNone     Modifier = "none"
	ModifierSecret   Modifier = "secret"
	ModifierTriangle Modifier = "love_triangle"
	ModifierBoth     Modifier = "both"
)

// ParseTension parses a tension identifier case-insensitively.
func ParseTension(s string) (Tension, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "safety":
		return TensionSafety, nil
	case "identity":
		return TensionIdentity, nil
	}
	return "", fmt.Errorf("unknown tension %q", s)
}

// ParseEnding parses an ending identifier case-insensitively.
// "HEA" and "hea" are both accepted.
func ParseEnding(s string) (Ending, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hea":
		return EndingHEA, nil
	case "bittersweet":
		return EndingBittersweet, nil
	case "tragic":
		return EndingTragic, nil
	}
	return "", fmt.Errorf("unknown ending %q", s)
}

// ParseModifier parses a modifier identifier case-insensitively.
func ParseModifier(s string) (Modifier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return ModifierNone, nil
	case "secret":
		return ModifierSecret, nil
	case "love_triangle", "triangle":
		return ModifierTriangle, nil
	case "both":
		return ModifierBoth, nil
	}
	return "", fmt.Errorf("unknown modifier %q", s)
}

// DeriveModifier collapses the (secret, triangle) pair into a Modifier.
func DeriveModifier(secret, triangle bool) Modifier {
	switch {
	case secret && triangle:
		return ModifierBoth
	case triangle:
		return ModifierTriangle
	case secret:
		return ModifierSecret
	}
	return ModifierNone
}

// Flags returns the (secret, triangle) pair encoded by the modifier.
func (m Modifier) Flags() (secret, triangle bool) {
	switch m {
	case ModifierBoth:
		return true, true
	case ModifierTriangle:
		return false, true
	case ModifierSecret:
		return true, false
	}
	return false, false
}

// Context is the fully resolved set of narrative variables a blueprint
// is built against. All predicate evaluation happens against a Context.
type Context struct {
	Tension  Tension
	Secret   bool
	Triangle bool
}

// Predicate is a closed set of availability conditions over a Context.
// Chapters, employment groups and individual options carry a Predicate
// instead of a free-form condition string.
type Predicate int

const (
	Always Predicate = iota
	WhenSecret
	WhenNoSecret
	WhenTriangle
	WhenNoTriangle
	WhenSecretAndTriangle
)

// Evaluate reports whether the predicate holds for the context.
func (p Predicate) Evaluate(ctx Context) bool {
	switch p {
	case Always:
		return true
	case WhenSecret:
		return ctx.Secret
	case WhenNoSecret:
		return !ctx.Secret
	case WhenTriangle:
		return ctx.Triangle
	case WhenNoTriangle:
		return !ctx.Triangle
	case WhenSecretAndTriangle:
		return ctx.Secret && ctx.Triangle
	}
	return false
}

func (p Predicate) String() string {
	switch p {
	case Always:
		return "always"
	case WhenSecret:
		return "secret"
	case WhenNoSecret:
		return "no_secret"
	case WhenTriangle:
		return "love_triangle"
	case WhenNoTriangle:
		return "no_love_triangle"
	case WhenSecretAndTriangle:
		return "secret_and_love_triangle"
	}
	return "unknown"
}
