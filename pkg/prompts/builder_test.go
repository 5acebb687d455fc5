package prompts

import (
	"fmt"
	"strings"
	"testing"

	"github.com/storyloom/engine/pkg/blueprint"
)

func resolve(t *testing.T, tension blueprint.Tension, ending blueprint.Ending, secret, triangle bool) *blueprint.Blueprint {
	t.Helper()
	bp, err := blueprint.Resolve(tension, ending, secret, triangle)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	return bp
}

func TestBuilder_RequiresInputs(t *testing.T) {
	bp := resolve(t, blueprint.TensionSafety, blueprint.EndingHEA, false, false)

	if _, _, err := New().WithBlueprint(bp).Build(); err == nil {
		t.Error("expected error when concept is missing")
	}
	if _, _, err := New().WithConcept("a story").Build(); err == nil {
		t.Error("expected error when blueprint is missing")
	}
}

func TestBuilder_RendersEveryChapter(t *testing.T) {
	combos := []struct {
		tension  blueprint.Tension
		ending   blueprint.Ending
		secret   bool
		triangle bool
	}{
		{blueprint.TensionSafety, blueprint.EndingHEA, false, false},
		{blueprint.TensionSafety, blueprint.EndingHEA, true, true},
		{blueprint.TensionSafety, blueprint.EndingTragic, false, false},
		{blueprint.TensionIdentity, blueprint.EndingHEA, true, false},
	}

	for _, c := range combos {
		bp := resolve(t, c.tension, c.ending, c.secret, c.triangle)
		_, user, err := BuildPrompts("A lighthouse keeper and the developer sent to evict her.", bp)
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}

		for _, ch := range bp.FlattenChapters() {
			if ch.Variant {
				continue
			}
			heading := fmt.Sprintf("CHAPTER %d: %s", ch.Chapter, ch.Function)
			if !strings.Contains(user, heading) {
				t.Errorf("%s: prompt missing %q", bp.ID, heading)
			}
			if !strings.Contains(user, ch.EndState) {
				t.Errorf("%s: prompt missing end state for chapter %d", bp.ID, ch.Chapter)
			}
		}

		// Exactly one heading per non-variant chapter: nothing invented.
		if got := strings.Count(user, "\nCHAPTER"); got != len(bp.FlattenChapters()) {
			t.Errorf("%s: prompt has %d chapter headings, blueprint has %d chapters", bp.ID, got, len(bp.FlattenChapters()))
		}
	}
}

func TestBuilder_RendersEmploymentOptions(t *testing.T) {
	bp := resolve(t, blueprint.TensionSafety, blueprint.EndingHEA, false, false)
	_, user, err := BuildPrompts("Rival bakers on one small-town square.", bp)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	for _, ch := range bp.FlattenChapters() {
		for _, g := range ch.Employment {
			if !strings.Contains(user, g.Header+":") {
				t.Errorf("prompt missing employment header %q", g.Header)
			}
			for _, opt := range g.Options {
				if !strings.Contains(user, opt.Text) {
					t.Errorf("prompt missing option %q", opt.ID)
				}
			}
		}
	}
}

func TestBuilder_SecretAndConstraintBlocks(t *testing.T) {
	withSecret := resolve(t, blueprint.TensionSafety, blueprint.EndingHEA, true, false)
	_, user, err := BuildPrompts("A bodyguard with a hidden employer.", withSecret)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if !strings.Contains(user, "=== SECRET STRUCTURE ===") {
		t.Error("prompt missing secret structure block")
	}
	if !strings.Contains(user, "=== CROSS-CHAPTER CONSTRAINTS ===") {
		t.Error("prompt missing constraints block")
	}

	noSecret := resolve(t, blueprint.TensionSafety, blueprint.EndingHEA, false, false)
	_, user, err = BuildPrompts("A bodyguard, no secrets this time.", noSecret)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if strings.Contains(user, "=== SECRET STRUCTURE ===") {
		t.Error("secret structure rendered without secret modifier")
	}
}

func TestBuilder_TragicVariantAndConsequences(t *testing.T) {
	bp := resolve(t, blueprint.TensionSafety, blueprint.EndingTragic, false, false)
	_, user, err := BuildPrompts("Two smugglers on opposite sides of a blockade.", bp)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if !strings.Contains(user, "(ALTERNATE)") {
		t.Error("prompt missing alternate chapter marker")
	}
	if !strings.Contains(user, "CONSEQUENCE VARIANTS (choose exactly one):") {
		t.Error("prompt missing consequence variant block")
	}
}

func TestBuilder_CastExcludesRivalWithoutTriangle(t *testing.T) {
	bp := resolve(t, blueprint.TensionSafety, blueprint.EndingHEA, false, false)
	_, user, err := BuildPrompts("No rivals here.", bp)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if strings.Contains(user, "The Polished Rival") {
		t.Error("triangle-only cast member rendered without triangle")
	}
}

func TestBuilder_Deterministic(t *testing.T) {
	bp := resolve(t, blueprint.TensionSafety, blueprint.EndingBittersweet, true, true)
	_, first, err := BuildPrompts("Concept.", bp)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	_, second, err := BuildPrompts("Concept.", bp)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if first != second {
		t.Error("prompt building is not deterministic")
	}
}
