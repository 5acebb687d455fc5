package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/storyloom/engine/pkg/blueprint"
)

// validate builds the full blueprint catalog and lints every resolved
// blueprint for structural defects. It exits non-zero when any blueprint
// fails a check, so it can gate CI on changes to the chapter tree.
func main() {
	trope := blueprint.TropeEnemiesToLovers
	if len(os.Args) > 1 {
		trope = os.Args[1]
	}

	registry := blueprint.NewRegistry(trope)
	if err := registry.Build(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build registry: %v\n", err)
		os.Exit(1)
	}

	v := &BlueprintValidator{}
	all := registry.All()
	fmt.Printf("Validating %d blueprints for trope %q...\n", len(all), trope)

	for _, bp := range all {
		v.validateBlueprint(bp)
	}

	if len(v.errors) > 0 {
		fmt.Fprintf(os.Stderr, "Validation failed with %d errors:\n%s\n",
			len(v.errors), strings.Join(v.errors, "\n"))
		os.Exit(1)
	}

	fmt.Println("All blueprints are valid!")
}

type BlueprintValidator struct {
	errors []string
}

func (v *BlueprintValidator) errorf(bp *blueprint.Blueprint, format string, args ...interface{}) {
	v.errors = append(v.errors, fmt.Sprintf("  %s: %s", bp.ID, fmt.Sprintf(format, args...)))
}

func (v *BlueprintValidator) validateBlueprint(bp *blueprint.Blueprint) {
	v.validateNumbering(bp)
	v.validateChapters(bp)
	v.validateConstraints(bp)
	v.validateCast(bp)
}

// validateNumbering checks that non-variant chapters are numbered 1..N
// contiguously, that N matches TotalChapters, and that every variant
// chapter shadows a real chapter number.
func (v *BlueprintValidator) validateNumbering(bp *blueprint.Blueprint) {
	seen := make(map[int]bool)
	count := 0
	for _, ch := range bp.FlattenChapters() {
		if ch.Variant {
			continue
		}
		if seen[ch.Chapter] {
			v.errorf(bp, "duplicate chapter number %d", ch.Chapter)
			continue
		}
		seen[ch.Chapter] = true
		count++
	}

	if count != bp.TotalChapters {
		v.errorf(bp, "total_chapters is %d but %d chapters are emitted", bp.TotalChapters, count)
	}
	for n := 1; n <= bp.TotalChapters; n++ {
		if !seen[n] {
			v.errorf(bp, "chapter numbering has a gap at %d", n)
		}
	}

	for _, ch := range bp.FlattenChapters() {
		if ch.Variant && !seen[ch.Chapter] {
			v.errorf(bp, "variant chapter %d does not shadow an emitted chapter", ch.Chapter)
		}
	}
}

// validateChapters checks per-chapter content: a function label, a
// resolved end state, and no empty employment groups or options.
func (v *BlueprintValidator) validateChapters(bp *blueprint.Blueprint) {
	for _, ch := range bp.FlattenChapters() {
		if ch.Function == "" {
			v.errorf(bp, "chapter %d has no function", ch.Chapter)
		}
		if ch.EndState == "" {
			v.errorf(bp, "chapter %d (%s) has no end state", ch.Chapter, ch.Function)
		}

		for _, g := range ch.Employment {
			if len(g.Options) == 0 {
				v.errorf(bp, "chapter %d group %q has no options", ch.Chapter, g.Key)
			}
			for _, opt := range g.Options {
				if opt.ID == "" || opt.Text == "" {
					v.errorf(bp, "chapter %d group %q has an incomplete option", ch.Chapter, g.Key)
				}
			}
		}

		for _, cv := range ch.Consequences {
			if cv.ID == "" || cv.Title == "" || cv.Description == "" {
				v.errorf(bp, "chapter %d has an incomplete consequence variant", ch.Chapter)
			}
		}
	}
}

// validateConstraints checks that every constraint rule references option
// IDs that actually appear in this blueprint's employment groups, and
// that the trigger precedes the target.
func (v *BlueprintValidator) validateConstraints(bp *blueprint.Blueprint) {
	optionChapter := make(map[string]int)
	for _, ch := range bp.FlattenChapters() {
		for _, g := range ch.Employment {
			for _, opt := range g.Options {
				optionChapter[opt.ID] = ch.Chapter
			}
		}
	}

	for _, rule := range bp.Constraints {
		whenCh, whenOK := optionChapter[rule.When]
		targetCh, targetOK := optionChapter[rule.Target]

		// Constraints referencing options filtered out of this
		// combination (for example secret-only options) are dropped at
		// resolve time, so any survivor must fully bind.
		if !whenOK {
			v.errorf(bp, "constraint %q references unknown trigger option %q", rule.ID, rule.When)
		}
		if !targetOK {
			v.errorf(bp, "constraint %q references unknown target option %q", rule.ID, rule.Target)
		}
		if whenOK && targetOK && whenCh >= targetCh {
			v.errorf(bp, "constraint %q trigger (chapter %d) does not precede target (chapter %d)",
				rule.ID, whenCh, targetCh)
		}

		if rule.Effect != "disables" && rule.Effect != "fixes" {
			v.errorf(bp, "constraint %q has unknown effect %q", rule.ID, rule.Effect)
		}
	}
}

// validateCast checks archetype completeness and that triangle-gated
// archetypes only appear on triangle blueprints.
func (v *BlueprintValidator) validateCast(bp *blueprint.Blueprint) {
	triangle := bp.Modifier == blueprint.ModifierTriangle || bp.Modifier == blueprint.ModifierBoth

	for _, member := range bp.Cast {
		if member.ID == "" || member.Name == "" || member.Function == "" {
			v.errorf(bp, "cast member %q is incomplete", member.ID)
		}
		if member.RequiresTriangle && !triangle {
			v.errorf(bp, "cast member %q requires a triangle but modifier is %s", member.ID, bp.Modifier)
		}
	}
}
