package blueprint

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.AmericanEnglish)

// Resolve deterministically expands a (tension, ending, secret, triangle)
// tuple into a fully populated blueprint. It is a pure function: same
// inputs always yield structurally identical output.
//
// Identity tension is a restricted regime: the ending is forced to HEA and
// the triangle is forced off before resolution begins. This is a business
// rule of the tension axis, not an error path.
func Resolve(tension Tension, ending Ending, secret, triangle bool) (*Blueprint, error) {
	if tension == TensionIdentity {
		ending = EndingHEA
		triangle = false
	}

	switch tension {
	case TensionSafety, TensionIdentity:
	default:
		return nil, fmt.Errorf("resolve: unknown tension %q", tension)
	}
	switch ending {
	case EndingHEA, EndingBittersweet, EndingTragic:
	default:
		return nil, fmt.Errorf("resolve: unknown ending %q", ending)
	}

	ctx := Context{Tension: tension, Secret: secret, Triangle: triangle}
	acts := []act{act1, act2, act3, finalAct(tension, ending)}

	var phases []Phase
	number := 0
	total := 0
	for i, a := range acts {
		phase := Phase{
			Phase:       i + 1,
			Name:        a.name,
			Description: a.description,
		}
		for _, s := range a.slots {
			if !s.when.Evaluate(ctx) {
				continue
			}
			def, ok := selectVariant(s, ctx)
			if !ok {
				continue
			}

			endState, err := resolveEndState(def, ctx, ending)
			if err != nil {
				return nil, fmt.Errorf("resolve: chapter %q: %w", def.function, err)
			}

			number++
			total++
			phase.Chapters = append(phase.Chapters, Chapter{
				Chapter:      number,
				Function:     def.function,
				EndState:     endState,
				Employment:   resolveEmployment(def.employment, ctx),
				Notes:        def.notes,
				Consequences: def.consequences,
			})

			// Alternate chapters shadow the chapter they follow: same
			// number, flagged variant, excluded from the total.
			if def.alternate != nil {
				phase.Chapters = append(phase.Chapters, Chapter{
					Chapter:  number,
					Function: def.alternate.function,
					EndState: def.alternate.endState,
					Notes:    def.alternate.notes,
					Variant:  true,
				})
			}
		}
		phases = append(phases, phase)
	}

	modifier := DeriveModifier(secret, triangle)
	return &Blueprint{
		ID:              Key(TropeEnemiesToLovers, tension, ending, modifier),
		Name:            displayName(TropeEnemiesToLovers, tension, ending, modifier),
		Trope:           TropeEnemiesToLovers,
		Tension:         tension,
		Ending:          ending,
		Modifier:        modifier,
		TotalChapters:   total,
		ExpectedRoles:   roleTable[tension],
		SecretStructure: SecretGuidanceFor(tension, secret),
		Cast:            CastFor(tension, triangle),
		Constraints:     applicableRules(phases),
		Phases:          phases,
	}, nil
}

// finalAct picks the Act 4 branch. Identity is always the identity-HEA
// branch (normalization guarantees ending is HEA by now); safety splits
// into the tragedy branch and the shared HEA/bittersweet branch.
func finalAct(tension Tension, ending Ending) act {
	if tension == TensionIdentity {
		return act4Identity
	}
	if ending == EndingTragic {
		return act4SafetyTragic
	}
	return act4SafetyDefault
}

// selectVariant picks the chapter definition matching the context's
// tension and triangle setting. At most one variant can match.
func selectVariant(s slot, ctx Context) (chapterDef, bool) {
	for _, v := range s.variants {
		if v.tension != "" && v.tension != ctx.Tension {
			continue
		}
		switch v.triangle {
		case withTriangle:
			if !ctx.Triangle {
				continue
			}
		case withoutTriangle:
			if ctx.Triangle {
				continue
			}
		}
		return v.def, true
	}
	return chapterDef{}, false
}

// resolveEndState resolves a chapter's end-state text using a single
// deterministic precedence: identity-specific text wins when tension is
// identity, then triangle-context text, then ending-specific text, then
// the generic default. End-state resolution is total: a chapter reachable
// in a context with no matching text is a data error, not an empty string.
func resolveEndState(def chapterDef, ctx Context, ending Ending) (string, error) {
	if ctx.Tension == TensionIdentity {
		for _, v := range def.endStates {
			if v.when == endIdentity {
				return v.text, nil
			}
		}
	}
	want := endNoTriangle
	if ctx.Triangle {
		want = endTriangle
	}
	for _, v := range def.endStates {
		if v.when == want {
			return v.text, nil
		}
	}
	endingWant := endHEA
	if ending == EndingBittersweet {
		endingWant = endBittersweet
	}
	if ending != EndingTragic {
		for _, v := range def.endStates {
			if v.when == endingWant {
				return v.text, nil
			}
		}
	}
	for _, v := range def.endStates {
		if v.when == endDefault {
			return v.text, nil
		}
	}
	return "", fmt.Errorf("no end state resolvable for context %+v", ctx)
}

// resolveEmployment filters employment groups and their options against
// the context. A group whose every option is filtered out is dropped
// entirely; empty groups are never emitted.
func resolveEmployment(defs []groupDef, ctx Context) []EmploymentGroup {
	var out []EmploymentGroup
	for _, g := range defs {
		if g.tension != "" && g.tension != ctx.Tension {
			continue
		}
		if !g.when.Evaluate(ctx) {
			continue
		}
		var options []EmploymentOption
		for _, o := range g.options {
			if !o.when.Evaluate(ctx) {
				continue
			}
			options = append(options, EmploymentOption{ID: o.id, Text: o.text})
		}
		if len(options) == 0 {
			continue
		}
		out = append(out, EmploymentGroup{
			Key:           g.key,
			Header:        g.header,
			Options:       options,
			Constraints:   g.constraints,
			CascadingNote: g.cascadingNote,
		})
	}
	return out
}

// applicableRules keeps only the cross-chapter rules whose trigger and
// target options both survived employment filtering. A rule about an
// option this combination never offers would be noise in the prompt.
func applicableRules(phases []Phase) []ConstraintRule {
	present := make(map[string]bool)
	for _, p := range phases {
		for _, ch := range p.Chapters {
			for _, g := range ch.Employment {
				for _, o := range g.Options {
					present[o.ID] = true
				}
			}
		}
	}

	var out []ConstraintRule
	for _, rule := range Rules() {
		if present[rule.When] && present[rule.Target] {
			out = append(out, rule)
		}
	}
	return out
}

// Key builds the registry key for a combination.
func Key(trope string, tension Tension, ending Ending, modifier Modifier) string {
	return fmt.Sprintf("%s|%s|%s|%s", trope, tension, ending, modifier)
}

func displayName(trope string, tension Tension, ending Ending, modifier Modifier) string {
	endingName := "HEA"
	if ending != EndingHEA {
		endingName = titleCaser.String(string(ending))
	}
	modifierName := map[Modifier]string{
		ModifierNone:     "No Modifiers",
		ModifierSecret:   "Secret",
		ModifierTriangle: "Love Triangle",
		ModifierBoth:     "Secret + Love Triangle",
	}[modifier]
	return fmt.Sprintf("%s — %s Tension, %s Ending (%s)",
		titleCaser.String(strings.ReplaceAll(trope, "_", " ")),
		titleCaser.String(string(tension)),
		endingName,
		modifierName,
	)
}
