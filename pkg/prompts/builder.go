package prompts

import (
	"fmt"
	"strings"

	"github.com/storyloom/engine/pkg/blueprint"
)

// Builder serializes a resolved blueprint plus a free-text concept into
// the prompt pair for the phase-1 LLM call, using a fluent interface.
// It is pure formatting: no business logic, no I/O.
type Builder struct {
	concept string
	bp      *blueprint.Blueprint
}

// New creates a new prompt builder.
func New() *Builder {
	return &Builder{}
}

// WithConcept sets the free-text story concept.
func (b *Builder) WithConcept(concept string) *Builder {
	b.concept = concept
	return b
}

// WithBlueprint sets the resolved blueprint to serialize.
func (b *Builder) WithBlueprint(bp *blueprint.Blueprint) *Builder {
	b.bp = bp
	return b
}

// Build returns the (system, user) prompt pair. Every chapter present in
// the blueprint is rendered; none are invented.
func (b *Builder) Build() (system string, user string, err error) {
	if b.bp == nil {
		return "", "", fmt.Errorf("blueprint is required")
	}
	if strings.TrimSpace(b.concept) == "" {
		return "", "", fmt.Errorf("concept is required")
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "STORY CONCEPT:\n%s\n\n", strings.TrimSpace(b.concept))
	fmt.Fprintf(&sb, "BLUEPRINT: %s\n", b.bp.Name)
	fmt.Fprintf(&sb, "Trope: %s | Tension: %s | Ending: %s | Modifier: %s | Chapters: %d\n\n",
		b.bp.Trope, b.bp.Tension, b.bp.Ending, b.bp.Modifier, b.bp.TotalChapters)

	for _, phase := range b.bp.Phases {
		fmt.Fprintf(&sb, "=== ACT %d: %s ===\n%s\n\n", phase.Phase, phase.Name, phase.Description)
		for _, ch := range phase.Chapters {
			b.writeChapter(&sb, ch)
		}
	}

	b.writeConstraints(&sb)
	b.writeSecretStructure(&sb)
	b.writeCast(&sb)

	fmt.Fprintf(&sb, chapterReminder, b.bp.TotalChapters)

	return SystemPrompt, sb.String(), nil
}

func (b *Builder) writeChapter(sb *strings.Builder, ch blueprint.Chapter) {
	if ch.Variant {
		fmt.Fprintf(sb, "CHAPTER %d (ALTERNATE): %s\n", ch.Chapter, ch.Function)
		fmt.Fprintf(sb, "This is an alternate rendering of chapter %d. Use it or the primary version, never both.\n", ch.Chapter)
	} else {
		fmt.Fprintf(sb, "CHAPTER %d: %s\n", ch.Chapter, ch.Function)
	}
	fmt.Fprintf(sb, "END STATE: %s\n", ch.EndState)

	for _, g := range ch.Employment {
		fmt.Fprintf(sb, "%s:\n", g.Header)
		for i, opt := range g.Options {
			fmt.Fprintf(sb, "  %d. %s\n", i+1, opt.Text)
		}
		for _, c := range g.Constraints {
			fmt.Fprintf(sb, "  Constraint: %s\n", c.Note)
		}
		if g.CascadingNote != "" {
			fmt.Fprintf(sb, "  Note: %s\n", g.CascadingNote)
		}
	}

	if ch.Notes != "" {
		fmt.Fprintf(sb, "NOTES: %s\n", ch.Notes)
	}

	if len(ch.Consequences) > 0 {
		sb.WriteString("CONSEQUENCE VARIANTS (choose exactly one):\n")
		for _, v := range ch.Consequences {
			fmt.Fprintf(sb, "  - %s: %s\n", v.Title, v.Description)
		}
	}

	sb.WriteString("\n")
}

func (b *Builder) writeConstraints(sb *strings.Builder) {
	if len(b.bp.Constraints) == 0 {
		return
	}
	sb.WriteString("=== CROSS-CHAPTER CONSTRAINTS ===\n")
	for _, r := range b.bp.Constraints {
		fmt.Fprintf(sb, "- %s\n", r.Note)
	}
	sb.WriteString("\n")
}

func (b *Builder) writeSecretStructure(sb *strings.Builder) {
	s := b.bp.SecretStructure
	if s == nil {
		return
	}
	sb.WriteString("=== SECRET STRUCTURE ===\n")
	sb.WriteString("Qualities the secret must have:\n")
	for _, q := range s.Qualities {
		fmt.Fprintf(sb, "- %s\n", q)
	}
	sb.WriteString("Common forms:\n")
	for _, f := range s.CommonForms {
		fmt.Fprintf(sb, "- %s\n", f)
	}
	sb.WriteString("Rules:\n")
	for _, r := range s.Rules {
		fmt.Fprintf(sb, "- %s\n", r)
	}
	sb.WriteString("\n")
}

func (b *Builder) writeCast(sb *strings.Builder) {
	if len(b.bp.Cast) == 0 {
		return
	}
	sb.WriteString("=== SUPPORTING CAST ARCHETYPES ===\n")
	for _, m := range b.bp.Cast {
		fmt.Fprintf(sb, "%s (%s): %s\n", m.Name, m.Function, m.Description)
		for _, e := range m.Employment {
			fmt.Fprintf(sb, "  - %s\n", e)
		}
	}
	sb.WriteString("\n")
}

// BuildPrompts is a convenience function for the common case.
func BuildPrompts(concept string, bp *blueprint.Blueprint) (system string, user string, err error) {
	return New().WithConcept(concept).WithBlueprint(bp).Build()
}
