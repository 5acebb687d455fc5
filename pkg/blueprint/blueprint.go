package blueprint

// TropeEnemiesToLovers is the only trope currently carried by the chapter
// tree. The registry is keyed on trope so additional trees can be added
// without changing the lookup surface.
const TropeEnemiesToLovers = "enemies_to_lovers"

// Blueprint is a fully resolved, internally consistent chapter plan for one
// (trope, tension, ending, modifier) combination. Blueprints are immutable
// once resolved.
type Blueprint struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Trope           string           `json:"trope"`
	Tension         Tension          `json:"tension"`
	Ending          Ending           `json:"ending"`
	Modifier        Modifier         `json:"modifier"`
	TotalChapters   int              `json:"total_chapters"`
	ExpectedRoles   []string         `json:"expected_roles"`
	SecretStructure *SecretStructure `json:"secret_structure,omitempty"`
	Cast            []CastMember     `json:"cast"`
	Constraints     []ConstraintRule `json:"constraints"`
	Phases          []Phase          `json:"phases"`
}

// Phase is one act of the blueprint.
type Phase struct {
	Phase       int       `json:"phase"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Chapters    []Chapter `json:"chapters"`
}

// Chapter is one resolved chapter slot. Variant chapters intentionally
// reuse the chapter number of the chapter they shadow and are excluded
// from TotalChapters.
type Chapter struct {
	Chapter      int                  `json:"chapter"`
	Function     string               `json:"function"`
	EndState     string               `json:"end_state"`
	Employment   []EmploymentGroup    `json:"employment,omitempty"`
	Notes        string               `json:"notes,omitempty"`
	Variant      bool                 `json:"variant,omitempty"`
	Consequences []ConsequenceVariant `json:"consequence_variants,omitempty"`
}

// EmploymentGroup is a named set of craft options the author (or the LLM
// filling in the blueprint) may employ in a chapter.
type EmploymentGroup struct {
	Key           string             `json:"key"`
	Header        string             `json:"header"`
	Options       []EmploymentOption `json:"options"`
	Constraints   []ConstraintNote   `json:"constraints,omitempty"`
	CascadingNote string             `json:"cascading_note,omitempty"`
}

// EmploymentOption is a single selectable option within a group.
type EmploymentOption struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// ConstraintNote is an advisory note attached to an employment group,
// describing how a selection here interacts with a later chapter.
type ConstraintNote struct {
	Effect string `json:"effect"` // "disables" or "fixes"
	When   string `json:"when"`   // option ID that triggers the effect
	Note   string `json:"note"`
}

// ConstraintRule is a named cross-chapter dependency rule. Rules are
// advisory: they are surfaced to the LLM as authoring guidance and are
// not mechanically enforced during resolution.
type ConstraintRule struct {
	ID     string `json:"id"`
	When   string `json:"when"`   // option ID selected in an earlier chapter
	Effect string `json:"effect"` // "disables" or "fixes"
	Target string `json:"target"` // option ID affected in a later chapter
	Note   string `json:"note"`
}

// ConsequenceVariant is one of the mutually exclusive fallout shapes
// attached to the final chapter of the tragedy branch.
type ConsequenceVariant struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CastMember is a thematic supporting-character archetype.
type CastMember struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Function         string   `json:"function"`
	Description      string   `json:"description"`
	Employment       []string `json:"employment"`
	RequiresTriangle bool     `json:"requires_triangle,omitempty"`
}

// SecretStructure is the per-tension authoring guidance bundle attached
// to a blueprint when the secret modifier is active.
type SecretStructure struct {
	Qualities   []string `json:"qualities"`
	CommonForms []string `json:"common_forms"`
	Rules       []string `json:"rules"`
}

// FlattenChapters returns every chapter across all phases in emission
// order, including variant chapters.
func (b *Blueprint) FlattenChapters() []Chapter {
	var out []Chapter
	for _, p := range b.Phases {
		out = append(out, p.Chapters...)
	}
	return out
}

// ChapterByNumber returns the non-variant chapter with the given number.
func (b *Blueprint) ChapterByNumber(n int) (Chapter, bool) {
	for _, p := range b.Phases {
		for _, c := range p.Chapters {
			if c.Chapter == n && !c.Variant {
				return c, true
			}
		}
	}
	return Chapter{}, false
}
