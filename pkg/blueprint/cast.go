package blueprint

// castTable holds the thematic supporting-character archetypes per tension.
// Members flagged RequiresTriangle are excluded from resolved blueprints
// unless the love triangle is active.
var castTable = map[Tension][]CastMember{
	TensionSafety: {
		{
			ID:          "wary_confidant",
			Name:        "The Wary Confidant",
			Function:    "voice_of_caution",
			Description: "The protagonist's closest friend, who has watched them get hurt before and audits every step the love interest takes. Their skepticism gives the reader permission to doubt.",
			Employment: []string{
				"Warns the protagonist at a moment of rising trust, forcing a choice between loyalty and hope.",
				"Is proven wrong (or half-right) about the love interest in a way that deepens the central question.",
				"Delivers the hard truth after the betrayal chapter, when the protagonist cannot hear it from anyone else.",
			},
		},
		{
			ID:          "meddling_superior",
			Name:        "The Meddling Superior",
			Function:    "proximity_engine",
			Description: "A boss, commander, or matriarch with the power to force the leads together and the obliviousness (or cunning) to keep doing it at the worst possible times.",
			Employment: []string{
				"Engineers the forced-proximity situation that neither lead can refuse.",
				"Raises the professional or social stakes of the leads being seen together.",
				"Unknowingly hands the antagonist the leverage used in the betrayal.",
			},
		},
		{
			ID:          "old_flame",
			Name:        "The Old Flame",
			Function:    "wound_embodiment",
			Description: "The person who taught the protagonist that trust is dangerous. Appears rarely, but every appearance re-opens the original wound the love interest must prove different from.",
			Employment: []string{
				"Surfaces at the almost-moment and resets the protagonist's guard to maximum.",
				"Provides, through contrast, the evidence that the love interest is not the same kind of dangerous.",
			},
		},
		{
			ID:               "polished_rival",
			Name:             "The Polished Rival",
			Function:         "triangle_apex",
			Description:      "The safe, suitable, objectively impressive alternative to the love interest. Everything about them is correct and nothing about them is right.",
			RequiresTriangle: true,
			Employment: []string{
				"Arrives with an offer the protagonist would be foolish to refuse.",
				"Escalates pursuit exactly when the leads' bond becomes visible.",
				"Exposes their own controlling streak in the rival's-gambit chapter, disqualifying themselves.",
			},
		},
	},
	TensionIdentity: {
		{
			ID:          "keeper_of_the_name",
			Name:        "The Keeper of the Name",
			Function:    "secret_anchor",
			Description: "The one person who knows who the protagonist really is. Every scene they share with the love interest is a live grenade.",
			Employment: []string{
				"Nearly uses the protagonist's real name, real history, or real title in front of the love interest.",
				"Pressures the protagonist to either commit to the mask or burn it.",
				"Stands witness at the unmasking, confirming the truth no one wants to believe.",
			},
		},
		{
			ID:          "unwitting_mirror",
			Name:        "The Unwitting Mirror",
			Function:    "dramatic_irony",
			Description: "A friend of the love interest who keeps praising the protagonist's false self, or disparaging their true one, without knowing both are in the room.",
			Employment: []string{
				"Voices exactly what the love interest would lose by learning the truth.",
				"Gives the protagonist an unguarded view of how the love interest speaks of them when the mask is off.",
			},
		},
		{
			ID:          "gatekeeper",
			Name:        "The Gatekeeper",
			Function:    "world_divider",
			Description: "The authority figure of the world the protagonist's false identity grants access to. Their approval is conditional on the lie holding.",
			Employment: []string{
				"Raises the cost of exposure by rewarding the false identity publicly.",
				"Forces a document, ceremony, or introduction that the lie cannot survive.",
			},
		},
	},
}

// roleTable lists the character roles the downstream cast-generation
// phase is expected to fill, keyed by tension.
var roleTable = map[Tension][]string{
	TensionSafety: {
		"protagonist",
		"love_interest",
		"confidant",
		"antagonist",
	},
	TensionIdentity: {
		"protagonist",
		"love_interest",
		"secret_keeper",
		"gatekeeper",
	},
}

// CastFor returns the cast archetypes for a tension, excluding
// triangle-only members when the triangle is inactive. The returned slice
// is a copy.
func CastFor(tension Tension, triangle bool) []CastMember {
	var out []CastMember
	for _, m := range castTable[tension] {
		if m.RequiresTriangle && !triangle {
			continue
		}
		out = append(out, m)
	}
	return out
}
