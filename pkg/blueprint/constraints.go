package blueprint

// crossChapterRules are the named cross-chapter dependency rules surfaced
// to the LLM as authoring guidance. They are advisory: the resolver never
// enforces them mechanically, matching the engine's contract that option
// compatibility is delegated to the author filling in the blueprint.
var crossChapterRules = []ConstraintRule{
	{
		ID:     "public_scorn_locks_public_amends",
		When:   "rejection_public_scorn",
		Effect: "disables",
		Target: "gesture_private_apology",
		Note:   "If the rejection in Act 1 happened in public, a private apology cannot repair it. The grand gesture must be at least as public as the wound.",
	},
	{
		ID:     "third_party_reveal_fixes_messenger",
		When:   "secret_reveal_third_party",
		Effect: "fixes",
		Target: "darknight_confrontation",
		Note:   "When the secret is unearthed by a third party, the dark-night confrontation must open with the protagonist already knowing; the love interest does not get to control the telling.",
	},
	{
		ID:     "rival_alliance_disables_clean_exit",
		When:   "gambit_alliance_with_antagonist",
		Effect: "disables",
		Target: "neutralize_graceful_withdrawal",
		Note:   "A rival who allied with the antagonist cannot exit gracefully. Their neutralization must involve exposure or defeat, not a change of heart.",
	},
	{
		ID:     "false_name_locks_true_name_close",
		When:   "mask_deepen_commitment",
		Effect: "fixes",
		Target: "truth_spoken_name",
		Note:   "If the protagonist doubled down on the false identity in Act 2, the final act must include the love interest speaking the true name aloud; an implied acceptance is not sufficient.",
	},
	{
		ID:     "sacrifice_disables_reconciliation_kiss",
		When:   "noreturn_irrevocable_sacrifice",
		Effect: "disables",
		Target: "shatter_last_reunion",
		Note:   "An irrevocable sacrifice at the point of no return removes the possibility of a final reunion scene. The shattering must happen at a distance.",
	},
}

// Rules returns a copy of the advisory cross-chapter rules.
func Rules() []ConstraintRule {
	out := make([]ConstraintRule, len(crossChapterRules))
	copy(out, crossChapterRules)
	return out
}
