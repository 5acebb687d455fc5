package blueprint

// secretGuidance holds the per-tension authoring guidance attached to a
// blueprint when the secret modifier is active. Pure data; the resolver
// attaches it verbatim.
var secretGuidance = map[Tension]*SecretStructure{
	TensionSafety: {
		Qualities: []string{
			"The secret must threaten the exact thing the protagonist is learning to risk: their safety in the other person's hands.",
			"The secret belongs to the love interest, or implicates them, so its revelation lands as betrayal rather than coincidence.",
			"The reader should be able to see, in hindsight, at least two earlier moments where the secret cast a shadow.",
			"Keeping the secret must have been, at some point, a defensible choice. A secret kept out of pure malice belongs to a villain, not a love interest.",
		},
		CommonForms: []string{
			"The love interest was sent, hired, or ordered to get close to the protagonist before feelings became real.",
			"The love interest is implicated in the event that originally taught the protagonist not to trust.",
			"A debt, bargain, or obligation binds the love interest to the antagonist.",
			"The love interest has concealed what leaving with the protagonist would cost someone else.",
		},
		Rules: []string{
			"Seed the secret no later than the forced-proximity chapter; the reveal may not introduce information the story never gestured at.",
			"The secret is unearthed by a third party or by accident, never confessed voluntarily before the crisis, and never solved by the protagonist simply forgiving it on the spot.",
			"After the reveal, at least one full chapter must pass before repair begins.",
			"The repair must involve demonstrated change or cost, not explanation alone.",
		},
	},
	TensionIdentity: {
		Qualities: []string{
			"The secret is the protagonist's own: who they are, not what they did.",
			"The false identity must grant something real: access, safety, or a self the protagonist prefers, so shedding it is a genuine loss.",
			"The love interest must fall for traits that are true even while the name attached to them is false.",
			"The secret's exposure must be survivable only through the love interest choosing the person over the persona.",
		},
		CommonForms: []string{
			"A borrowed or invented name that opened a door the real one never could.",
			"A concealed rank, fortune, or lack of one.",
			"Letters, performances, or work published under another's identity.",
			"A past self, publicly known, that the protagonist has fled.",
		},
		Rules: []string{
			"Every chapter must contain at least one moment where the mask is nearly pierced.",
			"The unmasking is involuntary or forced by circumstance; a freely chosen confession belongs only in the final act.",
			"The love interest's first reaction to the truth is grief or anger, never instant absolution.",
			"The ending must show the love interest using the protagonist's real name, deliberately.",
		},
	},
}

// SecretGuidanceFor returns the guidance bundle for a tension, or nil
// when the secret modifier is inactive.
func SecretGuidanceFor(tension Tension, secret bool) *SecretStructure {
	if !secret {
		return nil
	}
	return secretGuidance[tension]
}
