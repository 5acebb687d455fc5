package blueprint

// The chapter tree is expressed as tagged variant records per act slot.
// A slot may be gated on a modifier predicate; a slot's variants are
// selected by (tension, triangle-context). Slots with no matching variant
// for the current context are skipped entirely.

type triangleContext int

const (
	anyTriangle triangleContext = iota
	withTriangle
	withoutTriangle
)

// endStateWhen keys a conditional end-state variant. Resolution precedence
// is identity > triangle-context > ending-specific > default, and must be
// total for every reachable context.
type endStateWhen int

const (
	endDefault endStateWhen = iota
	endIdentity
	endTriangle
	endNoTriangle
	endHEA
	endBittersweet
)

type endStateVariant struct {
	when endStateWhen
	text string
}

type optionDef struct {
	id   string
	text string
	when Predicate
}

type groupDef struct {
	key           string
	header        string
	tension       Tension // "" matches any tension
	when          Predicate
	options       []optionDef
	constraints   []ConstraintNote
	cascadingNote string
}

// altChapter is an alternate rendering of a chapter that reuses its
// chapter number. Only the tragedy branch carries one.
type altChapter struct {
	function string
	endState string
	notes    string
}

type chapterDef struct {
	function     string
	endStates    []endStateVariant
	employment   []groupDef
	notes        string
	consequences []ConsequenceVariant
	alternate    *altChapter
}

type slotVariant struct {
	tension  Tension // "" matches any tension
	triangle triangleContext
	def      chapterDef
}

type slot struct {
	when     Predicate
	variants []slotVariant
}

type act struct {
	name        string
	description string
	slots       []slot
}

// --- Act 1: Collision ---

var act1 = act{
	name:        "Collision",
	description: "Hostility, battle lines, and the first involuntary softening.",
	slots: []slot{
		{variants: []slotVariant{
			{tension: TensionSafety, def: chapterDef{
				function: "The Collision",
				endStates: []endStateVariant{
					{endDefault, "The leads have met in open opposition. Each has concluded, with evidence, that the other is exactly the kind of person they cannot afford."},
				},
				employment: []groupDef{{
					key:    "collision_arena",
					header: "Where the collision happens",
					options: []optionDef{
						{id: "arena_professional", text: "A professional arena: they are rivals for the same position, contract, or territory."},
						{id: "arena_inherited", text: "An inherited feud: the hostility predates them and they each carry a side of it."},
						{id: "arena_personal_offense", text: "A personal offense: one publicly humiliated or materially harmed the other before the story opens."},
					},
				}},
			}},
			{tension: TensionIdentity, def: chapterDef{
				function: "The Mask Goes On",
				endStates: []endStateVariant{
					{endDefault, "The protagonist has stepped fully into the false identity and met the love interest while wearing it. The first impression is already a lie."},
				},
				employment: []groupDef{{
					key:    "mask_origin",
					header: "How the false identity begins",
					options: []optionDef{
						{id: "mask_borrowed_name", text: "A borrowed name: the protagonist is mistaken for someone else and does not correct it."},
						{id: "mask_manufactured_self", text: "A manufactured self: the identity was built deliberately, long before the love interest appeared."},
						{id: "mask_fled_past", text: "A fled past: the real identity is publicly known and despised, and the protagonist has shed it."},
					},
				}},
				notes: "The reader must know the truth from this chapter on. Dramatic irony, not mystery, powers the identity axis.",
			}},
		}},
		{variants: []slotVariant{
			{tension: TensionSafety, def: chapterDef{
				function: "Forced Proximity",
				endStates: []endStateVariant{
					{endDefault, "Circumstance has locked the leads into sustained contact neither can refuse without unacceptable cost. Both resent it; neither can leave."},
				},
				employment: []groupDef{{
					key:    "proximity_mechanism",
					header: "What forces them together",
					options: []optionDef{
						{id: "proximity_shared_assignment", text: "A shared assignment imposed by the meddling superior."},
						{id: "proximity_shared_quarters", text: "Shared quarters: one roof, no alternatives, a fixed duration."},
						{id: "proximity_mutual_dependency", text: "Mutual dependency: each holds something the other's goal requires."},
						{id: "proximity_secret_errand", text: "A shared errand that must be hidden from everyone else, isolating them as co-conspirators.", when: WhenSecret},
					},
				}},
			}},
			{tension: TensionIdentity, def: chapterDef{
				function: "Inside the Gates",
				endStates: []endStateVariant{
					{endDefault, "The false identity has granted the protagonist entry to the love interest's world, and the first real conversation has happened inside it. The access is real; the ground it stands on is not."},
				},
				employment: []groupDef{{
					key:    "gates_access",
					header: "What the false identity grants",
					options: []optionDef{
						{id: "gates_social_standing", text: "Standing: rooms, tables, and invitations the real name would never receive."},
						{id: "gates_professional_trust", text: "Trust: work or responsibility given only because of who they appear to be."},
						{id: "gates_clean_slate", text: "A clean slate: freedom from a reputation the real name cannot escape."},
					},
				}},
			}},
		}},
		// The third slot carries three parallel variants: identity,
		// triangle, and no-triangle.
		{variants: []slotVariant{
			{tension: TensionIdentity, def: chapterDef{
				function: "The Mask Slips",
				endStates: []endStateVariant{
					{endDefault, "For one unguarded moment the protagonist's true self has shown through, and it is that glimpse, not the persona, that the love interest cannot stop thinking about."},
				},
				employment: []groupDef{{
					key:    "slip_moment",
					header: "How the true self shows through",
					options: []optionDef{
						{id: "slip_competence", text: "A competence the persona should not have, displayed under pressure."},
						{id: "slip_compassion", text: "An instinctive kindness at odds with the persona's station or reputation."},
						{id: "slip_old_wound", text: "A reaction to something from the real past, noticed but not yet understood."},
					},
				}},
			}},
			{tension: TensionSafety, triangle: withTriangle, def: chapterDef{
				function: "The Third Corner",
				endStates: []endStateVariant{
					{endDefault, "The rival has entered with an offer that makes perfect sense, and the love interest has watched it happen. The geometry of the story is now a triangle."},
				},
				employment: []groupDef{{
					key:    "rival_entrance",
					header: "How the rival arrives",
					options: []optionDef{
						{id: "entrance_sanctioned_match", text: "The sanctioned match: family, rank, or common sense endorses the rival loudly."},
						{id: "entrance_rescuer", text: "The rescuer: the rival appears at a low moment and is genuinely useful."},
						{id: "entrance_shared_history", text: "Shared history: the rival and protagonist have an old, unfinished almost."},
					},
				}},
				notes: "The rival must be a credible alternative, not a cartoon. Their flaw is revealed later, through escalation.",
			}},
			{tension: TensionSafety, triangle: withoutTriangle, def: chapterDef{
				function: "The Crack in the Armor",
				endStates: []endStateVariant{
					{endDefault, "Each lead has seen one thing the other never meant to show, and the seen moment does not fit the enemy they thought they knew."},
				},
				employment: []groupDef{{
					key:    "crack_glimpse",
					header: "What each lead glimpses",
					options: []optionDef{
						{id: "glimpse_private_burden", text: "A private burden carried without complaint: a debt, a dependent, a duty."},
						{id: "glimpse_unguarded_grief", text: "Unguarded grief, witnessed by accident."},
						{id: "glimpse_principled_loss", text: "A moment of losing on purpose, for a principle the public feud contradicts."},
						{id: "glimpse_shadow_of_secret", text: "A glimpse that is, in hindsight, the secret's first shadow.", when: WhenSecret},
					},
				}},
			}},
		}},
		{variants: []slotVariant{
			{tension: TensionSafety, def: chapterDef{
				function: "The Rejection",
				endStates: []endStateVariant{
					{endTriangle, "One lead reached across the line and was refused, and the rival was there to absorb the rebound. The refuser spends the night regretting it."},
					{endNoTriangle, "One lead reached across the line and was refused. Both now know the hostility is a choice being maintained, not a fact."},
				},
				employment: []groupDef{{
					key:    "rejection_shape",
					header: "The shape of the rejection",
					options: []optionDef{
						{id: "rejection_public_scorn", text: "Public scorn: the overture is refused in front of witnesses, wounding pride as well as hope."},
						{id: "rejection_quiet_door", text: "The quiet door: a private, gentle, absolute refusal."},
						{id: "rejection_self_sabotage", text: "Self-sabotage: the refuser wants to accept and destroys the moment on purpose out of fear."},
					},
					constraints: []ConstraintNote{{
						Effect: "disables",
						When:   "rejection_public_scorn",
						Note:   "Public scorn disables the private-apology option in the grand-gesture chapter; amends must be made at matching visibility.",
					}},
					cascadingNote: "The shape chosen here sets the tone of every apology in Act 4. Carry it forward.",
				}},
			}},
		}},
	},
}

// --- Act 2: Entanglement ---

var act2 = act{
	name:        "Entanglement",
	description: "Cooperation the leads did not choose, and feelings they will not name.",
	slots: []slot{
		{variants: []slotVariant{
			{tension: TensionSafety, def: chapterDef{
				function: "The Unwanted Alliance",
				endStates: []endStateVariant{
					{endDefault, "A shared problem has forced the leads to work as one, and they are horrified to discover they are good at it."},
				},
				employment: []groupDef{{
					key:    "alliance_problem",
					header: "The shared problem",
					options: []optionDef{
						{id: "alliance_common_enemy", text: "A common enemy whose victory would ruin them both."},
						{id: "alliance_joint_stakes", text: "Joint stakes: a deadline or disaster that punishes them jointly."},
						{id: "alliance_cover_story", text: "A cover story that requires them to perform harmony in public.", when: WhenTriangle},
					},
				}},
			}},
			{tension: TensionIdentity, def: chapterDef{
				function: "Borrowed Name, Real Feelings",
				endStates: []endStateVariant{
					{endDefault, "The connection has become real on both sides. Every moment of closeness now doubles as a deepening of the fraud."},
				},
				employment: []groupDef{{
					key:    "realfeel_pressure",
					header: "Where the lie grinds against the feeling",
					options: []optionDef{
						{id: "realfeel_keeper_warning", text: "The keeper of the name demands the protagonist end it before it ends them."},
						{id: "realfeel_near_exposure", text: "A near-exposure survived by an improvised lie that costs the protagonist something to tell."},
						{id: "realfeel_gift_to_false_self", text: "The love interest gives something precious to the false self, and the protagonist must accept it under the wrong name."},
					},
				}},
			}},
		}},
		{variants: []slotVariant{
			{tension: TensionSafety, def: chapterDef{
				function: "The First Surrender",
				endStates: []endStateVariant{
					{endTriangle, "One lead has admitted the feeling to themselves, in the same breath as learning the rival is closing in. Jealousy has named what pride would not."},
					{endNoTriangle, "One lead has admitted the feeling to themselves and hates it. The armor goes back on, but it no longer fits."},
				},
				employment: []groupDef{{
					key:    "surrender_trigger",
					header: "What forces the inward admission",
					options: []optionDef{
						{id: "surrender_danger", text: "A moment of danger in which the first instinct is the other's safety."},
						{id: "surrender_tenderness", text: "An act of unrequested tenderness that cannot be reframed as tactics."},
						{id: "surrender_jealousy", text: "Watching the rival succeed at closeness and feeling it as loss.", when: WhenTriangle},
					},
				}},
			}},
			{tension: TensionIdentity, def: chapterDef{
				function: "The Double Life Deepens",
				endStates: []endStateVariant{
					{endDefault, "Offered a clean exit from the lie, the protagonist has instead committed further to it, because the false self is the one being loved."},
				},
				employment: []groupDef{{
					key:    "deepen_commitment",
					header: "How the protagonist doubles down",
					options: []optionDef{
						{id: "mask_deepen_commitment", text: "A public act that welds the false identity on: a title accepted, a register signed, an introduction performed."},
						{id: "mask_refused_exit", text: "A safe exit refused: the keeper offers to extract them cleanly and is turned down."},
						{id: "mask_second_lie", text: "A second lie built to protect the first, widening the circle of deceived."},
					},
					cascadingNote: "Whatever welds the mask on here is what the unmasking must tear. Reuse the same object, place, or witness in Act 3.",
				}},
			}},
		}},
		// Triangle-only escalation chapter.
		{when: WhenTriangle, variants: []slotVariant{
			{tension: TensionSafety, def: chapterDef{
				function: "The Rival's Gambit",
				endStates: []endStateVariant{
					{endDefault, "The rival has made a decisive move to lock in their claim, and in making it has shown a first flash of the flaw that disqualifies them."},
				},
				employment: []groupDef{{
					key:    "gambit_move",
					header: "The rival's decisive move",
					options: []optionDef{
						{id: "gambit_public_claim", text: "A public claim: an announcement, proposal, or declaration staged to be unrefusable."},
						{id: "gambit_generous_trap", text: "A generous trap: a gift or rescue engineered to create obligation."},
						{id: "gambit_alliance_with_antagonist", text: "An alliance with the antagonist: the rival trades integrity for advantage."},
					},
					constraints: []ConstraintNote{{
						Effect: "disables",
						When:   "gambit_alliance_with_antagonist",
						Note:   "Allying with the antagonist removes the graceful-withdrawal option when the rival is neutralized.",
					}},
				}},
			}},
		}},
	},
}

// --- Act 3: Crisis ---

var act3 = act{
	name:        "Crisis",
	description: "The almost, the wound, and the revelation that breaks the fragile truce.",
	slots: []slot{
		// Shared across tensions; end state resolved by context precedence.
		{variants: []slotVariant{
			{def: chapterDef{
				function: "Almost",
				endStates: []endStateVariant{
					{endIdentity, "The leads have come within a breath of real intimacy, and the protagonist pulled back, because accepting it under a false name would make the lie unforgivable."},
					{endTriangle, "The leads have come within a breath of crossing the line and were interrupted, and the interruption drove one of them straight back toward the rival."},
					{endNoTriangle, "The leads have come within a breath of crossing the line, and fear got there first. Both retreat, and both know exactly what they retreated from."},
				},
				employment: []groupDef{
					{
						key:    "almost_setting",
						header: "The shape of the almost",
						options: []optionDef{
							{id: "almost_celebration", text: "A celebration: guard lowered by victory, music, or relief."},
							{id: "almost_shelter", text: "A shelter: storm, siege, or breakdown strands them alone overnight."},
							{id: "almost_confession_adjacent", text: "A confession-adjacent conversation that gets one sentence too honest."},
						},
					},
					{
						key:     "rival_pressure",
						header:  "The rival's shadow over the almost",
						tension: TensionSafety,
						when:    WhenTriangle,
						options: []optionDef{
							{id: "pressure_interruption", text: "The rival is the interruption, arriving with a claim on the love interest's time."},
							{id: "pressure_ultimatum", text: "The almost is followed within hours by the rival's ultimatum: decide."},
						},
					},
				},
			}},
		}},
		// Secret-only chapter; the identity axis carries its secret in the
		// chapter spine itself, so this slot is safety-only.
		{when: WhenSecret, variants: []slotVariant{
			{tension: TensionSafety, def: chapterDef{
				function: "The Secret Unearthed",
				endStates: []endStateVariant{
					{endDefault, "The buried truth has surfaced, and not by the love interest's choosing. The protagonist now holds a fact that re-frames everything the last ten chapters built."},
				},
				employment: []groupDef{{
					key:    "secret_surfacing",
					header: "How the secret surfaces",
					options: []optionDef{
						{id: "secret_reveal_third_party", text: "A third party delivers it, with motives of their own."},
						{id: "secret_reveal_document", text: "A document, letter, or ledger left where it should never have been."},
						{id: "secret_reveal_overheard", text: "An overheard conversation that was never meant to be survivable."},
					},
					constraints: []ConstraintNote{{
						Effect: "fixes",
						When:   "secret_reveal_third_party",
						Note:   "A third-party reveal fixes the dark-night confrontation: it must open with the protagonist already in possession of the truth.",
					}},
				}},
			}},
		}},
		{variants: []slotVariant{
			{tension: TensionSafety, def: chapterDef{
				function: "The Betrayal Revealed",
				endStates: []endStateVariant{
					{endDefault, "The thing the protagonist feared from the start appears to have been true all along. The break is total, public or private, and the love interest's explanation goes unheard."},
				},
				employment: []groupDef{
					{
						key:    "betrayal_substance",
						header: "What the betrayal appears to be",
						options: []optionDef{
							{id: "betrayal_original_motive", text: "The alliance was assigned: the love interest's closeness began as someone else's errand.", when: WhenSecret},
							{id: "betrayal_divided_loyalty", text: "A divided loyalty surfaces: the love interest protected someone at the protagonist's expense."},
							{id: "betrayal_misread_scene", text: "A misread scene: damning in appearance, innocent in fact, unexplainable in the moment."},
						},
					},
					{
						key:    "secret_fallout",
						header: "How the unearthed secret sharpens the break",
						options: []optionDef{
							{id: "fallout_weaponized", text: "The secret is weaponized by whoever surfaced it, timed for maximum damage.", when: WhenSecret},
							{id: "fallout_double_blow", text: "The secret and the betrayal land together, each making the other unforgivable.", when: WhenSecret},
						},
					},
				},
			}},
			{tension: TensionIdentity, def: chapterDef{
				function: "The Unmasking",
				endStates: []endStateVariant{
					{endDefault, "The truth is out, involuntarily and in the worst possible light. The love interest now knows they fell for a person who, as named, does not exist."},
				},
				employment: []groupDef{{
					key:    "unmasking_mechanism",
					header: "How the mask comes off",
					options: []optionDef{
						{id: "unmask_public_recognition", text: "Public recognition: someone from the real past names them in front of everyone."},
						{id: "unmask_document_trap", text: "The document trap: the paper trail of the false name finally closes."},
						{id: "unmask_keeper_breaks", text: "The keeper breaks: the one person who knew decides the lie has gone too far."},
					},
				}},
				notes: "The love interest's first reaction must be grief or anger. Absolution this early voids the final act.",
			}},
		}},
		// Present only when both modifiers are active: the rival has
		// weaponized the secret and must be dealt with before Act 4.
		{when: WhenSecretAndTriangle, variants: []slotVariant{
			{tension: TensionSafety, def: chapterDef{
				function: "The Rival Neutralized",
				endStates: []endStateVariant{
					{endDefault, "The rival's use of the secret has overreached, and their claim on the love interest is finished. The triangle is resolved; the wound the secret made is not."},
				},
				employment: []groupDef{{
					key:    "neutralize_path",
					header: "How the rival is removed",
					options: []optionDef{
						{id: "neutralize_graceful_withdrawal", text: "Graceful withdrawal: the rival sees what the leads are and concedes with dignity."},
						{id: "neutralize_public_exposure", text: "Public exposure: the rival's machinations surface and their standing collapses."},
						{id: "neutralize_overreach", text: "Overreach: the rival forces a choice, certain of winning, and loses."},
					},
				}},
			}},
		}},
	},
}

// --- Act 4: Resolution (three branches) ---

var act4SafetyDefault = act{
	name:        "Resolution",
	description: "The dark night, the repair, and the settled ground the leads end on.",
	slots: []slot{
		{variants: []slotVariant{
			{tension: TensionSafety, def: chapterDef{
				function: "The Dark Night",
				endStates: []endStateVariant{
					{endDefault, "Both leads have sat alone with what was lost and found the separation worse than the risk. Each now knows what repair would cost, and one decides to pay it."},
				},
				employment: []groupDef{{
					key:    "darknight_turn",
					header: "What turns the dark night",
					options: []optionDef{
						{id: "darknight_confrontation", text: "A confrontation: the truth of the betrayal is finally said out loud, ugly and complete."},
						{id: "darknight_counsel", text: "Counsel: the wary confidant delivers the hard truth no one else could."},
						{id: "darknight_flight", text: "Flight interrupted: one lead tries to leave for good and cannot finish the leaving."},
					},
				}},
			}},
		}},
		{variants: []slotVariant{
			{tension: TensionSafety, def: chapterDef{
				function: "The Grand Gesture",
				endStates: []endStateVariant{
					{endDefault, "One lead has made repair at real, visible cost, proving with action what words already failed to prove. The other has seen it land."},
				},
				employment: []groupDef{{
					key:    "gesture_shape",
					header: "The shape of the gesture",
					options: []optionDef{
						{id: "gesture_public_declaration", text: "A public declaration at the site of the original wound, pride spent openly."},
						{id: "gesture_costly_proof", text: "Costly proof: giving up the contested prize, position, or feud that started everything."},
						{id: "gesture_private_apology", text: "A private apology, complete and unexcused, with the door left open and unpressured."},
					},
					constraints: []ConstraintNote{{
						Effect: "disables",
						When:   "rejection_public_scorn",
						Note:   "Unavailable when the Act 1 rejection was public scorn; the amends must match the wound's visibility.",
					}},
				}},
			}},
		}},
		{variants: []slotVariant{
			{tension: TensionSafety, def: chapterDef{
				function: "The New Equilibrium",
				endStates: []endStateVariant{
					{endHEA, "The leads stand together on fully honest ground, the feud's stakes resolved or deliberately abandoned. The trust that was the story's question is now its answer."},
					{endBittersweet, "The leads part, or remain, changed and grateful, the love real and the cost of it honestly counted. What was broken is repaired; what was lost stays lost."},
				},
				employment: []groupDef{{
					key:    "equilibrium_proof",
					header: "Proof of the new ground",
					options: []optionDef{
						{id: "equilibrium_ritual_reversed", text: "A reversal of the opening ritual: the first chapter's hostile gesture repeated as tenderness."},
						{id: "equilibrium_shared_future", text: "A concrete shared future: a plan, a place, or a practice that requires both of them."},
						{id: "equilibrium_witnessed_peace", text: "Witnessed peace: the world that watched them fight watches them choose each other."},
					},
				}},
			}},
		}},
	},
}

var act4SafetyTragic = act{
	name:        "Resolution",
	description: "The step that cannot be taken back, and what the loss leaves behind.",
	slots: []slot{
		{variants: []slotVariant{
			{tension: TensionSafety, def: chapterDef{
				function: "The Point of No Return",
				endStates: []endStateVariant{
					{endDefault, "One lead has taken a step that cannot be walked back, chosen under pressure and with partial knowledge. The reader can see the whole board; the leads cannot."},
				},
				employment: []groupDef{{
					key:    "noreturn_step",
					header: "The irrevocable step",
					options: []optionDef{
						{id: "noreturn_irrevocable_sacrifice", text: "An irrevocable sacrifice made to protect the other, which removes the possibility of return."},
						{id: "noreturn_unforgivable_word", text: "An unforgivable word spoken to drive the other to safety, believed by its target."},
						{id: "noreturn_chosen_duty", text: "A duty chosen over the bond, binding and permanent, for reasons the other never learns in time."},
					},
					constraints: []ConstraintNote{{
						Effect: "disables",
						When:   "noreturn_irrevocable_sacrifice",
						Note:   "The sacrifice removes the last-reunion option from the shattering; the loss must happen at a distance.",
					}},
				}},
			}},
		}},
		{variants: []slotVariant{
			{tension: TensionSafety, def: chapterDef{
				function: "The Shattering",
				endStates: []endStateVariant{
					{endDefault, "The loss has happened, on the page and without rescue. The surviving lead understands, one beat too late, exactly what the other's last choice meant."},
				},
				employment: []groupDef{{
					key:    "shatter_staging",
					header: "Staging the loss",
					options: []optionDef{
						{id: "shatter_last_reunion", text: "A last reunion: the truth arrives in time for one final meeting, and no further."},
						{id: "shatter_missed_meeting", text: "The missed meeting: the truth and the chance cross in transit and never touch."},
						{id: "shatter_silent_witness", text: "The silent witness: the survivor watches the loss happen, prevented from reaching it."},
					},
				}},
				alternate: &altChapter{
					function: "The Shattering (Worlds Apart)",
					endState: "The loss has happened offstage and at a distance, learned of rather than witnessed. The survivor is denied even the shape of a goodbye.",
					notes:    "Alternate rendering for stories where the point-of-no-return step physically separated the leads. Use this or the primary chapter, never both.",
				},
			}},
		}},
		{variants: []slotVariant{
			{tension: TensionSafety, def: chapterDef{
				function: "Ashes",
				endStates: []endStateVariant{
					{endDefault, "The survivor stands in the changed world and carries the love forward as something other than a couple. The tragedy means something; it is not merely sad."},
				},
				employment: []groupDef{{
					key:    "ashes_carrying",
					header: "How the love is carried forward",
					options: []optionDef{
						{id: "ashes_finished_work", text: "The survivor finishes what the lost lead began, in their name."},
						{id: "ashes_truth_told", text: "The survivor tells the whole truth to the world that misjudged the lost lead."},
						{id: "ashes_changed_code", text: "The survivor lives by the principle the lost lead died for, visibly and permanently."},
					},
				}},
				consequences: []ConsequenceVariant{
					{
						ID:          "consequence_redemption",
						Title:       "Redemption in the ruin",
						Description: "The loss breaks the feud, debt, or war that caused it. The survivor's grief becomes the instrument of a peace the couple never got to live in.",
					},
					{
						ID:          "consequence_vindication",
						Title:       "Vindication too late",
						Description: "The world learns the lost lead was innocent, or right, after the loss. The survivor receives every apology except the one that matters.",
					},
					{
						ID:          "consequence_inheritance",
						Title:       "The hollow inheritance",
						Description: "Everything the leads fought over passes to the survivor, and it is worthless to them. The prize of Act 1 is the ash of the title.",
					},
				},
			}},
		}},
	},
}

var act4Identity = act{
	name:        "Resolution",
	description: "The reckoning with the lie, and love given to the true name.",
	slots: []slot{
		{variants: []slotVariant{
			{tension: TensionIdentity, def: chapterDef{
				function: "The Reckoning",
				endStates: []endStateVariant{
					{endDefault, "The love interest has grieved the person who never existed and weighed what was real against what was named. The protagonist has made no excuse and stayed within reach."},
				},
				employment: []groupDef{{
					key:    "reckoning_work",
					header: "The work of the reckoning",
					options: []optionDef{
						{id: "reckoning_full_account", text: "The full account: the protagonist tells the entire truth, unprompted, including the unflattering parts."},
						{id: "reckoning_returned_gifts", text: "Returned gifts: everything given to the false name is offered back, and the love interest must decide what was really given to."},
						{id: "reckoning_real_world", text: "The real world: the love interest visits the protagonist's true life and sees what the mask was escape from."},
					},
				}},
			}},
		}},
		{variants: []slotVariant{
			{tension: TensionIdentity, def: chapterDef{
				function: "Loved As Yourself",
				endStates: []endStateVariant{
					{endDefault, "The love interest has chosen the person over the persona, deliberately and in full knowledge. The protagonist is, for the first time in the story, loved under their own name."},
				},
				employment: []groupDef{{
					key:    "truename_proof",
					header: "Proof the true self is chosen",
					options: []optionDef{
						{id: "truth_spoken_name", text: "The spoken name: the love interest uses the real name aloud, deliberately, at the moment of choosing."},
						{id: "truth_new_introduction", text: "The new introduction: the love interest presents the protagonist to their world under the true identity."},
						{id: "truth_cost_accepted", text: "The accepted cost: the love interest gives up what the false identity's world offered, and says so."},
					},
				}},
			}},
		}},
	},
}
