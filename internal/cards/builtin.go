package cards

import "github.com/rsummers618/hearthbreaker/internal/game"

func minion(name string, class game.Class, mana, attack, health int, steps ...game.EffectStep) *game.Card {
	return &game.Card{
		Name:   name,
		Class:  class,
		Mana:   mana,
		Kind:   game.KindMinion,
		Attack: attack,
		Health: health,
		Steps:  steps,
	}
}

func spell(name string, class game.Class, mana int, targeted bool, steps ...game.EffectStep) *game.Card {
	return &game.Card{
		Name:     name,
		Class:    class,
		Mana:     mana,
		Kind:     game.KindSpell,
		Targeted: targeted,
		Steps:    steps,
	}
}

func step(event, formula string) game.EffectStep {
	return game.EffectStep{Event: event, Formula: formula}
}

// builtins is the built-in card set. Enough of the classic set to exercise
// every effect event, plus the tokens hero powers summon.
var builtins = []*game.Card{
	// Spells.
	spell("Fireball", game.ClassMage, 4, true, step(game.EffectDamage, "6")),
	spell("Frostbolt", game.ClassMage, 2, true, step(game.EffectDamage, "3")),
	spell("Arcane Intellect", game.ClassMage, 3, false, step(game.EffectDraw, "2")),
	spell("Arcane Missiles", game.ClassMage, 1, false,
		step(game.EffectDamageRandom, "1"),
		step(game.EffectDamageRandom, "1"),
		step(game.EffectDamageRandom, "1")),
	spell("Flamestrike", game.ClassMage, 7, false, step(game.EffectDamageAllMinions, "4")),
	spell("Holy Smite", game.ClassPriest, 1, true, step(game.EffectDamage, "2")),
	spell("Mind Blast", game.ClassPriest, 2, false, step(game.EffectDamage, "5")),
	spell("Sinister Strike", game.ClassRogue, 1, false, step(game.EffectDamage, "3")),
	spell("Sprint", game.ClassRogue, 7, false, step(game.EffectDraw, "4")),
	spell("Shield Block", game.ClassWarrior, 3, false,
		step(game.EffectArmor, "5"),
		step(game.EffectDraw, "1")),
	spell("Hammer of Wrath", game.ClassPaladin, 4, true,
		step(game.EffectDamage, "3"),
		step(game.EffectDraw, "1")),
	spell("Holy Light", game.ClassPaladin, 2, true, step(game.EffectHeal, "6")),
	spell("Starfire", game.ClassDruid, 6, true,
		step(game.EffectDamage, "5"),
		step(game.EffectDraw, "1")),

	// Choose-one.
	{
		Name:     "Wrath",
		Class:    game.ClassDruid,
		Mana:     2,
		Kind:     game.KindSpell,
		Targeted: true,
		Options: []game.Option{
			{Name: "Wrath", Steps: []game.EffectStep{step(game.EffectDamage, "3")}},
			{Name: "Wrath Split", Steps: []game.EffectStep{
				step(game.EffectDamage, "1"),
				step(game.EffectDraw, "1"),
			}},
		},
	},

	// Minions.
	minion("Wisp", game.ClassAll, 0, 1, 1),
	minion("Murloc Raider", game.ClassAll, 1, 2, 1),
	minion("Bloodfen Raptor", game.ClassAll, 2, 3, 2),
	minion("River Crocolisk", game.ClassAll, 2, 2, 3),
	minion("Magma Rager", game.ClassAll, 3, 5, 1),
	minion("Silverback Patriarch", game.ClassAll, 3, 1, 4),
	minion("Chillwind Yeti", game.ClassAll, 4, 4, 5),
	minion("Oasis Snapjaw", game.ClassAll, 4, 2, 7),
	minion("Boulderfist Ogre", game.ClassAll, 6, 6, 7),
	minion("Novice Engineer", game.ClassAll, 2, 1, 1, step(game.EffectDraw, "1")),
	minion("Elven Archer", game.ClassAll, 1, 1, 1, step(game.EffectDamageRandom, "1")),
	minion("Mad Bomber", game.ClassAll, 2, 3, 2,
		step(game.EffectDamageRandom, "1"),
		step(game.EffectDamageRandom, "1"),
		step(game.EffectDamageRandom, "1")),

	// Tokens.
	minion("Silver Hand Recruit", game.ClassPaladin, 1, 1, 1),
	minion("Healing Totem", game.ClassShaman, 1, 0, 2),
}
