package game

// PowerCost is the mana cost of every hero power.
const PowerCost = 2

// PowerDef describes a class hero power as effect steps, the same shape card
// effects use.
type PowerDef struct {
	Name     string
	Targeted bool
	Steps    []EffectStep
}

// heroPowers is the per-class hero power table.
var heroPowers = map[Class]PowerDef{
	ClassMage: {
		Name:     "Fireblast",
		Targeted: true,
		Steps:    []EffectStep{{Event: EffectDamage, Formula: "1"}},
	},
	ClassPriest: {
		Name:     "Lesser Heal",
		Targeted: true,
		Steps:    []EffectStep{{Event: EffectHeal, Formula: "2"}},
	},
	ClassWarrior: {
		Name:  "Armor Up!",
		Steps: []EffectStep{{Event: EffectArmor, Formula: "2"}},
	},
	ClassDruid: {
		Name:  "Shapeshift",
		Steps: []EffectStep{{Event: EffectArmor, Formula: "1"}},
	},
	ClassHunter: {
		Name:  "Steady Shot",
		Steps: []EffectStep{{Event: EffectDamage, Formula: "2"}},
	},
	ClassWarlock: {
		Name: "Life Tap",
		Steps: []EffectStep{
			{Event: EffectDamageOwnHero, Formula: "2"},
			{Event: EffectDraw, Formula: "1"},
		},
	},
	ClassPaladin: {
		Name:  "Reinforce",
		Steps: []EffectStep{{Event: EffectSummon, Formula: "'Silver Hand Recruit'"}},
	},
	ClassRogue: {
		Name:  "Dagger Mastery",
		Steps: []EffectStep{{Event: EffectDamage, Formula: "1"}},
	},
	ClassShaman: {
		Name:  "Totemic Call",
		Steps: []EffectStep{{Event: EffectSummon, Formula: "'Healing Totem'"}},
	},
}

// HeroPower returns the power for a class, falling back to Armor Up for
// classes without one.
func HeroPower(c Class) PowerDef {
	if p, ok := heroPowers[c]; ok {
		return p
	}
	return PowerDef{Name: "Armor Up!", Steps: []EffectStep{{Event: EffectArmor, Formula: "2"}}}
}
