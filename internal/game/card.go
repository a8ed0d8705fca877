package game

// CardKind distinguishes the two playable card shapes.
type CardKind int

const (
	KindMinion CardKind = iota
	KindSpell
)

// EffectStep is one unit of a card effect: the engine event to apply and a
// formula for its magnitude. Formulas are evaluated by the Evaluator the game
// was built with, so card behavior stays data-driven.
type EffectStep struct {
	Event   string `yaml:"event"`
	Formula string `yaml:"formula"`
}

// Effect events understood by the engine.
const (
	EffectDamage           = "damage"             // deal N to the chosen target
	EffectDamageRandom     = "damage_random"      // deal N to a random enemy character
	EffectDamageAllMinions = "damage_all_minions" // deal N to every enemy minion
	EffectDamageOwnHero    = "damage_own_hero"    // deal N to the acting hero
	EffectHeal             = "heal"               // restore N to the chosen target
	EffectDraw             = "draw"               // draw N cards
	EffectArmor            = "armor"              // gain N armor
	EffectSummon           = "summon"             // summon the token named by the formula
)

// Option is one branch of a choose-one card.
type Option struct {
	Name  string       `yaml:"name"`
	Steps []EffectStep `yaml:"steps"`
}

// Card is a card definition. Definitions are immutable and shared; the hand
// holds pointers into the card database.
type Card struct {
	Name     string       `yaml:"name"`
	Class    Class        `yaml:"-"`
	Mana     int          `yaml:"mana"`
	Kind     CardKind     `yaml:"-"`
	Attack   int          `yaml:"attack"`
	Health   int          `yaml:"health"`
	Targeted bool         `yaml:"targeted"`
	Steps    []EffectStep `yaml:"steps"`
	Options  []Option     `yaml:"options"`
}

// IsMinion reports whether playing the card summons a minion.
func (c *Card) IsMinion() bool { return c.Kind == KindMinion }
