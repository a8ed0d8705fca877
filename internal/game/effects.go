package game

import (
	"fmt"
	"strconv"
	"strings"
)

// Evaluator resolves an effect step's formula against an evaluation context.
// The cards package provides a CEL implementation; the zero-dependency
// fallback below only understands literals.
type Evaluator interface {
	Eval(formula string, ctx map[string]any) (any, error)
}

// literalEvaluator handles integer and quoted-string formulas, enough for the
// engine's own tests.
type literalEvaluator struct{}

func (literalEvaluator) Eval(formula string, _ map[string]any) (any, error) {
	formula = strings.TrimSpace(formula)
	if n, err := strconv.Atoi(formula); err == nil {
		return n, nil
	}
	if len(formula) >= 2 && (formula[0] == '\'' || formula[0] == '"') && formula[len(formula)-1] == formula[0] {
		return formula[1 : len(formula)-1], nil
	}
	return nil, fmt.Errorf("cannot evaluate formula %q without an evaluator", formula)
}

// effectContext builds the evaluation context for a step.
func (g *Game) effectContext(p *Player, target *Character) map[string]any {
	ctx := map[string]any{
		"turn": int64(g.TurnNumber),
	}
	ctx["actor"] = characterToMap(p.Hero)
	if target != nil {
		ctx["target"] = characterToMap(target)
	} else {
		ctx["target"] = map[string]any{}
	}
	return ctx
}

// characterToMap exposes a character to formulas as a plain map.
func characterToMap(c *Character) map[string]any {
	return map[string]any{
		"name":       c.Name,
		"attack":     int64(c.Attack),
		"health":     int64(c.Health),
		"max_health": int64(c.MaxHealth),
		"armor":      int64(c.Armor),
		"hero":       c.IsHero,
	}
}

// applySteps runs effect steps for p, with target as the chosen target (may
// be nil for untargeted effects).
func (g *Game) applySteps(steps []EffectStep, p *Player, target *Character) error {
	for _, step := range steps {
		val, err := g.eval.Eval(step.Formula, g.effectContext(p, target))
		if err != nil {
			return fmt.Errorf("effect %s: %w", step.Event, err)
		}
		if err := g.applyStep(step.Event, val, p, target); err != nil {
			return err
		}
	}
	g.checkDeaths()
	return nil
}

func (g *Game) applyStep(event string, val any, p *Player, target *Character) error {
	switch event {
	case EffectDamage:
		t := target
		if t == nil {
			t = p.Opponent().Hero
		}
		t.Damage(asInt(val))
	case EffectDamageRandom:
		candidates := livingCharacters(p.Opponent())
		if len(candidates) == 0 {
			return nil
		}
		if c := g.rng.Character(candidates); c != nil {
			c.Damage(asInt(val))
		}
	case EffectDamageAllMinions:
		for _, m := range p.Opponent().Minions {
			m.Damage(asInt(val))
		}
	case EffectDamageOwnHero:
		p.Hero.Damage(asInt(val))
	case EffectHeal:
		t := target
		if t == nil {
			t = p.Hero
		}
		t.Heal(asInt(val))
	case EffectDraw:
		for i := 0; i < asInt(val); i++ {
			p.Draw()
		}
	case EffectArmor:
		p.Hero.Armor += asInt(val)
	case EffectSummon:
		name, ok := val.(string)
		if !ok {
			return fmt.Errorf("summon formula must yield a card name, got %T", val)
		}
		if g.lookup == nil {
			return fmt.Errorf("no card lookup configured for summon")
		}
		token, err := g.lookup(name)
		if err != nil {
			return err
		}
		if len(p.Minions) < MaxBoard {
			if _, err := p.summon(token, len(p.Minions)); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unknown effect event %q", event)
	}
	return nil
}

// livingCharacters returns a player's hero and minions that are still alive.
func livingCharacters(p *Player) []*Character {
	var out []*Character
	for _, c := range p.Characters() {
		if !c.Dead {
			out = append(out, c)
		}
	}
	return out
}

func asInt(val any) int {
	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case uint64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}
