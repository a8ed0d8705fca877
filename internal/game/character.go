package game

// Character is any damageable participant: a hero or a minion on the board.
type Character struct {
	Name      string
	Attack    int
	Health    int
	MaxHealth int
	Armor     int
	Dead      bool
	IsHero    bool

	// Exhausted marks a minion that was summoned this turn and cannot
	// attack yet.
	Exhausted bool
	// AttackedThisTurn gates one attack per turn.
	AttackedThisTurn bool

	Owner *Player
}

// Damage applies amount to the character, consuming armor first, and marks
// death. It reports whether the character died from this hit.
func (c *Character) Damage(amount int) bool {
	if c.Dead || amount <= 0 {
		return false
	}
	if c.Armor > 0 {
		absorbed := amount
		if absorbed > c.Armor {
			absorbed = c.Armor
		}
		c.Armor -= absorbed
		amount -= absorbed
	}
	c.Health -= amount
	if c.Health <= 0 {
		c.Dead = true
	}
	return c.Dead
}

// Heal restores up to amount, never exceeding MaxHealth.
func (c *Character) Heal(amount int) {
	if c.Dead || amount <= 0 {
		return
	}
	c.Health += amount
	if c.Health > c.MaxHealth {
		c.Health = c.MaxHealth
	}
}

// CanAttack reports whether the character may attack right now.
func (c *Character) CanAttack() bool {
	return !c.Dead && !c.Exhausted && !c.AttackedThisTurn && c.Attack > 0
}
