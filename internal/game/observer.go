package game

// Observer receives game notifications. The recorder is an observer; the
// playback driver is another. Embed BaseObserver to implement only the hooks
// you need.
type Observer interface {
	// KeptCards fires after a player's mulligan decision is applied.
	KeptCards(p *Player, kept []int)
	// CardPlayed fires after targeting but before the card resolves.
	// handIndex is the card's position in the hand at the moment of play.
	CardPlayed(p *Player, handIndex int, card *Card)
	// PowerUsed fires when a hero power is activated.
	PowerUsed(p *Player)
	// AttackLaunched fires once the attack target is chosen.
	AttackLaunched(attacker, target *Character)

	// Turn transition hooks. Starting/Ending fire before the transition
	// logic runs, Started/Ended after it completes.
	TurnStarting(g *Game)
	TurnStarted(g *Game)
	TurnEnding(g *Game)
	TurnEnded(g *Game)

	// PreGameComplete fires once decks are dealt and mulligans resolved.
	PreGameComplete(g *Game)
}

// BaseObserver is a no-op Observer for embedding.
type BaseObserver struct{}

func (BaseObserver) KeptCards(*Player, []int)              {}
func (BaseObserver) CardPlayed(*Player, int, *Card)        {}
func (BaseObserver) PowerUsed(*Player)                     {}
func (BaseObserver) AttackLaunched(*Character, *Character) {}
func (BaseObserver) TurnStarting(*Game)                    {}
func (BaseObserver) TurnStarted(*Game)                     {}
func (BaseObserver) TurnEnding(*Game)                      {}
func (BaseObserver) TurnEnded(*Game)                       {}
func (BaseObserver) PreGameComplete(*Game)                 {}
