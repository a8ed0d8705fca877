package game

import (
	"crypto/rand"
	"math/big"
)

// RandomSource supplies every nondeterministic draw the game makes. Recording
// wraps it; playback replaces it.
type RandomSource interface {
	// Between returns a uniform integer in [low, high].
	Between(low, high int) int
	// Character picks one of the candidates.
	Character(candidates []*Character) *Character
}

// cryptoSource is the default source, drawing from crypto/rand.
type cryptoSource struct{}

// DefaultRandomSource returns the production random source.
func DefaultRandomSource() RandomSource { return cryptoSource{} }

func (cryptoSource) Between(low, high int) int {
	if high <= low {
		return low
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(high-low+1)))
	if err != nil {
		panic(err)
	}
	return low + int(n.Int64())
}

func (s cryptoSource) Character(candidates []*Character) *Character {
	if len(candidates) == 0 {
		return nil
	}
	return candidates[s.Between(0, len(candidates)-1)]
}
