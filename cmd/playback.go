package cmd

import (
	"github.com/rsummers618/hearthbreaker/internal/cards"
	"github.com/rsummers618/hearthbreaker/internal/game"
	"github.com/rsummers618/hearthbreaker/internal/replay"
)

// reconstructPlayback builds a playback with the same effect evaluator that
// simulate records with, so card formulas resolve identically on both sides.
func reconstructPlayback(r *replay.Replay, db *cards.DB) (*replay.Playback, error) {
	ev, err := cards.NewEvaluator()
	if err != nil {
		return nil, err
	}
	return replay.Reconstruct(r, db.Lookup, game.WithEvaluator(ev))
}
