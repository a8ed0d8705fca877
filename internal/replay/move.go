package replay

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MoveType tags the move variants, matching the compact directive names.
type MoveType string

const (
	MovePlay    MoveType = "play"
	MoveAttack  MoveType = "attack"
	MovePower   MoveType = "power"
	MoveStart   MoveType = "start"
	MoveEnd     MoveType = "end"
	MoveConcede MoveType = "concede"
)

// Move is one recorded discrete action. Every move owns the ordered random
// draws consumed while it resolved.
type Move interface {
	Type() MoveType
	// Directive renders the move's compact-format line, without its
	// trailing random directive.
	Directive() string
	// Apply drives the move against the reconstructed game.
	Apply(pb *Playback) error
	Draws() []RandomDraw

	addDraw(d RandomDraw)
}

// baseMove carries the per-move draw sequence shared by every variant.
type baseMove struct {
	Random []RandomDraw `json:"random,omitempty"`
}

func (m *baseMove) Draws() []RandomDraw  { return m.Random }
func (m *baseMove) addDraw(d RandomDraw) { m.Random = append(m.Random, d) }

// PlayMove records a card played from hand. Index is the board position for
// minions; Target is the chosen target, when there was one.
type PlayMove struct {
	baseMove
	Card   CardRef       `json:"card"`
	Index  int           `json:"index"`
	Target *CharacterRef `json:"target,omitempty"`
}

func (m *PlayMove) Type() MoveType { return MovePlay }

func (m *PlayMove) Directive() string {
	args := []string{m.Card.token()}
	if m.Target != nil {
		args = append(args, fmt.Sprintf("%d", m.Index), m.Target.String())
	} else if m.Index > 0 {
		args = append(args, fmt.Sprintf("%d", m.Index))
	}
	return fmt.Sprintf("play(%s)", strings.Join(args, ","))
}

func (m *PlayMove) Apply(pb *Playback) error {
	p := pb.game.CurrentPlayer()
	idx := -1
	if m.Card.Index >= 0 && m.Card.Index < len(p.Hand) &&
		(m.Card.Name == "" || p.Hand[m.Card.Index].Name == m.Card.Name) {
		idx = m.Card.Index
	} else if m.Card.Name != "" {
		for i, c := range p.Hand {
			if c.Name == m.Card.Name {
				idx = i
				break
			}
		}
	}
	if idx < 0 || idx >= len(p.Hand) {
		return fmt.Errorf("%w: card %q not in hand", ErrUnresolvedReference, m.Card.Name)
	}
	agent := pb.agentFor(p)
	agent.nextIndex = m.Index
	agent.nextOption = m.Card.Option
	agent.nextTarget = nil
	if m.Target != nil {
		target, err := m.Target.Resolve(pb.game)
		if err != nil {
			return err
		}
		agent.nextTarget = target
	}
	return pb.game.PlayCard(p, idx)
}

// AttackMove records one attack.
type AttackMove struct {
	baseMove
	Attacker CharacterRef `json:"attacker"`
	Target   CharacterRef `json:"target"`
}

func (m *AttackMove) Type() MoveType { return MoveAttack }

func (m *AttackMove) Directive() string {
	return fmt.Sprintf("attack(%s,%s)", m.Attacker.String(), m.Target.String())
}

func (m *AttackMove) Apply(pb *Playback) error {
	attacker, err := m.Attacker.Resolve(pb.game)
	if err != nil {
		return err
	}
	target, err := m.Target.Resolve(pb.game)
	if err != nil {
		return err
	}
	agent := pb.agentFor(pb.game.CurrentPlayer())
	agent.nextTarget = target
	return pb.game.AttackWith(attacker)
}

// PowerMove records a hero power activation.
type PowerMove struct {
	baseMove
	Target *CharacterRef `json:"target,omitempty"`
}

func (m *PowerMove) Type() MoveType { return MovePower }

func (m *PowerMove) Directive() string {
	if m.Target != nil {
		return fmt.Sprintf("power(%s)", m.Target.String())
	}
	return "power()"
}

func (m *PowerMove) Apply(pb *Playback) error {
	p := pb.game.CurrentPlayer()
	agent := pb.agentFor(p)
	agent.nextTarget = nil
	if m.Target != nil {
		target, err := m.Target.Resolve(pb.game)
		if err != nil {
			return err
		}
		agent.nextTarget = target
	}
	return pb.game.UsePower(p)
}

// TurnStartMove marks a turn-start transition. The playback turn loop drives
// the transition itself, so applying the move does nothing.
type TurnStartMove struct {
	baseMove
}

func (m *TurnStartMove) Type() MoveType           { return MoveStart }
func (m *TurnStartMove) Directive() string        { return "start()" }
func (m *TurnStartMove) Apply(pb *Playback) error { return nil }

// TurnEndMove marks a turn-end transition.
type TurnEndMove struct {
	baseMove
}

func (m *TurnEndMove) Type() MoveType           { return MoveEnd }
func (m *TurnEndMove) Directive() string        { return "end()" }
func (m *TurnEndMove) Apply(pb *Playback) error { return nil }

// ConcedeMove records a concession by the acting player.
type ConcedeMove struct {
	baseMove
}

func (m *ConcedeMove) Type() MoveType    { return MoveConcede }
func (m *ConcedeMove) Directive() string { return "concede()" }

func (m *ConcedeMove) Apply(pb *Playback) error {
	pb.game.Concede(pb.game.CurrentPlayer())
	return nil
}

// moveWrapper carries a move's variant tag next to its fields in the
// structured format.
type moveWrapper struct {
	Name MoveType        `json:"name"`
	Data json.RawMessage `json:"data"`
}

func encodeMove(m Move) (moveWrapper, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return moveWrapper{}, err
	}
	return moveWrapper{Name: m.Type(), Data: data}, nil
}

func decodeMove(w moveWrapper) (Move, error) {
	var m Move
	switch w.Name {
	case MovePlay:
		m = &PlayMove{Card: CardRef{Option: -1}}
	case MoveAttack:
		m = &AttackMove{}
	case MovePower:
		m = &PowerMove{}
	case MoveStart:
		m = &TurnStartMove{}
	case MoveEnd:
		m = &TurnEndMove{}
	case MoveConcede:
		m = &ConcedeMove{}
	default:
		return nil, fmt.Errorf("unknown move type in log: %s", w.Name)
	}
	if err := json.Unmarshal(w.Data, m); err != nil {
		return nil, fmt.Errorf("failed to parse move data into specific type: %w", err)
	}
	return m, nil
}
