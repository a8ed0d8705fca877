// Package replay records live games into a move log and reconstructs games
// that replay the log move for move. Logs persist in two interchangeable wire
// formats: a compact line-directive format and a structured JSON format.
package replay

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rsummers618/hearthbreaker/internal/game"
)

// ErrUnresolvedReference marks a recorded card or character reference that no
// longer matches the reconstructed game, which means the log and the card
// database disagree.
var ErrUnresolvedReference = errors.New("cannot resolve recorded reference")

// CardRef identifies a played card by name (compact format) or by its hand
// position at the moment of play (structured format). Option selects a branch
// of a choose-one card; -1 means none.
type CardRef struct {
	Name   string
	Index  int
	Option int
}

type cardRefJSON struct {
	Name   string `json:"name,omitempty"`
	Index  int    `json:"index"`
	Option *int   `json:"option,omitempty"`
}

func (c CardRef) MarshalJSON() ([]byte, error) {
	out := cardRefJSON{Name: c.Name, Index: c.Index}
	if c.Option >= 0 {
		opt := c.Option
		out.Option = &opt
	}
	return json.Marshal(out)
}

func (c *CardRef) UnmarshalJSON(data []byte) error {
	var in cardRefJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	c.Name = in.Name
	c.Index = in.Index
	c.Option = -1
	if in.Option != nil {
		c.Option = *in.Option
	}
	return nil
}

// token renders the compact-format card argument, Name or Name:option.
func (c CardRef) token() string {
	if c.Option >= 0 {
		return fmt.Sprintf("%s:%d", c.Name, c.Option)
	}
	return c.Name
}

// parseCardToken reads a compact-format card argument. The compact format
// identifies cards by name only, so the hand index is left unset. The option
// suffix is always :<int>; a colon followed by anything else belongs to the
// card name itself ("Power Word: Shield").
func parseCardToken(s string) (CardRef, error) {
	ref := CardRef{Index: -1, Option: -1}
	if i := strings.LastIndex(s, ":"); i >= 0 {
		if opt, err := strconv.Atoi(s[i+1:]); err == nil {
			ref.Option = opt
			s = s[:i]
		}
	}
	if s == "" {
		return ref, fmt.Errorf("empty card reference")
	}
	ref.Name = s
	return ref, nil
}

// CharacterRef identifies a hero or minion by player side and board position:
// position 0 is the hero, position n the minion in slot n. A ref parsed from
// the flat single-integer form indexes the combined enumeration of both
// boards and keeps that form when written back.
type CharacterRef struct {
	Side int
	Pos  int

	flat      bool
	flatIndex int
}

// NewCharacterRef builds a ref for a live character.
func NewCharacterRef(c *game.Character) CharacterRef {
	ref := CharacterRef{Side: c.Owner.Side()}
	if !c.IsHero {
		for i, m := range c.Owner.Minions {
			if m == c {
				ref.Pos = i + 1
				break
			}
		}
	}
	return ref
}

// ParseCharacterRef reads any accepted textual form: p<side>:<pos>, p<side>
// (the hero) or a bare flat index.
func ParseCharacterRef(s string) (CharacterRef, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return CharacterRef{}, fmt.Errorf("empty character reference")
	}
	if n, err := strconv.Atoi(s); err == nil {
		return CharacterRef{flat: true, flatIndex: n}, nil
	}
	if s[0] != 'p' {
		return CharacterRef{}, fmt.Errorf("bad character reference %q", s)
	}
	rest := s[1:]
	pos := 0
	if i := strings.Index(rest, ":"); i >= 0 {
		var err error
		pos, err = strconv.Atoi(rest[i+1:])
		if err != nil {
			return CharacterRef{}, fmt.Errorf("bad character reference %q: %w", s, err)
		}
		rest = rest[:i]
	}
	side, err := strconv.Atoi(rest)
	if err != nil {
		return CharacterRef{}, fmt.Errorf("bad character reference %q: %w", s, err)
	}
	return CharacterRef{Side: side, Pos: pos}, nil
}

// String renders the ref in the form it was created or parsed with.
func (r CharacterRef) String() string {
	if r.flat {
		return strconv.Itoa(r.flatIndex)
	}
	return fmt.Sprintf("p%d:%d", r.Side, r.Pos)
}

func (r CharacterRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *CharacterRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseCharacterRef(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Resolve finds the live character the ref points at. Stale positions and
// dead units are replay-fatal.
func (r CharacterRef) Resolve(g *game.Game) (*game.Character, error) {
	if r.flat {
		all := g.AllCharacters()
		if r.flatIndex < 0 || r.flatIndex >= len(all) {
			return nil, fmt.Errorf("%w: flat index %d out of range", ErrUnresolvedReference, r.flatIndex)
		}
		c := all[r.flatIndex]
		if c.Dead {
			return nil, fmt.Errorf("%w: character at flat index %d is dead", ErrUnresolvedReference, r.flatIndex)
		}
		return c, nil
	}
	c, err := g.ResolveCharacter(r.Side, r.Pos)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnresolvedReference, err)
	}
	return c, nil
}

// DrawKind discriminates the two RandomDraw variants.
type DrawKind int

const (
	DrawInt DrawKind = iota
	DrawCharacter
)

// RandomDraw is one recorded random outcome: a bounded integer draw or the
// identity of a randomly selected character. Draws are consumed in the exact
// order they were recorded, scoped to the move that triggered them.
type RandomDraw struct {
	Kind      DrawKind
	Value     int
	Character CharacterRef
}

// IntDraw wraps a numeric draw result.
func IntDraw(n int) RandomDraw {
	return RandomDraw{Kind: DrawInt, Value: n}
}

// CharacterDraw wraps a random-target selection.
func CharacterDraw(ref CharacterRef) RandomDraw {
	return RandomDraw{Kind: DrawCharacter, Character: ref}
}

// IsZero reports whether the draw is the integer zero, the only value the
// compact format may omit.
func (d RandomDraw) IsZero() bool {
	return d.Kind == DrawInt && d.Value == 0
}

// token renders the compact-format argument: digits for integers, a character
// reference otherwise.
func (d RandomDraw) token() string {
	if d.Kind == DrawInt {
		return strconv.Itoa(d.Value)
	}
	return d.Character.String()
}

// parseDrawToken distinguishes the two variants the way the compact format
// does: all-digit arguments are integers, anything else a character ref.
func parseDrawToken(s string) (RandomDraw, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return IntDraw(n), nil
	}
	ref, err := ParseCharacterRef(s)
	if err != nil {
		return RandomDraw{}, err
	}
	return CharacterDraw(ref), nil
}

func (d RandomDraw) MarshalJSON() ([]byte, error) {
	if d.Kind == DrawInt {
		return json.Marshal(d.Value)
	}
	return json.Marshal(d.Character.String())
}

func (d *RandomDraw) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*d = IntDraw(n)
		return nil
	}
	var ref CharacterRef
	if err := json.Unmarshal(data, &ref); err != nil {
		return err
	}
	*d = CharacterDraw(ref)
	return nil
}
