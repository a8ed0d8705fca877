package replay

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rsummers618/hearthbreaker/internal/game"
)

// Cardinality errors for the compact format.
var (
	ErrTooManyDecks = errors.New("maximum of two decks per file")
	ErrTooManyKeeps = errors.New("maximum of two keep directives per file")
)

// defaultKeeps is substituted when a log carries no keep directives: player
// one keeps its three-card opening hand, player two its four.
func defaultKeeps() [][]int {
	return [][]int{{0, 1, 2}, {0, 1, 2, 3}}
}

// Replay aggregates everything needed to reproduce one game: the two decks in
// first-acting-player order, the per-player mulligan keeps, the pre-game
// random draws (the first is the coin flip) and the ordered move sequence.
//
// A Replay is populated either incrementally by a Recorder or wholesale by a
// deserialization pass, and is consumed read-only by playback.
type Replay struct {
	Decks  []DeckList
	Keeps  [][]int
	Random []RandomDraw
	Moves  []Move

	nextTarget *CharacterRef
}

// NewReplay creates an empty replay ready for recording or loading.
func NewReplay() *Replay {
	return &Replay{}
}

// recordDraw attaches a draw to the most recent move, or to the pre-game list
// when no move exists yet.
func (r *Replay) recordDraw(d RandomDraw) {
	if len(r.Moves) > 0 {
		r.Moves[len(r.Moves)-1].addDraw(d)
		return
	}
	r.Random = append(r.Random, d)
}

// stageTarget holds a chosen target until the move it belongs to is appended.
func (r *Replay) stageTarget(ref *CharacterRef) {
	r.nextTarget = ref
}

// takeTarget consumes the staged target.
func (r *Replay) takeTarget() *CharacterRef {
	t := r.nextTarget
	r.nextTarget = nil
	return t
}

// appendMove adds a move to the end of the log.
func (r *Replay) appendMove(m Move) {
	r.Moves = append(r.Moves, m)
}

// lastPlay returns the most recent move when it is a play, for the recorder's
// index and option follow-ups.
func (r *Replay) lastPlay() *PlayMove {
	if len(r.Moves) == 0 {
		return nil
	}
	if m, ok := r.Moves[len(r.Moves)-1].(*PlayMove); ok {
		return m
	}
	return nil
}

// allDrawsZero reports whether every recorded draw, pre-game and per-move, is
// the integer zero. Only then may the compact format write an empty random
// header: playback answers zero for every draw when the header is empty.
func (r *Replay) allDrawsZero() bool {
	for _, d := range r.Random {
		if !d.IsZero() {
			return false
		}
	}
	for _, m := range r.Moves {
		for _, d := range m.Draws() {
			if !d.IsZero() {
				return false
			}
		}
	}
	return true
}

// Write serializes the replay in the compact line-directive format.
func (r *Replay) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, deck := range r.Decks {
		fmt.Fprintf(bw, "deck(%s,%s)\n", deck.Class.String(), strings.Join(Compress(deck.Cards), ","))
	}
	if r.allDrawsZero() {
		fmt.Fprintf(bw, "random()\n")
	} else {
		fmt.Fprintf(bw, "random(%s)\n", joinDraws(r.Random))
	}
	for _, keep := range r.Keeps {
		kept := make([]string, len(keep))
		for i, k := range keep {
			kept[i] = strconv.Itoa(k)
		}
		fmt.Fprintf(bw, "keep(%s)\n", strings.Join(kept, ","))
	}
	for _, m := range r.Moves {
		fmt.Fprintf(bw, "%s\n", m.Directive())
		if draws := m.Draws(); len(draws) > 0 {
			fmt.Fprintf(bw, "random(%s)\n", joinDraws(draws))
		}
	}
	return bw.Flush()
}

// WriteFile writes the compact format to a file it opens and closes itself.
func (r *Replay) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func joinDraws(draws []RandomDraw) string {
	tokens := make([]string, len(draws))
	for i, d := range draws {
		tokens[i] = d.token()
	}
	return strings.Join(tokens, ",")
}

// Read parses the compact line-directive format. Any line that does not match
// the grammar, and any third deck or keep directive, aborts the read.
func (r *Replay) Read(reader io.Reader) error {
	scanner := bufio.NewScanner(reader)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		name, args, err := parseDirective(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		if err := r.applyDirective(name, args); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if len(r.Keeps) == 0 {
		r.Keeps = defaultKeeps()
	}
	return nil
}

// ReadFile reads the compact format from a file it opens and closes itself.
func (r *Replay) ReadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return r.Read(f)
}

func (r *Replay) applyDirective(name string, args []string) error {
	switch name {
	case "deck":
		if len(r.Decks) >= 2 {
			return ErrTooManyDecks
		}
		if len(args) < 2 {
			return fmt.Errorf("%w: deck needs a class and at least one card", ErrBadDirective)
		}
		class, err := game.ParseClass(args[0])
		if err != nil {
			return err
		}
		cards, err := Expand(args[1:])
		if err != nil {
			return err
		}
		r.Decks = append(r.Decks, DeckList{Class: class, Cards: cards})

	case "keep":
		if len(r.Keeps) >= 2 {
			return ErrTooManyKeeps
		}
		keep := make([]int, len(args))
		for i, a := range args {
			n, err := strconv.Atoi(a)
			if err != nil {
				return fmt.Errorf("%w: bad keep index %q", ErrBadDirective, a)
			}
			keep[i] = n
		}
		r.Keeps = append(r.Keeps, keep)

	case "random":
		if len(r.Moves) == 0 {
			for _, a := range args {
				n, err := strconv.Atoi(a)
				if err != nil {
					return fmt.Errorf("%w: pre-game draws must be integers, got %q", ErrBadDirective, a)
				}
				r.Random = append(r.Random, IntDraw(n))
			}
			return nil
		}
		for _, a := range args {
			d, err := parseDrawToken(a)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrBadDirective, err)
			}
			r.Moves[len(r.Moves)-1].addDraw(d)
		}

	case "play":
		if len(args) < 1 || len(args) > 3 {
			return fmt.Errorf("%w: play takes one to three arguments", ErrBadDirective)
		}
		card, err := parseCardToken(args[0])
		if err != nil {
			return fmt.Errorf("%w: %v", ErrBadDirective, err)
		}
		move := &PlayMove{Card: card}
		if len(args) > 1 {
			idx, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("%w: bad board index %q", ErrBadDirective, args[1])
			}
			move.Index = idx
		}
		if len(args) > 2 {
			target, err := ParseCharacterRef(args[2])
			if err != nil {
				return fmt.Errorf("%w: %v", ErrBadDirective, err)
			}
			move.Target = &target
		}
		r.Moves = append(r.Moves, move)

	case "attack":
		if len(args) != 2 {
			return fmt.Errorf("%w: attack takes an attacker and a target", ErrBadDirective)
		}
		attacker, err := ParseCharacterRef(args[0])
		if err != nil {
			return fmt.Errorf("%w: %v", ErrBadDirective, err)
		}
		target, err := ParseCharacterRef(args[1])
		if err != nil {
			return fmt.Errorf("%w: %v", ErrBadDirective, err)
		}
		r.Moves = append(r.Moves, &AttackMove{Attacker: attacker, Target: target})

	case "power":
		move := &PowerMove{}
		if len(args) > 0 && args[0] != "" {
			target, err := ParseCharacterRef(args[0])
			if err != nil {
				return fmt.Errorf("%w: %v", ErrBadDirective, err)
			}
			move.Target = &target
		}
		r.Moves = append(r.Moves, move)

	case "start":
		r.Moves = append(r.Moves, &TurnStartMove{})
	case "end":
		r.Moves = append(r.Moves, &TurnEndMove{})
	case "concede":
		r.Moves = append(r.Moves, &ConcedeMove{})

	default:
		return fmt.Errorf("%w: unknown directive %q", ErrBadDirective, name)
	}
	return nil
}

// Structured-format document shapes.
type replayJSON struct {
	Header headerJSON    `json:"header"`
	Moves  []moveWrapper `json:"moves"`
}

type headerJSON struct {
	Decks  []deckJSON   `json:"decks"`
	Keep   [][]int      `json:"keep"`
	Random []RandomDraw `json:"random"`
}

type deckJSON struct {
	Cards []string `json:"cards"`
	Class string   `json:"class"`
}

// WriteJSON serializes the replay in the structured format.
func (r *Replay) WriteJSON(w io.Writer) error {
	doc := replayJSON{
		Header: headerJSON{
			Keep:   r.Keeps,
			Random: r.Random,
		},
	}
	for _, deck := range r.Decks {
		doc.Header.Decks = append(doc.Header.Decks, deckJSON{
			Cards: Compress(deck.Cards),
			Class: deck.Class.String(),
		})
	}
	for _, m := range r.Moves {
		wrapper, err := encodeMove(m)
		if err != nil {
			return err
		}
		doc.Moves = append(doc.Moves, wrapper)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// WriteJSONFile writes the structured format to a file it opens and closes
// itself.
func (r *Replay) WriteJSONFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.WriteJSON(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadJSON parses the structured format.
func (r *Replay) ReadJSON(reader io.Reader) error {
	var doc replayJSON
	if err := json.NewDecoder(reader).Decode(&doc); err != nil {
		return fmt.Errorf("failed to decode replay document: %w", err)
	}
	if len(doc.Header.Decks) == 0 {
		return fmt.Errorf("replay document has no decks in header")
	}
	r.Decks = nil
	for _, deck := range doc.Header.Decks {
		class, err := game.ParseClass(deck.Class)
		if err != nil {
			return err
		}
		cards, err := Expand(deck.Cards)
		if err != nil {
			return err
		}
		r.Decks = append(r.Decks, DeckList{Class: class, Cards: cards})
	}
	r.Keeps = doc.Header.Keep
	if len(r.Keeps) == 0 {
		r.Keeps = defaultKeeps()
	}
	r.Random = doc.Header.Random
	r.Moves = nil
	for _, wrapper := range doc.Moves {
		m, err := decodeMove(wrapper)
		if err != nil {
			return err
		}
		r.Moves = append(r.Moves, m)
	}
	return nil
}

// ReadJSONFile reads the structured format from a file it opens and closes
// itself.
func (r *Replay) ReadJSONFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return r.ReadJSON(f)
}
