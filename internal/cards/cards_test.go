package cards

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsummers618/hearthbreaker/internal/game"
)

func TestEvaluatorLiteral(t *testing.T) {
	ev, err := NewEvaluator()
	require.NoError(t, err)

	out, err := ev.Eval("6", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(6), out)
}

func TestEvaluatorUsesContext(t *testing.T) {
	ev, err := NewEvaluator()
	require.NoError(t, err)

	ctx := map[string]any{
		"turn":   int64(4),
		"actor":  map[string]any{"armor": int64(2)},
		"target": map[string]any{"health": int64(2)},
	}
	out, err := ev.Eval("target.health < 3 ? 4 : 2", ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), out)

	out, err = ev.Eval("turn + 1", ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), out)
}

func TestEvaluatorRejectsBadFormula(t *testing.T) {
	ev, err := NewEvaluator()
	require.NoError(t, err)

	_, err = ev.Eval("target.health <", nil)
	assert.Error(t, err)
}

func TestLookupBuiltin(t *testing.T) {
	db := NewDB()

	c, err := db.Lookup("Fireball")
	require.NoError(t, err)
	assert.Equal(t, 4, c.Mana)
	assert.True(t, c.Targeted)
	require.Len(t, c.Steps, 1)
	assert.Equal(t, game.EffectDamage, c.Steps[0].Event)

	_, err = db.Lookup("Not A Card")
	assert.Error(t, err)
}

func TestLookupSharesDefinitions(t *testing.T) {
	db := NewDB()
	a, err := db.Lookup("Wisp")
	require.NoError(t, err)
	b, err := db.Lookup("Wisp")
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestBuildDeck(t *testing.T) {
	db := NewDB()
	names := make([]string, game.DeckSize)
	for i := range names {
		names[i] = "Wisp"
	}
	d, err := db.BuildDeck(game.ClassMage, names)
	require.NoError(t, err)
	assert.Equal(t, game.ClassMage, d.Class)
	assert.Equal(t, game.DeckSize, d.Remaining())

	names[0] = "Not A Card"
	_, err = db.BuildDeck(game.ClassMage, names)
	assert.Error(t, err)
}

func writeCardFile(t *testing.T, dir, file, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "cards"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cards", file), []byte(content), 0o644))
}

func TestLoaderReadsCardYAML(t *testing.T) {
	dir := t.TempDir()
	writeCardFile(t, dir, "ice-lance.yaml", `
name: Ice Lance
class: mage
kind: spell
mana: 1
targeted: true
steps:
  - event: damage
    formula: "target.health < 3 ? 4 : 2"
`)
	l := NewLoader([]string{dir})

	c, err := l.LoadCard("Ice Lance")
	require.NoError(t, err)
	assert.Equal(t, game.ClassMage, c.Class)
	assert.Equal(t, game.KindSpell, c.Kind)
	require.Len(t, c.Steps, 1)
	assert.Equal(t, "target.health < 3 ? 4 : 2", c.Steps[0].Formula)
}

func TestLoaderDirectoryFallback(t *testing.T) {
	empty := t.TempDir()
	dir := t.TempDir()
	writeCardFile(t, dir, "angry-chicken.yaml", `
name: Angry Chicken
kind: minion
mana: 1
attack: 1
health: 1
`)
	l := NewLoader([]string{empty, dir})

	c, err := l.LoadCard("Angry Chicken")
	require.NoError(t, err)
	assert.Equal(t, game.KindMinion, c.Kind)

	_, err = l.LoadCard("Missing Card")
	assert.Error(t, err)
}

func TestLoaderRejectsUnknownKind(t *testing.T) {
	dir := t.TempDir()
	writeCardFile(t, dir, "weird.yaml", "name: Weird\nkind: weapon\n")
	l := NewLoader([]string{dir})

	_, err := l.LoadCard("Weird")
	assert.Error(t, err)
}

func TestDBFallsThroughToLoader(t *testing.T) {
	dir := t.TempDir()
	writeCardFile(t, dir, "custom-bolt.yaml", `
name: Custom Bolt
class: mage
kind: spell
mana: 2
targeted: true
steps:
  - event: damage
    formula: "3"
`)
	db := NewDBWithLoader(NewLoader([]string{dir}))

	c, err := db.Lookup("Custom Bolt")
	require.NoError(t, err)
	assert.Equal(t, 2, c.Mana)

	again, err := db.Lookup("Custom Bolt")
	require.NoError(t, err)
	assert.Same(t, c, again)
}

func TestEvaluatorDrivesGameEffects(t *testing.T) {
	ev, err := NewEvaluator()
	require.NoError(t, err)
	db := NewDB()

	names := make([]string, game.DeckSize)
	for i := range names {
		names[i] = "Wisp"
	}
	d1, err := db.BuildDeck(game.ClassMage, names)
	require.NoError(t, err)
	d2, err := db.BuildDeck(game.ClassHunter, names)
	require.NoError(t, err)

	g := game.NewGame(d1, d2, game.ScriptedAgent{}, game.ScriptedAgent{},
		game.WithEvaluator(ev),
		game.WithCardLookup(db.Lookup))
	require.NoError(t, g.Start())
	assert.True(t, g.Over)
}
