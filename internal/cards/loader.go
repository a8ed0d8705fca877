package cards

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rsummers618/hearthbreaker/internal/game"
)

// Loader reads card definitions from YAML files, searching a data directory
// fallback hierarchy.
type Loader struct {
	dataDirs []string
}

// NewLoader initializes a card loader with the given data directory fallback
// hierarchy.
func NewLoader(dataDirs []string) *Loader {
	return &Loader{dataDirs: dataDirs}
}

// cardSpec is the YAML shape of a card definition.
type cardSpec struct {
	Name     string            `yaml:"name"`
	Class    string            `yaml:"class"`
	Kind     string            `yaml:"kind"`
	Mana     int               `yaml:"mana"`
	Attack   int               `yaml:"attack"`
	Health   int               `yaml:"health"`
	Targeted bool              `yaml:"targeted"`
	Steps    []game.EffectStep `yaml:"steps"`
	Options  []game.Option     `yaml:"options"`
}

func (s *cardSpec) toCard() (*game.Card, error) {
	class := game.ClassAll
	if s.Class != "" {
		var err error
		class, err = game.ParseClass(strings.ToUpper(s.Class))
		if err != nil {
			return nil, err
		}
	}
	var kind game.CardKind
	switch strings.ToLower(s.Kind) {
	case "minion":
		kind = game.KindMinion
	case "spell", "":
		kind = game.KindSpell
	default:
		return nil, fmt.Errorf("unknown card kind %q", s.Kind)
	}
	return &game.Card{
		Name:     s.Name,
		Class:    class,
		Mana:     s.Mana,
		Kind:     kind,
		Attack:   s.Attack,
		Health:   s.Health,
		Targeted: s.Targeted,
		Steps:    s.Steps,
		Options:  s.Options,
	}, nil
}

// LoadCard constructs a card definition by searching the data directories
// sequentially for cards/<dash-name>.yaml.
func (l *Loader) LoadCard(name string) (*game.Card, error) {
	var spec cardSpec
	dashName := strings.ReplaceAll(strings.ToLower(name), " ", "-")
	ref := filepath.Join("cards", fmt.Sprintf("%s.yaml", dashName))
	if err := l.load(ref, &spec); err != nil {
		return nil, err
	}
	if spec.Name == "" {
		spec.Name = name
	}
	return spec.toCard()
}

func (l *Loader) load(ref string, target interface{}) error {
	for _, dir := range l.dataDirs {
		path := filepath.Join(dir, ref)
		f, err := os.Open(path)
		if err == nil {
			defer f.Close()
			decoder := yaml.NewDecoder(f)
			if err := decoder.Decode(target); err != nil {
				return fmt.Errorf("failed to decode yaml reference %s: %w", ref, err)
			}
			return nil
		}
	}
	return fmt.Errorf("could not find or open reference %s in any available data directory", ref)
}
