package cmd

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rsummers618/hearthbreaker/internal/cards"
	"github.com/rsummers618/hearthbreaker/internal/game"
	"github.com/rsummers618/hearthbreaker/internal/replay"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run scripted games and record them as replay files",
	Long: `simulate plays a number of games between two scripted agents and writes
one replay file per game into the output directory. Replays are written in the
compact directive format by default; pass --format json for the structured
form.`,
	RunE: runSimulate,
}

var (
	simGames  int
	simOut    string
	simFormat string
	simClass1 string
	simClass2 string
	simSeed   int64
)

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().IntVarP(&simGames, "games", "n", 10, "number of games to play")
	simulateCmd.Flags().StringVarP(&simOut, "out", "o", "replays", "directory for recorded replays")
	simulateCmd.Flags().StringVar(&simFormat, "format", "compact", "replay format: compact or json")
	simulateCmd.Flags().StringVar(&simClass1, "class1", "MAGE", "class of the first deck")
	simulateCmd.Flags().StringVar(&simClass2, "class2", "HUNTER", "class of the second deck")
	simulateCmd.Flags().Int64Var(&simSeed, "seed", 0, "seed for reproducible games (0 uses the system source)")
}

// seededSource drives games from math/rand so a --seed run is reproducible.
type seededSource struct {
	r *rand.Rand
}

func (s *seededSource) Between(low, high int) int {
	if high <= low {
		return low
	}
	return low + s.r.Intn(high-low+1)
}

func (s *seededSource) Character(candidates []*game.Character) *game.Character {
	if len(candidates) == 0 {
		return nil
	}
	return candidates[s.r.Intn(len(candidates))]
}

// deckNames builds a thirty-card list for the class by cycling through every
// card the database knows that the class can play.
func deckNames(db *cards.DB, class game.Class) ([]string, error) {
	var pool []string
	for _, c := range db.All() {
		if c.Class == class || c.Class == game.ClassAll {
			pool = append(pool, c.Name)
		}
	}
	if len(pool) == 0 {
		return nil, fmt.Errorf("no cards available for class %s", class)
	}
	names := make([]string, game.DeckSize)
	for i := range names {
		names[i] = pool[i%len(pool)]
	}
	return names, nil
}

func runSimulate(cmd *cobra.Command, args []string) error {
	if simFormat != "compact" && simFormat != "json" {
		return fmt.Errorf("unknown format %q", simFormat)
	}
	if !cmd.Flags().Changed("out") {
		if dir := viper.GetString("replay_dir"); dir != "" {
			simOut = dir
		}
	}
	class1, err := game.ParseClass(simClass1)
	if err != nil {
		return err
	}
	class2, err := game.ParseClass(simClass2)
	if err != nil {
		return err
	}

	db := newCardDB()
	ev, err := cards.NewEvaluator()
	if err != nil {
		return err
	}
	names1, err := deckNames(db, class1)
	if err != nil {
		return err
	}
	names2, err := deckNames(db, class2)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(simOut, 0755); err != nil {
		return err
	}

	var src game.RandomSource
	if simSeed != 0 {
		src = &seededSource{r: rand.New(rand.NewSource(simSeed))}
	} else {
		src = game.DefaultRandomSource()
	}

	bar := progressbar.Default(int64(simGames), "Simulating")
	wins := [2]int{}
	draws := 0
	for i := 0; i < simGames; i++ {
		d1, err := db.BuildDeck(class1, names1)
		if err != nil {
			return err
		}
		d2, err := db.BuildDeck(class2, names2)
		if err != nil {
			return err
		}
		g := game.NewGame(d1, d2, game.ScriptedAgent{}, game.ScriptedAgent{},
			game.WithRandomSource(src),
			game.WithEvaluator(ev),
			game.WithCardLookup(db.Lookup))
		r, err := replay.Record(g)
		if err != nil {
			return err
		}
		if err := g.Start(); err != nil {
			return err
		}

		path := filepath.Join(simOut, fmt.Sprintf("game_%04d.hsreplay", i+1))
		if simFormat == "json" {
			path = filepath.Join(simOut, fmt.Sprintf("game_%04d.json", i+1))
			err = r.WriteJSONFile(path)
		} else {
			err = r.WriteFile(path)
		}
		if err != nil {
			return err
		}

		switch g.Winner {
		case 0, 1:
			wins[g.Winner]++
		default:
			draws++
		}
		logrus.WithFields(logrus.Fields{
			"game":   i + 1,
			"winner": g.Winner,
			"turns":  g.TurnNumber,
			"file":   path,
		}).Debug("game recorded")
		bar.Add(1)
	}

	fmt.Printf("\n%d games: %s %d, %s %d, drawn %d\n",
		simGames, class1, wins[0], class2, wins[1], draws)
	return nil
}
