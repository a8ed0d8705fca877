package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rsummers618/hearthbreaker/internal/replay"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input> <output>",
	Short: "Convert a replay between the compact and JSON formats",
	Long: `convert reads a replay file and rewrites it in the other format. The
format of each file is chosen by its extension: .json means the structured
JSON format, anything else the compact directive format.`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

func isJSONPath(path string) bool {
	return filepath.Ext(path) == ".json"
}

// loadReplay reads a replay file in the format its extension indicates.
func loadReplay(path string) (*replay.Replay, error) {
	r := replay.NewReplay()
	var err error
	if isJSONPath(path) {
		err = r.ReadJSONFile(path)
	} else {
		err = r.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return r, nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	in, out := args[0], args[1]
	r, err := loadReplay(in)
	if err != nil {
		return err
	}
	if isJSONPath(out) {
		err = r.WriteJSONFile(out)
	} else {
		err = r.WriteFile(out)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	fmt.Printf("Converted %s -> %s\n", in, out)
	return nil
}
