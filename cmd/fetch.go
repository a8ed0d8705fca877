package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/rsummers618/hearthbreaker/internal/hsjson"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download card definitions from HearthstoneJSON",
	Long: `Bootstraps the local card data by fetching the collectible card list from
HearthstoneJSON and storing each supported card as a YAML file for offline
use. Cards the engine cannot represent (weapons, heroes, unknown classes) are
skipped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, _ := cmd.Flags().GetString("data_dir_local")
		if dataDir == "" {
			rootDir, _ := os.Getwd()
			dataDir = filepath.Join(rootDir, "data")
		}

		force, _ := cmd.Flags().GetBool("force")

		fmt.Printf("Fetching card data to: %s\n", dataDir)

		client := hsjson.NewClient(dataDir, force)

		list, err := client.FetchCards()
		if err != nil {
			return fmt.Errorf("fetching card list: %w", err)
		}

		var supported []hsjson.APICard
		for _, card := range list {
			if hsjson.Supported(card) {
				supported = append(supported, card)
			}
		}

		bar := progressbar.Default(int64(len(supported)), "Saving cards")
		saved, failed := 0, 0
		for _, card := range supported {
			if err := client.SaveCard(card); err != nil {
				fmt.Printf("\nFailed to save %s: %v\n", card.Name, err)
				failed++
			} else {
				saved++
			}
			bar.Add(1)
		}

		fmt.Printf("\nCard data complete: %d saved, %d skipped, %d failed\n",
			saved, len(list)-len(supported), failed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().Bool("force", false, "Force redownload of existing files")
	fetchCmd.Flags().String("data_dir_local", "", "Local data directory to save files to (internal fallback is still used by the app)")
}
