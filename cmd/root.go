package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rsummers618/hearthbreaker/internal/cards"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "hearthbreaker",
	Short: "A Hearthstone simulator with deterministic record and replay",
	Long: `hearthbreaker simulates Hearthstone games between scripted agents and
records every decision and random draw into replay files, in either the
compact directive format or the structured JSON format. Recorded games can be
played back move for move, converted between formats, verified, or watched in
an interactive viewer.`,
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.hearthbreaker.yaml)")
	rootCmd.PersistentFlags().String("data_dir", "", "directory holding card YAML definitions")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	viper.BindPFlag("data_dir", rootCmd.PersistentFlags().Lookup("data_dir"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".hearthbreaker")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		logrus.Debugf("Using config file: %s", viper.ConfigFileUsed())
	}

	if viper.GetBool("verbose") {
		logrus.SetLevel(logrus.DebugLevel)
	}
}

// dataDirs assembles the card data fallback hierarchy: the configured
// directory first, then ./data, then $HOME/.hearthbreaker/data.
func dataDirs() []string {
	var dirs []string
	if dir := viper.GetString("data_dir"); dir != "" {
		dirs = append(dirs, dir)
	}
	dirs = append(dirs, "data")
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, home+"/.hearthbreaker/data")
	}
	return dirs
}

// newCardDB builds the card database over the built-in set plus any YAML
// definitions found in the data directories.
func newCardDB() *cards.DB {
	return cards.NewDBWithLoader(cards.NewLoader(dataDirs()))
}
