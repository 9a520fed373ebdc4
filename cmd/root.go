package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pable/go-playoff-odds/internal/config"
	"github.com/pable/go-playoff-odds/internal/telemetry"
)

var (
	cfgFile string
	dbPath  string
	cfg     *config.Config
)

var (
	cOK    = color.New(color.FgGreen, color.Bold)
	cMuted = color.New(color.Faint)
)

var rootCmd = &cobra.Command{
	Use:   "playoffodds",
	Short: "Division series probability by game number and win pct",
	Long: `Replay Retrosheet game logs season by season and estimate, for every game
number and win percentage, the share of teams that went on to play in the
division series. Results are drawn as a heat map and stored for later review.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	defaultDB := filepath.Join(mustUserHome(), ".playoffodds", "runs.db")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./playoffodds.yaml if present)")
	rootCmd.PersistentFlags().String("db", defaultDB, "path to SQLite database")
	rootCmd.PersistentFlags().String("log-level", "info", "debug, info, warn or error")
	viper.BindPFlag(config.KeyDB, rootCmd.PersistentFlags().Lookup("db"))
	viper.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(teamsCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(dropCmd)
}

func loadConfig(cmd *cobra.Command, args []string) error {
	defaultDB := filepath.Join(mustUserHome(), ".playoffodds", "runs.db")
	c, err := config.Load(viper.GetViper(), cfgFile, defaultDB)
	if err != nil {
		return err
	}
	cfg = c
	dbPath = c.DBPath
	telemetry.Init(telemetry.ParseLogLevel(c.LogLevel))
	return nil
}

func mustUserHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
