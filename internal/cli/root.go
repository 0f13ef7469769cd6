package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jaimessoon/JARVIS-Songbook-Converter/internal/logging"
	"github.com/jaimessoon/JARVIS-Songbook-Converter/internal/model"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "songbook",
	Short: "Songbook - Ultimate-Guitar to Songbook Pro converter",
	Long: `Songbook converts chord sheets saved from Ultimate-Guitar into ChordPro
files that Songbook Pro can import.

It reads a saved song page, the page's JSON record, or raw [ch]/[tab] markup,
optionally transposes every chord, and writes a .pro file with a title and
artist header.

Chords it cannot read are copied unchanged, so a conversion never fails
because of one odd chord.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "songbook %s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.songbook/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(filepath.Join(home, ".songbook"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	setDefaults(model.DefaultConfig())

	// Read in environment variables that match SONGBOOK_*
	viper.SetEnvPrefix("SONGBOOK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// setDefaults registers every config key so environment variables can override it
func setDefaults(cfg *model.Config) {
	viper.SetDefault("convert.transpose", cfg.Convert.Transpose)
	viper.SetDefault("convert.title", cfg.Convert.Title)
	viper.SetDefault("convert.artist", cfg.Convert.Artist)
	viper.SetDefault("markup.chord_open", cfg.Markup.ChordOpen)
	viper.SetDefault("markup.chord_close", cfg.Markup.ChordClose)
	viper.SetDefault("markup.tab_open", cfg.Markup.TabOpen)
	viper.SetDefault("markup.tab_close", cfg.Markup.TabClose)
	viper.SetDefault("markup.target_open", cfg.Markup.TargetOpen)
	viper.SetDefault("markup.target_close", cfg.Markup.TargetClose)
	viper.SetDefault("output.dir", cfg.Output.Dir)
	viper.SetDefault("output.extension", cfg.Output.Extension)
	viper.SetDefault("output.overwrite", cfg.Output.Overwrite)
	viper.SetDefault("concurrency.workers", cfg.Concurrency.Workers)
	viper.SetDefault("cache.enabled", cfg.Cache.Enabled)
	viper.SetDefault("cache.ttl", cfg.Cache.TTL)
	viper.SetDefault("log.level", cfg.Log.Level)
	viper.SetDefault("log.json", cfg.Log.JSON)
}

// loadConfig builds the effective configuration: defaults, config file and
// environment through viper, then flags the user set on cmd
func loadConfig(cmd *cobra.Command) (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("transpose") {
		cfg.Convert.Transpose, _ = flags.GetInt("transpose")
	}
	if flags.Changed("title") {
		cfg.Convert.Title, _ = flags.GetString("title")
	}
	if flags.Changed("artist") {
		cfg.Convert.Artist, _ = flags.GetString("artist")
	}
	if flags.Changed("output-dir") {
		cfg.Output.Dir, _ = flags.GetString("output-dir")
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency.Workers, _ = flags.GetInt("concurrency")
	}
	if flags.Changed("no-cache") {
		noCache, _ := flags.GetBool("no-cache")
		cfg.Cache.Enabled = !noCache
	}
	if verbose {
		cfg.Log.Level = "debug"
	}

	return cfg, nil
}

// newLogger creates the logger for a command run
func newLogger(cfg *model.Config) logging.Logger {
	return logging.New(logging.Config{
		Level: cfg.Log.Level,
		JSON:  cfg.Log.JSON,
	})
}

// addConvertFlags registers the flags shared by convert, batch and watch
func addConvertFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("transpose", "t", 0, "semitones to transpose every chord (-11..11)")
	cmd.Flags().StringP("output-dir", "o", ".", "directory for .pro files")
	cmd.Flags().Bool("no-cache", false, "disable the in-memory conversion cache")
}
