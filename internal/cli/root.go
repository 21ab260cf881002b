// Package cli wires the commands together. Configuration follows the
// usual hierarchy: flags over BORMEX_* environment variables over
// ~/.bormex/config.yaml over built-in defaults.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bormex/bormex/internal/cache"
	"github.com/bormex/bormex/internal/model"
	"github.com/bormex/bormex/internal/pipeline"
	"github.com/bormex/bormex/internal/vocab"
)

var (
	cfgFile   string
	vocabPath string
	verbose   bool

	log = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:   "bormex",
	Short: "Bormex - commercial-registry bulletin entity extraction",
	Long: `Bormex parses Spanish commercial-registry bulletin entries:
officer appointments and cessations, corporate events, company status.

It extracts structured data from raw entry text, resolves name variants
to single identities, and folds dated events into current state.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("bormex v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.bormex/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&vocabPath, "vocab", "", "vocabulary override file (default: embedded table)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("vocab.path", rootCmd.PersistentFlags().Lookup("vocab"))

	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}
		viper.AddConfigPath(filepath.Join(home, ".bormex"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("BORMEX")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}

	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}
}

// loadConfig merges defaults with whatever viper picked up.
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		log.Warnf("config unmarshal: %v", err)
	}
	cfg.Output.Verbose = verbose
	return cfg
}

// loadVocab resolves the vocabulary table from the config.
func loadVocab(cfg *model.Config) (*vocab.Table, error) {
	if cfg.Vocab.Path == "" {
		return vocab.Default(), nil
	}
	t, err := vocab.Load(cfg.Vocab.Path)
	if err != nil {
		return nil, fmt.Errorf("load vocabulary %s: %w", cfg.Vocab.Path, err)
	}
	return t, nil
}

// buildParser assembles the parser with its cache per the config.
func buildParser(cfg *model.Config) (*pipeline.Parser, error) {
	t, err := loadVocab(cfg)
	if err != nil {
		return nil, err
	}
	var c cache.Cache
	if cfg.Cache.Enabled {
		c = cache.NewMemory(cfg.Cache.TTL, cfg.Cache.TTL)
	}
	return pipeline.NewParser(t, c), nil
}

// storePath resolves the sqlite path, defaulting under the home dir.
func storePath(cfg *model.Config) (string, error) {
	if cfg.Store.Path != "" {
		return cfg.Store.Path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("find home directory: %w", err)
	}
	return filepath.Join(home, ".bormex", "bormex.db"), nil
}
