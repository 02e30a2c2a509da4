package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnxref/internal/iofs"
	"github.com/gnames/gnxref/pkg/config"
	"github.com/gnames/gnxref/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir  string
	cfgFile  string
	logLevel string
	cfg      *config.Config
)

func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gnxref",
		Short: "GNxref cross-references independent taxonomy checklists",
		Long: `GNxref builds a cross-reference graph over several taxonomy
checklists. Each checklist is validated into an immutable tree, its
taxa are matched against every other loaded checklist by taxonomic
concept and canonical scientific name, and the resulting synonym and
homonym links are published atomically.

Commands:
  - load:   ingest configured taxonomies into the graph
  - search: find taxa by scientific or vernacular name
  - tree:   show ancestors or descendants of a taxon
  - xref:   show cross-reference links of a taxon
  - info:   show per-taxonomy statistics

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (GNXREF_*)
  3. Config file (~/.config/gnxref/config.yaml)
  4. Built-in defaults

Taxonomy sources are configured in ~/.config/gnxref/taxonomies.yaml.`,
		Version:           Version,
		PersistentPreRunE: bootstrap,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Persistent flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ~/.config/gnxref/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"logging level: debug, info, warn or error")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for gnxref")

	rootCmd.AddCommand(getLoadCmd())
	rootCmd.AddCommand(getSearchCmd())
	rootCmd.AddCommand(getTreeCmd())
	rootCmd.AddCommand(getXrefCmd())
	rootCmd.AddCommand(getInfoCmd())

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureSourcesFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	cfg.Update(cfgViper.ToOptions())
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})
	if logLevel != "" {
		cfg.Update([]config.Option{config.OptLogLevel(logLevel)})
	}

	slog.SetDefault(logger.New(&cfg.Log))
	slog.Debug("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir))

	return nil
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	if cfgFile != "" {
		cfgPath = cfgFile
	}
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables
	// are allowed. These match the fields included in
	// config.ToOptions(), i.e. persistent configuration that can be
	// stored in config.yaml.
	v.SetEnvPrefix("GNXREF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("graph.search_limit", "GNXREF_GRAPH_SEARCH_LIMIT")
	v.BindEnv("graph.code", "GNXREF_GRAPH_CODE")
	v.BindEnv("store.path", "GNXREF_STORE_PATH")
	v.BindEnv("log.level", "GNXREF_LOG_LEVEL")
	v.BindEnv("log.format", "GNXREF_LOG_FORMAT")
	v.BindEnv("jobs_number", "GNXREF_JOBS_NUMBER")

	v.AutomaticEnv()
}
