package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/golang-cz/devslog"
	"github.com/spf13/cobra"

	"nestdb"
	"nestdb/config"
	"nestdb/repl"
	"nestdb/storage"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
	backend    string
	dumpFormat string
	debug      bool
	verbose    bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "nestdb",
		Short: "In-memory key/value store with nested transactions",
		Long: `nestdb reads whitespace-delimited commands from stdin:

  SET <name> <value>, GET <name>, DELETE <name>, COUNT <value>,
  BEGIN, ROLLBACK, COMMIT, END

With --debug the DUMP command prints the store, the value index and the
pending transaction levels.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "path to YAML config file")
	cmd.Flags().StringVar(&opts.backend, "storage", "", "record store backend (map|trie)")
	cmd.Flags().StringVar(&opts.dumpFormat, "dump-format", "", "DUMP output format (text|json|bson)")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "enable the DUMP command")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose logging")

	return cmd
}

func run(opts *rootOptions) error {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		cfg, err = config.Load(opts.configPath)
		if err != nil {
			return err
		}
	}

	// flags override the file
	if opts.backend != "" {
		cfg.Storage = opts.backend
	}
	if opts.dumpFormat != "" {
		cfg.DumpFormat = opts.dumpFormat
	}
	if opts.debug {
		cfg.Debug = true
	}
	if opts.verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	setupLogging(cfg.LogLevel)

	eng := nestdb.NewEngine(newStorage(cfg.Storage))
	sess := repl.NewSession(eng, os.Stdin, os.Stdout, os.Stderr, repl.Options{
		Debug:      cfg.Debug,
		DumpFormat: cfg.DumpFormat,
	})
	return sess.Run()
}

func setupLogging(level string) {
	lvl := slog.LevelInfo
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}

	logOpts := &devslog.Options{HandlerOptions: &slog.HandlerOptions{
		Level: lvl,
	}}
	slog.SetDefault(slog.New(devslog.NewHandler(os.Stderr, logOpts)))
}

func newStorage(backend string) storage.Storage[string] {
	if backend == config.StorageTrie {
		return storage.NewPrefixTreeStorage[string]()
	}
	return storage.NewMapStorage[string]()
}
