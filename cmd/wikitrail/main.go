package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"wikitrail/internal/bootstrap"
	"wikitrail/internal/platform/config"
	apperrors "wikitrail/internal/platform/errors"
	"wikitrail/internal/platform/logging"
	uiapp "wikitrail/internal/ui/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// rootOptions holds the persistent flags. A flag only overrides the loaded
// config when it was set on the command line.
type rootOptions struct {
	configPath string
	width      int
	depth      int
	noHints    bool
	seed       uint64
	maxNodes   int
	noCache    bool
	logLevel   string
	apiURL     string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "wikitrail",
		Short:         "Find the hidden chain of Wikipedia links",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", config.DefaultPath(), "config file (YAML)")
	flags.IntVar(&opts.width, "width", config.DefaultWidth, "links sampled per topic")
	flags.IntVar(&opts.depth, "depth", config.DefaultDepth, "hops hidden in the tree")
	flags.BoolVar(&opts.noHints, "no-hints", false, "only score an exact match")
	flags.Uint64Var(&opts.seed, "seed", 0, "random seed (0 picks one)")
	flags.IntVar(&opts.maxNodes, "max-nodes", config.DefaultMaxNodes, "largest tree a build may fetch")
	flags.BoolVar(&opts.noCache, "no-cache", false, "bypass the local link cache")
	flags.StringVar(&opts.logLevel, "log-level", "info", "debug|info|warn|error")
	flags.StringVar(&opts.apiURL, "api-url", config.DefaultAPIURL, "MediaWiki API endpoint")

	play := newPlayCmd(opts)
	root.RunE = play.RunE
	root.Flags().AddFlagSet(play.Flags())

	root.AddCommand(play)
	root.AddCommand(newTreeCmd(opts))
	root.AddCommand(newLinksCmd(opts))
	root.AddCommand(newBudgetCmd(opts))
	root.AddCommand(newCacheCmd(opts))
	return root
}

func loadConfig(cmd *cobra.Command, opts *rootOptions) (config.Config, error) {
	cfg, err := config.Load(opts.configPath, cmd.Flags().Changed("config"))
	if err != nil {
		return config.Config{}, err
	}
	changed := cmd.Flags().Changed
	if changed("width") {
		cfg.Width = opts.width
	}
	if changed("depth") {
		cfg.Depth = opts.depth
	}
	if changed("no-hints") {
		cfg.Hints = !opts.noHints
	}
	if changed("seed") {
		cfg.Seed = opts.seed
	}
	if changed("max-nodes") {
		cfg.MaxNodes = opts.maxNodes
	}
	if changed("no-cache") {
		cfg.NoCache = opts.noCache
	}
	if changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if changed("api-url") {
		cfg.APIURL = opts.apiURL
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// loadApp logs to stderr. play logs to a file instead since the TUI owns the screen.
func loadApp(cmd *cobra.Command, opts *rootOptions) (*bootstrap.App, config.Config, error) {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return nil, config.Config{}, err
	}
	logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return nil, config.Config{}, err
	}
	app, err := bootstrap.New(cfg, logger)
	if err != nil {
		return nil, config.Config{}, err
	}
	return app, cfg, nil
}

func newPlayCmd(opts *rootOptions) *cobra.Command {
	var start string
	var randomStart bool

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			logger, logFile, err := logging.NewFile(cfg.LogPath, cfg.LogLevel)
			if err != nil {
				return err
			}
			defer logFile.Close()

			app, err := bootstrap.New(cfg, logger)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := checkBudget(app, cfg); err != nil {
				return err
			}

			logger.Info("session started", "width", cfg.Width, "depth", cfg.Depth, "hints", cfg.Hints, "cache", !cfg.NoCache)
			return bootstrap.RunTUI(app, uiapp.Settings{
				Width:       cfg.Width,
				Depth:       cfg.Depth,
				Hints:       cfg.Hints,
				StartTopic:  strings.TrimSpace(start),
				RandomStart: randomStart,
			})
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "starting topic (skips the picker)")
	cmd.Flags().BoolVar(&randomStart, "random-start", false, "start from a random Main Page link")
	return cmd
}

func newTreeCmd(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "tree [start topic]",
		Short: "Build a tree and print it with its answer path",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cfg, err := loadApp(cmd, opts)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := checkBudget(app, cfg); err != nil {
				return err
			}

			ctx := cmd.Context()
			start := ""
			if len(args) == 1 {
				start = args[0]
			} else {
				candidates, err := app.CrawlCLI.StartingCandidates(ctx)
				if err != nil {
					return err
				}
				start = app.CrawlCLI.SuggestStarts(candidates, 1)[0]
			}

			budget := app.CrawlCLI.Budget(cfg.Width, cfg.Depth)
			visited := 0
			out, err := app.CrawlCLI.Build(ctx, start, cfg.Width, cfg.Depth, func() {
				visited++
				app.Logger.Debug("visited", "node", visited, "of", budget.Nodes)
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch format {
			case "yaml":
				enc := yaml.NewEncoder(w)
				enc.SetIndent(2)
				defer enc.Close()
				return enc.Encode(out)
			case "json":
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			default:
				return fmt.Errorf("unknown format %q (yaml|json)", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "yaml", "output format: yaml|json")
	return cmd
}

func newLinksCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "links <topic>",
		Short: "Print the usable links of one topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, _, err := loadApp(cmd, opts)
			if err != nil {
				return err
			}
			defer app.Close()

			links, err := app.CrawlCLI.Links(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(links) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no links")
				return nil
			}
			for _, link := range links {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), link)
			}
			return nil
		},
	}
}

func newBudgetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "budget",
		Short: "Show how many nodes a width/depth build fetches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			app, err := bootstrap.New(withoutCache(cfg), logging.Discard())
			if err != nil {
				return err
			}
			defer app.Close()

			out := app.CrawlCLI.Budget(cfg.Width, cfg.Depth)
			verdict := "ok"
			if !out.Allowed {
				verdict = "too large"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "width %d, depth %d: %d nodes (limit %d) %s\n", out.Width, out.Depth, out.Nodes, out.MaxNodes, verdict)
			return nil
		},
	}
}

func newCacheCmd(opts *rootOptions) *cobra.Command {
	cache := &cobra.Command{Use: "cache", Short: "Inspect or clear the link cache"}

	cache.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show cached topic and link counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cfg, err := loadApp(cmd, opts)
			if err != nil {
				return err
			}
			defer app.Close()

			stats, err := app.CrawlCLI.CacheStats(cmd.Context())
			if err != nil {
				return err
			}
			if !stats.Enabled {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "cache disabled")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d topics, %d links\n", cfg.CachePath, stats.Topics, stats.Links)
			return nil
		},
	})

	cache.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete every cached link",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cfg, err := loadApp(cmd, opts)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.CrawlCLI.ClearCache(cmd.Context()); err != nil {
				return err
			}
			app.Logger.Info("link cache cleared", "path", cfg.CachePath)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "cache cleared")
			return nil
		},
	})
	return cache
}

// checkBudget rejects an oversized tree before anything is fetched.
func checkBudget(app *bootstrap.App, cfg config.Config) error {
	out := app.CrawlCLI.Budget(cfg.Width, cfg.Depth)
	if !out.Allowed {
		return fmt.Errorf("%w: width %d depth %d needs %d nodes, limit %d", apperrors.ErrNodeBudget, out.Width, out.Depth, out.Nodes, out.MaxNodes)
	}
	return nil
}

func withoutCache(cfg config.Config) config.Config {
	cfg.NoCache = true
	return cfg
}
