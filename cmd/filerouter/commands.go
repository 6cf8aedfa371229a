package filerouter

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/arthur-debert/filerouter/internal/version"
	"github.com/arthur-debert/filerouter/pkg/config"
	"github.com/arthur-debert/filerouter/pkg/errors"
	"github.com/arthur-debert/filerouter/pkg/filesystem"
	"github.com/arthur-debert/filerouter/pkg/journal"
	"github.com/arthur-debert/filerouter/pkg/paths"
	"github.com/arthur-debert/filerouter/pkg/router"
	"github.com/arthur-debert/filerouter/pkg/service"
	"github.com/arthur-debert/filerouter/pkg/style"
	"github.com/arthur-debert/filerouter/pkg/types"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// initPaths resolves the vault from the --vault flag
func initPaths(cmd *cobra.Command) (*paths.Paths, error) {
	vault, _ := cmd.Root().PersistentFlags().GetString("vault")
	p, err := paths.New(vault)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Str("vault", p.VaultRoot()).
		Bool("fallback", p.UsedFallback()).
		Msg("Resolved vault root")
	return p, nil
}

// newService builds the routing service for the resolved vault
func newService(cmd *cobra.Command, p *paths.Paths, opts service.Options, overrides map[string]interface{}) (*service.Service, error) {
	provider, err := config.ForVault(p, overrides)
	if err != nil {
		return nil, err
	}
	opts.Paths = p
	opts.Provider = provider
	return service.New(cmd.Context(), opts)
}

func newWatchCmd() *cobra.Command {
	var (
		scan, noConfigWatch, noJournal bool
		debounce                       time.Duration
	)

	cmd := &cobra.Command{
		Use:     "watch",
		Short:   MsgWatchShort,
		Long:    MsgWatchLong,
		Example: MsgWatchExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := initPaths(cmd)
			if err != nil {
				return err
			}
			if p.UsedFallback() {
				fmt.Fprintf(cmd.ErrOrStderr(), MsgFallbackWarning, p.VaultRoot())
			}

			overrides := map[string]interface{}{}
			if cmd.Flags().Changed("debounce") {
				overrides["watch.debounce"] = debounce.String()
			}
			svc, err := newService(cmd, p, service.Options{
				Scan:        scan,
				WatchConfig: !noConfigWatch,
				NoJournal:   noJournal,
			}, overrides)
			if err != nil {
				return err
			}
			defer func() { _ = svc.Close() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprint(cmd.OutOrStdout(), style.Render(fmt.Sprintf(MsgWatching, "[path]"+p.VaultRoot()+"[/path]")))
			return svc.Run(ctx)
		},
	}

	cmd.Flags().BoolVar(&scan, "scan", false, MsgFlagScan)
	cmd.Flags().BoolVar(&noConfigWatch, "no-config-watch", false, MsgFlagNoConfigWatch)
	cmd.Flags().BoolVar(&noJournal, "no-journal", false, MsgFlagNoJournal)
	cmd.Flags().DurationVar(&debounce, "debounce", 0, MsgFlagDebounce)
	return cmd
}

func newRouteCmd() *cobra.Command {
	var scan, dryRun, noJournal bool

	cmd := &cobra.Command{
		Use:     "route [files...]",
		Short:   MsgRouteShort,
		Long:    MsgRouteLong,
		Example: MsgRouteExample,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !scan {
				return errors.New(errors.ErrInvalidInput, MsgErrNoFiles)
			}
			p, err := initPaths(cmd)
			if err != nil {
				return err
			}

			svc, err := newService(cmd, p, service.Options{NoJournal: noJournal || dryRun}, nil)
			if err != nil {
				return err
			}
			defer func() { _ = svc.Close() }()

			report, err := svc.RouteOnce(cmd.Context(), args, scan, dryRun)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, style.NewRenderer(isTerminal(out)).RenderReport(report))
			if n := report.Failed(); n > 0 {
				return errors.Newf(errors.ErrMoveFailed, MsgErrFailedFiles, n)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&scan, "scan", false, MsgFlagScan)
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, MsgFlagDryRun)
	cmd.Flags().BoolVar(&noJournal, "no-journal", false, MsgFlagNoJournal)
	return cmd
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "check <path>...",
		Short:   MsgCheckShort,
		Long:    MsgCheckLong,
		GroupID: "config",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := initPaths(cmd)
			if err != nil {
				return err
			}
			provider, err := config.ForVault(p)
			if err != nil {
				return err
			}

			r := router.New(provider, filesystem.NewOS(p.VaultRoot()))
			explanations := make([]router.Explanation, 0, len(args))
			for _, arg := range args {
				rel, err := paths.FromArg(p.VaultRoot(), arg)
				if err != nil {
					return err
				}
				explanations = append(explanations, r.Explain(rel))
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, renderMarkdown(checkMarkdown(explanations), isTerminal(out)))
			return nil
		},
	}
}

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rules",
		Short:   MsgRulesShort,
		GroupID: "config",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := initPaths(cmd)
			if err != nil {
				return err
			}
			provider, err := config.ForVault(p)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			return writeRules(out, provider.Current().Matcher.Diagnostics(), isTerminal(out))
		},
	}
}

func newHistoryCmd() *cobra.Command {
	var (
		limit   int
		format  string
		outcome string
		stats   bool
		prune   string
	)

	cmd := &cobra.Command{
		Use:     "history",
		Short:   MsgHistoryShort,
		Long:    MsgHistoryLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !validFormat(format) {
				return errors.Newf(errors.ErrInvalidInput, MsgErrFormat, format)
			}
			var age time.Duration
			if prune != "" {
				d, err := time.ParseDuration(prune)
				if err != nil || d <= 0 {
					return errors.Newf(errors.ErrInvalidInput, MsgErrPruneAge, prune)
				}
				age = d
			}
			p, err := initPaths(cmd)
			if err != nil {
				return err
			}
			provider, err := config.ForVault(p)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !provider.Current().Config.Journal.Enabled {
				fmt.Fprintln(out, MsgJournalDisabled)
				return nil
			}

			store, err := journal.Open(cmd.Context(), p.JournalPath())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if age > 0 {
				n, err := store.Prune(cmd.Context(), time.Now().Add(-age))
				if err != nil {
					return err
				}
				fmt.Fprintf(out, MsgPruned, n, age)
				return nil
			}
			if stats {
				counts, err := store.Stats(cmd.Context(), p.VaultRoot())
				if err != nil {
					return err
				}
				return writeStats(out, counts)
			}

			entries, err := store.List(cmd.Context(), journal.ListOptions{
				Vault:   p.VaultRoot(),
				Outcome: types.Outcome(outcome),
				Limit:   limit,
			})
			if err != nil {
				return err
			}
			return writeEntries(out, entries, format, isTerminal(out))
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", journal.DefaultListLimit, MsgFlagLimit)
	cmd.Flags().StringVarP(&format, "format", "f", formatText, MsgFlagFormat)
	cmd.Flags().StringVar(&outcome, "outcome", "", MsgFlagOutcome)
	cmd.Flags().BoolVar(&stats, "stats", false, MsgFlagStats)
	cmd.Flags().StringVar(&prune, "prune", "", MsgFlagPrune)
	return cmd
}

func newInitCmd() *cobra.Command {
	var force, user bool

	cmd := &cobra.Command{
		Use:     "init",
		Short:   MsgInitShort,
		Long:    MsgInitLong,
		GroupID: "config",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := initPaths(cmd)
			if err != nil {
				return err
			}

			var (
				target  string
				exists  bool
				content []byte
			)
			if user {
				target = p.UserConfigPath()
				_, statErr := os.Stat(target)
				exists = statErr == nil
				content = []byte(config.GenerateConfigContent())
			} else {
				// The TOML file takes precedence, so it is written even when a
				// yaml vault file exists
				var existing string
				existing, exists = p.VaultConfigPath()
				target = filepath.Join(p.VaultRoot(), paths.VaultConfigFiles[0])
				if exists && !force {
					target = existing
				}
				cfg, err := config.Default()
				if err != nil {
					return err
				}
				if content, err = config.GenerateVaultConfig(cfg); err != nil {
					return err
				}
			}

			if exists && !force {
				return errors.Newf(errors.ErrInvalidInput, MsgErrConfigExists, target).
					WithDetail("path", target)
			}
			if err := writeConfigFile(target, content); err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), style.Render(fmt.Sprintf(MsgConfigWritten, "[path]"+target+"[/path]")))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)
	cmd.Flags().BoolVar(&user, "user", false, MsgFlagUser)
	return cmd
}

func writeConfigFile(target string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "failed to create %s", filepath.Dir(target))
	}
	if err := os.WriteFile(target, content, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "failed to write %s", target)
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}
