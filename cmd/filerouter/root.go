package filerouter

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/arthur-debert/filerouter/internal/version"
	"github.com/arthur-debert/filerouter/pkg/cobrax/topics"
	"github.com/arthur-debert/filerouter/pkg/logging"
	"github.com/arthur-debert/filerouter/pkg/style"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var topicFiles embed.FS

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	var (
		verbosity int
		vault     string
	)

	rootCmd := &cobra.Command{
		Use:     "filerouter",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			if !isTerminal(cmd.OutOrStdout()) {
				style.DisableColor()
			}
			logging.LogCommand(cmd.CommandPath(), args, vault)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&vault, "vault", "", MsgFlagVault)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "config", Title: "CONFIGURATION:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newRouteCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newRulesCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	if err := installTopics(rootCmd); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

func installTopics(rootCmd *cobra.Command) error {
	sub, err := fs.Sub(topicFiles, "topics")
	if err != nil {
		return err
	}
	var renderer topics.Renderer = &topics.PlainRenderer{}
	if isTerminal(rootCmd.OutOrStdout()) {
		renderer = topics.NewGlamourRenderer()
	}
	m, err := topics.Load(sub, topics.Options{Extensions: []string{".md"}, Renderer: renderer})
	if err != nil {
		return err
	}
	m.Install(rootCmd)
	return nil
}
