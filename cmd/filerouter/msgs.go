package filerouter

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Route new files in a note vault to rule-based folders"
	MsgWatchShort      = "Watch the vault and route new files as they arrive"
	MsgRouteShort      = "Route files once without watching"
	MsgCheckShort      = "Explain where paths would be routed"
	MsgRulesShort      = "List the configured rules"
	MsgHistoryShort    = "Show the move journal"
	MsgInitShort       = "Write a default configuration file"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgWatching          = "Watching %s (Ctrl-C to stop)\n"
	MsgConfigWritten     = "Wrote %s\n"
	MsgNoRules           = "No rules configured."
	MsgJournalDisabled   = "The journal is disabled (journal.enabled = false)."
	MsgVersionFormat     = "filerouter version %s\n  commit: %s\n  built:  %s\n"
	MsgRuleItemFormat    = "%d. %s -> %s%s\n"
	MsgRuleInvalidSuffix = " (invalid: %v)"
	MsgPruned            = "Removed %d drain(s) older than %s\n"
	MsgStatsLine         = "%-12s %d\n"

	// Error messages
	MsgErrNoFiles      = "no files given, pass paths or use --scan"
	MsgErrConfigExists = "%s already exists, use --force to overwrite it"
	MsgErrFailedFiles  = "%d file(s) could not be routed"
	MsgErrFormat       = "unknown format %q, use text, json, yaml or xml"
	MsgErrPruneAge     = "invalid --prune age %q, use a duration such as 720h"

	// Flag descriptions
	MsgFlagVerbose       = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagVault         = "Vault root (defaults to $FILEROUTER_VAULT or the current directory)"
	MsgFlagDryRun        = "Show planned moves without touching the vault"
	MsgFlagScan          = "Queue every file already in the vault"
	MsgFlagNoConfigWatch = "Do not reload configuration when its files change"
	MsgFlagNoJournal     = "Do not record moves in the journal"
	MsgFlagDebounce      = "Override watch.debounce for this run"
	MsgFlagLimit         = "Maximum number of entries to show"
	MsgFlagFormat        = "Output format: text, json, yaml or xml"
	MsgFlagOutcome       = "Only show entries with this outcome"
	MsgFlagStats         = "Print a count per outcome instead of entries"
	MsgFlagPrune         = "Delete drains older than this age (e.g. 720h)"
	MsgFlagForce         = "Overwrite an existing configuration file"
	MsgFlagUser          = "Write the user configuration file instead of the vault one"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/watch-long.txt
	msgWatchLongRaw string
	MsgWatchLong    = strings.TrimSpace(msgWatchLongRaw)

	//go:embed msgs/watch-example.txt
	msgWatchExampleRaw string
	MsgWatchExample    = strings.TrimRight(msgWatchExampleRaw, "\n")

	//go:embed msgs/route-long.txt
	msgRouteLongRaw string
	MsgRouteLong    = strings.TrimSpace(msgRouteLongRaw)

	//go:embed msgs/route-example.txt
	msgRouteExampleRaw string
	MsgRouteExample    = strings.TrimRight(msgRouteExampleRaw, "\n")

	//go:embed msgs/check-long.txt
	msgCheckLongRaw string
	MsgCheckLong    = strings.TrimSpace(msgCheckLongRaw)

	//go:embed msgs/history-long.txt
	msgHistoryLongRaw string
	MsgHistoryLong    = strings.TrimSpace(msgHistoryLongRaw)

	//go:embed msgs/init-long.txt
	msgInitLongRaw string
	MsgInitLong    = strings.TrimSpace(msgInitLongRaw)

	//go:embed msgs/fallback-warning.txt
	msgFallbackWarningRaw string
	MsgFallbackWarning    = strings.TrimSpace(msgFallbackWarningRaw) + "\n"

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
