package style

import (
	"github.com/arthur-debert/filerouter/pkg/types"
	"github.com/pterm/pterm"
)

// OutcomeStyle returns the pterm style used to label an outcome
func OutcomeStyle(o types.Outcome) *pterm.Style {
	switch {
	case o == types.OutcomeMoved:
		return pterm.NewStyle(pterm.BgGreen, pterm.FgBlack)
	case o == types.OutcomeInPlace:
		return pterm.NewStyle(pterm.FgGreen)
	case o.IsWarning():
		return pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	default:
		return pterm.NewStyle(pterm.BgRed, pterm.FgWhite, pterm.Bold)
	}
}

// OutcomeIndicator returns the one-character marker for an outcome
func OutcomeIndicator(o types.Outcome) string {
	switch {
	case o.Succeeded():
		return SuccessIndicator()
	case o.IsWarning():
		return WarningIndicator()
	default:
		return ErrorIndicator()
	}
}

// OutcomeVerb describes an outcome in past or future tense
func OutcomeVerb(o types.Outcome, dryRun bool) string {
	verbs := map[types.Outcome][2]string{
		types.OutcomeMoved:            {"moved to", "will move to"},
		types.OutcomeInPlace:          {"already at", "already at"},
		types.OutcomeVanished:         {"vanished before routing", "is gone"},
		types.OutcomeNoRule:           {"matched no rule", "matches no rule"},
		types.OutcomeDestCreateFailed: {"could not create", "cannot create"},
		types.OutcomeCollision:        {"left in place, taken:", "would collide with"},
		types.OutcomeMoveFailed:       {"failed to move to", "would fail to move to"},
	}
	v, ok := verbs[o]
	if !ok {
		return string(o)
	}
	if dryRun {
		return v[1]
	}
	return v[0]
}
