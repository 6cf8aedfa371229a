package router

import (
	"github.com/arthur-debert/filerouter/pkg/paths"
	"github.com/arthur-debert/filerouter/pkg/template"
	"github.com/arthur-debert/filerouter/pkg/types"
)

// Explanation describes how the current configuration would treat a path.
// It only reads configuration; the vault is not touched.
type Explanation struct {
	Path         string
	Skipped      bool
	Rule         *types.Rule
	Destination  string
	Name         string
	NameFallback bool
	Missing      []string // Template variables with no value
}

// Explain resolves path against the current snapshot
func (r *Router) Explain(p string) Explanation {
	p = paths.Normalize(p)
	snap := r.config.Current()
	exp := Explanation{Path: p}

	if snap.Skips(p) {
		exp.Skipped = true
		return exp
	}

	rule, ok := snap.Matcher.Match(p)
	if !ok {
		return exp
	}
	exp.Rule = &rule

	tmpl := snap.Router().AttachmentNameTemplate
	file := types.NewPendingFile(p)
	_, exp.Missing = template.Expand(tmpl, map[string]interface{}{
		template.VarFileName:      file.BaseName,
		template.VarFileExtension: file.Extension,
		template.VarTimestamp:     "",
	})
	exp.Name, exp.NameFallback = FileName(tmpl, file, r.clock.Now())
	exp.Destination = paths.Join(paths.Normalize(rule.Destination), exp.Name)
	return exp
}

// Settled reports whether the file at p already sits directly in the
// destination folder of the rule it matches. Such files are left alone by
// vault scans, whatever the name template would render, so names and links
// to already sorted attachments stay stable. The returned result has
// outcome in_place.
func (r *Router) Settled(p string) (Result, bool) {
	p = paths.Normalize(p)
	snap := r.config.Current()
	if p == "" || snap.Skips(p) {
		return Result{}, false
	}
	rule, ok := snap.Matcher.Match(p)
	if !ok || parentDir(p) != paths.Normalize(rule.Destination) {
		return Result{}, false
	}
	return Result{
		File:        types.NewPendingFile(p),
		Rule:        &rule,
		Destination: p,
		Outcome:     types.OutcomeInPlace,
	}, true
}
