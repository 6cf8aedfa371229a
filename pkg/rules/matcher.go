package rules

import (
	"regexp"
	"sync"

	"github.com/arthur-debert/filerouter/pkg/logging"
	"github.com/arthur-debert/filerouter/pkg/types"
	"github.com/rs/zerolog"
)

// compiledRule holds a rule and the lazily compiled form of its pattern.
// Exactly one of re and err is set once compile has run.
type compiledRule struct {
	index int
	rule  types.Rule
	once  sync.Once
	re    *regexp.Regexp
	err   error
}

// Diagnostic describes the compile status of one rule
type Diagnostic struct {
	Index    int
	Rule     types.Rule
	Compiled bool
	Err      error
}

// Matcher evaluates an ordered rule list against vault paths.
// A Matcher is safe for concurrent use.
type Matcher struct {
	rules  []*compiledRule
	logger zerolog.Logger
}

// NewMatcher creates a new rule matcher. The rules slice is copied.
func NewMatcher(ruleList []types.Rule) *Matcher {
	compiled := make([]*compiledRule, len(ruleList))
	for i, r := range ruleList {
		compiled[i] = &compiledRule{index: i, rule: r}
	}
	return &Matcher{
		rules:  compiled,
		logger: logging.GetLogger("rules.matcher"),
	}
}

// Match returns the first rule whose pattern matches path
func (m *Matcher) Match(path string) (types.Rule, bool) {
	for _, cr := range m.rules {
		re := m.compile(cr)
		if re == nil {
			continue
		}
		if re.MatchString(path) {
			m.logger.Debug().
				Str("path", path).
				Str("pattern", cr.rule.Pattern).
				Str("destination", cr.rule.Destination).
				Msg("Matched rule")
			return cr.rule, true // First match wins
		}
	}

	m.logger.Debug().
		Str("path", path).
		Int("ruleCount", len(m.rules)).
		Msg("No rule matched")
	return types.Rule{}, false
}

// Len returns the number of configured rules, including disabled ones
func (m *Matcher) Len() int {
	return len(m.rules)
}

// Diagnostics compiles every rule and reports its status, in rule order
func (m *Matcher) Diagnostics() []Diagnostic {
	diags := make([]Diagnostic, 0, len(m.rules))
	for _, cr := range m.rules {
		re := m.compile(cr)
		diags = append(diags, Diagnostic{
			Index:    cr.index,
			Rule:     cr.rule,
			Compiled: re != nil,
			Err:      cr.err,
		})
	}
	return diags
}

// compile returns the rule's regexp, or nil if its pattern is malformed.
// The compile error is logged the first time only.
func (m *Matcher) compile(cr *compiledRule) *regexp.Regexp {
	cr.once.Do(func() {
		cr.re, cr.err = regexp.Compile(cr.rule.Pattern)
		if cr.err != nil {
			m.logger.Error().
				Err(cr.err).
				Int("rule", cr.index).
				Str("pattern", cr.rule.Pattern).
				Str("destination", cr.rule.Destination).
				Msg("Invalid rule pattern, rule disabled")
		}
	})
	return cr.re
}
