// Package runner applies an ordered list of rules to their target files.
//
// Rules are grouped by target in first-seen order. Each target is read once,
// its text is threaded through every rule for that target in list order,
// and the final text is written back once. A read or write failure aborts
// that target only; the remaining targets are still processed and the
// failure is recorded in the report rather than returned.
package runner

import (
	stderrors "errors"
	"fmt"
	"io/fs"

	"github.com/arthur-debert/repatch/pkg/applier"
	"github.com/arthur-debert/repatch/pkg/errors"
	"github.com/arthur-debert/repatch/pkg/logging"
	"github.com/arthur-debert/repatch/pkg/matcher"
	"github.com/arthur-debert/repatch/pkg/types"
	"github.com/rs/zerolog"
	"github.com/zeebo/xxh3"
)

const defaultPerm fs.FileMode = 0644

// Runner applies rules through a types.FS
type Runner struct {
	fs            types.FS
	logger        zerolog.Logger
	skipUnchanged bool
	progress      func(types.FileResult)
}

// Option configures a Runner
type Option func(*Runner)

// WithLogger replaces the component logger
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

// WithSkipUnchanged skips the write for targets no rule changed
func WithSkipUnchanged(skip bool) Option {
	return func(r *Runner) { r.skipUnchanged = skip }
}

// WithProgress registers a callback invoked after each target completes
func WithProgress(fn func(types.FileResult)) Option {
	return func(r *Runner) { r.progress = fn }
}

// New creates a Runner over fsys
func New(fsys types.FS, opts ...Option) *Runner {
	r := &Runner{
		fs:     fsys,
		logger: logging.GetLogger("runner"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type compiledRule struct {
	rule    types.Rule
	matcher *matcher.Compiled
}

// Run applies rules and returns the per-file, per-rule report. The only
// error returned is for an invalid rule, detected before any file is read.
func (r *Runner) Run(rules []types.Rule) (*types.Report, error) {
	done := logging.LogOperationStart(r.logger, "run")
	defer done()

	groups := make(map[string][]compiledRule)
	for i, rule := range rules {
		c, err := matcher.Compile(rule.Spec)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrRuleInvalid, "rule %d (%s) is invalid", i+1, rule.Label).
				WithDetail("target", rule.Target)
		}
		groups[rule.Target] = append(groups[rule.Target], compiledRule{rule: rule, matcher: c})
	}

	report := &types.Report{}
	for _, target := range types.Targets(rules) {
		result := r.processFile(target, groups[target])
		report.Files = append(report.Files, result)
		if r.progress != nil {
			r.progress(result)
		}
	}

	counts := report.Counts()
	r.logger.Info().
		Int("files", len(report.Files)).
		Int("applied", counts.Applied).
		Int("noMatch", counts.NoMatch).
		Int("failed", counts.FilesFailed).
		Msg("Run completed")

	return report, nil
}

func (r *Runner) processFile(target string, rules []compiledRule) types.FileResult {
	logger := r.logger.With().Str("target", target).Logger()
	result := types.FileResult{Target: target, Status: types.FileOK}

	data, err := r.fs.ReadFile(target)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			result.Status = types.FileNotFound
			result.Err = errors.Wrap(err, errors.ErrNotFound, "target file not found").WithDetail("target", target)
		} else {
			result.Status = types.FileReadError
			result.Err = errors.Wrap(err, errors.ErrFileRead, "cannot read target file").WithDetail("target", target)
		}
		result.Error = result.Err.Error()
		logger.Error().Err(err).Int("rules", len(rules)).Msg("Skipping target")
		return result
	}

	original := string(data)
	text := original
	for _, cr := range rules {
		res := applier.Apply(text, cr.matcher, cr.rule.Replacement)
		text = res.Text

		result.Rules = append(result.Rules, types.RuleResult{
			Label:       cr.rule.Label,
			Target:      target,
			Outcome:     res.Outcome,
			Occurrences: res.Occurrences,
			Replaced:    res.Replaced,
		})

		event := logger.Debug()
		if res.Outcome == types.OutcomeApplied {
			event = logger.Info()
		}
		event.Str("rule", cr.rule.Label).
			Str("outcome", string(res.Outcome)).
			Int("occurrences", res.Occurrences).
			Msg("Rule evaluated")

		if res.Replaced < res.Occurrences {
			logger.Warn().
				Str("rule", cr.rule.Label).
				Int("occurrences", res.Occurrences).
				Msg("Literal matched more than once, only the first occurrence was replaced")
		}
	}

	result.Before = original
	result.After = text
	result.Changed = text != original
	result.BeforeHash = hash(original)
	result.AfterHash = hash(text)

	if r.skipUnchanged && !result.Changed {
		logger.Debug().Msg("Target unchanged, write skipped")
		return result
	}

	if err := r.fs.WriteFile(target, []byte(text), r.perm(target)); err != nil {
		result.Status = types.FileWriteError
		result.Err = errors.Wrap(err, errors.ErrFileWrite, "cannot write target file").WithDetail("target", target)
		result.Error = result.Err.Error()
		logger.Error().Err(err).Msg("Write failed, target left as it was")
		return result
	}
	result.Written = true
	logger.Debug().Bool("changed", result.Changed).Msg("Target written")

	return result
}

// perm keeps the target's existing permission bits
func (r *Runner) perm(target string) fs.FileMode {
	info, err := r.fs.Stat(target)
	if err != nil {
		return defaultPerm
	}
	return info.Mode().Perm()
}

func hash(text string) string {
	return fmt.Sprintf("%016x", xxh3.HashString(text))
}
