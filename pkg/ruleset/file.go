package ruleset

import (
	stderrors "errors"
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/repatch/pkg/errors"
	"github.com/arthur-debert/repatch/pkg/matcher"
	"github.com/arthur-debert/repatch/pkg/types"
)

// File is the on-disk shape of a rule file
type File struct {
	Name        string    `koanf:"name" toml:"name"`
	Description string    `koanf:"description" toml:"description,omitempty"`
	BaseDir     string    `koanf:"base_dir" toml:"base_dir,omitempty"`
	Rules       []RuleDef `koanf:"rules" toml:"rules"`
}

// RuleDef is one rule as written in a rule file
type RuleDef struct {
	Label       string `koanf:"label" toml:"label"`
	Description string `koanf:"description" toml:"description,omitempty"`
	Target      string `koanf:"target" toml:"target"`
	Literal     string `koanf:"literal" toml:"literal,omitempty" multiline:"true"`
	Pattern     string `koanf:"pattern" toml:"pattern,omitempty" multiline:"true"`
	Multiline   bool   `koanf:"multiline" toml:"multiline,omitempty"`
	Expand      bool   `koanf:"expand" toml:"expand,omitempty"`
	Replace     string `koanf:"replace" toml:"replace" multiline:"true"`
}

// Spec returns the MatchSpec the definition describes
func (d RuleDef) Spec() (types.MatchSpec, error) {
	switch {
	case d.Literal != "" && d.Pattern != "":
		return types.MatchSpec{}, fmt.Errorf("set only one of literal or pattern")
	case d.Literal != "":
		return types.MatchSpec{Kind: types.MatchLiteral, Body: d.Literal, Multiline: d.Multiline, Expand: d.Expand}, nil
	case d.Pattern != "":
		return types.MatchSpec{Kind: types.MatchPattern, Body: d.Pattern, Multiline: d.Multiline, Expand: d.Expand}, nil
	default:
		return types.MatchSpec{}, fmt.Errorf("one of literal or pattern is required")
	}
}

// build validates f and turns it into a RuleSet. source names f in
// reports; fileDir is the directory the rule file lives in.
func (f File) build(source, fileDir, baseDir string) (*types.RuleSet, error) {
	root := baseDir
	if f.BaseDir != "" {
		root = f.BaseDir
		if !filepath.IsAbs(root) {
			root = filepath.Join(fileDir, root)
		}
	}

	name := f.Name
	if name == "" {
		name = source
	}

	set := &types.RuleSet{Name: name, Description: f.Description}
	seen := make(map[string]int, len(f.Rules))
	var problems []error

	for i, def := range f.Rules {
		label := def.Label
		if label == "" && def.Target != "" {
			label = fmt.Sprintf("%s#%d", filepath.Base(def.Target), i+1)
		}
		where := fmt.Sprintf("rule %d (%s)", i+1, label)

		if def.Target == "" {
			problems = append(problems, fmt.Errorf("%s: target is required", where))
			continue
		}
		if prev, dup := seen[label]; dup {
			problems = append(problems, fmt.Errorf("%s: label already used by rule %d", where, prev))
			continue
		}
		seen[label] = i + 1

		spec, err := def.Spec()
		if err != nil {
			problems = append(problems, fmt.Errorf("%s: %w", where, err))
			continue
		}
		if _, err := matcher.Compile(spec); err != nil {
			problems = append(problems, fmt.Errorf("%s: %w", where, err))
			continue
		}

		target := def.Target
		if !filepath.IsAbs(target) && root != "" {
			target = filepath.Join(root, target)
		}

		set.Rules = append(set.Rules, types.Rule{
			Label:       label,
			Target:      target,
			Spec:        spec,
			Replacement: def.Replace,
			Description: def.Description,
			Source:      source,
		})
	}

	if len(problems) > 0 {
		return nil, errors.Wrapf(stderrors.Join(problems...), errors.ErrRuleInvalid,
			"%s: %d invalid rule(s)", source, len(problems)).
			WithDetail("source", source)
	}
	if len(set.Rules) == 0 {
		return nil, errors.Newf(errors.ErrRuleInvalid, "%s: no rules defined", source).
			WithDetail("source", source)
	}
	return set, nil
}
