// Test Type: Unit Test
// Description: Tests for loading, validating and linting rule files

package ruleset_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/repatch/pkg/applier"
	"github.com/arthur-debert/repatch/pkg/errors"
	"github.com/arthur-debert/repatch/pkg/ruleset"
	"github.com/arthur-debert/repatch/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRuleFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_TOML(t *testing.T) {
	path := writeRuleFile(t, "fixes.toml", `
name = "fixes"
description = "two fixes"

[[rules]]
label = "score"
target = "lib/a.dart"
literal = "final score = result.score; // 0-4"
replace = "final score = (result.score ?? 0).toInt();"

[[rules]]
target = "/abs/b.dart"
pattern = '''foo\(
  bar\)'''
multiline = true
replace = '''baz'''
`)

	set, err := ruleset.Load(path, ruleset.Options{BaseDir: "/project"})
	require.NoError(t, err)

	assert.Equal(t, "fixes", set.Name)
	require.Len(t, set.Rules, 2)

	first := set.Rules[0]
	assert.Equal(t, "score", first.Label)
	assert.Equal(t, filepath.Join("/project", "lib/a.dart"), first.Target)
	assert.Equal(t, types.Literal("final score = result.score; // 0-4"), first.Spec)
	assert.Equal(t, path, first.Source)

	second := set.Rules[1]
	assert.Equal(t, "b.dart#2", second.Label, "label defaults to file#index")
	assert.Equal(t, "/abs/b.dart", second.Target, "absolute targets are kept")
	assert.Equal(t, types.MatchPattern, second.Spec.Kind)
	assert.True(t, second.Spec.Multiline)
	assert.Equal(t, "foo\\(\n  bar\\)", second.Spec.Body)
}

func TestLoad_YAML(t *testing.T) {
	path := writeRuleFile(t, "fixes.yml", `
name: yaml-fixes
base_dir: project
rules:
  - label: hello
    target: greet.txt
    pattern: 'hel+o (\w+)'
    expand: true
    replace: 'goodbye $1'
`)

	set, err := ruleset.Load(path, ruleset.Options{})
	require.NoError(t, err)
	require.Len(t, set.Rules, 1)

	r := set.Rules[0]
	assert.Equal(t, filepath.Join(filepath.Dir(path), "project", "greet.txt"), r.Target)
	assert.True(t, r.Spec.Expand)

	res, err := applier.ApplyRule("hello world", r)
	require.NoError(t, err)
	assert.Equal(t, "goodbye world", res.Text)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		code    errors.ErrorCode
	}{
		{"unknown_extension", "rules.ini", "x=1", errors.ErrRuleSetLoad},
		{"bad_toml", "rules.toml", "[[rules]\nlabel=", errors.ErrRuleSetParse},
		{"unknown_key", "rules.toml", "[[rules]]\ntarget='a'\nliteral='x'\nreplacement='y'\n", errors.ErrRuleSetParse},
		{"no_rules", "rules.toml", "name='empty'\n", errors.ErrRuleInvalid},
		{"missing_target", "rules.toml", "[[rules]]\nliteral='x'\nreplace='y'\n", errors.ErrRuleInvalid},
		{"both_bodies", "rules.toml", "[[rules]]\ntarget='a'\nliteral='x'\npattern='y'\nreplace='z'\n", errors.ErrRuleInvalid},
		{"no_body", "rules.toml", "[[rules]]\ntarget='a'\nreplace='z'\n", errors.ErrRuleInvalid},
		{"bad_pattern", "rules.toml", "[[rules]]\ntarget='a'\npattern='('\nreplace='z'\n", errors.ErrRuleInvalid},
		{"empty_matching_pattern", "rules.toml", "[[rules]]\ntarget='a'\npattern='x*?'\nreplace='z'\n", errors.ErrRuleInvalid},
		{"duplicate_label", "rules.toml", "[[rules]]\nlabel='l'\ntarget='a'\nliteral='x'\nreplace=''\n[[rules]]\nlabel='l'\ntarget='b'\nliteral='y'\nreplace=''\n", errors.ErrRuleInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeRuleFile(t, tt.file, tt.content)
			_, err := ruleset.Load(path, ruleset.Options{})
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "want %s, got %v", tt.code, err)
		})
	}

	t.Run("missing_file", func(t *testing.T) {
		_, err := ruleset.Load(filepath.Join(t.TempDir(), "nope.toml"), ruleset.Options{})
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	})
}

func TestLoadAll_PreservesOrder(t *testing.T) {
	a := writeRuleFile(t, "a.toml", "[[rules]]\nlabel='a1'\ntarget='/t'\nliteral='x'\nreplace='y'\n[[rules]]\nlabel='a2'\ntarget='/u'\nliteral='x'\nreplace='y'\n")
	b := writeRuleFile(t, "b.yaml", "rules:\n  - label: b1\n    target: /t\n    literal: y\n    replace: z\n")

	rules, err := ruleset.LoadAll([]string{a, b}, ruleset.Options{})
	require.NoError(t, err)

	labels := make([]string, len(rules))
	for i, r := range rules {
		labels[i] = r.Label
	}
	assert.Equal(t, []string{"a1", "a2", "b1"}, labels)
}

func TestBuiltin(t *testing.T) {
	assert.Contains(t, ruleset.BuiltinNames(), "password-policy")

	set, err := ruleset.Builtin("password-policy", ruleset.Options{BaseDir: "/app"})
	require.NoError(t, err)
	require.Len(t, set.Rules, 3)
	assert.Equal(t, "builtin:password-policy", set.Rules[0].Source)
	assert.Equal(t, filepath.Join("/app", "lib/services/password_validator.dart"), set.Rules[0].Target)
	assert.Equal(t, types.MatchLiteral, set.Rules[0].Spec.Kind)
	assert.True(t, set.Rules[1].Spec.Multiline)

	_, err = ruleset.Builtin("nope", ruleset.Options{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrRuleSetUnknown))
}

const validatorSource = `class PasswordValidator {
  static const int minLength = 12;

  static PolicyResult validatePolicy(String password) {
    final result = zxcvbn.evaluate(password);
    final score = result.score; // 0-4
    return PolicyResult(score >= 3);
  }
}
`

const authFormSource = `          children: [
            TextFormField(
              controller: _passwordController,
              obscureText: true,
              decoration: const InputDecoration(
                labelText: 'Password',
                border: OutlineInputBorder(),
              ),
              validator: (value) {
                if (_isSignUpMode) {
                  // For sign up, enforce strong password requirements
                  return PasswordValidator.validate(value ?? '');
                } else {
                  // For sign in, basic validation
                  if (value == null || value.isEmpty) {
                    return 'Please enter your password';
                  }
                }
                return null;
              },
            ),
            if (_isSignUpMode)
              PasswordStrengthIndicator(password: _passwordController.text),
          ],
`

func TestBuiltin_PasswordFieldAppliesOnce(t *testing.T) {
	set, err := ruleset.Builtin("password-policy", ruleset.Options{})
	require.NoError(t, err)
	rule := set.Rules[1]

	once, err := applier.ApplyRule(authFormSource, rule)
	require.NoError(t, err)
	assert.Equal(t, types.OutcomeApplied, once.Outcome)
	assert.Contains(t, once.Text, "hintText: 'At least ${PasswordValidator.minLength} characters',")
	assert.Contains(t, once.Text, "obscureText: true,")

	twice, err := applier.ApplyRule(once.Text, rule)
	require.NoError(t, err)
	assert.Equal(t, types.OutcomeNoMatch, twice.Outcome)
}

func TestBuiltin_PasswordPolicyFixesSources(t *testing.T) {
	set, err := ruleset.Builtin("password-policy", ruleset.Options{BaseDir: "/app"})
	require.NoError(t, err)
	require.Len(t, set.Rules, 3)

	// '' followed by \) inside a TOML multi-line literal string
	assert.Contains(t, set.Rules[1].Spec.Body, `PasswordValidator\.validate\(value \?\? ''\);`)
	assert.Equal(t, "auth-form-strength-indicator", set.Rules[2].Label)
	assert.True(t, set.Rules[2].Spec.Multiline)

	sources := map[string]string{
		filepath.Join("/app", "lib/services/password_validator.dart"):          validatorSource,
		filepath.Join("/app", "lib/presentation/auth/widgets/auth_form.dart"): authFormSource,
	}
	byTarget := map[string][]types.Rule{}
	for _, r := range set.Rules {
		require.Contains(t, sources, r.Target)
		byTarget[r.Target] = append(byTarget[r.Target], r)
	}

	for target, rules := range byTarget {
		fixed, results, err := applier.ApplyAll(sources[target], rules)
		require.NoError(t, err)
		require.Len(t, results, len(rules))
		for i, res := range results {
			assert.Equal(t, types.OutcomeApplied, res.Outcome, rules[i].Label)
			assert.Equal(t, 1, res.Replaced, rules[i].Label)
		}

		again, results, err := applier.ApplyAll(fixed, rules)
		require.NoError(t, err)
		for i, res := range results {
			assert.Equal(t, types.OutcomeNoMatch, res.Outcome, rules[i].Label)
		}
		assert.Equal(t, fixed, again, "second pass leaves %s byte-identical", target)
		sources[target] = fixed
	}

	validator := sources[filepath.Join("/app", "lib/services/password_validator.dart")]
	assert.Contains(t, validator, "final score = (result.score ?? 0).toInt(); // 0-4, convert from num to int")

	form := sources[filepath.Join("/app", "lib/presentation/auth/widgets/auth_form.dart")]
	assert.Contains(t, form, "hintText: 'At least ${PasswordValidator.minLength} characters',")
	assert.Contains(t, form, "final policyResult = PasswordValidator.validatePolicy(value);")
	assert.Contains(t, form, "                email: _emailController.text.trim(),\n              ),\n          ],")
	assert.NotContains(t, form, "PasswordValidator.validate(value ?? '')")
}

func TestLint(t *testing.T) {
	rules := []types.Rule{
		{Label: "ok", Spec: types.Literal("a"), Replacement: "b"},
		{Label: "self-match", Spec: types.Literal("x"), Replacement: "xx"},
		{Label: "empty-match", Spec: types.Pattern(`a*`, false), Replacement: "b"},
		{Label: "literal-flags", Spec: types.MatchSpec{Kind: types.MatchLiteral, Body: "q", Multiline: true, Expand: true}, Replacement: "r"},
		{Label: "dollar", Spec: types.Pattern(`v\d`, false), Replacement: "$1"},
		{Label: "no-dotall", Spec: types.Pattern("start.*\nend", false), Replacement: "x"},
		{Label: "invalid", Spec: types.Pattern("(", false), Replacement: "x"},
	}

	findings := ruleset.Lint(rules)

	byLabel := map[string][]ruleset.Severity{}
	for _, f := range findings {
		byLabel[f.Label] = append(byLabel[f.Label], f.Severity)
	}

	assert.NotContains(t, byLabel, "ok")
	assert.Equal(t, []ruleset.Severity{ruleset.SeverityError}, byLabel["self-match"])
	assert.Equal(t, []ruleset.Severity{ruleset.SeverityError}, byLabel["empty-match"])
	assert.Equal(t, []ruleset.Severity{ruleset.SeverityWarning, ruleset.SeverityWarning}, byLabel["literal-flags"])
	assert.Equal(t, []ruleset.Severity{ruleset.SeverityInfo}, byLabel["dollar"])
	assert.Equal(t, []ruleset.Severity{ruleset.SeverityWarning}, byLabel["no-dotall"])
	assert.Equal(t, []ruleset.Severity{ruleset.SeverityError}, byLabel["invalid"])
	assert.True(t, ruleset.HasProblems(findings))

	assert.False(t, ruleset.HasProblems([]ruleset.Finding{{Severity: ruleset.SeverityInfo}}))
}

func TestLint_BuiltinIsClean(t *testing.T) {
	set, err := ruleset.Builtin("password-policy", ruleset.Options{})
	require.NoError(t, err)
	assert.False(t, ruleset.HasProblems(ruleset.Lint(set.Rules)))
}

func TestSample_RoundTrips(t *testing.T) {
	data, err := ruleset.Sample("starter")
	require.NoError(t, err)

	set, err := ruleset.Parse(data, ruleset.FormatTOML, "sample", ruleset.Options{})
	require.NoError(t, err)

	assert.Equal(t, "starter", set.Name)
	require.Len(t, set.Rules, 2)
	assert.Equal(t, ruleset.SampleFile("starter").Rules[1].Pattern, set.Rules[1].Spec.Body)
	assert.False(t, ruleset.HasProblems(ruleset.Lint(set.Rules)))
}
