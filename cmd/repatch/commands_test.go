// Test Type: Integration Test
// Description: Runs repatch commands end to end against temporary files

package repatch

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/repatch/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scoreRules = `
name = "score"
base_dir = "."

[[rules]]
label = "score-to-int"
target = "validator.dart"
literal = "final score = result.score; // 0-4"
replace = "final score = (result.score ?? 0).toInt(); // 0-4"
`

const validatorSource = "int check() {\n  final score = result.score; // 0-4\n  return score;\n}\n"

// isolate points config and state at empty temp dirs and disables the log file
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("REPATCH_LOG_FILE", "false")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// project writes a rule file and its target into a temp dir
func project(t *testing.T) (dir, rulesPath, target string) {
	t.Helper()
	dir = t.TempDir()
	rulesPath = filepath.Join(dir, "fixes.toml")
	target = filepath.Join(dir, "validator.dart")
	require.NoError(t, os.WriteFile(rulesPath, []byte(scoreRules), 0644))
	require.NoError(t, os.WriteFile(target, []byte(validatorSource), 0600))
	return dir, rulesPath, target
}

func TestApplyCommand(t *testing.T) {
	isolate(t)
	_, rulesPath, target := project(t)

	out, err := execute(t, "apply", rulesPath, "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ "+target+" fixed")
	assert.Contains(t, out, "Done: 1 applied, 0 already applied or not found, 1 file changed, 0 failed")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "(result.score ?? 0).toInt()")

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	out, err = execute(t, "apply", rulesPath, "--format", "text")
	require.NoError(t, err)
	assert.NotContains(t, out, "fixed")
	assert.Contains(t, out, "ALREADY_APPLIED_OR_NOT_FOUND")
}

func TestApplyCommand_DryRunWithDiff(t *testing.T) {
	isolate(t)
	_, rulesPath, target := project(t)

	out, err := execute(t, "apply", rulesPath, "--dry-run", "--diff", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "(dry run, nothing written)")
	assert.Contains(t, out, "-  final score = result.score; // 0-4\n")
	assert.Contains(t, out, "+  final score = (result.score ?? 0).toInt(); // 0-4\n")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, validatorSource, string(data), "dry run leaves the file alone")
}

func TestApplyCommand_MissingTargetFails(t *testing.T) {
	isolate(t)
	_, rulesPath, target := project(t)
	require.NoError(t, os.Remove(target))

	out, err := execute(t, "apply", rulesPath, "--format", "text")
	require.Error(t, err)
	assert.Equal(t, 1, ExitCode(err))
	assert.Contains(t, out, "not_found")
}

func TestApplyCommand_RulesFromConfig(t *testing.T) {
	isolate(t)
	dir, rulesPath, target := project(t)

	cfgPath := filepath.Join(dir, "extra.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[rules]\nfiles = [\""+filepath.ToSlash(rulesPath)+"\"]\n"), 0644))

	_, err := execute(t, "apply", "--config", cfgPath, "--format", "json")
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "toInt()")
}

func TestApplyCommand_NoRules(t *testing.T) {
	isolate(t)
	_, err := execute(t, "apply")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestApplyCommand_BadFormat(t *testing.T) {
	isolate(t)
	_, rulesPath, _ := project(t)
	_, err := execute(t, "apply", rulesPath, "--format", "xml")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestCheckCommand(t *testing.T) {
	isolate(t)
	_, rulesPath, target := project(t)

	_, err := execute(t, "check", rulesPath, "--format", "text")
	require.Error(t, err)
	assert.Equal(t, 1, ExitCode(err))
	assert.Contains(t, err.Error(), "1 rule would still apply")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, validatorSource, string(data))

	_, err = execute(t, "apply", rulesPath, "--format", "text")
	require.NoError(t, err)
	_, err = execute(t, "check", rulesPath, "--format", "text")
	assert.NoError(t, err)
}

func TestListCommand(t *testing.T) {
	isolate(t)
	dir, rulesPath, _ := project(t)

	out, err := execute(t, "list", rulesPath, "--format", "text")
	require.NoError(t, err)
	assert.Equal(t, "score-to-int\tliteral\t"+filepath.Join(dir, "validator.dart")+"\n", out)

	out, err = execute(t, "list", "--builtin", "password-policy", "--base-dir", dir, "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "pattern,multiline\t"+filepath.Join(dir, "lib/presentation/auth/widgets/auth_form.dart"))
}

func TestLintCommand(t *testing.T) {
	isolate(t)
	_, rulesPath, _ := project(t)

	out, err := execute(t, "lint", rulesPath, "--format", "text")
	require.NoError(t, err)
	assert.Equal(t, "No problems found\n", out)

	bad := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[[rules]]\nlabel='loop'\ntarget='x'\nliteral='a'\nreplace='aa'\n"), 0644))
	out, err = execute(t, "lint", bad, "--format", "text")
	require.Error(t, err)
	assert.Equal(t, 1, ExitCode(err))
	assert.Contains(t, out, "error: loop:")
}

func TestInitCommand(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "rules", "starter.toml")

	out, err := execute(t, "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Created "+path)

	out, err = execute(t, "lint", path, "--format", "text")
	require.NoError(t, err, out)

	_, err = execute(t, "init", path)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))
}

func TestTopicsCommand(t *testing.T) {
	isolate(t)

	out, err := execute(t, "topics")
	require.NoError(t, err)
	assert.Contains(t, out, "idempotency")
	assert.Contains(t, out, "--dry-run")

	out, err = execute(t, "topics", "patterns")
	require.NoError(t, err)
	assert.Contains(t, out, "RE2")

	_, err = execute(t, "topics", "nope")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestVersionAndCompletion(t *testing.T) {
	isolate(t)

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "repatch version dev")

	out, err = execute(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "repatch")

	_, err = execute(t, "completion", "tcsh")
	assert.Error(t, err)
}

func TestManCommand(t *testing.T) {
	isolate(t)
	out, err := execute(t, "man")
	require.NoError(t, err)
	assert.Contains(t, out, "REPATCH")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(errors.New(errors.ErrInternal, "x")))
	assert.Equal(t, 3, ExitCode(&ExitError{Code: 3, Message: "m"}))
}

func TestNoColorFlag(t *testing.T) {
	isolate(t)
	_, rulesPath, _ := project(t)
	_, err := execute(t, "list", rulesPath, "--no-color", "--format", "term")
	require.NoError(t, err)
}
