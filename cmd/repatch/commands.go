package repatch

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/repatch/internal/version"
	"github.com/arthur-debert/repatch/pkg/errors"
	"github.com/arthur-debert/repatch/pkg/filesystem"
	"github.com/arthur-debert/repatch/pkg/logging"
	"github.com/arthur-debert/repatch/pkg/ruleset"
	"github.com/arthur-debert/repatch/pkg/runner"
	"github.com/arthur-debert/repatch/pkg/types"
	"github.com/arthur-debert/repatch/pkg/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// ruleFlags are the flags shared by every command that loads rules
type ruleFlags struct {
	builtins []string
	baseDir  string
	format   string
}

func (f *ruleFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.builtins, "builtin", nil, MsgFlagBuiltin)
	cmd.Flags().StringVar(&f.baseDir, "base-dir", "", MsgFlagBaseDir)
	cmd.Flags().StringVar(&f.format, "format", "", MsgFlagFormat)

	_ = cmd.RegisterFlagCompletionFunc("builtin", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return ruleset.BuiltinNames(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "term", "text", "json"}, cobra.ShellCompDirectiveNoFileComp
	})
	cmd.ValidArgsFunction = ruleFileCompletion
}

func ruleFileCompletion(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{"toml", "yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
}

// loadRules resolves rule files from args, falling back to rules.files,
// and appends the requested builtin sets
func (a *app) loadRules(args []string, f *ruleFlags) ([]types.Rule, error) {
	paths := args
	if len(paths) == 0 && len(f.builtins) == 0 {
		paths = a.cfg.Rules.Files
	}
	if len(paths) == 0 && len(f.builtins) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, MsgNoRulesGiven)
	}

	opts := ruleset.Options{BaseDir: f.baseDir}
	if opts.BaseDir == "" {
		opts.BaseDir = a.cfg.Rules.BaseDir
	}

	rules, err := ruleset.LoadAll(paths, opts)
	if err != nil {
		return nil, err
	}
	for _, name := range f.builtins {
		set, err := ruleset.Builtin(name, opts)
		if err != nil {
			return nil, err
		}
		rules = append(rules, set.Rules...)
	}
	return rules, nil
}

func (a *app) renderer(cmd *cobra.Command, f *ruleFlags, showDiff bool) (ui.Renderer, error) {
	name := f.format
	if name == "" {
		name = a.cfg.Output.Format
	}
	format, err := ui.ParseFormat(name)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(format, cmd.OutOrStdout(), ui.Options{Diff: showDiff || a.cfg.Output.Diff})
}

// run applies rules through the OS, or through an in-memory overlay on
// dry runs, and returns the report
func (a *app) run(rules []types.Rule, dryRun bool, progress func(types.FileResult)) (*types.Report, error) {
	fsys := filesystem.NewOS()
	if dryRun {
		fsys = filesystem.NewDryRun()
	}

	opts := []runner.Option{
		runner.WithLogger(logging.GetLogger("runner")),
		runner.WithSkipUnchanged(a.cfg.Write.SkipUnchanged),
	}
	if progress != nil {
		opts = append(opts, runner.WithProgress(progress))
	}

	report, err := runner.New(fsys, opts...).Run(rules)
	if err != nil {
		return nil, err
	}
	report.DryRun = dryRun
	return report, nil
}

func newApplyCmd(a *app) *cobra.Command {
	var (
		flags    ruleFlags
		dryRun   bool
		showDiff bool
	)

	cmd := &cobra.Command{
		Use:     "apply [rule files...]",
		Short:   MsgApplyShort,
		Long:    MsgApplyLong,
		Example: MsgApplyExample,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.apply")

			rules, err := a.loadRules(args, &flags)
			if err != nil {
				return err
			}
			r, err := a.renderer(cmd, &flags, showDiff)
			if err != nil {
				return err
			}

			logger.Info().
				Int("rules", len(rules)).
				Bool("dryRun", dryRun).
				Msg("Applying rules")

			report, err := a.run(rules, dryRun, func(f types.FileResult) {
				_ = r.RenderProgress(f)
			})
			if err != nil {
				return err
			}
			if err := r.RenderResult(report); err != nil {
				return err
			}

			if failed := report.Counts().FilesFailed; failed > 0 {
				return &ExitError{Code: 1, Message: fmt.Sprintf(MsgFilesFailed, failed, plural(failed, "file", "files"))}
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, MsgFlagDryRun)
	cmd.Flags().BoolVar(&showDiff, "diff", false, MsgFlagDiff)
	return cmd
}

func newCheckCmd(a *app) *cobra.Command {
	var (
		flags    ruleFlags
		showDiff bool
	)

	cmd := &cobra.Command{
		Use:     "check [rule files...]",
		Short:   MsgCheckShort,
		Long:    MsgCheckLong,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := a.loadRules(args, &flags)
			if err != nil {
				return err
			}
			r, err := a.renderer(cmd, &flags, showDiff)
			if err != nil {
				return err
			}

			report, err := a.run(rules, true, nil)
			if err != nil {
				return err
			}
			if err := r.RenderResult(report); err != nil {
				return err
			}

			counts := report.Counts()
			switch {
			case counts.Applied > 0:
				return &ExitError{Code: 1, Message: fmt.Sprintf(MsgPending, counts.Applied, plural(counts.Applied, "rule", "rules"))}
			case counts.FilesFailed > 0:
				return &ExitError{Code: 1, Message: fmt.Sprintf(MsgFilesFailed, counts.FilesFailed, plural(counts.FilesFailed, "file", "files"))}
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&showDiff, "diff", false, MsgFlagDiff)
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	var flags ruleFlags

	cmd := &cobra.Command{
		Use:     "list [rule files...]",
		Short:   MsgListShort,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := a.loadRules(args, &flags)
			if err != nil {
				return err
			}
			r, err := a.renderer(cmd, &flags, false)
			if err != nil {
				return err
			}
			return r.RenderResult(rules)
		},
	}

	flags.register(cmd)
	return cmd
}

func newLintCmd(a *app) *cobra.Command {
	var flags ruleFlags

	cmd := &cobra.Command{
		Use:     "lint [rule files...]",
		Short:   MsgLintShort,
		Long:    MsgLintLong,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := a.loadRules(args, &flags)
			if err != nil {
				return err
			}
			r, err := a.renderer(cmd, &flags, false)
			if err != nil {
				return err
			}

			findings := ruleset.Lint(rules)
			if err := r.RenderResult(findings); err != nil {
				return err
			}
			if ruleset.HasProblems(findings) {
				return &ExitError{Code: 1, Message: MsgLintProblems}
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "init [path]",
		Short:   MsgInitShort,
		Long:    MsgInitLong,
		Args:    cobra.MaximumNArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "repatch.toml"
			if len(args) == 1 {
				path = args[0]
			}

			fsys := filesystem.NewOS()
			if _, err := fsys.Stat(path); err == nil {
				return errors.Newf(errors.ErrAlreadyExists, MsgFileExists, path)
			} else if !stderrors.Is(err, fs.ErrNotExist) {
				return errors.Wrapf(err, errors.ErrFileRead, "cannot check %s", path)
			}

			name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			data, err := ruleset.Sample(name)
			if err != nil {
				return err
			}
			if dir := filepath.Dir(path); dir != "." {
				if err := fsys.MkdirAll(dir, 0755); err != nil {
					return errors.Wrapf(err, errors.ErrFileWrite, "cannot create %s", dir)
				}
			}
			if err := fsys.WriteFile(path, data, 0644); err != nil {
				return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", path)
			}

			fmt.Fprintf(cmd.OutOrStdout(), MsgInitCreated+"\n", path)
			return nil
		},
	}
}

func newTopicsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "topics [topic]",
		Short:   MsgTopicsShort,
		Args:    cobra.MaximumNArgs(1),
		GroupID: "misc",
		ValidArgsFunction: func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			if a.topics == nil {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return a.topics.List(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.topics == nil {
				return errors.New(errors.ErrInternal, "help topics are unavailable")
			}
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				a.topics.WriteIndex(out, cmd.Root().Name())
				return nil
			}
			t, ok := a.topics.Get(args[0])
			if !ok {
				return errors.Newf(errors.ErrNotFound, MsgUnknownTopic, args[0])
			}
			fmt.Fprint(out, a.topics.Render(t))
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
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
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

func newManCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		GroupID: "misc",
		Hidden:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return doc.GenMan(cmd.Root(), ManHeader(), cmd.OutOrStdout())
		},
	}
}

// ManHeader is the man page header for the current build
func ManHeader() *doc.GenManHeader {
	return &doc.GenManHeader{
		Title:   "REPATCH",
		Section: "1",
		Source:  "repatch " + version.Version,
		Manual:  "repatch manual",
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
