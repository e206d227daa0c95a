package repatch

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/arthur-debert/repatch/internal/version"
	"github.com/arthur-debert/repatch/pkg/config"
	"github.com/arthur-debert/repatch/pkg/logging"
	"github.com/arthur-debert/repatch/pkg/topics"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// app holds the state shared by all commands of one invocation
type app struct {
	verbosity  int
	configFile string
	noColor    bool
	cfg        *config.Config
	topics     *topics.Manager
}

// ExitError ends the process with Code. It is used when a command ran
// correctly but its outcome must fail the invocation, as check does.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string { return e.Message }

// ExitCode returns the status the process should exit with for err
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if stderrors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "repatch",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false, MsgFlagNoColor)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})

	rootCmd.AddCommand(newApplyCmd(a))
	rootCmd.AddCommand(newCheckCmd(a))
	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newLintCmd(a))
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newTopicsCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	m, err := topics.New(topics.Embedded(), topics.Options{Renderer: topics.NewGlamourRenderer()})
	if err == nil {
		a.topics = m
		m.Install(rootCmd)
	}

	return rootCmd
}

// setup loads configuration and configures logging before any command runs
func (a *app) setup(cmd *cobra.Command) error {
	wd, err := os.Getwd()
	if err != nil {
		wd = ""
	}

	overrides := map[string]interface{}{}
	if a.noColor {
		overrides["output.color"] = false
	}

	cfg, err := config.Load(config.LoadOptions{
		UserFile:   config.DefaultUserFile(),
		ProjectDir: wd,
		ExtraFile:  a.configFile,
		Overrides:  overrides,
	})
	if err != nil {
		return err
	}
	a.cfg = cfg

	logging.Setup(logging.Options{
		Verbosity: a.verbosity,
		LogFile:   cfg.Log.File,
		Path:      cfg.Log.Path,
		NoColor:   !cfg.Output.Color,
	})
	if !cfg.Output.Color {
		color.NoColor = true
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	log.Debug().Str("command", cmd.Name()).Msg("Command started")
	return nil
}
