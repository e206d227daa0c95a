package repatch

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort       = "Apply idempotent find-and-replace rules to source files"
	MsgApplyShort      = "Apply rules to their target files"
	MsgCheckShort      = "Report rules that would still apply, without writing"
	MsgListShort       = "List the rules in rule files"
	MsgLintShort       = "Check rules for authoring problems"
	MsgInitShort       = "Write a starter rule file"
	MsgTopicsShort     = "Display available documentation topics"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate the man page"

	// Status messages
	MsgPending        = "%d %s would still apply"
	MsgFilesFailed    = "%d %s could not be patched"
	MsgLintProblems   = "lint found problems"
	MsgInitCreated    = "Created %s"
	MsgUnknownTopic   = "unknown topic: %s"
	MsgVersionFormat  = "repatch version %s\n  commit: %s\n  built:  %s\n"
	MsgNoRulesGiven   = "no rule files given and rules.files is empty"
	MsgFileExists     = "%s already exists"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig  = "Extra configuration file, applied over user and project config"
	MsgFlagNoColor = "Disable colored output"
	MsgFlagBuiltin = "Builtin rule set to apply (repeatable)"
	MsgFlagDryRun  = "Run rules without writing any file"
	MsgFlagDiff    = "Show a diff for every changed file"
	MsgFlagFormat  = "Output format: auto, term, text or json"
	MsgFlagBaseDir = "Directory relative targets resolve against"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/apply-long.txt
	msgApplyLongRaw string
	MsgApplyLong    = strings.TrimSpace(msgApplyLongRaw)

	//go:embed msgs/apply-example.txt
	msgApplyExampleRaw string
	MsgApplyExample    = strings.TrimRight(msgApplyExampleRaw, "\n")

	//go:embed msgs/check-long.txt
	msgCheckLongRaw string
	MsgCheckLong    = strings.TrimSpace(msgCheckLongRaw)

	//go:embed msgs/lint-long.txt
	msgLintLongRaw string
	MsgLintLong    = strings.TrimSpace(msgLintLongRaw)

	//go:embed msgs/init-long.txt
	msgInitLongRaw string
	MsgInitLong    = strings.TrimSpace(msgInitLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
