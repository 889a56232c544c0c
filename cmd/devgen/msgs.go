package devgen

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Generate source files from configured templates"
	MsgGenerateShort   = "Generate artifacts of a type from its templates"
	MsgListShort       = "List configured types, templates and compounds"
	MsgHelpShort       = "Show documentation for a type, a template or a command"
	MsgConfigShort     = "Inspect and initialize the configuration"
	MsgConfigShowShort = "Print the resolved configuration"
	MsgConfigInitShort = "Write the default configuration to ./devgen.toml"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man pages"

	// Flag descriptions
	MsgFlagVerbose    = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFormat     = "Output format: auto, term, text or json"
	MsgFlagConfig     = "Configuration file (default: discovered)"
	MsgFlagSet        = "Override a configuration property, e.g. --set target.go.root=pkg"
	MsgFlagForce      = "Replace existing targets"
	MsgFlagDryRun     = "Run in memory without touching the disk"
	MsgFlagTargetName = "Name of the generated artifact (default: the template name)"
	MsgFlagTemplates  = "Also scan each type's template folder"
	MsgFlagOutput     = "Encoding: text, toml, yaml or json"
	MsgFlagManDir     = "Directory to write the man pages to"
	MsgFlagHelpType   = "Treat the argument as a type even when a command has that name"

	// Status messages
	MsgManWritten = "Man pages written to %s"

	// Error messages
	MsgErrNoCommand       = "no command specified"
	MsgErrTargetNameMulti = "--target-name applies to a single name, got %d"
	MsgErrWorkDir         = "cannot determine the working directory"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/generate-long.txt
	msgGenerateLongRaw string
	MsgGenerateLong    = strings.TrimSpace(msgGenerateLongRaw)

	//go:embed msgs/generate-example.txt
	msgGenerateExampleRaw string
	MsgGenerateExample    = strings.TrimRight(msgGenerateExampleRaw, "\n")

	//go:embed msgs/list-long.txt
	msgListLongRaw string
	MsgListLong    = strings.TrimSpace(msgListLongRaw)

	//go:embed msgs/help-long.txt
	msgHelpLongRaw string
	MsgHelpLong    = strings.TrimSpace(msgHelpLongRaw)

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/config-show-example.txt
	msgConfigShowExampleRaw string
	MsgConfigShowExample    = strings.TrimRight(msgConfigShowExampleRaw, "\n")

	//go:embed msgs/config-init-long.txt
	msgConfigInitLongRaw string
	MsgConfigInitLong    = strings.TrimSpace(msgConfigInitLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
