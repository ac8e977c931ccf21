package yuma

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort     = "Declarative package management on top of paru and Homebrew"
	MsgApplyShort    = "Install declared packages and prune undeclared ones"
	MsgPlanShort     = "Show what apply would install and prune"
	MsgPlanLong      = "Plan evaluates the manifest against this machine and prints, per backend, the packages apply would offer to install and to remove. Nothing is changed."
	MsgBackendsShort = "List package backends"
	MsgResolveShort  = "Resolve generic package names through the name index"
	MsgVersionShort  = "Print version information"

	// Output
	MsgPlanEmpty       = "Nothing declared for this machine."
	MsgPlanInstall     = "  + %s"
	MsgPlanPrune       = "  - %s"
	MsgPlanUpToDate    = "  up to date"
	MsgBackendDefault  = " (default)"
	MsgResolved        = "%s -> %s"
	MsgUnresolved      = "%s: %v"
	MsgVersionFormat   = "yuma version %s\n  commit: %s\n  built:  %s\n"
	MsgDryRunNotice    = "\nDRY RUN MODE - No changes were made"
	MsgErrorPrefix     = "Error: "
	MsgErrUnresolvable = "%d name(s) could not be resolved"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun  = "Preview changes without executing them"
	MsgFlagYes     = "Answer yes to every confirmation"
	MsgFlagNoCache = "Do not write session state or prune at the end"
	MsgFlagBackend = "Backend to use instead of the configured default"
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
)
