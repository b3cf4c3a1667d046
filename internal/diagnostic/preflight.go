package diagnostic

import (
	"context"

	"github.com/yourusername/lvm-browser/internal/datasource"
	"github.com/yourusername/lvm-browser/internal/gateway"
	"github.com/yourusername/lvm-browser/internal/model"
)

// CheckResult is the outcome of probing one inventory command.
type CheckResult struct {
	Source  model.Source
	Command string
	OK      bool
	Detail  string
	Action  string
}

// RunPreflight executes every inventory command once and reports whether
// each is usable from the current environment. It is meant for the
// --check flag, before the TUI takes over the terminal.
func RunPreflight(ctx context.Context, runner gateway.Runner) []CheckResult {
	results := make([]CheckResult, 0, len(model.Sources))
	for _, source := range model.Sources {
		command, args := datasource.CommandLine(source)
		res := CheckResult{Source: source, Command: command}

		_, err := runner.Run(ctx, command, args...)
		if err == nil {
			res.OK = true
			results = append(results, res)
			continue
		}

		res.Detail = err.Error()
		res.Action = recommendedAction(source, err)
		results = append(results, res)
	}
	return results
}

// recommendedAction returns a remediation hint for a failed probe.
func recommendedAction(source model.Source, err error) string {
	switch {
	case gateway.IsKind(err, gateway.PermissionDenied):
		return "run as root, the LVM tools need raw device access"
	case gateway.IsKind(err, gateway.NotFound):
		switch source {
		case model.SourcePVs, model.SourceVGs, model.SourceLVs:
			return "install the lvm2 package"
		case model.SourceParted:
			return "install the parted package"
		case model.SourceFdisk, model.SourceLsblk:
			return "install the util-linux package"
		default:
			return "install the coreutils package"
		}
	default:
		return "check " + string(source) + " runs by hand and inspect /tmp/lvm-browser.log"
	}
}
