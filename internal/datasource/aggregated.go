package datasource

import (
	"context"
	"sync"

	"github.com/yourusername/lvm-browser/internal/gateway"
	"github.com/yourusername/lvm-browser/internal/model"
	"go.uber.org/zap"
)

// Collector fans the inventory commands out concurrently and joins them
// into one RecordSet. The commands are independent external programs with
// no shared state, so they run in parallel; the collector waits for all of
// them (each bounded by the runner's timeout) before returning, so the
// topology builder always sees a complete-or-partial batch, never a torn
// one.
type Collector struct {
	runner gateway.Runner
	logger *zap.Logger
}

// NewCollector creates a collector over the given command runner.
func NewCollector(runner gateway.Runner, logger *zap.Logger) *Collector {
	return &Collector{runner: runner, logger: logger}
}

type invocation struct {
	source  model.Source
	command string
	args    []string
}

var invocations = []invocation{
	{model.SourceLsblk, "lsblk", lsblkArgs},
	{model.SourceFdisk, "fdisk", fdiskArgs},
	{model.SourceParted, "parted", partedArgs},
	{model.SourcePVs, "pvs", pvsArgs},
	{model.SourceVGs, "vgs", vgsArgs},
	{model.SourceLVs, "lvs", lvsArgs},
	{model.SourceDF, "df", dfArgs},
}

// CommandLine returns the exact command and arguments used for a source,
// in refresh order matching model.Sources.
func CommandLine(source model.Source) (string, []string) {
	for _, inv := range invocations {
		if inv.source == source {
			return inv.command, inv.args
		}
	}
	return "", nil
}

// Collect runs every inventory command and parses whatever succeeded.
// A failed or timed-out command marks its source unavailable in the
// returned set; it never fails the whole collection.
func (c *Collector) Collect(ctx context.Context) *model.RecordSet {
	type result struct {
		source model.Source
		output []byte
		err    error
	}

	results := make([]result, len(invocations))
	var wg sync.WaitGroup
	for i, inv := range invocations {
		wg.Add(1)
		go func(i int, inv invocation) {
			defer wg.Done()
			out, err := c.runner.Run(ctx, inv.command, inv.args...)
			results[i] = result{source: inv.source, output: out, err: err}
		}(i, inv)
	}
	wg.Wait()

	set := &model.RecordSet{
		Sources: make(map[model.Source]model.SourceStatus),
	}

	for _, res := range results {
		if res.err != nil {
			set.Sources[res.source] = statusFromError(res.err)
			continue
		}
		skipped, parseErr := c.parseInto(set, res.source, res.output)
		if parseErr != nil {
			c.logger.Warn("inventory output unparseable",
				zap.String("source", string(res.source)),
				zap.Error(parseErr),
			)
			set.Sources[res.source] = model.SourceStatus{Error: parseErr.Error()}
			continue
		}
		set.Sources[res.source] = model.SourceStatus{Available: true, Skipped: skipped}
	}

	c.logger.Info("inventory collected",
		zap.Int("devices", len(set.Devices)),
		zap.Int("pvs", len(set.PVs)),
		zap.Int("vgs", len(set.VGs)),
		zap.Int("lv_rows", len(set.LVs)),
	)
	return set
}

func (c *Collector) parseInto(set *model.RecordSet, source model.Source, output []byte) (int, error) {
	switch source {
	case model.SourceLsblk:
		records, skipped, err := ParseLsblk(output)
		set.Devices = records
		return skipped, err
	case model.SourceFdisk:
		records, skipped := ParseFdisk(output)
		set.FdiskDisks = records
		return skipped, nil
	case model.SourceParted:
		records, skipped := ParseParted(output)
		set.PartedDisks = records
		return skipped, nil
	case model.SourcePVs:
		records, skipped, err := ParsePVs(output)
		set.PVs = records
		return skipped, err
	case model.SourceVGs:
		records, skipped, err := ParseVGs(output)
		set.VGs = records
		return skipped, err
	case model.SourceLVs:
		records, skipped, err := ParseLVs(output)
		set.LVs = records
		return skipped, err
	case model.SourceDF:
		records, skipped := ParseDF(output)
		set.Mounts = records
		return skipped, nil
	}
	return 0, nil
}

func statusFromError(err error) model.SourceStatus {
	return model.SourceStatus{
		Denied:  gateway.IsKind(err, gateway.PermissionDenied),
		Missing: gateway.IsKind(err, gateway.NotFound),
		Error:   err.Error(),
	}
}
