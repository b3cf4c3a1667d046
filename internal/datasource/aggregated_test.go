package datasource

import (
	"context"
	"errors"
	"testing"

	"github.com/yourusername/lvm-browser/internal/gateway"
	"github.com/yourusername/lvm-browser/internal/model"
	"go.uber.org/zap"
)

// stubRunner serves canned output per command name.
type stubRunner struct {
	outputs map[string][]byte
	errs    map[string]error
}

func (s *stubRunner) Run(_ context.Context, name string, _ ...string) ([]byte, error) {
	if err, ok := s.errs[name]; ok {
		return nil, err
	}
	return s.outputs[name], nil
}

func TestCollect(t *testing.T) {
	runner := &stubRunner{
		outputs: map[string][]byte{
			"lsblk":  []byte(`{"blockdevices": [{"name": "sda", "path": "/dev/sda", "type": "disk", "size": 1024}]}`),
			"fdisk":  []byte("Disk /dev/sda: 1 KiB\nDisklabel type: dos\n"),
			"parted": []byte("Model: Test\nDisk /dev/sda: 1024B\nPartition Table: msdos\n"),
			"pvs":    []byte(`{"report": [{"pv": [{"pv_name": "/dev/sda1", "pv_size": "512", "pv_free": "0", "vg_name": "vg0", "pv_fmt": "lvm2"}]}]}`),
			"vgs":    []byte(`{"report": [{"vg": [{"vg_name": "vg0", "vg_size": "512", "vg_free": "0", "pv_count": "1", "lv_count": "0", "vg_attr": "wz--n-", "vg_extent_size": "4194304"}]}]}`),
			"lvs":    []byte(`{"report": [{"lv": []}]}`),
			"df":     []byte("Filesystem 1K-blocks Used Avail Use% Mounted on\n/dev/sda1 512 256 256 50% /\n"),
		},
	}

	collector := NewCollector(runner, zap.NewNop())
	set := collector.Collect(context.Background())

	if len(set.Devices) != 1 || len(set.PVs) != 1 || len(set.VGs) != 1 {
		t.Errorf("devices/pvs/vgs = %d/%d/%d", len(set.Devices), len(set.PVs), len(set.VGs))
	}
	if len(set.Mounts) != 1 {
		t.Errorf("mounts = %d, want 1", len(set.Mounts))
	}
	for _, src := range model.Sources {
		st, ok := set.Sources[src]
		if !ok {
			t.Errorf("no status recorded for %s", src)
			continue
		}
		if !st.Available {
			t.Errorf("source %s not available: %+v", src, st)
		}
	}
}

func TestCollectPartialFailure(t *testing.T) {
	runner := &stubRunner{
		outputs: map[string][]byte{
			"lsblk": []byte(`{"blockdevices": []}`),
			"fdisk": nil,
			"df":    nil,
		},
		errs: map[string]error{
			"pvs":    &gateway.CommandError{Command: "pvs", Kind: gateway.PermissionDenied, Err: errors.New("run as root")},
			"vgs":    &gateway.CommandError{Command: "vgs", Kind: gateway.NotFound, Err: errors.New("not installed")},
			"lvs":    &gateway.CommandError{Command: "lvs", Kind: gateway.ExecutionFailed, Err: errors.New("exit status 5")},
			"parted": &gateway.CommandError{Command: "parted", Kind: gateway.NotFound, Err: errors.New("not installed")},
		},
	}

	collector := NewCollector(runner, zap.NewNop())
	set := collector.Collect(context.Background())

	if !set.Sources[model.SourceLsblk].Available {
		t.Error("lsblk should be available")
	}
	if st := set.Sources[model.SourcePVs]; !st.Denied || st.Available {
		t.Errorf("pvs status = %+v, want Denied", st)
	}
	if st := set.Sources[model.SourceVGs]; !st.Missing {
		t.Errorf("vgs status = %+v, want Missing", st)
	}
	if st := set.Sources[model.SourceLVs]; st.Available || st.Denied || st.Missing || st.Error == "" {
		t.Errorf("lvs status = %+v, want plain error", st)
	}
	if set.PVs != nil || set.VGs != nil || set.LVs != nil {
		t.Error("failed sources must not contribute records")
	}
}

func TestCollectUnparseableOutput(t *testing.T) {
	runner := &stubRunner{
		outputs: map[string][]byte{
			"lsblk": []byte("this is not json"),
		},
	}
	collector := NewCollector(runner, zap.NewNop())
	set := collector.Collect(context.Background())

	st := set.Sources[model.SourceLsblk]
	if st.Available || st.Error == "" {
		t.Errorf("lsblk status = %+v, want unavailable with detail", st)
	}
}

func TestCommandLine(t *testing.T) {
	cmd, args := CommandLine(model.SourceLsblk)
	if cmd != "lsblk" || len(args) == 0 {
		t.Errorf("CommandLine(lsblk) = %q %v", cmd, args)
	}
	if cmd, _ := CommandLine(model.Source("bogus")); cmd != "" {
		t.Errorf("unknown source returned %q", cmd)
	}
}
