package diagnostic

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/yourusername/lvm-browser/internal/gateway"
	"github.com/yourusername/lvm-browser/internal/model"
)

type probeRunner struct {
	errs map[string]error
}

func (p *probeRunner) Run(_ context.Context, name string, _ ...string) ([]byte, error) {
	if err, ok := p.errs[name]; ok {
		return nil, err
	}
	return []byte("{}"), nil
}

func TestRunPreflight(t *testing.T) {
	runner := &probeRunner{
		errs: map[string]error{
			"pvs":    &gateway.CommandError{Command: "pvs", Kind: gateway.PermissionDenied, Err: errors.New("run as root")},
			"parted": &gateway.CommandError{Command: "parted", Kind: gateway.NotFound, Err: errors.New("not installed")},
		},
	}

	results := RunPreflight(context.Background(), runner)
	if len(results) != len(model.Sources) {
		t.Fatalf("got %d results, want %d", len(results), len(model.Sources))
	}

	byCommand := make(map[string]CheckResult)
	for _, res := range results {
		byCommand[res.Command] = res
	}

	if !byCommand["lsblk"].OK {
		t.Errorf("lsblk = %+v, want OK", byCommand["lsblk"])
	}

	pvs := byCommand["pvs"]
	if pvs.OK || !strings.Contains(pvs.Action, "root") {
		t.Errorf("pvs = %+v", pvs)
	}

	parted := byCommand["parted"]
	if parted.OK || !strings.Contains(parted.Action, "parted package") {
		t.Errorf("parted = %+v", parted)
	}
}

func TestRecommendedAction(t *testing.T) {
	notFound := func(cmd string) error {
		return &gateway.CommandError{Command: cmd, Kind: gateway.NotFound, Err: errors.New("x")}
	}

	tests := []struct {
		source model.Source
		err    error
		want   string
	}{
		{model.SourceVGs, notFound("vgs"), "lvm2"},
		{model.SourceLsblk, notFound("lsblk"), "util-linux"},
		{model.SourceDF, notFound("df"), "coreutils"},
		{model.SourceLVs, errors.New("exit status 5"), "by hand"},
	}
	for _, tt := range tests {
		got := recommendedAction(tt.source, tt.err)
		if !strings.Contains(got, tt.want) {
			t.Errorf("recommendedAction(%s) = %q, missing %q", tt.source, got, tt.want)
		}
	}
}
