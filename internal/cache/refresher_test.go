package cache

import (
	"context"
	"testing"
	"time"

	"github.com/yourusername/lvm-browser/internal/datasource"
	"go.uber.org/zap"
)

// fakeRunner answers every inventory command with minimal valid output.
type fakeRunner struct{}

func (fakeRunner) Run(_ context.Context, name string, _ ...string) ([]byte, error) {
	switch name {
	case "lsblk":
		return []byte(`{"blockdevices": [{"name": "sda", "path": "/dev/sda", "type": "disk", "size": 1024}]}`), nil
	case "pvs":
		return []byte(`{"report": [{"pv": []}]}`), nil
	case "vgs":
		return []byte(`{"report": [{"vg": []}]}`), nil
	case "lvs":
		return []byte(`{"report": [{"lv": []}]}`), nil
	default:
		return nil, nil
	}
}

func newTestRefresher(interval time.Duration) (*Refresher, *SnapshotStore) {
	logger := zap.NewNop()
	collector := datasource.NewCollector(fakeRunner{}, logger)
	store := NewSnapshotStore(logger)
	return NewRefresher(collector, store, interval, logger), store
}

func TestRefresherStartStop(t *testing.T) {
	refresher, store := newTestRefresher(time.Hour)

	if err := refresher.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	if err := refresher.Start(); err == nil {
		t.Error("second Start() should fail")
	}

	// The initial refresh populates the store without waiting for the
	// first tick.
	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, ok := store.Get(); ok {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("initial refresh never landed")
		}
		time.Sleep(10 * time.Millisecond)
	}

	status := refresher.GetStatus()
	if !status.IsRunning || status.Interval != time.Hour {
		t.Errorf("status = %+v", status)
	}
	if status.LastUpdate.IsZero() {
		t.Error("LastUpdate not recorded")
	}

	if err := refresher.Stop(); err != nil {
		t.Fatalf("Stop() error: %v", err)
	}
	if err := refresher.Stop(); err == nil {
		t.Error("second Stop() should fail")
	}
	if refresher.GetStatus().IsRunning {
		t.Error("still marked running after Stop")
	}
}

func TestRefresherRefreshNow(t *testing.T) {
	refresher, store := newTestRefresher(time.Hour)

	refresher.RefreshNow()

	topo, ok := store.Get()
	if !ok {
		t.Fatal("RefreshNow did not install a snapshot")
	}
	if len(topo.Devices) != 1 {
		t.Errorf("devices = %d, want 1", len(topo.Devices))
	}
	if refresher.GetStatus().LastUpdate.IsZero() {
		t.Error("LastUpdate not recorded")
	}
}
