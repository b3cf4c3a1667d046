package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/yourusername/lvm-browser/internal/datasource"
	"github.com/yourusername/lvm-browser/internal/topology"
	"go.uber.org/zap"
)

// Refresher drives the periodic inventory cycle: collect, build, swap.
// Only one refresh runs at a time; a cycle waiting on a hung command is
// bounded by the gateway's per-command timeout, never by user action.
type Refresher struct {
	collector *datasource.Collector
	store     *SnapshotStore
	interval  time.Duration
	logger    *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu         sync.RWMutex
	isRunning  bool
	refreshing bool
	lastUpdate time.Time
}

// NewRefresher creates a refresher over the collector and store.
func NewRefresher(collector *datasource.Collector, store *SnapshotStore, interval time.Duration, logger *zap.Logger) *Refresher {
	ctx, cancel := context.WithCancel(context.Background())
	return &Refresher{
		collector: collector,
		store:     store,
		interval:  interval,
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start begins the periodic refresh loop, performing one refresh
// immediately so the UI has data to show.
func (r *Refresher) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isRunning {
		return fmt.Errorf("refresher already running")
	}

	r.logger.Info("starting topology refresher",
		zap.Duration("interval", r.interval),
	)

	r.isRunning = true
	r.wg.Add(1)
	go r.run()
	return nil
}

// Stop halts the refresh loop and waits for an in-flight cycle to finish.
func (r *Refresher) Stop() error {
	r.mu.Lock()
	if !r.isRunning {
		r.mu.Unlock()
		return fmt.Errorf("refresher not running")
	}
	r.mu.Unlock()

	r.cancel()
	r.wg.Wait()

	r.mu.Lock()
	r.isRunning = false
	r.mu.Unlock()

	r.logger.Info("topology refresher stopped")
	return nil
}

func (r *Refresher) run() {
	defer r.wg.Done()

	r.refresh()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.ctx.Done():
			r.logger.Debug("refresh loop exiting")
			return
		case <-ticker.C:
			r.refresh()
		}
	}
}

// refresh performs one full cycle. The collector joins all command
// invocations (each with its own timeout) before the builder runs, so the
// swapped snapshot is always built from one consistent batch.
func (r *Refresher) refresh() {
	r.mu.Lock()
	if r.refreshing {
		r.mu.Unlock()
		r.logger.Debug("refresh skipped, previous cycle still running")
		return
	}
	r.refreshing = true
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.refreshing = false
		r.mu.Unlock()
	}()

	start := time.Now()
	set := r.collector.Collect(r.ctx)
	snapshot := topology.Build(set, r.logger)
	r.store.Swap(snapshot)

	r.mu.Lock()
	r.lastUpdate = time.Now()
	r.mu.Unlock()

	r.logger.Info("topology refreshed",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("devices", len(snapshot.Devices)),
		zap.Int("vgs", len(snapshot.VolumeGroups)),
		zap.Int("unresolved", snapshot.UnresolvedCount()),
		zap.Int("skipped_records", snapshot.SkippedRecords()),
	)
}

// RefreshNow forces an immediate refresh cycle.
func (r *Refresher) RefreshNow() {
	r.refresh()
}

// Status describes the refresher for the header line.
type Status struct {
	IsRunning  bool
	LastUpdate time.Time
	Interval   time.Duration
}

// GetStatus returns the current refresher status.
func (r *Refresher) GetStatus() Status {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Status{
		IsRunning:  r.isRunning,
		LastUpdate: r.lastUpdate,
		Interval:   r.interval,
	}
}
