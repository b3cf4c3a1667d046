package ui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yourusername/lvm-browser/internal/cache"
	"github.com/yourusername/lvm-browser/internal/i18n"
	"github.com/yourusername/lvm-browser/internal/model"
	"go.uber.org/zap"
)

type stubProvider struct {
	topo *model.Topology
}

func (s stubProvider) Snapshot() (*model.Topology, bool) { return s.topo, s.topo != nil }
func (s stubProvider) RefreshNow()                       {}
func (s stubProvider) Status() cache.Status              { return cache.Status{} }

func testModel(topo *model.Topology) *Model {
	return &Model{
		provider:  stubProvider{topo: topo},
		logger:    zap.NewNop(),
		localizer: i18n.NewLocalizer("en"),
		nav:       NewNavState(),
		keys:      DefaultKeyMap(),
		topo:      topo,
		width:     100,
		height:    30,
	}
}

func TestViewTooSmall(t *testing.T) {
	m := testModel(nil)
	m.width = 79
	m.height = 9

	view := m.View()
	if !strings.Contains(view, "too small") || !strings.Contains(view, "80x10") {
		t.Errorf("View() = %q, want the size notice", view)
	}
	// Only the notice, no panels.
	if strings.Contains(view, "Volume Groups") || strings.Contains(view, "\n") {
		t.Errorf("undersized View() rendered panels: %q", view)
	}

	// One dimension short is enough to trip it.
	m.width = 120
	m.height = 9
	if view := m.View(); !strings.Contains(view, "too small") {
		t.Errorf("View() at 120x9 = %q, want the size notice", view)
	}
}

func TestResizeReclampsCursor(t *testing.T) {
	vgs := make([]*model.VolumeGroup, 10)
	for i := range vgs {
		vgs[i] = &model.VolumeGroup{Name: fmt.Sprintf("vg_%02d", i)}
	}
	topo := &model.Topology{
		VolumeGroups: vgs,
		Sources:      map[model.Source]model.SourceStatus{},
	}
	m := testModel(topo)

	m.nav.MoveSelection(8, len(vgs), m.visibleRows(PanelVolumeGroups))
	if m.nav.Scroll(PanelVolumeGroups) != 0 {
		t.Fatalf("setup scroll = %d", m.nav.Scroll(PanelVolumeGroups))
	}

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 10})

	rows := m.visibleRows(PanelVolumeGroups)
	sel := m.nav.Selected(PanelVolumeGroups)
	scroll := m.nav.Scroll(PanelVolumeGroups)
	if sel < scroll || sel >= scroll+rows {
		t.Errorf("after shrink: selected %d outside viewport [%d, %d)", sel, scroll, scroll+rows)
	}
}
