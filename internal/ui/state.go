package ui

// PanelID identifies one of the three topology panels.
type PanelID int

const (
	PanelVolumeGroups PanelID = iota
	PanelPhysicalVolumes
	PanelBlockDevices

	panelCount
)

// panelState is the per-panel cursor: which item is selected and how far
// the list is scrolled.
type panelState struct {
	selected int
	scroll   int
}

// NavState tracks focus and per-panel selection independently of the
// rendering layer, so a data refresh or resize never invalidates it.
type NavState struct {
	focused PanelID
	panels  [panelCount]panelState
}

// NewNavState returns a state with the volume group panel focused and
// every cursor at the top.
func NewNavState() *NavState {
	return &NavState{focused: PanelVolumeGroups}
}

// Focused returns the panel that currently receives navigation keys.
func (s *NavState) Focused() PanelID { return s.focused }

// CycleFocus advances focus to the next panel, wrapping after the last.
func (s *NavState) CycleFocus() {
	s.focused = (s.focused + 1) % panelCount
}

// Selected returns the selected item index for the panel.
func (s *NavState) Selected(p PanelID) int { return s.panels[p].selected }

// Scroll returns the scroll offset for the panel.
func (s *NavState) Scroll(p PanelID) int { return s.panels[p].scroll }

// MoveSelection moves the focused panel's cursor by delta, clamped to
// [0, itemCount), and scrolls just enough to keep the cursor inside a
// viewport of visibleRows.
func (s *NavState) MoveSelection(delta, itemCount, visibleRows int) {
	p := &s.panels[s.focused]
	if itemCount <= 0 {
		p.selected = 0
		p.scroll = 0
		return
	}

	p.selected += delta
	if p.selected < 0 {
		p.selected = 0
	}
	if p.selected >= itemCount {
		p.selected = itemCount - 1
	}

	s.clampScroll(p, itemCount, visibleRows)
}

// Clamp forces the focused panel's cursor back into range after the item
// list changed underneath it.
func (s *NavState) Clamp(p PanelID, itemCount, visibleRows int) {
	ps := &s.panels[p]
	if itemCount <= 0 {
		ps.selected = 0
		ps.scroll = 0
		return
	}
	if ps.selected >= itemCount {
		ps.selected = itemCount - 1
	}
	if ps.selected < 0 {
		ps.selected = 0
	}
	s.clampScroll(ps, itemCount, visibleRows)
}

func (s *NavState) clampScroll(p *panelState, itemCount, visibleRows int) {
	if visibleRows < 1 {
		visibleRows = 1
	}
	if p.selected < p.scroll {
		p.scroll = p.selected
	}
	if p.selected >= p.scroll+visibleRows {
		p.scroll = p.selected - visibleRows + 1
	}
	maxScroll := itemCount - visibleRows
	if maxScroll < 0 {
		maxScroll = 0
	}
	if p.scroll > maxScroll {
		p.scroll = maxScroll
	}
	if p.scroll < 0 {
		p.scroll = 0
	}
}

// ApplyRefresh reconciles a panel's cursor with a new item list. If the
// previously selected identifier is still present the cursor follows it,
// otherwise the cursor resets to the top.
func (s *NavState) ApplyRefresh(p PanelID, oldIDs, newIDs []string, visibleRows int) {
	ps := &s.panels[p]
	if len(newIDs) == 0 {
		ps.selected = 0
		ps.scroll = 0
		return
	}

	var prevID string
	if ps.selected >= 0 && ps.selected < len(oldIDs) {
		prevID = oldIDs[ps.selected]
	}

	found := -1
	if prevID != "" {
		for i, id := range newIDs {
			if id == prevID {
				found = i
				break
			}
		}
	}

	if found >= 0 {
		ps.selected = found
	} else {
		ps.selected = 0
		ps.scroll = 0
	}
	s.clampScroll(ps, len(newIDs), visibleRows)
}
