package ui

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/yourusername/lvm-browser/internal/cache"
	"github.com/yourusername/lvm-browser/internal/i18n"
	"github.com/yourusername/lvm-browser/internal/model"
	"go.uber.org/zap"
)

// Minimum terminal size the layout is designed for.
const (
	MinWidth  = 80
	MinHeight = 10
)

// DataProvider is the read side of the topology store.
type DataProvider interface {
	Snapshot() (*model.Topology, bool)
	RefreshNow()
	Status() cache.Status
}

// KeyMap defines key bindings
type KeyMap struct {
	Quit    key.Binding
	Tab     key.Binding
	Up      key.Binding
	Down    key.Binding
	Refresh key.Binding
	Copy    key.Binding
	Export  key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch panel"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export"),
		),
	}
}

// Model is the main UI model
type Model struct {
	provider  DataProvider
	logger    *zap.Logger
	localizer *i18n.Localizer
	version   string
	exportDir string

	width  int
	height int

	nav  *NavState
	topo *model.Topology
	keys KeyMap

	statusLine string
	quitting   bool
}

// NewModel creates a new UI model
func NewModel(provider DataProvider, logger *zap.Logger, locale, version, exportDir string) *Model {
	return &Model{
		provider:  provider,
		logger:    logger,
		localizer: i18n.NewLocalizer(locale),
		version:   version,
		exportDir: exportDir,
		nav:       NewNavState(),
		keys:      DefaultKeyMap(),
	}
}

// T translates a message by its ID
func (m *Model) T(messageID string) string {
	return m.localizer.T(messageID)
}

// TF translates a message with template data
func (m *Model) TF(messageID string, templateData map[string]interface{}) string {
	return m.localizer.TF(messageID, templateData)
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchSnapshot(),
		tea.EnterAltScreen,
		m.scheduleTick(),
	)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// A shrink can leave a cursor outside its viewport.
		for p := PanelID(0); p < panelCount; p++ {
			m.nav.Clamp(p, len(panelIDList(m.topo, p)), m.visibleRows(p))
		}
		return m, nil

	case tea.MouseMsg:
		return m, nil

	case uiTickMsg:
		if m.quitting {
			return m, nil
		}
		return m, tea.Batch(
			m.fetchSnapshot(),
			m.scheduleTick(),
		)

	case snapshotMsg:
		m.applySnapshot(msg.topo)
		return m, nil

	case statusLineMsg:
		m.statusLine = string(msg)
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusLine = ""
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Tab):
			m.nav.CycleFocus()
			return m, nil

		case key.Matches(msg, m.keys.Up):
			m.nav.MoveSelection(-1, m.itemCount(m.nav.Focused()), m.visibleRows(m.nav.Focused()))
			return m, nil

		case key.Matches(msg, m.keys.Down):
			m.nav.MoveSelection(1, m.itemCount(m.nav.Focused()), m.visibleRows(m.nav.Focused()))
			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			return m, m.forceRefresh()

		case key.Matches(msg, m.keys.Copy):
			return m, m.copySelection()

		case key.Matches(msg, m.keys.Export):
			return m, m.exportSnapshot()
		}
	}

	return m, nil
}

// applySnapshot installs a new topology, carrying each panel's cursor
// over to the same item when it still exists.
func (m *Model) applySnapshot(topo *model.Topology) {
	if topo == nil {
		return
	}
	old := m.topo
	m.topo = topo
	for p := PanelID(0); p < panelCount; p++ {
		m.nav.ApplyRefresh(p, panelIDList(old, p), panelIDList(topo, p), m.visibleRows(p))
	}
}

// panelIDList returns the stable identifiers for a panel's items.
func panelIDList(topo *model.Topology, p PanelID) []string {
	if topo == nil {
		return nil
	}
	switch p {
	case PanelVolumeGroups:
		ids := make([]string, 0, len(topo.VolumeGroups))
		for _, vg := range topo.VolumeGroups {
			ids = append(ids, vg.Name)
		}
		return ids
	case PanelPhysicalVolumes:
		ids := make([]string, 0, len(topo.PVs))
		for _, pv := range topo.PVs {
			ids = append(ids, pv.Path)
		}
		return ids
	case PanelBlockDevices:
		ids := make([]string, 0, len(topo.Devices))
		for _, dev := range topo.Devices {
			ids = append(ids, dev.Path)
		}
		return ids
	}
	return nil
}

func (m *Model) itemCount(p PanelID) int {
	return len(panelIDList(m.topo, p))
}

// selectedID returns the identifier of the focused panel's selection.
func (m *Model) selectedID() string {
	ids := panelIDList(m.topo, m.nav.Focused())
	sel := m.nav.Selected(m.nav.Focused())
	if sel < 0 || sel >= len(ids) {
		return ""
	}
	return ids[sel]
}

// View renders the UI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	if m.width < MinWidth || m.height < MinHeight {
		return m.TF("ui.too_small", map[string]interface{}{
			"Width":  MinWidth,
			"Height": MinHeight,
		})
	}

	header := m.renderHeader()
	footer := m.renderFooter()

	// One header row, one footer row, the rest is panel space. The left
	// panel spans the full content height; the right half is split
	// between physical volumes on top and block devices below.
	contentHeight := m.height - 2
	leftWidth := m.width / 2
	rightWidth := m.width - leftWidth - 1
	topHeight := contentHeight / 2
	bottomHeight := contentHeight - topHeight

	left := NewRegion(leftWidth, contentHeight)
	m.renderVolumeGroupPanel(left)

	topRight := NewRegion(rightWidth, topHeight)
	m.renderPhysicalVolumePanel(topRight)

	bottomRight := NewRegion(rightWidth, bottomHeight)
	m.renderBlockDevicePanel(bottomRight)

	right := NewRegion(rightWidth, contentHeight)
	row := 0
	for _, line := range topRight.Lines() {
		right.WriteLine(row, line)
		row++
	}
	for _, line := range bottomRight.Lines() {
		right.WriteLine(row, line)
		row++
	}

	body := JoinHorizontal(left, right)
	return fmt.Sprintf("%s\n%s\n%s", header, body, footer)
}

func (m *Model) renderHeader() string {
	title := StyleTitle.Render(m.T("header.title"))

	status := m.provider.Status()
	var when string
	if status.LastUpdate.IsZero() {
		when = m.T("header.never")
	} else {
		when = m.TF("header.last_update", map[string]interface{}{
			"When": status.LastUpdate.Format("15:04:05"),
		})
	}

	extra := ""
	if m.topo != nil {
		if n := m.topo.SkippedRecords(); n > 0 {
			extra += "  " + StyleWarning.Render(m.TF("header.skipped", map[string]interface{}{"Count": n}))
		}
		if n := m.topo.UnresolvedCount(); n > 0 {
			extra += "  " + StyleWarning.Render(m.TF("header.unresolved", map[string]interface{}{"Count": n}))
		}
		extra += m.renderSourceWarnings()
	}

	line := fmt.Sprintf("%s  %s%s", title, StyleSubtitle.Render(when), extra)
	if m.statusLine != "" {
		line += "  " + StyleKey.Render(m.statusLine)
	}
	return truncate(line, m.width)
}

// renderSourceWarnings summarizes sources that could not be read.
func (m *Model) renderSourceWarnings() string {
	out := ""
	for _, src := range model.Sources {
		st := m.topo.Sources[src]
		switch {
		case st.Denied:
			out += "  " + StyleError.Render(m.TF("source.denied", map[string]interface{}{"Source": string(src)}))
		case st.Missing:
			out += "  " + StyleWarning.Render(m.TF("source.missing", map[string]interface{}{"Source": string(src)}))
		case !st.Available:
			out += "  " + StyleWarning.Render(m.TF("source.error", map[string]interface{}{"Source": string(src)}))
		}
	}
	return out
}

func (m *Model) renderFooter() string {
	return truncate(StyleKeyDesc.Render(m.T("ui.help")), m.width)
}

func (m *Model) fetchSnapshot() tea.Cmd {
	return func() tea.Msg {
		topo, ok := m.provider.Snapshot()
		if !ok {
			return snapshotMsg{}
		}
		return snapshotMsg{topo: topo}
	}
}

func (m *Model) forceRefresh() tea.Cmd {
	return func() tea.Msg {
		m.provider.RefreshNow()
		topo, _ := m.provider.Snapshot()
		return snapshotMsg{topo: topo}
	}
}

func (m *Model) copySelection() tea.Cmd {
	id := m.selectedID()
	if id == "" {
		return nil
	}
	return func() tea.Msg {
		if err := clipboard.WriteAll(id); err != nil {
			return statusLineMsg(m.TF("status.copy_failed", map[string]interface{}{"Error": err.Error()}))
		}
		return statusLineMsg(m.TF("status.copied", map[string]interface{}{"Text": id}))
	}
}

func (m *Model) scheduleTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return uiTickMsg{}
	})
}

// Messages
type snapshotMsg struct {
	topo *model.Topology
}

type uiTickMsg struct{}

type statusLineMsg string

type clearStatusMsg struct{}
