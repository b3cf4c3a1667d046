package ui

import (
	"fmt"
	"strings"

	"github.com/yourusername/lvm-browser/internal/model"
)

// visibleRows returns how many list rows a panel can show with the
// current terminal geometry.
func (m *Model) visibleRows(p PanelID) int {
	contentHeight := m.height - 2
	if contentHeight < 1 {
		return 1
	}
	var rows int
	switch p {
	case PanelVolumeGroups:
		rows = vgListRows(contentHeight)
	case PanelPhysicalVolumes:
		rows = contentHeight/2 - 2
	case PanelBlockDevices:
		rows = (contentHeight - contentHeight/2) - 2
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

// vgListRows reserves roughly a third of the left panel for the group
// list, leaving the rest for the selected group's detail.
func vgListRows(contentHeight int) int {
	rows := contentHeight / 3
	if rows < 3 {
		rows = 3
	}
	return rows
}

func (m *Model) panelTitle(p PanelID, title string) string {
	if m.nav.Focused() == p {
		return StylePanelFocused.Render("▸ " + title)
	}
	return StylePanelBlurred.Render("  " + title)
}

// emptyNotice explains why a panel has nothing to show: a failed backing
// source gets its denied/missing/error message, an empty host gets the
// plain no-data label. Without this a permission-denied pvs would look
// identical to a machine with no physical volumes.
func (m *Model) emptyNotice(sources ...model.Source) string {
	if m.topo != nil {
		for _, src := range sources {
			st, ok := m.topo.Sources[src]
			if !ok {
				continue
			}
			data := map[string]interface{}{"Source": string(src)}
			switch {
			case st.Denied:
				return StyleError.Render(m.TF("source.denied", data))
			case st.Missing:
				return StyleWarning.Render(m.TF("source.missing", data))
			case !st.Available:
				return StyleWarning.Render(m.TF("source.error", data))
			}
		}
	}
	return StyleTextMuted.Render(m.T("ui.no_data"))
}

func (m *Model) renderVolumeGroupPanel(r *Region) {
	r.WriteLine(0, m.panelTitle(PanelVolumeGroups, m.T("panel.volume_groups")))

	if m.topo == nil || len(m.topo.VolumeGroups) == 0 {
		r.WriteLine(1, "  "+m.emptyNotice(model.SourceVGs, model.SourceLVs))
		return
	}

	listRows := vgListRows(r.Height())
	scroll := m.nav.Scroll(PanelVolumeGroups)
	selected := m.nav.Selected(PanelVolumeGroups)

	row := 1
	for i := scroll; i < len(m.topo.VolumeGroups) && row <= listRows; i++ {
		vg := m.topo.VolumeGroups[i]
		line := fmt.Sprintf("  %s %s %s",
			padRight(truncate(vg.Name, 20), 20),
			padRight(FormatSize(vg.Size), 10),
			FormatSize(vg.Free))
		if i == selected {
			line = StyleSelected.Render(truncate(line, r.Width()))
		}
		r.WriteLine(row, line)
		row++
	}

	row = listRows + 1
	r.WriteLine(row, StyleTextMuted.Render(renderSeparator(r.Width())))
	row++

	if selected >= len(m.topo.VolumeGroups) {
		return
	}
	vg := m.topo.VolumeGroups[selected]
	m.renderVolumeGroupDetail(r, row, vg)
}

// renderVolumeGroupDetail fills the lower part of the left panel with the
// selected group's attributes, its logical volumes and their segment
// tables. The region clips anything that does not fit.
func (m *Model) renderVolumeGroupDetail(r *Region, row int, vg *model.VolumeGroup) {
	r.WriteLine(row, fmt.Sprintf("  %s: %s  %s: %s  %s: %d  %s: %d",
		m.T("vg.format"), vg.Format,
		m.T("vg.extent_size"), FormatSize(vg.ExtentSize),
		m.T("vg.pv_count"), len(vg.PVPaths),
		m.T("vg.lv_count"), len(vg.LVNames)))
	row++

	lvs := m.topo.LVsByVG[vg.Name]
	for _, lv := range lvs {
		line := fmt.Sprintf("  %s  %s", truncate(lv.Name, 24), FormatSize(lv.Size))
		if lv.MountPoint != "" {
			line += "  " + lv.MountPoint
		}
		r.WriteLine(row, StyleHeader.Render(truncate(line, r.Width())))
		row++

		if len(lv.Segments) == 0 {
			continue
		}
		r.WriteLine(row, StyleTextMuted.Render(fmt.Sprintf("    %s %s %s %s %s %s",
			padRight(m.T("col.le_start"), 9),
			padRight(m.T("col.le_end"), 9),
			padRight(m.T("col.pe_count"), 9),
			padRight(m.T("col.pe_size"), 10),
			padRight(m.T("col.pvs"), 16),
			m.T("col.pe_start"))))
		row++
		for _, seg := range lv.Segments {
			r.WriteLine(row, fmt.Sprintf("    %s %s %s %s %s %s",
				padRight(FormatExtents(seg.LEStart), 9),
				padRight(FormatExtents(seg.LEEnd), 9),
				padRight(FormatExtents(seg.PECount), 9),
				padRight(FormatSize(seg.PESize), 10),
				padRight(truncate(stripeDevices(seg.Stripes), 16), 16),
				stripeStarts(seg.Stripes)))
			row++
		}
	}
}

func stripeDevices(stripes []model.SegmentStripe) string {
	parts := make([]string, 0, len(stripes))
	for _, s := range stripes {
		parts = append(parts, s.PVPath)
	}
	return strings.Join(parts, ",")
}

func stripeStarts(stripes []model.SegmentStripe) string {
	parts := make([]string, 0, len(stripes))
	for _, s := range stripes {
		parts = append(parts, FormatExtents(s.PEStart))
	}
	return strings.Join(parts, ",")
}

func (m *Model) renderPhysicalVolumePanel(r *Region) {
	r.WriteLine(0, m.panelTitle(PanelPhysicalVolumes, m.T("panel.physical_volumes")))

	if m.topo == nil || len(m.topo.PVs) == 0 {
		r.WriteLine(1, "  "+m.emptyNotice(model.SourcePVs))
		return
	}

	r.WriteLine(1, StyleTextMuted.Render(fmt.Sprintf("  %s %s %s %s %s",
		padRight(m.T("col.blockdev"), 18),
		padRight("VG", 14),
		padRight(m.T("col.size"), 10),
		padRight(m.T("col.free"), 10),
		m.T("col.lv_count"))))

	scroll := m.nav.Scroll(PanelPhysicalVolumes)
	selected := m.nav.Selected(PanelPhysicalVolumes)
	rows := m.visibleRows(PanelPhysicalVolumes)

	row := 2
	for i := scroll; i < len(m.topo.PVs) && row < 2+rows; i++ {
		pv := m.topo.PVs[i]
		vgName := pv.VGName
		if pv.VGUnresolved {
			vgName = StyleWarning.Render(vgName)
		}
		line := fmt.Sprintf("  %s %s %s %s %d",
			padRight(truncate(pv.Path, 18), 18),
			padRight(truncate(vgName, 14), 14),
			padRight(FormatSize(pv.Size), 10),
			padRight(FormatSize(pv.Free), 10),
			pv.LVCount)
		if i == selected {
			line = StyleSelected.Render(truncate(line, r.Width()))
		}
		r.WriteLine(row, line)
		row++
	}
}

func (m *Model) renderBlockDevicePanel(r *Region) {
	r.WriteLine(0, m.panelTitle(PanelBlockDevices, m.T("panel.block_devices")))

	if m.topo == nil || len(m.topo.Devices) == 0 {
		r.WriteLine(1, "  "+m.emptyNotice(model.SourceLsblk))
		return
	}

	r.WriteLine(1, StyleTextMuted.Render(fmt.Sprintf("  %s %s %s %s %s %s",
		padRight(m.T("col.device"), 16),
		padRight(m.T("col.size"), 10),
		padRight(m.T("col.part"), 5),
		padRight(m.T("col.type"), 12),
		padRight(m.T("col.fsinfo"), 16),
		m.T("col.flags"))))

	scroll := m.nav.Scroll(PanelBlockDevices)
	selected := m.nav.Selected(PanelBlockDevices)
	rows := m.visibleRows(PanelBlockDevices)

	row := 2
	for i := scroll; i < len(m.topo.Devices) && row < 2+rows; i++ {
		dev := m.topo.Devices[i]
		line := fmt.Sprintf("  %s %s %s %s %s %s",
			padRight(truncate(dev.Path, 16), 16),
			padRight(FormatSize(dev.Size), 10),
			padRight(dev.PartClass, 5),
			padRight(truncate(deviceType(dev), 12), 12),
			padRight(truncate(deviceFSInfo(dev), 16), 16),
			dev.PartFlags)
		if i == selected {
			line = StyleSelected.Render(truncate(line, r.Width()))
		}
		r.WriteLine(row, line)
		row++
	}
}

// deviceType describes what a device is: partition type info when known,
// otherwise the lsblk kind.
func deviceType(dev *model.BlockDevice) string {
	if dev.PartTypeInfo != "" {
		return dev.PartTypeInfo
	}
	if dev.Kind == "lvm" {
		return "LVM"
	}
	return dev.Kind
}

// deviceFSInfo combines filesystem and mount information for a device.
func deviceFSInfo(dev *model.BlockDevice) string {
	fs := dev.FSType
	if fs == "" {
		fs = dev.PartFS
	}
	if dev.LVMMember {
		fs = "LVM2 member"
	}
	if dev.MountPoint != "" {
		if fs != "" {
			return fs + " " + dev.MountPoint
		}
		return dev.MountPoint
	}
	return fs
}
