package topology

import (
	"sort"
	"strings"
	"time"

	"github.com/yourusername/lvm-browser/internal/model"
	"go.uber.org/zap"
)

// Build joins one parsed record batch into an immutable topology snapshot.
// It is a pure in-memory join: no I/O, no clock beyond the BuiltAt stamp,
// and the input set is not retained. Dangling cross-references keep the
// entity and mark it unresolved; they are never dropped. vgs is the
// authoritative source for every VG-level figure (size, free, extent
// size) — per-PV free space from pvs is never aggregated into a VG.
func Build(set *model.RecordSet, logger *zap.Logger) *model.Topology {
	t := &model.Topology{
		DeviceByPath: make(map[string]*model.BlockDevice),
		VGByName:     make(map[string]*model.VolumeGroup),
		PVByPath:     make(map[string]*model.PhysicalVolume),
		LVsByVG:      make(map[string][]*model.LogicalVolume),
		Sources:      make(map[model.Source]model.SourceStatus),
		BuiltAt:      time.Now(),
	}
	for src, status := range set.Sources {
		t.Sources[src] = status
	}

	buildDevices(t, set)
	buildVolumeGroups(t, set)
	buildPhysicalVolumes(t, set, logger)
	dropped := buildLogicalVolumes(t, set, logger)
	t.DroppedSegments = dropped

	attachMounts(t, set)
	countPVUsage(t)

	if logger != nil {
		logger.Debug("topology built",
			zap.Int("devices", len(t.Devices)),
			zap.Int("vgs", len(t.VolumeGroups)),
			zap.Int("pvs", len(t.PVs)),
			zap.Int("lvs", len(t.LVs)),
			zap.Int("dropped_segments", dropped),
			zap.Int("unresolved", t.UnresolvedCount()),
		)
	}
	return t
}

func buildDevices(t *model.Topology, set *model.RecordSet) {
	fdiskByDisk := make(map[string]model.DiskInfoRecord, len(set.FdiskDisks))
	for _, rec := range set.FdiskDisks {
		fdiskByDisk[rec.Path] = rec
	}
	partedByDisk := make(map[string]model.PartedDiskRecord, len(set.PartedDisks))
	for _, rec := range set.PartedDisks {
		partedByDisk[rec.Path] = rec
	}

	for _, rec := range set.Devices {
		dev := &model.BlockDevice{
			Name:       rec.Name,
			Path:       rec.Path,
			Kind:       rec.Kind,
			Size:       rec.Size,
			FSType:     rec.FSType,
			FSLabel:    rec.FSLabel,
			MountPoint: rec.MountPoint,
			UsedBytes:  model.SizeUnknown,
			AvailBytes: model.SizeUnknown,
			LVMMember:  strings.EqualFold(rec.FSType, "LVM2_member"),
		}
		if rec.ParentName != "" {
			dev.ParentPath = "/dev/" + rec.ParentName
		}

		diskPath := dev.ParentPath
		if dev.Kind == "disk" {
			diskPath = dev.Path
		}
		var partedType string
		if fd, ok := fdiskByDisk[diskPath]; ok {
			if dev.Kind == "disk" {
				dev.DiskModel = fd.Model
				dev.DiskLabelType = fd.LabelType
			} else if part, ok := fd.Partitions[dev.Path]; ok {
				dev.PartTypeInfo = part.TypeInfo
			}
		}
		if pd, ok := partedByDisk[diskPath]; ok {
			if dev.Kind == "disk" {
				if dev.DiskModel == "" {
					dev.DiskModel = pd.Model
				}
				dev.TableType = pd.TableType
			} else if part, ok := pd.Partitions[dev.Path]; ok {
				dev.PartFS = part.FS
				dev.PartFlags = part.Flags
				partedType = part.Type
			}
		}
		dev.PartClass = partClass(dev.Kind, dev.PartTypeInfo, partedType)

		t.Devices = append(t.Devices, dev)
		t.DeviceByPath[CanonicalPath(dev.Path)] = dev
	}
}

// partClass condenses the partition classification into the four labels
// the block-device panel shows: Disk, Pri, Extd or Logi.
func partClass(kind, fdiskInfo, partedInfo string) string {
	if kind == "disk" {
		return "Disk"
	}
	if kind != "part" {
		return ""
	}
	info := strings.ToLower(fdiskInfo + " " + partedInfo)
	switch {
	case strings.Contains(info, "extended"):
		return "Extd"
	case strings.Contains(info, "logical"):
		return "Logi"
	default:
		return "Pri"
	}
}

func buildVolumeGroups(t *model.Topology, set *model.RecordSet) {
	for _, rec := range set.VGs {
		vg := &model.VolumeGroup{
			Name:       rec.Name,
			Format:     rec.Attr,
			ExtentSize: rec.ExtentSize,
			Size:       rec.Size,
			Free:       rec.Free,
		}
		t.VolumeGroups = append(t.VolumeGroups, vg)
		t.VGByName[vg.Name] = vg
	}
}

// unknownVG lazily creates the synthetic group that collects entities with
// a dangling VG reference, so they stay visible instead of vanishing.
func unknownVG(t *model.Topology) *model.VolumeGroup {
	if vg, ok := t.VGByName[model.UnknownVGName]; ok {
		return vg
	}
	vg := &model.VolumeGroup{
		Name:       model.UnknownVGName,
		ExtentSize: model.SizeUnknown,
		Size:       model.SizeUnknown,
		Free:       model.SizeUnknown,
		Synthetic:  true,
	}
	t.VolumeGroups = append(t.VolumeGroups, vg)
	t.VGByName[vg.Name] = vg
	return vg
}

func buildPhysicalVolumes(t *model.Topology, set *model.RecordSet, logger *zap.Logger) {
	for _, rec := range set.PVs {
		pv := &model.PhysicalVolume{
			Path:   rec.Path,
			VGName: rec.VGName,
			Size:   rec.Size,
			Free:   rec.Free,
			Format: rec.Format,
		}

		if rec.VGName == "" {
			pv.VGName = model.UnknownVGName
			pv.VGUnresolved = true
		} else if _, ok := t.VGByName[rec.VGName]; !ok {
			if logger != nil {
				logger.Warn("physical volume references unknown volume group",
					zap.String("pv", rec.Path),
					zap.String("vg", rec.VGName),
				)
			}
			pv.VGUnresolved = true
		}

		owner := t.VGByName[pv.VGName]
		if owner == nil {
			owner = unknownVG(t)
		}
		owner.PVPaths = append(owner.PVPaths, pv.Path)

		t.PVs = append(t.PVs, pv)
		t.PVByPath[CanonicalPath(pv.Path)] = pv
	}
}

// lvKey identifies a logical volume across its per-segment report rows.
type lvKey struct {
	vg string
	lv string
}

func buildLogicalVolumes(t *model.Topology, set *model.RecordSet, logger *zap.Logger) int {
	byKey := make(map[lvKey]*model.LogicalVolume)
	var order []lvKey
	dropped := 0

	for _, rec := range set.LVs {
		key := lvKey{vg: rec.VGName, lv: rec.Name}
		lv, ok := byKey[key]
		if !ok {
			lv = &model.LogicalVolume{
				Name:       rec.Name,
				VGName:     rec.VGName,
				Path:       "/dev/" + rec.VGName + "/" + rec.Name,
				Size:       rec.Size,
				UsedBytes:  model.SizeUnknown,
				AvailBytes: model.SizeUnknown,
			}
			if _, exists := t.VGByName[rec.VGName]; !exists {
				if logger != nil {
					logger.Warn("logical volume references unknown volume group",
						zap.String("lv", rec.Name),
						zap.String("vg", rec.VGName),
					)
				}
				lv.VGUnresolved = true
			}
			byKey[key] = lv
			order = append(order, key)
		}

		seg, ok := segmentFromRecord(rec, t)
		if !ok {
			dropped++
			continue
		}
		lv.Segments = append(lv.Segments, seg)
	}

	for _, key := range order {
		lv := byKey[key]
		sort.Slice(lv.Segments, func(i, j int) bool {
			return lv.Segments[i].LEStart < lv.Segments[j].LEStart
		})

		groupName := lv.VGName
		if lv.VGUnresolved {
			groupName = model.UnknownVGName
		}
		owner := t.VGByName[groupName]
		if owner == nil {
			owner = unknownVG(t)
		}
		owner.LVNames = append(owner.LVNames, lv.Name)

		t.LVs = append(t.LVs, lv)
		t.LVsByVG[groupName] = append(t.LVsByVG[groupName], lv)
	}
	return dropped
}

// segmentFromRecord derives one extent segment from an lvs row. A segment
// whose physical-extent count is zero (or unparseable with no mapping at
// all) is treated as malformed and excluded.
func segmentFromRecord(rec model.LVRecord, t *model.Topology) (model.ExtentSegment, bool) {
	stripes := ParseSegmentDevices(rec.Devices)

	start := rec.SegStartPE
	if start == model.SizeUnknown && len(stripes) > 0 {
		// Older reports omit seg_start_pe; fall back to the extent
		// offset embedded in the devices column.
		start = stripes[0].PEStart
	}
	count := rec.SegSizePE

	if count <= 0 {
		return model.ExtentSegment{}, false
	}
	if start == model.SizeUnknown {
		start = 0
	}

	seg := model.ExtentSegment{
		LEStart: start,
		LEEnd:   start + count - 1,
		PECount: count,
		PESize:  model.SizeUnknown,
		Stripes: stripes,
	}
	if vg, ok := t.VGByName[rec.VGName]; ok && vg.ExtentSize != model.SizeUnknown {
		seg.PESize = count * vg.ExtentSize
	}
	return seg, true
}

// attachMounts joins df usage onto devices and logical volumes, matching
// through canonical paths so /dev/mapper spellings line up.
func attachMounts(t *model.Topology, set *model.RecordSet) {
	bySource := make(map[string]model.MountRecord, len(set.Mounts))
	for _, rec := range set.Mounts {
		bySource[CanonicalPath(rec.Source)] = rec
	}

	for _, dev := range t.Devices {
		if rec, ok := bySource[CanonicalPath(dev.Path)]; ok {
			if dev.MountPoint == "" {
				dev.MountPoint = rec.MountPoint
			}
			dev.UsedBytes = rec.UsedBytes
			dev.AvailBytes = rec.AvailBytes
		}
	}

	for _, lv := range t.LVs {
		for _, path := range LVPaths(lv.VGName, lv.Name) {
			if rec, ok := bySource[CanonicalPath(path)]; ok {
				lv.MountPoint = rec.MountPoint
				lv.UsedBytes = rec.UsedBytes
				lv.AvailBytes = rec.AvailBytes
				break
			}
			if dev, ok := t.DeviceByPath[CanonicalPath(path)]; ok && dev.MountPoint != "" {
				lv.MountPoint = dev.MountPoint
				lv.UsedBytes = dev.UsedBytes
				lv.AvailBytes = dev.AvailBytes
				break
			}
		}
	}
}

// countPVUsage fills each PV's count of logical volumes with at least one
// stripe on it.
func countPVUsage(t *model.Topology) {
	counted := make(map[string]map[string]bool)
	for _, lv := range t.LVs {
		for _, seg := range lv.Segments {
			for _, stripe := range seg.Stripes {
				key := CanonicalPath(stripe.PVPath)
				if counted[key] == nil {
					counted[key] = make(map[string]bool)
				}
				counted[key][lv.VGName+"/"+lv.Name] = true
			}
		}
	}
	for _, pv := range t.PVs {
		pv.LVCount = len(counted[CanonicalPath(pv.Path)])
	}
}
