package model

import (
	"time"
)

// SizeUnknown marks a size that could not be determined from any source.
// Rendering code shows it as "N/A"; it never participates in arithmetic.
const SizeUnknown int64 = -1

// UnknownVGName is the synthetic group that collects LVs and PVs whose
// volume group reference could not be matched during the build.
const UnknownVGName = "(unknown)"

// BlockDevice is one row of the flattened lsblk tree, enriched with
// fdisk/parted label information and df mount usage.
type BlockDevice struct {
	Name       string // kernel name, e.g. sda1
	Path       string // /dev/sda1
	Kind       string // disk, part, lvm, loop, rom...
	Size       int64  // bytes
	FSType     string
	FSLabel    string
	MountPoint string
	UsedBytes  int64 // SizeUnknown when not mounted or not probed
	AvailBytes int64
	ParentPath string // owning disk for partitions, empty for whole disks

	// Disk-level label info (fdisk/parted)
	DiskModel     string
	DiskLabelType string // dos, gpt
	TableType     string // parted partition table type

	// Partition-level info
	PartClass    string // Disk, Pri, Extd, Logi
	PartTypeInfo string // fdisk type column
	PartFS       string // parted filesystem column
	PartFlags    string // parted flags column

	LVMMember bool
}

// PhysicalVolume is one pvs row joined against its block device and VG.
type PhysicalVolume struct {
	Path         string // device path as reported by pvs
	VGName       string
	Size         int64
	Free         int64
	Format       string
	LVCount      int  // logical volumes with at least one segment on this PV
	VGUnresolved bool // VGName references no known volume group
}

// VolumeGroup aggregates its member PVs and LVs by identifier. The group
// owns the membership lists, not the entities themselves.
type VolumeGroup struct {
	Name       string
	Format     string // vg_attr
	ExtentSize int64  // bytes per physical extent
	Size       int64
	Free       int64
	PVPaths    []string
	LVNames    []string
	Synthetic  bool // the UnknownVGName bucket
}

// SegmentStripe maps a segment onto one PV at a physical-extent offset.
type SegmentStripe struct {
	PVPath  string
	PEStart int64
}

// ExtentSegment is one contiguous allocation run inside a logical volume.
// Segments are ordered by LEStart and never overlap within one LV.
type ExtentSegment struct {
	LEStart int64
	LEEnd   int64 // inclusive, >= LEStart
	PECount int64
	PESize  int64 // PECount * VG extent size, SizeUnknown if extent size unknown
	Stripes []SegmentStripe
}

// LogicalVolume is the ordered concatenation of its extent segments.
type LogicalVolume struct {
	Name         string
	VGName       string
	Path         string // /dev/<vg>/<lv>
	Size         int64
	MountPoint   string
	UsedBytes    int64 // SizeUnknown when not mounted
	AvailBytes   int64
	Segments     []ExtentSegment
	VGUnresolved bool
}

// Source identifies one external inventory command.
type Source string

const (
	SourceLsblk  Source = "lsblk"
	SourceFdisk  Source = "fdisk"
	SourceParted Source = "parted"
	SourcePVs    Source = "pvs"
	SourceVGs    Source = "vgs"
	SourceLVs    Source = "lvs"
	SourceDF     Source = "df"
)

// Sources lists every inventory command in refresh order.
var Sources = []Source{
	SourceLsblk, SourceFdisk, SourceParted,
	SourcePVs, SourceVGs, SourceLVs, SourceDF,
}

// SourceStatus records whether a source contributed data to a snapshot.
type SourceStatus struct {
	Available bool
	Denied    bool   // command reported insufficient privilege
	Missing   bool   // command not installed
	Error     string // failure detail for the header line, empty when available
	Skipped   int    // malformed records dropped during parsing
}

// Topology is one immutable snapshot of the host storage graph. A refresh
// builds a complete new value and swaps the reference; nothing mutates a
// snapshot after Build returns it.
type Topology struct {
	Devices      []*BlockDevice
	VolumeGroups []*VolumeGroup // discovery order, synthetic group last
	PVs          []*PhysicalVolume
	LVs          []*LogicalVolume

	// Lookup indexes over the slices above. Read-only after build.
	DeviceByPath map[string]*BlockDevice
	VGByName     map[string]*VolumeGroup
	PVByPath     map[string]*PhysicalVolume
	LVsByVG      map[string][]*LogicalVolume

	Sources         map[Source]SourceStatus
	DroppedSegments int // segments excluded for a zero physical-extent count
	BuiltAt         time.Time
}

// VG returns the volume group by name, or nil.
func (t *Topology) VG(name string) *VolumeGroup {
	if t == nil {
		return nil
	}
	return t.VGByName[name]
}

// SkippedRecords sums the per-source malformed-record counts.
func (t *Topology) SkippedRecords() int {
	if t == nil {
		return 0
	}
	total := t.DroppedSegments
	for _, st := range t.Sources {
		total += st.Skipped
	}
	return total
}

// UnresolvedCount reports how many entities carry a dangling VG reference.
func (t *Topology) UnresolvedCount() int {
	if t == nil {
		return 0
	}
	n := 0
	for _, pv := range t.PVs {
		if pv.VGUnresolved {
			n++
		}
	}
	for _, lv := range t.LVs {
		if lv.VGUnresolved {
			n++
		}
	}
	return n
}
