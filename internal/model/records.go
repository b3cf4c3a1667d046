package model

// Raw records produced by the per-tool parsers and consumed by the topology
// builder. Each mirrors one line (or one report row) of its tool's output;
// the builder owns all cross-referencing.

// BlockDeviceRecord is one device from the flattened lsblk -J tree.
type BlockDeviceRecord struct {
	Name       string
	Path       string
	Kind       string
	Size       int64
	FSType     string
	FSLabel    string
	MountPoint string
	ParentName string // lsblk pkname
}

// PVRecord is one pvs report row.
type PVRecord struct {
	Path   string
	VGName string
	Size   int64
	Free   int64
	Format string
}

// VGRecord is one vgs report row.
type VGRecord struct {
	Name       string
	Attr       string
	ExtentSize int64
	Size       int64
	Free       int64
	PVCount    int
	LVCount    int
}

// LVRecord is one lvs report row. lvs emits one row per segment, so several
// records may describe the same logical volume.
type LVRecord struct {
	Name       string
	VGName     string
	Size       int64
	SegStartPE int64 // SizeUnknown when the field was absent
	SegSizePE  int64
	Devices    string // raw "/dev/sda1(0),/dev/sdb1(0)" mapping string
}

// PartitionInfo is per-partition detail from a fdisk -l DOS label table.
type PartitionInfo struct {
	ID       string
	TypeInfo string
}

// DiskInfoRecord is one disk section of fdisk -l output.
type DiskInfoRecord struct {
	Path       string
	Model      string
	LabelType  string
	Partitions map[string]PartitionInfo
}

// PartedPartInfo is per-partition detail from parted -l.
type PartedPartInfo struct {
	Type  string
	FS    string
	Flags string
}

// PartedDiskRecord is one disk section of parted -l output.
type PartedDiskRecord struct {
	Path       string
	Model      string
	TableType  string
	Partitions map[string]PartedPartInfo
}

// MountRecord is one df row: filesystem usage for a mounted source device.
type MountRecord struct {
	Source     string
	MountPoint string
	UsedBytes  int64
	AvailBytes int64
}

// RecordSet is the complete parsed batch handed to the topology builder.
// Absent sources leave their slice nil; the builder treats nil and empty
// alike.
type RecordSet struct {
	Devices     []BlockDeviceRecord
	PVs         []PVRecord
	VGs         []VGRecord
	LVs         []LVRecord
	FdiskDisks  []DiskInfoRecord
	PartedDisks []PartedDiskRecord
	Mounts      []MountRecord

	Sources map[Source]SourceStatus
}
