package datasource

import (
	"regexp"
	"strings"

	"github.com/yourusername/lvm-browser/internal/model"
)

var partedArgs = []string{"-l"}

var partedRowRe = regexp.MustCompile(`^\d+\s`)

// ParseParted extracts model, partition table type and per-partition
// filesystem/flag columns from parted -l output. parted is the preferred
// source for GPT disks, where fdisk carries no type column.
func ParseParted(raw []byte) ([]model.PartedDiskRecord, int) {
	var (
		records      []model.PartedDiskRecord
		current      *model.PartedDiskRecord
		pendingModel string
		inTable      bool
		skipped      int
	)

	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)

		// parted prints Model: ahead of its Disk header, so the model
		// is held until the header opens the record.
		if strings.HasPrefix(line, "Model:") {
			pendingModel = CleanDeviceInfo(strings.TrimSpace(strings.TrimPrefix(line, "Model:")))
			continue
		}

		if m := diskHeaderRe.FindStringSubmatch(line); m != nil {
			records = append(records, model.PartedDiskRecord{
				Path:       m[1],
				Model:      pendingModel,
				Partitions: make(map[string]model.PartedPartInfo),
			})
			current = &records[len(records)-1]
			pendingModel = ""
			inTable = false
			continue
		}
		if current == nil {
			continue
		}

		switch {
		case strings.Contains(line, "Partition Table:"):
			current.TableType = strings.TrimSpace(strings.SplitN(line, "Partition Table:", 2)[1])

		case strings.HasPrefix(line, "Number") && strings.Contains(line, "Start") && strings.Contains(line, "End"):
			inTable = true

		case inTable && partedRowRe.MatchString(line):
			// Number Start End Size [File system] [Name] [Flags]
			fields := strings.Fields(line)
			if len(fields) < 4 {
				skipped++
				continue
			}
			partPath := partitionPath(current.Path, fields[0])
			info := model.PartedPartInfo{}
			if len(fields) > 4 {
				info.Type = fields[4]
			}
			if len(fields) >= 2 {
				info.FS = CleanDeviceInfo(fields[len(fields)-2])
				info.Flags = CleanDeviceInfo(fields[len(fields)-1])
			}
			current.Partitions[partPath] = info
		}
	}
	return records, skipped
}

// partitionPath appends a partition number to a disk path the way the
// kernel names it: nvme and mmcblk disks take a "p" separator.
func partitionPath(disk, number string) string {
	base := disk[strings.LastIndexByte(disk, '/')+1:]
	if len(base) > 0 && base[len(base)-1] >= '0' && base[len(base)-1] <= '9' {
		return disk + "p" + number
	}
	return disk + number
}
