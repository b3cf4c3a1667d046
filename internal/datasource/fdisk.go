package datasource

import (
	"regexp"
	"strings"

	"github.com/yourusername/lvm-browser/internal/model"
)

// fdisk -l has no machine-readable mode; the parser keys on the stable
// "Disk /dev/...:" section headers and the partition table that follows a
// "Device ... Start ... End" header line.
var fdiskArgs = []string{"-l"}

var diskHeaderRe = regexp.MustCompile(`^Disk (/[^:]+):`)

// ParseFdisk extracts per-disk model and label information from fdisk -l
// output, plus id/type columns for DOS partition tables. Lines that do not
// match any expected shape inside a partition table are counted as skipped.
func ParseFdisk(raw []byte) ([]model.DiskInfoRecord, int) {
	var (
		records []model.DiskInfoRecord
		current *model.DiskInfoRecord
		inTable bool
		skipped int
	)

	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)

		if m := diskHeaderRe.FindStringSubmatch(line); m != nil {
			records = append(records, model.DiskInfoRecord{
				Path:       m[1],
				Partitions: make(map[string]model.PartitionInfo),
			})
			current = &records[len(records)-1]
			inTable = false
			continue
		}
		if current == nil {
			continue
		}

		switch {
		case strings.Contains(line, "Disk model:"):
			current.Model = CleanDeviceInfo(strings.TrimSpace(strings.SplitN(line, "Disk model:", 2)[1]))

		case strings.Contains(line, "Disklabel type:"):
			current.LabelType = strings.TrimSpace(strings.SplitN(line, "Disklabel type:", 2)[1])

		case strings.HasPrefix(line, "Device") && strings.Contains(line, "Start") && strings.Contains(line, "End"):
			inTable = true

		// A blank line ends the partition table; the notes fdisk prints
		// after it are not partition rows.
		case line == "":
			inTable = false

		case inTable && !strings.HasPrefix(line, "Disk "):
			fields := strings.Fields(line)
			if len(fields) < 2 || !strings.HasPrefix(fields[0], current.Path) {
				skipped++
				continue
			}
			// Id and type columns only exist on DOS labels, where the
			// row is Device Boot Start End Sectors Size Id Type. The
			// boot flag column may be empty, shifting everything left.
			if current.LabelType == "dos" {
				cols := fields[1:]
				if cols[0] == "*" {
					cols = cols[1:]
				}
				info := model.PartitionInfo{}
				if len(cols) >= 5 {
					info.ID = cols[4]
				}
				if len(cols) >= 6 {
					info.TypeInfo = strings.Join(cols[5:], " ")
				}
				current.Partitions[fields[0]] = info
			} else {
				current.Partitions[fields[0]] = model.PartitionInfo{}
			}
		}
	}
	return records, skipped
}

// CleanDeviceInfo shortens verbose hardware description strings to fit the
// fixed-width panel columns.
func CleanDeviceInfo(text string) string {
	text = strings.ReplaceAll(text, "HARDDISK", "HDD")
	text = strings.ReplaceAll(text, "(iscsi)", "")
	text = strings.ReplaceAll(text, "Linux device-mapper (linear) (dm)", "LINUX Dev-map")
	return strings.TrimSpace(text)
}
