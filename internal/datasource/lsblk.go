package datasource

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/yourusername/lvm-browser/internal/model"
)

// lsblk is invoked with -b -J so sizes arrive as exact byte counts and the
// device tree is machine-parsable JSON.
var lsblkArgs = []string{"-b", "-J", "-o", "NAME,PATH,TYPE,SIZE,FSTYPE,LABEL,MOUNTPOINT,PKNAME"}

type lsblkOutput struct {
	BlockDevices []lsblkDevice `json:"blockdevices"`
}

type lsblkDevice struct {
	Name       string        `json:"name"`
	Path       string        `json:"path"`
	Type       string        `json:"type"`
	Size       flexInt64     `json:"size"`
	FSType     string        `json:"fstype"`
	Label      string        `json:"label"`
	MountPoint string        `json:"mountpoint"`
	PKName     string        `json:"pkname"`
	Children   []lsblkDevice `json:"children,omitempty"`
}

// flexInt64 tolerates both JSON numbers and quoted numbers: older lsblk
// versions emit sizes as strings even with -b.
type flexInt64 int64

func (f *flexInt64) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		*f = flexInt64(model.SizeUnknown)
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		*f = flexInt64(model.SizeUnknown)
		return nil
	}
	*f = flexInt64(n)
	return nil
}

// ParseLsblk flattens the lsblk JSON device tree into records, depth first
// so partitions follow their disk. Devices without a path or name are
// skipped and counted; duplicate paths keep the first occurrence.
func ParseLsblk(raw []byte) ([]model.BlockDeviceRecord, int, error) {
	var out lsblkOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, 0, err
	}

	var records []model.BlockDeviceRecord
	seen := make(map[string]bool)
	skipped := 0

	var walk func(dev lsblkDevice, parent string)
	walk = func(dev lsblkDevice, parent string) {
		path := dev.Path
		if path == "" && dev.Name != "" {
			path = "/dev/" + dev.Name
		}
		if path == "" {
			skipped++
		} else if !seen[path] {
			seen[path] = true
			parentName := dev.PKName
			if parentName == "" {
				parentName = parent
			}
			records = append(records, model.BlockDeviceRecord{
				Name:       dev.Name,
				Path:       path,
				Kind:       dev.Type,
				Size:       int64(dev.Size),
				FSType:     dev.FSType,
				FSLabel:    dev.Label,
				MountPoint: dev.MountPoint,
				ParentName: parentName,
			})
		}
		for _, child := range dev.Children {
			walk(child, dev.Name)
		}
	}

	for _, dev := range out.BlockDevices {
		walk(dev, "")
	}
	return records, skipped, nil
}
