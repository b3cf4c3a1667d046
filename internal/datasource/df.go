package datasource

import (
	"strings"

	"github.com/yourusername/lvm-browser/internal/model"
)

// df reports in 1K blocks with --output; used/avail are converted to bytes
// at parse time so the rest of the program sees one unit system.
var dfArgs = []string{"--output=source,size,used,avail,pcent,target"}

// ParseDF converts df output into mount records, skipping the header line
// and any row that does not carry the expected six columns. Mount points
// containing spaces are reassembled from the trailing fields.
func ParseDF(raw []byte) ([]model.MountRecord, int) {
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) < 2 {
		return nil, 0
	}

	var records []model.MountRecord
	skipped := 0
	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		if len(fields) < 6 {
			skipped++
			continue
		}
		used := model.ParseBytes(fields[2])
		avail := model.ParseBytes(fields[3])
		if used != model.SizeUnknown {
			used *= 1024
		}
		if avail != model.SizeUnknown {
			avail *= 1024
		}
		records = append(records, model.MountRecord{
			Source:     fields[0],
			MountPoint: strings.Join(fields[5:], " "),
			UsedBytes:  used,
			AvailBytes: avail,
		})
	}
	return records, skipped
}
