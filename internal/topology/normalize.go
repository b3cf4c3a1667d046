package topology

import (
	"strings"

	"github.com/yourusername/lvm-browser/internal/model"
)

// Identifier normalization for cross-tool joins. The inventory tools spell
// the same logical volume three ways: lvs reports "vg/lv", lsblk and df see
// the device-mapper node "/dev/mapper/vg-lv", and the kernel also exposes
// "/dev/vg/lv". All joins in the builder go through CanonicalPath so the
// matching policy lives in one testable place.

// CanonicalPath maps any spelling of a device path onto the /dev/<vg>/<lv>
// form for LVM nodes and leaves other paths untouched.
func CanonicalPath(path string) string {
	path = strings.TrimSpace(path)
	if name, ok := strings.CutPrefix(path, "/dev/mapper/"); ok {
		if vg, lv, ok := SplitMapperName(name); ok {
			return "/dev/" + vg + "/" + lv
		}
	}
	return path
}

// SplitMapperName splits a device-mapper node name into VG and LV parts.
// LVM doubles literal hyphens inside either name, so the separator is the
// first single hyphen that is not part of a doubled pair.
func SplitMapperName(name string) (vg, lv string, ok bool) {
	var b strings.Builder
	for i := 0; i < len(name); i++ {
		if name[i] != '-' {
			b.WriteByte(name[i])
			continue
		}
		if i+1 < len(name) && name[i+1] == '-' {
			b.WriteByte('-')
			i++
			continue
		}
		vg = b.String()
		lv = unescapeMapperName(name[i+1:])
		if vg == "" || lv == "" {
			return "", "", false
		}
		return vg, lv, true
	}
	return "", "", false
}

func unescapeMapperName(s string) string {
	return strings.ReplaceAll(s, "--", "-")
}

// LVPaths returns both path spellings under which a logical volume's device
// node may appear.
func LVPaths(vgName, lvName string) []string {
	return []string{
		"/dev/" + vgName + "/" + lvName,
		"/dev/mapper/" + escapeMapperName(vgName) + "-" + escapeMapperName(lvName),
	}
}

func escapeMapperName(s string) string {
	return strings.ReplaceAll(s, "-", "--")
}

// ParseSegmentDevices parses the lvs devices column, a comma-separated list
// of "/dev/sda1(0)" entries where the parenthesised number is the physical
// extent at which the stripe starts. Entries without the expected shape are
// kept with an unknown PE start rather than dropped; an empty list means
// the mapping is simply absent.
func ParseSegmentDevices(devices string) []model.SegmentStripe {
	var stripes []model.SegmentStripe
	for _, entry := range strings.Split(devices, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		open := strings.IndexByte(entry, '(')
		end := strings.IndexByte(entry, ')')
		if open <= 0 || end <= open {
			stripes = append(stripes, model.SegmentStripe{
				PVPath:  CanonicalPath(entry),
				PEStart: model.SizeUnknown,
			})
			continue
		}
		start, ok := model.ParseCount(entry[open+1 : end])
		if !ok {
			start = model.SizeUnknown
		}
		stripes = append(stripes, model.SegmentStripe{
			PVPath:  CanonicalPath(entry[:open]),
			PEStart: start,
		})
	}
	return stripes
}
