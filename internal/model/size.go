package model

import (
	"strconv"
	"strings"
)

// Size parsing for the loosely formatted figures that fdisk, parted and df
// emit. LVM reporters are invoked with --units b --nosuffix and lsblk with
// -b, so their sizes arrive as exact byte counts and go through ParseBytes.
//
// Suffixes are normalized to the binary base: K = KiB = 1024 bytes, and so
// on up through PiB. parted's decimal suffixes (kB, MB, GB) are honoured as
// powers of ten.

var binarySuffixes = map[string]int64{
	"B":   1,
	"K":   1 << 10,
	"KIB": 1 << 10,
	"M":   1 << 20,
	"MIB": 1 << 20,
	"G":   1 << 30,
	"GIB": 1 << 30,
	"T":   1 << 40,
	"TIB": 1 << 40,
	"P":   1 << 50,
	"PIB": 1 << 50,
}

var decimalSuffixes = map[string]int64{
	"KB": 1e3,
	"MB": 1e6,
	"GB": 1e9,
	"TB": 1e12,
	"PB": 1e15,
}

// ParseBytes parses an exact byte count. Returns SizeUnknown for anything
// that is not a plain non-negative integer.
func ParseBytes(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return SizeUnknown
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return SizeUnknown
	}
	return n
}

// ParseSize parses a human-formatted size such as "465.8G", "512 MiB" or
// "1000204886016". Unparseable input yields SizeUnknown rather than an
// error: a bad size in one record must not abort the batch.
func ParseSize(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return SizeUnknown
	}

	// Locale tolerance: LVM and fdisk may emit a decimal comma.
	s = strings.ReplaceAll(s, ",", ".")

	i := 0
	for i < len(s) && (s[i] >= '0' && s[i] <= '9' || s[i] == '.') {
		i++
	}
	if i == 0 {
		return SizeUnknown
	}

	value, err := strconv.ParseFloat(s[:i], 64)
	if err != nil || value < 0 {
		return SizeUnknown
	}

	suffix := strings.ToUpper(strings.TrimSpace(s[i:]))
	if suffix == "" {
		return int64(value)
	}
	if mult, ok := decimalSuffixes[suffix]; ok {
		return int64(value * float64(mult))
	}
	if mult, ok := binarySuffixes[suffix]; ok {
		return int64(value * float64(mult))
	}
	return SizeUnknown
}

// ParseCount parses a non-negative integer field such as pv_count,
// tolerating the float formatting some LVM versions use ("2.00").
func ParseCount(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil && n >= 0 {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return 0, false
	}
	return int64(f), true
}
