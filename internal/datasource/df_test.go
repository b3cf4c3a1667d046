package datasource

import "testing"

const dfSample = `Filesystem                    1K-blocks     Used    Avail Use% Mounted on
/dev/mapper/vg_data-lv_home    83886080 41943040 41943040  50% /home
/dev/sda2                      52428800 10485760 41943040  20% /mnt/backup disk
tmpfs                           8192000        0  8192000   0% /run
broken line
`

func TestParseDF(t *testing.T) {
	records, skipped := ParseDF([]byte(dfSample))
	if skipped != 1 {
		t.Errorf("skipped = %d, want 1", skipped)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}

	home := records[0]
	if home.Source != "/dev/mapper/vg_data-lv_home" || home.MountPoint != "/home" {
		t.Errorf("record = %+v", home)
	}
	// 1K blocks become bytes at parse time.
	if home.UsedBytes != 41943040*1024 || home.AvailBytes != 41943040*1024 {
		t.Errorf("used/avail = %d/%d", home.UsedBytes, home.AvailBytes)
	}

	// Mount points with spaces are reassembled from the tail fields.
	if records[1].MountPoint != "/mnt/backup disk" {
		t.Errorf("MountPoint = %q", records[1].MountPoint)
	}
}

func TestParseDFEmpty(t *testing.T) {
	if records, skipped := ParseDF(nil); records != nil || skipped != 0 {
		t.Errorf("ParseDF(nil) = %v, %d", records, skipped)
	}
	headerOnly := "Filesystem 1K-blocks Used Avail Use% Mounted on\n"
	if records, _ := ParseDF([]byte(headerOnly)); len(records) != 0 {
		t.Errorf("header-only input produced %d records", len(records))
	}
}
