package datasource

import (
	"encoding/json"

	"github.com/yourusername/lvm-browser/internal/model"
)

// The LVM reporters are invoked with --units b --nosuffix so every size
// field is an exact byte count, and --reportformat json for a stable
// machine-parsable layout. Field sets are fixed; a report missing its
// section yields an empty record list, not an error.
var (
	pvsArgs = []string{"--reportformat", "json", "--units", "b", "--nosuffix",
		"-o", "pv_name,pv_size,pv_free,vg_name,pv_fmt"}
	vgsArgs = []string{"--reportformat", "json", "--units", "b", "--nosuffix",
		"-o", "vg_name,vg_size,vg_free,pv_count,lv_count,vg_attr,vg_extent_size"}
	lvsArgs = []string{"--reportformat", "json", "--units", "b", "--nosuffix",
		"-o", "vg_name,lv_name,lv_size,seg_size_pe,seg_start_pe,devices"}
)

type pvReport struct {
	Report []struct {
		PV []struct {
			PVName string `json:"pv_name"`
			PVSize string `json:"pv_size"`
			PVFree string `json:"pv_free"`
			VGName string `json:"vg_name"`
			PVFmt  string `json:"pv_fmt"`
		} `json:"pv"`
	} `json:"report"`
}

type vgReport struct {
	Report []struct {
		VG []struct {
			VGName       string `json:"vg_name"`
			VGSize       string `json:"vg_size"`
			VGFree       string `json:"vg_free"`
			PVCount      string `json:"pv_count"`
			LVCount      string `json:"lv_count"`
			VGAttr       string `json:"vg_attr"`
			VGExtentSize string `json:"vg_extent_size"`
		} `json:"vg"`
	} `json:"report"`
}

type lvReport struct {
	Report []struct {
		LV []struct {
			VGName     string `json:"vg_name"`
			LVName     string `json:"lv_name"`
			LVSize     string `json:"lv_size"`
			SegSizePE  string `json:"seg_size_pe"`
			SegStartPE string `json:"seg_start_pe"`
			Devices    string `json:"devices"`
		} `json:"lv"`
	} `json:"report"`
}

// ParsePVs converts pvs JSON output into PV records. Rows without a device
// path are skipped and counted; unparseable sizes become SizeUnknown.
func ParsePVs(raw []byte) ([]model.PVRecord, int, error) {
	var report pvReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, 0, err
	}

	var records []model.PVRecord
	skipped := 0
	for _, section := range report.Report {
		for _, pv := range section.PV {
			if pv.PVName == "" {
				skipped++
				continue
			}
			records = append(records, model.PVRecord{
				Path:   pv.PVName,
				VGName: pv.VGName,
				Size:   model.ParseBytes(pv.PVSize),
				Free:   model.ParseBytes(pv.PVFree),
				Format: pv.PVFmt,
			})
		}
	}
	return records, skipped, nil
}

// ParseVGs converts vgs JSON output into VG records.
func ParseVGs(raw []byte) ([]model.VGRecord, int, error) {
	var report vgReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, 0, err
	}

	var records []model.VGRecord
	skipped := 0
	for _, section := range report.Report {
		for _, vg := range section.VG {
			if vg.VGName == "" {
				skipped++
				continue
			}
			pvCount, _ := model.ParseCount(vg.PVCount)
			lvCount, _ := model.ParseCount(vg.LVCount)
			records = append(records, model.VGRecord{
				Name:       vg.VGName,
				Attr:       vg.VGAttr,
				ExtentSize: model.ParseBytes(vg.VGExtentSize),
				Size:       model.ParseBytes(vg.VGSize),
				Free:       model.ParseBytes(vg.VGFree),
				PVCount:    int(pvCount),
				LVCount:    int(lvCount),
			})
		}
	}
	return records, skipped, nil
}

// ParseLVs converts lvs JSON output into LV records, one per segment row.
// Rows missing both names are skipped; missing segment fields are kept as
// SizeUnknown because the devices string may still carry the mapping.
func ParseLVs(raw []byte) ([]model.LVRecord, int, error) {
	var report lvReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, 0, err
	}

	var records []model.LVRecord
	skipped := 0
	for _, section := range report.Report {
		for _, lv := range section.LV {
			if lv.LVName == "" || lv.VGName == "" {
				skipped++
				continue
			}
			segStart := int64(model.SizeUnknown)
			if n, ok := model.ParseCount(lv.SegStartPE); ok {
				segStart = n
			}
			segSize := int64(model.SizeUnknown)
			if n, ok := model.ParseCount(lv.SegSizePE); ok {
				segSize = n
			}
			records = append(records, model.LVRecord{
				Name:       lv.LVName,
				VGName:     lv.VGName,
				Size:       model.ParseBytes(lv.LVSize),
				SegStartPE: segStart,
				SegSizePE:  segSize,
				Devices:    lv.Devices,
			})
		}
	}
	return records, skipped, nil
}
