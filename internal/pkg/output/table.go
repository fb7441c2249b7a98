// Copyright (c) Microsoft Corporation.
// Licensed under the MIT License.

package output

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"

	"lvm2-cmd/internal/pkg/convert"
	"lvm2-cmd/internal/pkg/lvm"
	"lvm2-cmd/internal/pkg/version"
)

// TableFormatter renders records as aligned columns.
type TableFormatter struct {
	// NoHeaders omits the header row.
	NoHeaders bool
}

func (f *TableFormatter) FormatLogicalVolume(lv *lvm.LogicalVolume) (string, error) {
	return f.FormatLogicalVolumeList([]lvm.LogicalVolume{*lv})
}

func (f *TableFormatter) FormatLogicalVolumeList(lvs []lvm.LogicalVolume) (string, error) {
	if len(lvs) == 0 {
		return "No logical volumes found\n", nil
	}

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	if !f.NoHeaders {
		_, _ = fmt.Fprintln(w, "VG\tNAME\tSIZE\tATTR\tACTIVE\tOPEN\tTAGS")
	}
	for _, lv := range lvs {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			lv.VolumeGroupName,
			lv.Name,
			convert.FormatCapacity(lv.Capacity),
			lv.Attributes,
			yesNo(lv.Attributes.IsActive()),
			yesNo(lv.Attributes.IsOpen()),
			dashIfEmpty(strings.Join(lv.Tags, ",")),
		)
	}
	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush table: %w", err)
	}
	return buf.String(), nil
}

func (f *TableFormatter) FormatVolumeGroup(vg *lvm.VolumeGroup) (string, error) {
	return f.FormatVolumeGroupList([]lvm.VolumeGroup{*vg})
}

func (f *TableFormatter) FormatVolumeGroupList(vgs []lvm.VolumeGroup) (string, error) {
	if len(vgs) == 0 {
		return "No volume groups found\n", nil
	}

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	if !f.NoHeaders {
		_, _ = fmt.Fprintln(w, "NAME\tSIZE\tFREE\t#LV\t#PV\tATTR")
	}
	for _, vg := range vgs {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
			vg.Name,
			convert.FormatCapacity(vg.Capacity),
			convert.FormatCapacity(vg.Free),
			int(vg.LVCount),
			int(vg.PVCount),
			vg.Attributes,
		)
	}
	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush table: %w", err)
	}
	return buf.String(), nil
}

func (f *TableFormatter) FormatVersion(info version.Info) (string, error) {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{"Version:", info.Version},
		{"Git commit:", info.GitCommit},
		{"Build date:", info.BuildDate},
		{"Go version:", info.GoVersion},
		{"Platform:", info.Platform},
	}
	if info.LVMVersion != "" {
		rows = append(rows, [2]string{"LVM version:", info.LVMVersion})
	}
	for _, r := range rows {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", r[0], r[1])
	}
	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush table: %w", err)
	}
	return buf.String(), nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func dashIfEmpty(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
