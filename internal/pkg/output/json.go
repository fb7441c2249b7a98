// Copyright (c) Microsoft Corporation.
// Licensed under the MIT License.

package output

import (
	"encoding/json"
	"fmt"

	"lvm2-cmd/internal/pkg/lvm"
	"lvm2-cmd/internal/pkg/version"
)

// JSONFormatter renders records as indented JSON using lvm's report field
// names.
type JSONFormatter struct{}

func (f *JSONFormatter) FormatLogicalVolume(lv *lvm.LogicalVolume) (string, error) {
	return marshalJSON(lv, "logical volume")
}

func (f *JSONFormatter) FormatLogicalVolumeList(lvs []lvm.LogicalVolume) (string, error) {
	if lvs == nil {
		lvs = []lvm.LogicalVolume{}
	}
	return marshalJSON(lvs, "logical volume list")
}

func (f *JSONFormatter) FormatVolumeGroup(vg *lvm.VolumeGroup) (string, error) {
	return marshalJSON(vg, "volume group")
}

func (f *JSONFormatter) FormatVolumeGroupList(vgs []lvm.VolumeGroup) (string, error) {
	if vgs == nil {
		vgs = []lvm.VolumeGroup{}
	}
	return marshalJSON(vgs, "volume group list")
}

func (f *JSONFormatter) FormatVersion(info version.Info) (string, error) {
	return marshalJSON(info, "version")
}

func marshalJSON(v any, what string) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s to JSON: %w", what, err)
	}
	return string(data) + "\n", nil
}
