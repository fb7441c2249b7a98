// Copyright (c) Microsoft Corporation.
// Licensed under the MIT License.

package output

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"lvm2-cmd/internal/pkg/lvm"
	"lvm2-cmd/internal/pkg/version"
)

// YAMLFormatter renders records as YAML. Lists are written as a stream of
// documents.
type YAMLFormatter struct{}

func (f *YAMLFormatter) FormatLogicalVolume(lv *lvm.LogicalVolume) (string, error) {
	return marshalYAML(lv, "logical volume")
}

func (f *YAMLFormatter) FormatLogicalVolumeList(lvs []lvm.LogicalVolume) (string, error) {
	docs := make([]any, len(lvs))
	for i := range lvs {
		docs[i] = &lvs[i]
	}
	return marshalYAMLStream(docs, "logical volume")
}

func (f *YAMLFormatter) FormatVolumeGroup(vg *lvm.VolumeGroup) (string, error) {
	return marshalYAML(vg, "volume group")
}

func (f *YAMLFormatter) FormatVolumeGroupList(vgs []lvm.VolumeGroup) (string, error) {
	docs := make([]any, len(vgs))
	for i := range vgs {
		docs[i] = &vgs[i]
	}
	return marshalYAMLStream(docs, "volume group")
}

func (f *YAMLFormatter) FormatVersion(info version.Info) (string, error) {
	return marshalYAML(info, "version")
}

func marshalYAML(v any, what string) (string, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s to YAML: %w", what, err)
	}
	return string(data), nil
}

func marshalYAMLStream(docs []any, what string) (string, error) {
	var sb strings.Builder
	for i, d := range docs {
		if i > 0 {
			sb.WriteString("---\n")
		}
		s, err := marshalYAML(d, what)
		if err != nil {
			return "", err
		}
		sb.WriteString(s)
	}
	return sb.String(), nil
}
