// Copyright (c) Microsoft Corporation.
// Licensed under the MIT License.

// Package output renders lvm records for the command line.
package output

import (
	"fmt"

	"lvm2-cmd/internal/pkg/lvm"
	"lvm2-cmd/internal/pkg/version"
)

// Format is an output format name.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Formatter renders logical volumes, volume groups and version info.
type Formatter interface {
	FormatLogicalVolume(lv *lvm.LogicalVolume) (string, error)
	FormatLogicalVolumeList(lvs []lvm.LogicalVolume) (string, error)
	FormatVolumeGroup(vg *lvm.VolumeGroup) (string, error)
	FormatVolumeGroupList(vgs []lvm.VolumeGroup) (string, error)
	FormatVersion(info version.Info) (string, error)
}

// Options configures a Formatter.
type Options struct {
	Format    Format
	NoHeaders bool
}

// NewFormatter returns the Formatter for opts.Format. An empty format means
// table.
func NewFormatter(opts Options) (Formatter, error) {
	switch opts.Format {
	case FormatTable, "":
		return &TableFormatter{NoHeaders: opts.NoHeaders}, nil
	case FormatJSON:
		return &JSONFormatter{}, nil
	case FormatYAML:
		return &YAMLFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (want one of table, json, yaml)", opts.Format)
	}
}

// ValidateFormat returns an error if format is not known.
func ValidateFormat(format string) error {
	_, err := NewFormatter(Options{Format: Format(format)})
	return err
}
