// Copyright (c) Microsoft Corporation.
// Licensed under the MIT License.

// Package lvm is a typed client for the lvm2 command line tools.
//
// Queries run the lvs and vgs reporting commands with JSON output and decode
// each record, including the positional lv_attr and vg_attr codes, into Go
// types. Only lvm2 format is supported.
package lvm

import (
	"context"
)

const (
	// SupportedFormat is the supported LVM format.
	SupportedFormat = "lvm2"
)

// Manager is an interface for managing LVM volume groups and logical volumes.
//
// Every call runs one lvm command. Nothing is cached: records returned are a
// snapshot of what lvm reported at the time of the call.
//
//go:generate mockgen -copyright_file ../../../hack/mockgen_copyright.txt -source=manager.go -destination=mock.go -package=lvm
type Manager interface {
	// IsSupported returns true if LVM is supported on the current node.
	IsSupported() bool
	// Version returns the lvm tool version in semver form.
	Version(ctx context.Context) (string, error)
	// CheckVersion fails with ErrUnsupportedVersion if lvm is older than minimum.
	CheckVersion(ctx context.Context, minimum string) error
	// ListVolumeGroups lists all VGs sorted by name.
	ListVolumeGroups(ctx context.Context) ([]VolumeGroup, error)
	// GetVolumeGroup returns the named VG.
	GetVolumeGroup(ctx context.Context, name Name) (*VolumeGroup, error)
	// GetVolumeGroupByUUID returns the VG with the given UUID.
	GetVolumeGroupByUUID(ctx context.Context, uuid UUID) (*VolumeGroup, error)
	// CreateVolumeGroup creates a VG on the PVs.
	CreateVolumeGroup(ctx context.Context, opts CreateVGOptions) (*VolumeGroup, error)
	// RemoveVolumeGroup removes a VG.
	RemoveVolumeGroup(ctx context.Context, vg *VolumeGroup) error
	// ListLogicalVolumes lists all LVs sorted by VG and name.
	ListLogicalVolumes(ctx context.Context) ([]LogicalVolume, error)
	// ListLogicalVolumesInGroup lists the LVs of one VG sorted by name.
	ListLogicalVolumesInGroup(ctx context.Context, vg Name) ([]LogicalVolume, error)
	// GetLogicalVolume returns the named LV.
	GetLogicalVolume(ctx context.Context, vg Name, lv Name) (*LogicalVolume, error)
	// GetLogicalVolumeByUUID returns the LV with the given UUID.
	GetLogicalVolumeByUUID(ctx context.Context, uuid UUID) (*LogicalVolume, error)
	// CreateLogicalVolume creates an LV on a VG.
	CreateLogicalVolume(ctx context.Context, opts CreateLVOptions) (*LogicalVolume, error)
	// RemoveLogicalVolume removes a LV from a VG.
	RemoveLogicalVolume(ctx context.Context, lv *LogicalVolume) error
	// ActivateLogicalVolume activates a LV.
	ActivateLogicalVolume(ctx context.Context, lv *LogicalVolume) error
	// DeactivateLogicalVolume deactivates a LV.
	DeactivateLogicalVolume(ctx context.Context, lv *LogicalVolume) error
}
