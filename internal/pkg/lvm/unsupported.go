// Copyright (c) Microsoft Corporation.
// Licensed under the MIT License.

package lvm

import (
	"context"
	"errors"
)

var (
	// ErrUnsupported is returned when lvm is not supported.
	ErrUnsupported = errors.New("lvm not supported")
)

// Noop satisfies the Manager interface but returns an unsupported error for
// all methods.
type Noop struct{}

var _ Manager = &Noop{}

// Unsupported creates a new LVM manager that only returns unsupported errors.
func Unsupported() *Noop {
	return &Noop{}
}

// IsSupported returns false.
func (l *Noop) IsSupported() bool {
	return false
}

// Version implements Manager.
func (l *Noop) Version(ctx context.Context) (string, error) {
	return "", ErrUnsupported
}

// CheckVersion implements Manager.
func (l *Noop) CheckVersion(ctx context.Context, minimum string) error {
	return ErrUnsupported
}

// ListVolumeGroups implements Manager.
func (l *Noop) ListVolumeGroups(ctx context.Context) ([]VolumeGroup, error) {
	return nil, ErrUnsupported
}

// GetVolumeGroup implements Manager.
func (l *Noop) GetVolumeGroup(ctx context.Context, name Name) (*VolumeGroup, error) {
	return nil, ErrUnsupported
}

// GetVolumeGroupByUUID implements Manager.
func (l *Noop) GetVolumeGroupByUUID(ctx context.Context, uuid UUID) (*VolumeGroup, error) {
	return nil, ErrUnsupported
}

// CreateVolumeGroup implements Manager.
func (l *Noop) CreateVolumeGroup(ctx context.Context, opts CreateVGOptions) (*VolumeGroup, error) {
	return nil, ErrUnsupported
}

// RemoveVolumeGroup implements Manager.
func (l *Noop) RemoveVolumeGroup(ctx context.Context, vg *VolumeGroup) error {
	return ErrUnsupported
}

// ListLogicalVolumes implements Manager.
func (l *Noop) ListLogicalVolumes(ctx context.Context) ([]LogicalVolume, error) {
	return nil, ErrUnsupported
}

// ListLogicalVolumesInGroup implements Manager.
func (l *Noop) ListLogicalVolumesInGroup(ctx context.Context, vg Name) ([]LogicalVolume, error) {
	return nil, ErrUnsupported
}

// GetLogicalVolume implements Manager.
func (l *Noop) GetLogicalVolume(ctx context.Context, vg, lv Name) (*LogicalVolume, error) {
	return nil, ErrUnsupported
}

// GetLogicalVolumeByUUID implements Manager.
func (l *Noop) GetLogicalVolumeByUUID(ctx context.Context, uuid UUID) (*LogicalVolume, error) {
	return nil, ErrUnsupported
}

// CreateLogicalVolume implements Manager.
func (l *Noop) CreateLogicalVolume(ctx context.Context, opts CreateLVOptions) (*LogicalVolume, error) {
	return nil, ErrUnsupported
}

// RemoveLogicalVolume implements Manager.
func (l *Noop) RemoveLogicalVolume(ctx context.Context, lv *LogicalVolume) error {
	return ErrUnsupported
}

// ActivateLogicalVolume implements Manager.
func (l *Noop) ActivateLogicalVolume(ctx context.Context, lv *LogicalVolume) error {
	return ErrUnsupported
}

// DeactivateLogicalVolume implements Manager.
func (l *Noop) DeactivateLogicalVolume(ctx context.Context, lv *LogicalVolume) error {
	return ErrUnsupported
}
