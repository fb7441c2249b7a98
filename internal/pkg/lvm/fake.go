// Copyright (c) Microsoft Corporation.
// Licensed under the MIT License.

package lvm

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// fakeExtentSize is the allocation unit the fake rounds volume sizes to.
const fakeExtentSize = 4 * 1024 * 1024

// Fake is an in-memory Manager. It keeps enough bookkeeping for volume group
// free space and member counts to behave like lvm for callers under test.
type Fake struct {
	mu sync.Mutex

	VGs map[string]VolumeGroup
	// LVs is keyed by "vg/lv".
	LVs map[string]LogicalVolume
	// Err is returned from every method when set.
	Err error
	// LVMVersion is returned from Version.
	LVMVersion string
}

var _ Manager = &Fake{}

// Construct a new fake lvm2 client.
func NewFake() *Fake {
	return &Fake{
		VGs:        make(map[string]VolumeGroup),
		LVs:        make(map[string]LogicalVolume),
		LVMVersion: "v2.3.16",
	}
}

// IsSupported returns true if LVM is supported on the current node.
func (f *Fake) IsSupported() bool {
	return true
}

// Version returns LVMVersion.
func (f *Fake) Version(ctx context.Context) (string, error) {
	if f.Err != nil {
		return "", f.Err
	}
	return f.LVMVersion, nil
}

// CheckVersion compares LVMVersion against minimum.
func (f *Fake) CheckVersion(ctx context.Context, minimum string) error {
	if f.Err != nil {
		return f.Err
	}
	return compareVersion(f.LVMVersion, minimum)
}

// ListVolumeGroups lists all VGs sorted by name.
func (f *Fake) ListVolumeGroups(ctx context.Context) ([]VolumeGroup, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}

	vgs := make([]VolumeGroup, 0, len(f.VGs))
	for _, vg := range f.VGs {
		vgs = append(vgs, vg)
	}
	slices.SortFunc(vgs, func(a, b VolumeGroup) int {
		return a.Name.Compare(b.Name)
	})
	return vgs, nil
}

// GetVolumeGroup returns the named VG.
func (f *Fake) GetVolumeGroup(ctx context.Context, name Name) (*VolumeGroup, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}

	vg, ok := f.VGs[name.String()]
	if !ok {
		return nil, &NotFoundError{Resource: name.String()}
	}
	return &vg, nil
}

// GetVolumeGroupByUUID returns the VG with the given UUID.
func (f *Fake) GetVolumeGroupByUUID(ctx context.Context, id UUID) (*VolumeGroup, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}

	for _, vg := range f.VGs {
		if vg.UUID == id {
			return &vg, nil
		}
	}
	return nil, &NotFoundError{Resource: id.String()}
}

// CreateVolumeGroup creates a VG. Each PV contributes FakePVSize bytes.
func (f *Fake) CreateVolumeGroup(ctx context.Context, opts CreateVGOptions) (*VolumeGroup, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}

	if _, ok := f.VGs[opts.Name.String()]; ok {
		return nil, &CommandError{
			Command:  "vgcreate",
			Args:     append([]string{opts.Name.String()}, opts.PhysicalVolumes...),
			ExitCode: 3,
			Stderr:   fmt.Sprintf("A volume group called %s already exists.", opts.Name),
		}
	}

	accessMode := "-"
	if opts.Clustered != nil && *opts.Clustered {
		accessMode = "c"
	}
	attrs, err := ParseVolumeGroupAttributes("wz--n" + accessMode)
	if err != nil {
		return nil, err
	}

	size := Capacity{bytes: uint64(len(opts.PhysicalVolumes)) * FakePVSize}
	vg := VolumeGroup{
		Name:       opts.Name,
		UUID:       newFakeUUID(),
		Capacity:   size,
		Free:       size,
		PVCount:    IntString(len(opts.PhysicalVolumes)),
		Attributes: attrs,
	}
	f.VGs[opts.Name.String()] = vg
	return &vg, nil
}

// RemoveVolumeGroup removes a VG and its LVs.
func (f *Fake) RemoveVolumeGroup(ctx context.Context, vg *VolumeGroup) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}

	if vg.removed {
		return &NotFoundError{Resource: vg.Name.String()}
	}
	if _, ok := f.VGs[vg.Name.String()]; !ok {
		return &NotFoundError{Resource: vg.Name.String()}
	}
	delete(f.VGs, vg.Name.String())
	for id, lv := range f.LVs {
		if lv.VolumeGroupName == vg.Name {
			delete(f.LVs, id)
		}
	}
	vg.removed = true
	return nil
}

// ListLogicalVolumes lists all LVs sorted by VG and name.
func (f *Fake) ListLogicalVolumes(ctx context.Context) ([]LogicalVolume, error) {
	return f.listLogicalVolumes(func(LogicalVolume) bool { return true })
}

// ListLogicalVolumesInGroup lists the LVs of one VG.
func (f *Fake) ListLogicalVolumesInGroup(ctx context.Context, vg Name) ([]LogicalVolume, error) {
	f.mu.Lock()
	_, ok := f.VGs[vg.String()]
	f.mu.Unlock()
	if !ok && f.Err == nil {
		return nil, &NotFoundError{Resource: vg.String()}
	}
	return f.listLogicalVolumes(func(lv LogicalVolume) bool { return lv.VolumeGroupName == vg })
}

func (f *Fake) listLogicalVolumes(keep func(LogicalVolume) bool) ([]LogicalVolume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}

	lvs := []LogicalVolume{}
	for _, lv := range f.LVs {
		if keep(lv) {
			lvs = append(lvs, lv)
		}
	}
	slices.SortFunc(lvs, func(a, b LogicalVolume) int {
		if c := a.VolumeGroupName.Compare(b.VolumeGroupName); c != 0 {
			return c
		}
		return a.Name.Compare(b.Name)
	})
	return lvs, nil
}

// GetLogicalVolume returns the named LV.
func (f *Fake) GetLogicalVolume(ctx context.Context, vg, lv Name) (*LogicalVolume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}

	id := vg.String() + "/" + lv.String()
	v, ok := f.LVs[id]
	if !ok {
		return nil, &NotFoundError{Resource: id}
	}
	return &v, nil
}

// GetLogicalVolumeByUUID returns the LV with the given UUID.
func (f *Fake) GetLogicalVolumeByUUID(ctx context.Context, id UUID) (*LogicalVolume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}

	for _, lv := range f.LVs {
		if lv.UUID == id {
			return &lv, nil
		}
	}
	return nil, &NotFoundError{Resource: id.String()}
}

// CreateLogicalVolume creates an LV, rounding its size up to whole 4MiB
// extents the way lvm does by default.
func (f *Fake) CreateLogicalVolume(ctx context.Context, opts CreateLVOptions) (*LogicalVolume, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}

	vg, ok := f.VGs[opts.VolumeGroup.String()]
	if !ok {
		return nil, &NotFoundError{Resource: opts.VolumeGroup.String()}
	}

	id := opts.VolumeGroup.String() + "/" + opts.Name.String()
	if _, ok := f.LVs[id]; ok {
		return nil, &CommandError{
			Command:  "lvcreate",
			Args:     []string{opts.VolumeGroup.String()},
			ExitCode: 3,
			Stderr:   fmt.Sprintf("Logical Volume %q already exists in volume group %q", opts.Name, opts.VolumeGroup),
		}
	}

	extents := (opts.Size.Bytes() + fakeExtentSize - 1) / fakeExtentSize
	size := extents * fakeExtentSize
	if size > vg.Free.Bytes() {
		return nil, &CommandError{
			Command:  "lvcreate",
			Args:     []string{opts.VolumeGroup.String()},
			ExitCode: 3,
			Stderr:   fmt.Sprintf("Volume group %q has insufficient free space (%d extents): %d required.", opts.VolumeGroup, vg.Free.Bytes()/fakeExtentSize, extents),
		}
	}

	state := "a"
	if opts.Inactive {
		state = "-"
	}
	attrs, err := ParseLogicalVolumeAttributes("-wi-" + state + "-----")
	if err != nil {
		return nil, err
	}

	lv := LogicalVolume{
		Name:            opts.Name,
		VolumeGroupName: opts.VolumeGroup,
		UUID:            newFakeUUID(),
		Capacity:        Capacity{bytes: size},
		Path:            "/dev/" + id,
		Attributes:      attrs,
		Tags:            TagList(slices.Clone(opts.Tags)),
	}
	f.LVs[id] = lv

	vg.Free = Capacity{bytes: vg.Free.bytes - size}
	vg.LVCount++
	f.VGs[vg.Name.String()] = vg

	return &lv, nil
}

// RemoveLogicalVolume removes a LV from a VG.
func (f *Fake) RemoveLogicalVolume(ctx context.Context, lv *LogicalVolume) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}

	if lv.removed {
		return &NotFoundError{Resource: lv.ID()}
	}
	stored, ok := f.LVs[lv.ID()]
	if !ok {
		return &NotFoundError{Resource: lv.ID()}
	}
	delete(f.LVs, lv.ID())
	if vg, ok := f.VGs[lv.VolumeGroupName.String()]; ok {
		vg.Free = Capacity{bytes: vg.Free.bytes + stored.Capacity.bytes}
		vg.LVCount--
		f.VGs[vg.Name.String()] = vg
	}
	lv.removed = true
	return nil
}

// ActivateLogicalVolume marks a LV active.
func (f *Fake) ActivateLogicalVolume(ctx context.Context, lv *LogicalVolume) error {
	return f.setState(lv, State{Kind: Active})
}

// DeactivateLogicalVolume marks a LV inactive.
func (f *Fake) DeactivateLogicalVolume(ctx context.Context, lv *LogicalVolume) error {
	return f.setState(lv, State{Kind: Inactive})
}

func (f *Fake) setState(lv *LogicalVolume, state State) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}

	if lv.removed {
		return &NotFoundError{Resource: lv.ID()}
	}
	stored, ok := f.LVs[lv.ID()]
	if !ok {
		return &NotFoundError{Resource: lv.ID()}
	}
	stored.Attributes.State = state
	f.LVs[lv.ID()] = stored
	return nil
}

// FakePVSize is the capacity each physical volume adds to a fake volume group.
const FakePVSize = 1 << 30

// newFakeUUID returns a random identifier in lvm's 6-4-4-4-4-4-6 layout.
func newFakeUUID() UUID {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	parts := []string{hex[0:6], hex[6:10], hex[10:14], hex[14:18], hex[18:22], hex[22:26], hex[26:32]}
	return MustParseUUID(strings.Join(parts, "-"))
}
