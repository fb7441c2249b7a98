// Copyright (c) Microsoft Corporation.
// Licensed under the MIT License.

package lvm

import (
	"context"
	"errors"
	"testing"

	"github.com/gotidy/ptr"
)

func TestFake(t *testing.T) {
	ctx := context.Background()
	f := NewFake()

	vg, err := f.CreateVolumeGroup(ctx, CreateVGOptions{
		Name:            MustParseName("vg0"),
		PhysicalVolumes: []string{"/dev/loop0", "/dev/loop1"},
		Clustered:       ptr.Of(true),
	})
	if err != nil {
		t.Fatalf("CreateVolumeGroup() error = %v", err)
	}
	if vg.Capacity.Bytes() != 2*FakePVSize || vg.Free != vg.Capacity {
		t.Errorf("got %+v", vg)
	}
	if vg.Attributes.AccessMode != Clustered {
		t.Errorf("AccessMode = %s, want clustered", vg.Attributes.AccessMode)
	}
	if _, err := f.CreateVolumeGroup(ctx, CreateVGOptions{Name: vg.Name, PhysicalVolumes: []string{"/dev/loop2"}}); !errors.Is(err, ErrCommand) {
		t.Errorf("duplicate CreateVolumeGroup() error = %v, want ErrCommand", err)
	}

	size, _ := NewCapacity(1 << 20)
	lv, err := f.CreateLogicalVolume(ctx, CreateLVOptions{VolumeGroup: vg.Name, Name: MustParseName("data"), Size: size, Tags: []string{"t"}})
	if err != nil {
		t.Fatalf("CreateLogicalVolume() error = %v", err)
	}
	if lv.Capacity.Bytes() != fakeExtentSize {
		t.Errorf("expected size rounded to one extent, got %s", lv.Capacity)
	}
	if !lv.Attributes.IsActive() || lv.Path != "/dev/vg0/data" {
		t.Errorf("got %+v", lv)
	}

	got, err := f.GetVolumeGroupByUUID(ctx, vg.UUID)
	if err != nil {
		t.Fatalf("GetVolumeGroupByUUID() error = %v", err)
	}
	if got.LVCount != 1 || got.Free.Bytes() != 2*FakePVSize-fakeExtentSize {
		t.Errorf("got %+v", got)
	}

	if _, err := f.CreateLogicalVolume(ctx, CreateLVOptions{VolumeGroup: vg.Name, Name: MustParseName("huge"), Size: Capacity{bytes: 4 * FakePVSize}}); !errors.Is(err, ErrCommand) {
		t.Errorf("oversized CreateLogicalVolume() error = %v, want ErrCommand", err)
	}
	if _, err := f.CreateLogicalVolume(ctx, CreateLVOptions{VolumeGroup: MustParseName("nope"), Name: MustParseName("x"), Size: size}); !IsNotFound(err) {
		t.Errorf("CreateLogicalVolume() in missing group error = %v, want not found", err)
	}

	if err := f.DeactivateLogicalVolume(ctx, lv); err != nil {
		t.Fatalf("DeactivateLogicalVolume() error = %v", err)
	}
	stored, err := f.GetLogicalVolumeByUUID(ctx, lv.UUID)
	if err != nil {
		t.Fatalf("GetLogicalVolumeByUUID() error = %v", err)
	}
	if stored.Attributes.IsActive() {
		t.Errorf("expected stored volume to be inactive")
	}

	lvs, err := vg.LogicalVolumes(ctx, f)
	if err != nil || len(lvs) != 1 {
		t.Fatalf("LogicalVolumes() = %v, %v", lvs, err)
	}

	if err := f.RemoveLogicalVolume(ctx, lv); err != nil {
		t.Fatalf("RemoveLogicalVolume() error = %v", err)
	}
	if err := f.RemoveLogicalVolume(ctx, lv); !IsNotFound(err) {
		t.Errorf("second RemoveLogicalVolume() error = %v, want not found", err)
	}
	if got, _ := f.GetVolumeGroup(ctx, vg.Name); got.Free != got.Capacity || got.LVCount != 0 {
		t.Errorf("expected space to be returned, got %+v", got)
	}

	if err := f.RemoveVolumeGroup(ctx, vg); err != nil {
		t.Fatalf("RemoveVolumeGroup() error = %v", err)
	}
	if _, err := f.ListLogicalVolumesInGroup(ctx, vg.Name); !IsNotFound(err) {
		t.Errorf("ListLogicalVolumesInGroup() on removed group error = %v, want not found", err)
	}
}

func TestFakeSorted(t *testing.T) {
	ctx := context.Background()
	f := NewFake()
	size, _ := NewCapacity(512)
	for _, name := range []string{"vgb", "vga"} {
		if _, err := f.CreateVolumeGroup(ctx, CreateVGOptions{Name: MustParseName(name), PhysicalVolumes: []string{"/dev/" + name}}); err != nil {
			t.Fatal(err)
		}
		for _, lv := range []string{"z", "a"} {
			if _, err := f.CreateLogicalVolume(ctx, CreateLVOptions{VolumeGroup: MustParseName(name), Name: MustParseName(lv), Size: size}); err != nil {
				t.Fatal(err)
			}
		}
	}

	vgs, _ := f.ListVolumeGroups(ctx)
	if len(vgs) != 2 || vgs[0].Name.String() != "vga" {
		t.Errorf("got %v", vgs)
	}
	lvs, _ := f.ListLogicalVolumes(ctx)
	var ids []string
	for _, lv := range lvs {
		ids = append(ids, lv.ID())
	}
	want := []string{"vga/a", "vga/z", "vgb/a", "vgb/z"}
	for i := range want {
		if i >= len(ids) || ids[i] != want[i] {
			t.Fatalf("got %v, want %v", ids, want)
		}
	}
}

func TestFakeErr(t *testing.T) {
	errBoom := errors.New("boom")
	f := NewFake()
	f.Err = errBoom
	if _, err := f.ListVolumeGroups(context.Background()); !errors.Is(err, errBoom) {
		t.Errorf("expected injected error, got %v", err)
	}
	if _, err := f.ListLogicalVolumesInGroup(context.Background(), MustParseName("vg0")); !errors.Is(err, errBoom) {
		t.Errorf("expected injected error, got %v", err)
	}
	if err := f.CheckVersion(context.Background(), "v2.0.0"); !errors.Is(err, errBoom) {
		t.Errorf("expected injected error, got %v", err)
	}
}

func TestNoop(t *testing.T) {
	var m Manager = Unsupported()
	if m.IsSupported() {
		t.Errorf("expected Noop to be unsupported")
	}
	if _, err := m.ListLogicalVolumes(context.Background()); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}
