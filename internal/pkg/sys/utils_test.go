// Copyright (c) Microsoft Corporation.
// Licensed under the MIT License.

package sys

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"lvm2-cmd/test/pkg/utils/device"
)

func TestIsBlockDevice(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	tests := []struct {
		name       string
		path       string
		want       bool
		wantErr    bool
		notExist   bool
		needsRoot  bool
		loopDevice bool
	}{
		{name: "regular file", path: file},
		{name: "directory", path: t.TempDir()},
		{name: "missing", path: filepath.Join(t.TempDir(), "missing"), wantErr: true, notExist: true},
		{name: "character device", path: "/dev/null"},
		{name: "loop device", want: true, needsRoot: true, loopDevice: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.needsRoot && !device.IsRoot() {
				t.Skip("skipping test; must be root to create loop devices")
			}
			path := tt.path
			if tt.loopDevice {
				dev, err := device.NewLoopDevice(0)
				if err != nil {
					t.Fatalf("NewLoopDevice() error = %v", err)
				}
				t.Cleanup(func() { _ = dev.Close() })
				path = dev.Path()
			}

			got, err := New().IsBlockDevice(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("IsBlockDevice() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.notExist && !errors.Is(err, os.ErrNotExist) {
				t.Errorf("expected os.ErrNotExist, got %v", err)
			}
			if got != tt.want {
				t.Errorf("IsBlockDevice() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFake(t *testing.T) {
	f := NewFake("/dev/sdb")
	f.SetIsBlockDevice("/tmp/disk.img", false)

	if ok, err := f.IsBlockDevice("/dev/sdb"); !ok || err != nil {
		t.Errorf("IsBlockDevice(/dev/sdb) = %v, %v", ok, err)
	}
	if ok, err := f.IsBlockDevice("/tmp/disk.img"); ok || err != nil {
		t.Errorf("IsBlockDevice(/tmp/disk.img) = %v, %v", ok, err)
	}
	if _, err := f.IsBlockDevice("/dev/sdz"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}
