// Copyright (c) Microsoft Corporation.
// Licensed under the MIT License.

package device

import (
	"os"
	"strings"
	"testing"
)

func TestNewLoopDevice(t *testing.T) {
	if !IsRoot() {
		t.Skip("skipping test; must be root to create loop devices")
	}

	tests := []struct {
		name       string
		size       int64
		wantPrefix string
		wantSize   int64
	}{
		{
			name:       "default size",
			wantPrefix: "/dev/loop",
			wantSize:   DefaultSize,
		},
		{
			name:       "explicit size",
			size:       128 << 20,
			wantPrefix: "/dev/loop",
			wantSize:   128 << 20,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev, err := NewLoopDevice(tt.size)
			if err != nil {
				t.Fatalf("NewLoopDevice() error = %v", err)
			}

			if !strings.HasPrefix(dev.Path(), tt.wantPrefix) {
				t.Errorf("Path() = %v, want prefix %v", dev.Path(), tt.wantPrefix)
			}

			fi, err := os.Stat(dev.backing)
			if err != nil {
				t.Fatalf("stat backing file: %v", err)
			}
			if fi.Size() != tt.wantSize {
				t.Errorf("backing file size = %d, want %d", fi.Size(), tt.wantSize)
			}

			if err := dev.Close(); err != nil {
				t.Errorf("Close() error = %v", err)
			}
			if _, err := os.Stat(dev.backing); !os.IsNotExist(err) {
				t.Errorf("backing file still exists after Close(): %v", err)
			}
		})
	}
}
