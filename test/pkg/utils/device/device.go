// Copyright (c) Microsoft Corporation.
// Licensed under the MIT License.

// Package device provides loop-backed block devices for tests that need real
// lvm physical volumes.
package device

import (
	"errors"
	"fmt"
	"os"

	"pault.ag/go/loopback"
)

// DefaultSize is large enough for a volume group with a few small volumes.
const DefaultSize = 64 << 20

// LoopDevice is a loop device attached to a sparse backing file.
type LoopDevice struct {
	dev     *os.File
	backing string
}

// Path returns the device node, e.g. /dev/loop3.
func (d *LoopDevice) Path() string {
	return d.dev.Name()
}

// Close detaches the device and removes its backing file.
func (d *LoopDevice) Close() error {
	var errs []error
	if err := loopback.Unloop(d.dev); err != nil {
		errs = append(errs, fmt.Errorf("failed to detach %s: %w", d.dev.Name(), err))
	}
	if err := os.Remove(d.backing); err != nil {
		errs = append(errs, fmt.Errorf("failed to remove backing file: %w", err))
	}
	return errors.Join(errs...)
}

// NewLoopDevice attaches a loop device to a new sparse file of size bytes.
// The backing file is not zeroed.
func NewLoopDevice(size int64) (*LoopDevice, error) {
	if size <= 0 {
		size = DefaultSize
	}

	img, err := os.CreateTemp("", "lvmctl-pv-*.img")
	if err != nil {
		return nil, fmt.Errorf("failed to create backing file: %w", err)
	}
	defer img.Close() //nolint:errcheck

	if err := img.Truncate(size); err != nil {
		_ = os.Remove(img.Name())
		return nil, fmt.Errorf("failed to size backing file: %w", err)
	}

	dev, err := loopback.NextLoopDevice()
	if err != nil {
		_ = os.Remove(img.Name())
		return nil, fmt.Errorf("failed to get next loop device: %w", err)
	}

	if err := loopback.Loop(dev, img); err != nil {
		_ = os.Remove(img.Name())
		return nil, fmt.Errorf("failed to set up loop device: %w", err)
	}

	return &LoopDevice{dev: dev, backing: img.Name()}, nil
}

// IsRoot reports whether the test process can create loop devices.
func IsRoot() bool {
	return os.Geteuid() == 0
}
