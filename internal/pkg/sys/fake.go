// Copyright (c) Microsoft Corporation.
// Licensed under the MIT License.

package sys

import (
	"fmt"
	"os"
)

// Fake answers from a fixed table of paths.
type Fake struct {
	devices map[string]bool
}

var _ Utils = &Fake{}

// NewFake returns a Fake where each of devices is a block device.
func NewFake(devices ...string) *Fake {
	f := &Fake{devices: make(map[string]bool)}
	for _, d := range devices {
		f.devices[d] = true
	}
	return f
}

// SetIsBlockDevice records whether path exists as a block device or a
// regular file.
func (f *Fake) SetIsBlockDevice(path string, isDevice bool) {
	f.devices[path] = isDevice
}

// IsBlockDevice reports the recorded result for path. Unknown paths do not
// exist.
func (f *Fake) IsBlockDevice(path string) (bool, error) {
	isDevice, ok := f.devices[path]
	if !ok {
		return false, fmt.Errorf("failed to stat path %s: %w", path, os.ErrNotExist)
	}
	return isDevice, nil
}
