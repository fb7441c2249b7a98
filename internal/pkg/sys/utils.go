// Copyright (c) Microsoft Corporation.
// Licensed under the MIT License.

// Package sys provides utility functions for working with the operating system.
package sys

import (
	"fmt"
	"os"
	"syscall"
)

// Utils is an interface for OS utility functions.
type Utils interface {
	IsBlockDevice(path string) (bool, error)
}

// sys is a concrete implementation of the Utils interface.
type sys struct{}

var _ Utils = &sys{}

func New() Utils {
	return &sys{}
}

// IsBlockDevice reports whether the given path is a block device. Symlinks
// such as /dev/disk/by-id entries are followed.
func (s *sys) IsBlockDevice(path string) (bool, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("failed to stat path %s: %w", path, err)
	}

	stat, ok := fileInfo.Sys().(*syscall.Stat_t)
	if !ok {
		return false, fmt.Errorf("failed to get raw syscall.Stat_t data for %s", path)
	}

	return (stat.Mode & syscall.S_IFMT) == syscall.S_IFBLK, nil
}
