// Copyright (c) Microsoft Corporation.
// Licensed under the MIT License.

package lvm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// SectorSize is the unit every lvm capacity is a multiple of.
const SectorSize = 512

// maxCapacity is the largest multiple of SectorSize representable in a uint64.
const maxCapacity = math.MaxUint64 &^ (SectorSize - 1)

// Capacity is a size in bytes that is always a multiple of SectorSize.
type Capacity struct {
	bytes uint64
}

// NewCapacity returns a Capacity of exactly n bytes, or an error if n is not a
// multiple of SectorSize.
func NewCapacity(n uint64) (Capacity, error) {
	if rounded, ok := roundUpSector(n); !ok || rounded != n {
		return Capacity{}, &ValidationError{
			Kind:  "capacity",
			Value: strconv.FormatUint(n, 10),
			Rule:  fmt.Sprintf("must be a multiple of %d", SectorSize),
		}
	}
	return Capacity{bytes: n}, nil
}

// CapacityFromNearest returns the smallest Capacity holding at least n bytes.
// It only fails when the rounded value does not fit in a uint64.
func CapacityFromNearest(n uint64) (Capacity, error) {
	rounded, ok := roundUpSector(n)
	if !ok {
		return Capacity{}, &ValidationError{
			Kind:  "capacity",
			Value: strconv.FormatUint(n, 10),
			Rule:  fmt.Sprintf("must not exceed %d", uint64(maxCapacity)),
		}
	}
	return Capacity{bytes: rounded}, nil
}

// roundUpSector rounds n up to the next multiple of SectorSize. It returns
// false on overflow.
func roundUpSector(n uint64) (uint64, bool) {
	if n == 0 {
		return 0, true
	}
	if n > maxCapacity {
		return 0, false
	}
	return ((n - 1) | (SectorSize - 1)) + 1, true
}

// Bytes returns the capacity in bytes.
func (c Capacity) Bytes() uint64 {
	return c.bytes
}

// Sectors returns the capacity in 512 byte sectors.
func (c Capacity) Sectors() uint64 {
	return c.bytes / SectorSize
}

// Cmp returns -1, 0 or +1 depending on whether c is smaller, equal or larger
// than other.
func (c Capacity) Cmp(other Capacity) int {
	switch {
	case c.bytes < other.bytes:
		return -1
	case c.bytes > other.bytes:
		return 1
	default:
		return 0
	}
}

func (c Capacity) String() string {
	return strconv.FormatUint(c.bytes, 10)
}

// MarshalArg formats the capacity for lvm size flags.
func (c Capacity) MarshalArg() string {
	return c.String() + "B"
}

func (c Capacity) MarshalJSON() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalJSON accepts a JSON number or a string such as "1073741824" or
// "1073741824B", which is what lvm prints depending on --nosuffix.
func (c *Capacity) UnmarshalJSON(data []byte) error {
	n, err := parseReportUint(data)
	if err != nil {
		return fmt.Errorf("capacity: %w", err)
	}
	parsed, err := NewCapacity(n)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Capacity) MarshalYAML() (interface{}, error) {
	return c.bytes, nil
}

// parseReportUint decodes an unsigned integer that lvm may have printed as
// either a number or a string, optionally with a "B" unit suffix.
func parseReportUint(data []byte) (uint64, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return 0, err
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "B")
		return strconv.ParseUint(s, 10, 64)
	}
	return strconv.ParseUint(string(data), 10, 64)
}
