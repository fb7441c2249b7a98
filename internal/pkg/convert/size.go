// Copyright (c) Microsoft Corporation.
// Licensed under the MIT License.

package convert

import (
	"fmt"
	"math"
	"strconv"

	"k8s.io/apimachinery/pkg/api/resource"

	"lvm2-cmd/internal/pkg/lvm"
)

const (
	// MiB represents the size of a mebibyte in bytes.
	MiB = 1024 * 1024

	// GiB represents the size of a gibibyte in bytes.
	GiB = 1024 * 1024 * 1024
)

// ParseCapacity parses a quantity such as "10Gi", "512M" or "1073741824" and
// rounds it up to whole sectors.
func ParseCapacity(s string) (lvm.Capacity, error) {
	q, err := resource.ParseQuantity(s)
	if err != nil {
		return lvm.Capacity{}, fmt.Errorf("%w: size %q: %v", lvm.ErrInvalidInput, s, err)
	}
	return QuantityToCapacity(q)
}

// QuantityToCapacity converts q to a capacity, rounding fractional bytes and
// partial sectors up.
func QuantityToCapacity(q resource.Quantity) (lvm.Capacity, error) {
	if q.Sign() < 0 {
		return lvm.Capacity{}, fmt.Errorf("%w: size %s is negative", lvm.ErrInvalidInput, q.String())
	}
	n, ok := q.AsInt64()
	if !ok {
		// AsInt64 refuses fractional values; Value rounds them up.
		if q.CmpInt64(math.MaxInt64) > 0 {
			return lvm.Capacity{}, fmt.Errorf("%w: size %s is too large", lvm.ErrInvalidInput, q.String())
		}
		n = q.Value()
	}
	return lvm.CapacityFromNearest(uint64(n))
}

// CapacityToQuantity returns c as a binary SI quantity, e.g. "10Gi".
// Capacities past math.MaxInt64 keep their exact value as a decimal quantity.
func CapacityToQuantity(c lvm.Capacity) *resource.Quantity {
	if c.Bytes() > math.MaxInt64 {
		q := resource.MustParse(strconv.FormatUint(c.Bytes(), 10))
		return &q
	}
	return resource.NewQuantity(int64(c.Bytes()), resource.BinarySI)
}

// FormatCapacity renders c for humans. Exact multiples of a binary unit use
// the unit suffix, anything else is printed in bytes.
func FormatCapacity(c lvm.Capacity) string {
	if c.Bytes() > math.MaxInt64 {
		return c.String()
	}
	return CapacityToQuantity(c).String()
}
