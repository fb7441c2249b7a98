// Copyright (c) Microsoft Corporation.
// Licensed under the MIT License.

package lvm

import (
	"regexp"
	"strings"
)

var nameRegexp = regexp.MustCompile(`^[a-zA-Z0-9+_.\-]+$`)

// Name is a validated volume group or logical volume name.
//
// The zero value is not a valid name and is only used to signal absence.
type Name struct {
	value string
}

// ParseName returns a Name, or an error if s contains characters lvm does not
// accept in names.
func ParseName(s string) (Name, error) {
	if !nameRegexp.MatchString(s) {
		return Name{}, &ValidationError{
			Kind:  "name",
			Value: s,
			Rule:  "must match " + nameRegexp.String(),
		}
	}
	return Name{value: s}, nil
}

// MustParseName is like ParseName but panics on invalid input. It is meant for
// constants and tests.
func MustParseName(s string) Name {
	n, err := ParseName(s)
	if err != nil {
		panic(err)
	}
	return n
}

func (n Name) String() string {
	return n.value
}

// IsZero reports whether n was never set.
func (n Name) IsZero() bool {
	return n.value == ""
}

// Compare orders names lexically.
func (n Name) Compare(other Name) int {
	return strings.Compare(n.value, other.value)
}

func (n Name) MarshalText() ([]byte, error) {
	return []byte(n.value), nil
}

func (n *Name) UnmarshalText(text []byte) error {
	parsed, err := ParseName(string(text))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}
