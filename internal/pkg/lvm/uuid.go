// Copyright (c) Microsoft Corporation.
// Licensed under the MIT License.

package lvm

import "regexp"

var uuidRegexp = regexp.MustCompile(`^[a-zA-Z0-9]{6}-([a-zA-Z0-9]{4}-){5}[a-zA-Z0-9]{6}$`)

// UUID is an lvm identifier in the 6-4-4-4-4-4-6 form lvm prints, e.g.
// "Q2cM3D-0Zyl-8Yok-gbOD-JIBN-iFls-VyMjVq".
type UUID struct {
	value string
}

// ParseUUID returns a UUID, or an error if s is not in lvm's format.
func ParseUUID(s string) (UUID, error) {
	if !uuidRegexp.MatchString(s) {
		return UUID{}, &ValidationError{
			Kind:  "uuid",
			Value: s,
			Rule:  "must be 6-4-4-4-4-4-6 alphanumeric groups",
		}
	}
	return UUID{value: s}, nil
}

// MustParseUUID is like ParseUUID but panics on invalid input.
func MustParseUUID(s string) UUID {
	u, err := ParseUUID(s)
	if err != nil {
		panic(err)
	}
	return u
}

func (u UUID) String() string {
	return u.value
}

func (u UUID) IsZero() bool {
	return u.value == ""
}

func (u UUID) MarshalText() ([]byte, error) {
	return []byte(u.value), nil
}

func (u *UUID) UnmarshalText(text []byte) error {
	parsed, err := ParseUUID(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
