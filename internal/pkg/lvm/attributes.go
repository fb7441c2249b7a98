// Copyright (c) Microsoft Corporation.
// Licensed under the MIT License.

package lvm

import (
	"fmt"
	"unicode/utf8"
)

// AttributeError is returned when an lv_attr or vg_attr string can't be
// decoded.
type AttributeError struct {
	// Field is the attribute being decoded, e.g. "volume type".
	Field string
	// Char is the rejected character. Unset when Missing is true.
	Char rune
	// Missing is true when the string ended before Field.
	Missing bool
}

func (e *AttributeError) Error() string {
	if e.Missing {
		return fmt.Sprintf("could not get %s attribute", e.Field)
	}
	return fmt.Sprintf("invalid flag for %s: %q", e.Field, e.Char)
}

func (e *AttributeError) Is(target error) bool {
	return target == ErrInvalidInput
}

// attrField maps the characters accepted at one attribute position to their
// value. Tables are closed: anything not listed is rejected.
type attrField[T comparable] struct {
	name  string
	table map[rune]T
}

// attrReader consumes an attribute string one character per field.
type attrReader struct {
	rest string
}

func (r *attrReader) next(field string) (rune, error) {
	if r.rest == "" {
		return 0, &AttributeError{Field: field, Missing: true}
	}
	c, size := utf8.DecodeRuneInString(r.rest)
	r.rest = r.rest[size:]
	return c, nil
}

func readField[T comparable](r *attrReader, f attrField[T]) (T, error) {
	var zero T
	c, err := r.next(f.name)
	if err != nil {
		return zero, err
	}
	v, ok := f.table[c]
	if !ok {
		return zero, &AttributeError{Field: f.name, Char: c}
	}
	return v, nil
}

// encode returns the character for v. Tables are bijective so the result is
// unique.
func (f attrField[T]) encode(v T) (rune, error) {
	for c, candidate := range f.table {
		if candidate == v {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: no %s code for %v", ErrInvalidInput, f.name, v)
}

// Permissions of a volume group or logical volume.
type Permissions int

const (
	Writeable Permissions = iota
	ReadOnly
	// ReadOnlyActivation is a writeable volume activated read-only.
	ReadOnlyActivation
)

func (p Permissions) String() string {
	switch p {
	case Writeable:
		return "writeable"
	case ReadOnly:
		return "read-only"
	case ReadOnlyActivation:
		return "read-only-activation"
	default:
		return fmt.Sprintf("Permissions(%d)", int(p))
	}
}

var permissionsField = attrField[Permissions]{
	name: "permissions",
	table: map[rune]Permissions{
		'w': Writeable,
		'r': ReadOnly,
		'R': ReadOnlyActivation,
	},
}

// AllocationPolicyKind is the extent allocation policy.
type AllocationPolicyKind int

const (
	Anywhere AllocationPolicyKind = iota
	Contiguous
	Inherited
	Cling
	Normal
)

func (k AllocationPolicyKind) String() string {
	switch k {
	case Anywhere:
		return "anywhere"
	case Contiguous:
		return "contiguous"
	case Inherited:
		return "inherited"
	case Cling:
		return "cling"
	case Normal:
		return "normal"
	default:
		return fmt.Sprintf("AllocationPolicyKind(%d)", int(k))
	}
}

// AllocationPolicy is an allocation policy plus whether it is locked against
// changes. lvm prints locked policies in uppercase.
type AllocationPolicy struct {
	Kind   AllocationPolicyKind
	Locked bool
}

func (p AllocationPolicy) String() string {
	if p.Locked {
		return p.Kind.String() + " (locked)"
	}
	return p.Kind.String()
}

var allocationPolicyField = attrField[AllocationPolicy]{
	name: "allocation policy",
	table: map[rune]AllocationPolicy{
		'a': {Kind: Anywhere},
		'A': {Kind: Anywhere, Locked: true},
		'c': {Kind: Contiguous},
		'C': {Kind: Contiguous, Locked: true},
		'i': {Kind: Inherited},
		'I': {Kind: Inherited, Locked: true},
		'l': {Kind: Cling},
		'L': {Kind: Cling, Locked: true},
		'n': {Kind: Normal},
		'N': {Kind: Normal, Locked: true},
	},
}

// flagField builds the table for a position that is either '-' or set.
func flagField(name string, set rune) attrField[bool] {
	return attrField[bool]{
		name:  name,
		table: map[rune]bool{'-': false, set: true},
	}
}
