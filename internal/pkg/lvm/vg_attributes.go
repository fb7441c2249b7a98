// Copyright (c) Microsoft Corporation.
// Licensed under the MIT License.

package lvm

import "fmt"

// AccessMode is how a volume group is shared between hosts.
type AccessMode int

const (
	SingleNode AccessMode = iota
	Shared
	Clustered
)

func (m AccessMode) String() string {
	switch m {
	case SingleNode:
		return "single-node"
	case Shared:
		return "shared"
	case Clustered:
		return "clustered"
	default:
		return fmt.Sprintf("AccessMode(%d)", int(m))
	}
}

var (
	resizeableField = flagField("resizeable", 'z')
	exportedField   = flagField("exported", 'x')
	partialField    = flagField("partial", 'p')
	accessModeField = attrField[AccessMode]{
		name: "access mode",
		table: map[rune]AccessMode{
			'-': SingleNode,
			's': Shared,
			'c': Clustered,
		},
	}
)

// VolumeGroupAttributes is the decoded form of vg_attr.
type VolumeGroupAttributes struct {
	Permissions Permissions
	Resizeable  bool
	Exported    bool
	// Partial is set when one or more physical volumes are missing.
	Partial          bool
	AllocationPolicy AllocationPolicy
	AccessMode       AccessMode
}

// ParseVolumeGroupAttributes decodes a vg_attr string such as "wz--n-".
func ParseVolumeGroupAttributes(s string) (VolumeGroupAttributes, error) {
	var (
		attrs VolumeGroupAttributes
		err   error
	)
	r := &attrReader{rest: s}
	if attrs.Permissions, err = readField(r, permissionsField); err != nil {
		return VolumeGroupAttributes{}, err
	}
	if attrs.Resizeable, err = readField(r, resizeableField); err != nil {
		return VolumeGroupAttributes{}, err
	}
	if attrs.Exported, err = readField(r, exportedField); err != nil {
		return VolumeGroupAttributes{}, err
	}
	if attrs.Partial, err = readField(r, partialField); err != nil {
		return VolumeGroupAttributes{}, err
	}
	if attrs.AllocationPolicy, err = readField(r, allocationPolicyField); err != nil {
		return VolumeGroupAttributes{}, err
	}
	if attrs.AccessMode, err = readField(r, accessModeField); err != nil {
		return VolumeGroupAttributes{}, err
	}
	return attrs, nil
}

func (a VolumeGroupAttributes) String() string {
	s, err := a.encode()
	if err != nil {
		return "??????"
	}
	return s
}

func (a VolumeGroupAttributes) encode() (string, error) {
	var out []rune
	for _, enc := range []func() (rune, error){
		func() (rune, error) { return permissionsField.encode(a.Permissions) },
		func() (rune, error) { return resizeableField.encode(a.Resizeable) },
		func() (rune, error) { return exportedField.encode(a.Exported) },
		func() (rune, error) { return partialField.encode(a.Partial) },
		func() (rune, error) { return allocationPolicyField.encode(a.AllocationPolicy) },
		func() (rune, error) { return accessModeField.encode(a.AccessMode) },
	} {
		c, err := enc()
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}
	return string(out), nil
}

func (a VolumeGroupAttributes) MarshalText() ([]byte, error) {
	s, err := a.encode()
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

func (a *VolumeGroupAttributes) UnmarshalText(text []byte) error {
	parsed, err := ParseVolumeGroupAttributes(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
