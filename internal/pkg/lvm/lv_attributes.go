// Copyright (c) Microsoft Corporation.
// Licensed under the MIT License.

package lvm

import "fmt"

// VolumeTypeKind is the first lv_attr position.
type VolumeTypeKind int

const (
	Simple VolumeTypeKind = iota
	Cache
	Mirrored
	Origin
	Raid
	Snapshot
	PVMove
	Virtual
	MirrorOrRaidImage
	MirrorLog
	UnderConversion
	ThinVolume
	ThinPool
	VDOPool
	RaidOrPoolMetadataOrSpare
)

var volumeTypeNames = map[VolumeTypeKind]string{
	Simple:                    "simple",
	Cache:                     "cache",
	Mirrored:                  "mirrored",
	Origin:                    "origin",
	Raid:                      "raid",
	Snapshot:                  "snapshot",
	PVMove:                    "pvmove",
	Virtual:                   "virtual",
	MirrorOrRaidImage:         "mirror-or-raid-image",
	MirrorLog:                 "mirror-log",
	UnderConversion:           "under-conversion",
	ThinVolume:                "thin-volume",
	ThinPool:                  "thin-pool",
	VDOPool:                   "vdo-pool",
	RaidOrPoolMetadataOrSpare: "raid-or-pool-metadata-or-spare",
}

func (k VolumeTypeKind) String() string {
	if s, ok := volumeTypeNames[k]; ok {
		return s
	}
	return fmt.Sprintf("VolumeTypeKind(%d)", int(k))
}

// VolumeType is the decoded volume type. Only the flag belonging to Kind is
// ever set.
type VolumeType struct {
	Kind VolumeTypeKind
	// InitialSync is set for Mirrored and Raid volumes created with an
	// initial synchronisation.
	InitialSync bool
	// Merging is set for an Origin with a merging snapshot and for a
	// merging Snapshot.
	Merging bool
	// OutOfSync is set for a MirrorOrRaidImage that is out of sync.
	OutOfSync bool
	// Data is set for the data sub-volume of a ThinPool or VDOPool.
	Data bool
}

func (t VolumeType) String() string {
	var flag string
	switch {
	case t.InitialSync:
		flag = "initial-sync"
	case t.Merging:
		flag = "merging"
	case t.OutOfSync:
		flag = "out-of-sync"
	case t.Data:
		flag = "data"
	}
	if flag == "" {
		return t.Kind.String()
	}
	return t.Kind.String() + " (" + flag + ")"
}

var volumeTypeField = attrField[VolumeType]{
	name: "volume type",
	table: map[rune]VolumeType{
		'-': {Kind: Simple},
		'C': {Kind: Cache},
		'm': {Kind: Mirrored},
		'M': {Kind: Mirrored, InitialSync: true},
		'o': {Kind: Origin},
		'O': {Kind: Origin, Merging: true},
		'r': {Kind: Raid, InitialSync: true},
		'R': {Kind: Raid},
		's': {Kind: Snapshot, Merging: true},
		'S': {Kind: Snapshot},
		'p': {Kind: PVMove},
		'v': {Kind: Virtual},
		'i': {Kind: MirrorOrRaidImage},
		'I': {Kind: MirrorOrRaidImage, OutOfSync: true},
		'l': {Kind: MirrorLog},
		'c': {Kind: UnderConversion},
		'V': {Kind: ThinVolume},
		't': {Kind: ThinPool},
		'T': {Kind: ThinPool, Data: true},
		'd': {Kind: VDOPool},
		'D': {Kind: VDOPool, Data: true},
		'e': {Kind: RaidOrPoolMetadataOrSpare},
	},
}

// StateKind is the fifth lv_attr position.
type StateKind int

const (
	StateUnknown StateKind = iota
	Inactive
	Active
	Historical
	Suspended
	InvalidSnapshot
	SnapshotMergeFailed
	DevicePresentWithoutTables
	DevicePresentWithInactiveTables
	ThinPoolCheckNeeded
)

var stateNames = map[StateKind]string{
	StateUnknown:                    "unknown",
	Inactive:                        "inactive",
	Active:                          "active",
	Historical:                      "historical",
	Suspended:                       "suspended",
	InvalidSnapshot:                 "invalid-snapshot",
	SnapshotMergeFailed:             "snapshot-merge-failed",
	DevicePresentWithoutTables:      "device-present-without-tables",
	DevicePresentWithInactiveTables: "device-present-with-inactive-tables",
	ThinPoolCheckNeeded:             "thin-pool-check-needed",
}

func (k StateKind) String() string {
	if s, ok := stateNames[k]; ok {
		return s
	}
	return fmt.Sprintf("StateKind(%d)", int(k))
}

// State is the decoded activation state. Suspended only applies to
// InvalidSnapshot, SnapshotMergeFailed and ThinPoolCheckNeeded.
type State struct {
	Kind      StateKind
	Suspended bool
}

func (s State) String() string {
	if s.Suspended {
		return s.Kind.String() + " (suspended)"
	}
	return s.Kind.String()
}

var stateField = attrField[State]{
	name: "state",
	table: map[rune]State{
		'-': {Kind: Inactive},
		'a': {Kind: Active},
		'h': {Kind: Historical},
		's': {Kind: Suspended},
		'I': {Kind: InvalidSnapshot},
		'S': {Kind: InvalidSnapshot, Suspended: true},
		'm': {Kind: SnapshotMergeFailed},
		'M': {Kind: SnapshotMergeFailed, Suspended: true},
		'd': {Kind: DevicePresentWithoutTables},
		'i': {Kind: DevicePresentWithInactiveTables},
		'c': {Kind: ThinPoolCheckNeeded},
		'C': {Kind: ThinPoolCheckNeeded, Suspended: true},
		'X': {Kind: StateUnknown},
	},
}

// Status reports whether the device is open.
type Status int

const (
	Closed Status = iota
	Open
	StatusUnknown
)

func (s Status) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case StatusUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

var statusField = attrField[Status]{
	name: "status",
	table: map[rune]Status{
		'-': Closed,
		'o': Open,
		'X': StatusUnknown,
	},
}

var fixedMinorField = flagField("fixed minor", 'm')

// LogicalVolumeAttributes is the decoded form of lv_attr. Only the first six
// positions are decoded; lvm's trailing positions are ignored.
type LogicalVolumeAttributes struct {
	VolumeType       VolumeType
	Permissions      Permissions
	AllocationPolicy AllocationPolicy
	FixedMinor       bool
	State            State
	Status           Status
}

// ParseLogicalVolumeAttributes decodes an lv_attr string such as
// "-wi-a-----".
func ParseLogicalVolumeAttributes(s string) (LogicalVolumeAttributes, error) {
	var (
		attrs LogicalVolumeAttributes
		err   error
	)
	r := &attrReader{rest: s}
	if attrs.VolumeType, err = readField(r, volumeTypeField); err != nil {
		return LogicalVolumeAttributes{}, err
	}
	if attrs.Permissions, err = readField(r, permissionsField); err != nil {
		return LogicalVolumeAttributes{}, err
	}
	if attrs.AllocationPolicy, err = readField(r, allocationPolicyField); err != nil {
		return LogicalVolumeAttributes{}, err
	}
	if attrs.FixedMinor, err = readField(r, fixedMinorField); err != nil {
		return LogicalVolumeAttributes{}, err
	}
	if attrs.State, err = readField(r, stateField); err != nil {
		return LogicalVolumeAttributes{}, err
	}
	if attrs.Status, err = readField(r, statusField); err != nil {
		return LogicalVolumeAttributes{}, err
	}
	return attrs, nil
}

// IsActive reports whether the volume is active, suspended or not.
func (a LogicalVolumeAttributes) IsActive() bool {
	return a.State.Kind == Active || a.State.Kind == Suspended
}

// IsOpen reports whether the device is open.
func (a LogicalVolumeAttributes) IsOpen() bool {
	return a.Status == Open
}

// String encodes the attributes back into lvm's six character form.
func (a LogicalVolumeAttributes) String() string {
	s, err := a.encode()
	if err != nil {
		return "??????"
	}
	return s
}

func (a LogicalVolumeAttributes) encode() (string, error) {
	var out []rune
	for _, enc := range []func() (rune, error){
		func() (rune, error) { return volumeTypeField.encode(a.VolumeType) },
		func() (rune, error) { return permissionsField.encode(a.Permissions) },
		func() (rune, error) { return allocationPolicyField.encode(a.AllocationPolicy) },
		func() (rune, error) { return fixedMinorField.encode(a.FixedMinor) },
		func() (rune, error) { return stateField.encode(a.State) },
		func() (rune, error) { return statusField.encode(a.Status) },
	} {
		c, err := enc()
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}
	return string(out), nil
}

func (a LogicalVolumeAttributes) MarshalText() ([]byte, error) {
	s, err := a.encode()
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

func (a *LogicalVolumeAttributes) UnmarshalText(text []byte) error {
	parsed, err := ParseLogicalVolumeAttributes(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
