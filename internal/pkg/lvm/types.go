// Copyright (c) Microsoft Corporation.
// Licensed under the MIT License.

/* SPDX-License-Identifier: Apache-2.0
 *
 * Copyright 2023 Damian Peckett <damian@pecke.tt>.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package lvm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// IntString is a JSON type for counters lvm prints either as numbers or as
// strings.
type IntString int

func (i *IntString) UnmarshalJSON(data []byte) error {
	v, err := parseReportUint(data)
	if err != nil {
		return err
	}
	*i = IntString(v)
	return nil
}

// TagList is a comma separated lvm tag list.
type TagList []string

func (t *TagList) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*t = nil
		return nil
	}
	*t = strings.Split(s, ",")
	return nil
}

// YesNo is a boolean type that marshals to "y" or "n".
type YesNo bool

var (
	Yes = PtrTo(YesNo(true))
	No  = PtrTo(YesNo(false))
)

func (yn *YesNo) MarshalArg() string {
	if *yn {
		return "y"
	}
	return "n"
}

func PtrTo[T any](v T) *T {
	return &v
}

// LogicalVolume is a logical volume as reported by lvs.
//
// The record is a snapshot: mutations such as activation are not reflected
// until the volume is queried again.
type LogicalVolume struct {
	Name            Name                    `json:"lv_name" yaml:"name"`
	VolumeGroupName Name                    `json:"vg_name" yaml:"volumeGroup"`
	UUID            UUID                    `json:"lv_uuid" yaml:"uuid"`
	Capacity        Capacity                `json:"lv_size" yaml:"capacity"`
	Path            string                  `json:"lv_path" yaml:"path"`
	Attributes      LogicalVolumeAttributes `json:"lv_attr" yaml:"attributes"`
	Tags            TagList                 `json:"lv_tags,omitempty" yaml:"tags,omitempty"`

	removed bool
}

// lvFields are the lvs columns every record must carry.
var lvFields = []string{"lv_name", "vg_name", "lv_uuid", "lv_size", "lv_path", "lv_attr"}

func (lv *LogicalVolume) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, lvFields); err != nil {
		return err
	}
	type plain LogicalVolume
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*lv = LogicalVolume(v)
	return nil
}

// ID returns the "vg/lv" identifier lvm commands accept.
func (lv *LogicalVolume) ID() string {
	return lv.VolumeGroupName.String() + "/" + lv.Name.String()
}

// Removed reports whether the volume was removed through this handle.
func (lv *LogicalVolume) Removed() bool {
	return lv.removed
}

// VolumeGroup is a volume group as reported by vgs. Member volumes are not
// held here; use LogicalVolumes to fetch them.
type VolumeGroup struct {
	Name          Name                  `json:"vg_name" yaml:"name"`
	UUID          UUID                  `json:"vg_uuid" yaml:"uuid"`
	Capacity      Capacity              `json:"vg_size" yaml:"capacity"`
	Free          Capacity              `json:"vg_free" yaml:"free"`
	LVCount       IntString             `json:"lv_count" yaml:"lvCount"`
	PVCount       IntString             `json:"pv_count" yaml:"pvCount"`
	SnapshotCount IntString             `json:"snap_count" yaml:"snapshotCount"`
	Attributes    VolumeGroupAttributes `json:"vg_attr" yaml:"attributes"`

	removed bool
}

// vgFields are the vgs columns every record must carry.
var vgFields = []string{"vg_name", "vg_uuid", "vg_size", "vg_free", "lv_count", "pv_count", "snap_count", "vg_attr"}

func (vg *VolumeGroup) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, vgFields); err != nil {
		return err
	}
	type plain VolumeGroup
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*vg = VolumeGroup(v)
	return nil
}

// requireFields fails when any of keys is absent from the JSON object or null.
func requireFields(data []byte, keys []string) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	var missing []string
	for _, k := range keys {
		v, ok := obj[k]
		if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Removed reports whether the volume group was removed through this handle.
func (vg *VolumeGroup) Removed() bool {
	return vg.removed
}

// Used returns the allocated capacity of the group.
func (vg *VolumeGroup) Used() Capacity {
	return Capacity{bytes: vg.Capacity.bytes - vg.Free.bytes}
}

// CreateLVOptions describes a new logical volume.
type CreateLVOptions struct {
	VolumeGroup Name
	Name        Name
	Size        Capacity
	// Inactive creates the volume without activating it.
	Inactive bool
	Tags     []string
}

func (o CreateLVOptions) validate() error {
	if o.VolumeGroup.IsZero() || o.Name.IsZero() {
		return fmt.Errorf("%w: volume group and logical volume names are required", ErrInvalidInput)
	}
	if o.Size.Bytes() == 0 {
		return fmt.Errorf("%w: size must be greater than zero", ErrInvalidInput)
	}
	return nil
}

// CreateVGOptions describes a new volume group.
type CreateVGOptions struct {
	Name               Name
	PhysicalVolumes    []string
	Clustered          *bool
	MaxLogicalVolumes  *int
	MaxPhysicalVolumes *int
}

func (o CreateVGOptions) validate() error {
	if o.Name.IsZero() {
		return fmt.Errorf("%w: volume group name is required", ErrInvalidInput)
	}
	if len(o.PhysicalVolumes) == 0 {
		return fmt.Errorf("%w: at least one physical volume is required", ErrInvalidInput)
	}
	return nil
}

// ListLVOptions provides options for listing LVs (lvs). Positional
// arguments are appended by the caller so the queried identifier is always
// the last argument.
type ListLVOptions struct {
	CommonOptions
	Options  string `arg:"options"`  // Report columns.
	Units    string `arg:"units"`    // Units for sizes.
	NoSuffix bool   `arg:"nosuffix"` // Omit the unit suffix from sizes.
	Sort     string `arg:"sort"`     // Sort keys.
	Select   string `arg:"select"`   // Filters objects based on criteria.
}

// ListVGOptions provides options for listing VGs (vgs). See ListLVOptions.
type ListVGOptions struct {
	CommonOptions
	Options  string `arg:"options"`  // Report columns.
	Units    string `arg:"units"`    // Units for sizes.
	NoSuffix bool   `arg:"nosuffix"` // Omit the unit suffix from sizes.
	Sort     string `arg:"sort"`     // Sort keys.
	Select   string `arg:"select"`   // Filters objects based on criteria.
}

// lvcreateArgs is the argv form of CreateLVOptions.
type lvcreateArgs struct {
	CommonOptions
	Activate string   `arg:"activate"` // Activation after creation, ay or an.
	Name     string   `arg:"name"`     // Name of the new LV.
	Size     string   `arg:"size"`     // Size with unit suffix.
	Tags     []string `arg:"addtag"`   // Tags to add to the LV.
}

// lvremoveArgs is the argv form of lvremove.
type lvremoveArgs struct {
	CommonOptions
	Force bool `arg:"force"` // Do not prompt.
}

// lvchangeArgs is the argv form of an lvchange activation toggle.
type lvchangeArgs struct {
	CommonOptions
	Activate string `arg:"activate"` // ay or n.
}

// vgcreateArgs is the argv form of CreateVGOptions.
type vgcreateArgs struct {
	CommonOptions
	Clustered          *YesNo `arg:"clustered"`          // Clustered locking.
	MaxLogicalVolumes  *int   `arg:"maxlogicalvolumes"`  // Max number of LVs allowed in a VG.
	MaxPhysicalVolumes *int   `arg:"maxphysicalvolumes"` // Max number of PVs that can belong to the VG.
}

// vgremoveArgs is the argv form of vgremove.
type vgremoveArgs struct {
	CommonOptions
	Force bool `arg:"force"` // Do not prompt.
}

// CommonOptions are options common to all lvm commands.
type CommonOptions struct {
	Config      string   `arg:"config"`      // Overrides lvm.conf settings.
	NoLocking   bool     `arg:"nolocking"`   // Disables locking.
	LockOpt     string   `arg:"lockopt"`     // Options for lvmlockd.
	Profile     string   `arg:"profile"`     // Command profile.
	DevicesFile string   `arg:"devicesfile"` // LVM device file (from /etc/lvm/devices/).
	Devices     []string `arg:"devices"`     // Overrides lvm.conf devices.
	NoHints     bool     `arg:"nohints"`     // Disables PV location hint.
}
