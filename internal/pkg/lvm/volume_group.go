// Copyright (c) Microsoft Corporation.
// Licensed under the MIT License.

package lvm

import (
	"context"
	"fmt"

	"github.com/dpeckett/args"
	"github.com/gotidy/ptr"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const vgSortKey = "vg_name"

func vgsArgs(selector string, targets ...string) []string {
	opts := ListVGOptions{
		Options:  "+vg_all",
		Units:    "b",
		NoSuffix: true,
		Sort:     vgSortKey,
		Select:   selector,
	}
	opts.NoLocking = true
	return append(args.MarshalArgs(opts), targets...)
}

// Get a volume group by name.
func (c *Client) GetVolumeGroup(ctx context.Context, name Name) (*VolumeGroup, error) {
	ctx, span := c.tracer.Start(ctx, "lvm/GetVolumeGroup", trace.WithAttributes(
		attribute.String("vg.name", name.String()),
	))
	defer span.End()

	if name.IsZero() {
		return nil, fmt.Errorf("%w: volume group name is required", ErrInvalidInput)
	}

	vgs, err := query[VolumeGroup](ctx, c, "vgs", "vg", vgsArgs("", name.String())...)
	if err != nil {
		return nil, err
	}
	return single(span, vgs, name.String())
}

// Get a volume group by its UUID.
func (c *Client) GetVolumeGroupByUUID(ctx context.Context, uuid UUID) (*VolumeGroup, error) {
	ctx, span := c.tracer.Start(ctx, "lvm/GetVolumeGroupByUUID", trace.WithAttributes(
		attribute.String("vg.uuid", uuid.String()),
	))
	defer span.End()

	if uuid.IsZero() {
		return nil, fmt.Errorf("%w: uuid is required", ErrInvalidInput)
	}

	vgs, err := query[VolumeGroup](ctx, c, "vgs", "vg", vgsArgs("uuid="+uuid.String())...)
	if err != nil {
		return nil, err
	}
	return single(span, vgs, uuid.String())
}

// List all volume groups, sorted by name.
func (c *Client) ListVolumeGroups(ctx context.Context) ([]VolumeGroup, error) {
	ctx, span := c.tracer.Start(ctx, "lvm/ListVolumeGroups")
	defer span.End()

	vgs, err := query[VolumeGroup](ctx, c, "vgs", "vg", vgsArgs("")...)
	if err != nil {
		return nil, err
	}
	span.AddEvent("found volume groups", trace.WithAttributes(
		attribute.Int("vg.count", len(vgs)),
	))
	return vgs, nil
}

// Create a volume group on the given physical volumes and return it as lvm
// reports it afterwards.
func (c *Client) CreateVolumeGroup(ctx context.Context, opts CreateVGOptions) (*VolumeGroup, error) {
	ctx, span := c.tracer.Start(ctx, "lvm/CreateVolumeGroup", trace.WithAttributes(
		attribute.String("vg.name", opts.Name.String()),
		attribute.StringSlice("pv.names", opts.PhysicalVolumes),
	))
	defer span.End()

	if err := opts.validate(); err != nil {
		return nil, err
	}

	cmdArgs := vgcreateArgs{
		MaxLogicalVolumes:  opts.MaxLogicalVolumes,
		MaxPhysicalVolumes: opts.MaxPhysicalVolumes,
	}
	if opts.Clustered != nil {
		cmdArgs.Clustered = ptr.Of(YesNo(*opts.Clustered))
	}

	argv := append(args.MarshalArgs(cmdArgs), opts.Name.String())
	argv = append(argv, opts.PhysicalVolumes...)
	if err := c.mutate(ctx, "vgcreate", argv...); err != nil {
		return nil, err
	}
	c.log.V(2).Info("created volume group", "vg", opts.Name.String(), "pvs", opts.PhysicalVolumes)

	return c.GetVolumeGroup(ctx, opts.Name)
}

// Remove a volume group. As with logical volumes the handle is spent.
func (c *Client) RemoveVolumeGroup(ctx context.Context, vg *VolumeGroup) error {
	ctx, span := c.tracer.Start(ctx, "lvm/RemoveVolumeGroup", trace.WithAttributes(
		attribute.String("vg.name", vg.Name.String()),
	))
	defer span.End()

	if vg.removed {
		return &NotFoundError{Resource: vg.Name.String()}
	}

	if err := c.mutate(ctx, "vgremove", append(args.MarshalArgs(vgremoveArgs{Force: true}), vg.Name.String())...); err != nil {
		return err
	}
	vg.removed = true
	c.log.V(2).Info("removed volume group", "vg", vg.Name.String())
	return nil
}

// LogicalVolumes fetches the group's member volumes.
func (vg *VolumeGroup) LogicalVolumes(ctx context.Context, m Manager) ([]LogicalVolume, error) {
	if vg.removed {
		return nil, &NotFoundError{Resource: vg.Name.String()}
	}
	return m.ListLogicalVolumesInGroup(ctx, vg.Name)
}
