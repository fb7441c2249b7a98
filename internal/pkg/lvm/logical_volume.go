// Copyright (c) Microsoft Corporation.
// Licensed under the MIT License.

package lvm

import (
	"context"
	"fmt"

	"github.com/dpeckett/args"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// lvSortKey keeps listings deterministic.
const lvSortKey = "vg_name,lv_name"

// lvsArgs returns the lvs argv reading every column in bytes, without taking
// locks, followed by the positional targets.
func lvsArgs(selector string, targets ...string) []string {
	opts := ListLVOptions{
		Options:  "+lv_all",
		Units:    "b",
		NoSuffix: true,
		Sort:     lvSortKey,
		Select:   selector,
	}
	opts.NoLocking = true
	return append(args.MarshalArgs(opts), targets...)
}

// Get a logical volume by volume group and name.
func (c *Client) GetLogicalVolume(ctx context.Context, vg, lv Name) (*LogicalVolume, error) {
	ctx, span := c.tracer.Start(ctx, "lvm/GetLogicalVolume", trace.WithAttributes(
		attribute.String("vg.name", vg.String()),
		attribute.String("lv.name", lv.String()),
	))
	defer span.End()

	if vg.IsZero() || lv.IsZero() {
		return nil, fmt.Errorf("%w: volume group and logical volume names are required", ErrInvalidInput)
	}

	id := vg.String() + "/" + lv.String()
	lvs, err := query[LogicalVolume](ctx, c, "lvs", "lv", lvsArgs("", id)...)
	if err != nil {
		return nil, err
	}
	return single(span, lvs, id)
}

// Get a logical volume by its UUID.
func (c *Client) GetLogicalVolumeByUUID(ctx context.Context, uuid UUID) (*LogicalVolume, error) {
	ctx, span := c.tracer.Start(ctx, "lvm/GetLogicalVolumeByUUID", trace.WithAttributes(
		attribute.String("lv.uuid", uuid.String()),
	))
	defer span.End()

	if uuid.IsZero() {
		return nil, fmt.Errorf("%w: uuid is required", ErrInvalidInput)
	}

	lvs, err := query[LogicalVolume](ctx, c, "lvs", "lv", lvsArgs("uuid="+uuid.String())...)
	if err != nil {
		return nil, err
	}
	return single(span, lvs, uuid.String())
}

// List all logical volumes, sorted by volume group then name.
func (c *Client) ListLogicalVolumes(ctx context.Context) ([]LogicalVolume, error) {
	ctx, span := c.tracer.Start(ctx, "lvm/ListLogicalVolumes")
	defer span.End()

	lvs, err := query[LogicalVolume](ctx, c, "lvs", "lv", lvsArgs("")...)
	if err != nil {
		return nil, err
	}
	span.AddEvent("found logical volumes", trace.WithAttributes(
		attribute.Int("lv.count", len(lvs)),
	))
	return lvs, nil
}

// List the logical volumes of one volume group, sorted by name.
func (c *Client) ListLogicalVolumesInGroup(ctx context.Context, vg Name) ([]LogicalVolume, error) {
	ctx, span := c.tracer.Start(ctx, "lvm/ListLogicalVolumesInGroup", trace.WithAttributes(
		attribute.String("vg.name", vg.String()),
	))
	defer span.End()

	if vg.IsZero() {
		return nil, fmt.Errorf("%w: volume group name is required", ErrInvalidInput)
	}

	lvs, err := query[LogicalVolume](ctx, c, "lvs", "lv", lvsArgs("", vg.String())...)
	if err != nil {
		return nil, err
	}
	span.AddEvent("found logical volumes", trace.WithAttributes(
		attribute.Int("lv.count", len(lvs)),
	))
	return lvs, nil
}

// Create a logical volume and return it as lvm reports it afterwards.
func (c *Client) CreateLogicalVolume(ctx context.Context, opts CreateLVOptions) (*LogicalVolume, error) {
	ctx, span := c.tracer.Start(ctx, "lvm/CreateLogicalVolume", trace.WithAttributes(
		attribute.String("vg.name", opts.VolumeGroup.String()),
		attribute.String("lv.name", opts.Name.String()),
		attribute.String("lv.size", opts.Size.String()),
	))
	defer span.End()

	if err := opts.validate(); err != nil {
		return nil, err
	}

	cmdArgs := lvcreateArgs{
		Activate: "ay",
		Name:     opts.Name.String(),
		Size:     opts.Size.MarshalArg(),
		Tags:     opts.Tags,
	}
	if opts.Inactive {
		cmdArgs.Activate = "an"
	}

	if err := c.mutate(ctx, "lvcreate", append(args.MarshalArgs(cmdArgs), opts.VolumeGroup.String())...); err != nil {
		return nil, err
	}
	c.log.V(2).Info("created logical volume", "vg", opts.VolumeGroup.String(), "lv", opts.Name.String(), "size", opts.Size.String())

	return c.GetLogicalVolume(ctx, opts.VolumeGroup, opts.Name)
}

// Remove a logical volume. The handle can't be used afterwards: every further
// call with it returns a not found error.
func (c *Client) RemoveLogicalVolume(ctx context.Context, lv *LogicalVolume) error {
	ctx, span := c.tracer.Start(ctx, "lvm/RemoveLogicalVolume", trace.WithAttributes(
		attribute.String("lv.id", lv.ID()),
	))
	defer span.End()

	if lv.removed {
		return &NotFoundError{Resource: lv.ID()}
	}

	if err := c.mutate(ctx, "lvremove", append(args.MarshalArgs(lvremoveArgs{Force: true}), lv.ID())...); err != nil {
		return err
	}
	lv.removed = true
	c.log.V(2).Info("removed logical volume", "lv", lv.ID())
	return nil
}

// Activate a logical volume. The record is not refreshed.
func (c *Client) ActivateLogicalVolume(ctx context.Context, lv *LogicalVolume) error {
	return c.setActivation(ctx, lv, true)
}

// Deactivate a logical volume. The record is not refreshed.
func (c *Client) DeactivateLogicalVolume(ctx context.Context, lv *LogicalVolume) error {
	return c.setActivation(ctx, lv, false)
}

func (c *Client) setActivation(ctx context.Context, lv *LogicalVolume, active bool) error {
	ctx, span := c.tracer.Start(ctx, "lvm/SetLogicalVolumeActivation", trace.WithAttributes(
		attribute.String("lv.id", lv.ID()),
		attribute.Bool("lv.active", active),
	))
	defer span.End()

	if lv.removed {
		return &NotFoundError{Resource: lv.ID()}
	}

	opts := lvchangeArgs{Activate: "n"}
	if active {
		opts.Activate = "ay"
	}
	return c.mutate(ctx, "lvchange", append(args.MarshalArgs(opts), lv.ID())...)
}

// single returns the only record, a not found error when there is none and
// ErrTooMany when lvm reported several.
func single[T any](span trace.Span, records []T, id string) (*T, error) {
	switch {
	case len(records) == 0:
		return nil, &NotFoundError{Resource: id}
	case len(records) > 1:
		return nil, fmt.Errorf("%w: %s", ErrTooMany, id)
	default:
		span.AddEvent("found", trace.WithAttributes(
			attribute.String("id", id),
		))
		return &records[0], nil
	}
}
