// Copyright (c) Microsoft Corporation.
// Licensed under the MIT License.

package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lvm2-cmd/internal/pkg/convert"
	"lvm2-cmd/internal/pkg/lvm"
	"lvm2-cmd/internal/pkg/output"
)

func newLVCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "lv",
		Aliases: []string{"lvs"},
		Short:   "Manage logical volumes",
	}
	cmd.AddCommand(
		newLVListCommand(a),
		newLVGetCommand(a),
		newLVCreateCommand(a),
		newLVRemoveCommand(a),
		newLVActivationCommand(a, "activate", "Activate a logical volume", a.activate),
		newLVActivationCommand(a, "deactivate", "Deactivate a logical volume", a.deactivate),
	)
	return cmd
}

func newLVListCommand(a *app) *cobra.Command {
	var vg string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List logical volumes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, func(ctx context.Context, f output.Formatter) error {
				var (
					lvs []lvm.LogicalVolume
					err error
				)
				if vg == "" {
					lvs, err = a.manager.ListLogicalVolumes(ctx)
				} else {
					var name lvm.Name
					if name, err = lvm.ParseName(vg); err != nil {
						return err
					}
					lvs, err = a.manager.ListLogicalVolumesInGroup(ctx, name)
				}
				if err != nil {
					return fmt.Errorf("failed to list logical volumes: %w", err)
				}
				out, err := f.FormatLogicalVolumeList(lvs)
				if err != nil {
					return fmt.Errorf("failed to format output: %w", err)
				}
				write(cmd, out)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&vg, "vg", "", "Only list volumes of this volume group.")
	return cmd
}

func newLVGetCommand(a *app) *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "get (VG/LV | --uuid UUID)",
		Short: "Show a logical volume",
		Args:  identifierArgs(&id),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, f output.Formatter) error {
				lv, err := a.lookupLV(ctx, args, id)
				if err != nil {
					return err
				}
				out, err := f.FormatLogicalVolume(lv)
				if err != nil {
					return fmt.Errorf("failed to format output: %w", err)
				}
				write(cmd, out)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&id, "uuid", "", "Look the volume up by lvm UUID.")
	return cmd
}

func newLVCreateCommand(a *app) *cobra.Command {
	var (
		size     string
		inactive bool
		tags     []string
	)
	cmd := &cobra.Command{
		Use:   "create VG NAME --size SIZE",
		Short: "Create a logical volume",
		Long: `Create a logical volume in a volume group.

The size accepts binary and decimal suffixes, e.g. 512Mi, 10Gi or 1G. lvm
rounds it up to whole extents.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, f output.Formatter) error {
				vg, err := lvm.ParseName(args[0])
				if err != nil {
					return err
				}
				name, err := lvm.ParseName(args[1])
				if err != nil {
					return err
				}
				capacity, err := convert.ParseCapacity(size)
				if err != nil {
					return err
				}
				lv, err := a.manager.CreateLogicalVolume(ctx, lvm.CreateLVOptions{
					VolumeGroup: vg,
					Name:        name,
					Size:        capacity,
					Inactive:    inactive,
					Tags:        tags,
				})
				if err != nil {
					return fmt.Errorf("failed to create logical volume: %w", err)
				}
				out, err := f.FormatLogicalVolume(lv)
				if err != nil {
					return fmt.Errorf("failed to format output: %w", err)
				}
				write(cmd, out)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&size, "size", "", "Size of the volume, e.g. 10Gi.")
	cmd.Flags().BoolVar(&inactive, "inactive", false, "Create the volume without activating it.")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "Tag to add to the volume. May be repeated.")
	_ = cmd.MarkFlagRequired("size")
	return cmd
}

func newLVRemoveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove VG/LV",
		Aliases: []string{"rm"},
		Short:   "Remove a logical volume",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, _ output.Formatter) error {
				lv, err := a.lookupLV(ctx, args, "")
				if err != nil {
					return err
				}
				if err := a.manager.RemoveLogicalVolume(ctx, lv); err != nil {
					return fmt.Errorf("failed to remove logical volume: %w", err)
				}
				write(cmd, fmt.Sprintf("logical volume %s removed\n", lv.ID()))
				return nil
			})
		},
	}
}

func newLVActivationCommand(a *app, use, short string, change func(context.Context, *lvm.LogicalVolume) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " VG/LV",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, _ output.Formatter) error {
				lv, err := a.lookupLV(ctx, args, "")
				if err != nil {
					return err
				}
				if err := change(ctx, lv); err != nil {
					return fmt.Errorf("failed to %s logical volume: %w", use, err)
				}
				write(cmd, fmt.Sprintf("logical volume %s %sd\n", lv.ID(), use))
				return nil
			})
		},
	}
}

func (a *app) activate(ctx context.Context, lv *lvm.LogicalVolume) error {
	return a.manager.ActivateLogicalVolume(ctx, lv)
}

func (a *app) deactivate(ctx context.Context, lv *lvm.LogicalVolume) error {
	return a.manager.DeactivateLogicalVolume(ctx, lv)
}

// lookupLV resolves either a "vg/lv" argument or a UUID.
func (a *app) lookupLV(ctx context.Context, args []string, id string) (*lvm.LogicalVolume, error) {
	if id != "" {
		u, err := lvm.ParseUUID(id)
		if err != nil {
			return nil, err
		}
		return a.manager.GetLogicalVolumeByUUID(ctx, u)
	}
	vg, lv, err := parseLVPath(args[0])
	if err != nil {
		return nil, err
	}
	return a.manager.GetLogicalVolume(ctx, vg, lv)
}

// parseLVPath splits a "vg/lv" identifier.
func parseLVPath(s string) (lvm.Name, lvm.Name, error) {
	vgPart, lvPart, ok := strings.Cut(s, "/")
	if !ok {
		return lvm.Name{}, lvm.Name{}, fmt.Errorf("%w: expected VG/LV, got %q", lvm.ErrInvalidInput, s)
	}
	vg, err := lvm.ParseName(vgPart)
	if err != nil {
		return lvm.Name{}, lvm.Name{}, err
	}
	lv, err := lvm.ParseName(lvPart)
	if err != nil {
		return lvm.Name{}, lvm.Name{}, err
	}
	return vg, lv, nil
}

// identifierArgs accepts exactly one positional identifier, or none when
// --uuid is set.
func identifierArgs(id *string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		switch {
		case *id != "" && len(args) > 0:
			return fmt.Errorf("specify either a name or --uuid, not both")
		case *id == "" && len(args) != 1:
			return fmt.Errorf("accepts 1 arg or --uuid, received %d", len(args))
		}
		return nil
	}
}
