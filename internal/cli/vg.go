// Copyright (c) Microsoft Corporation.
// Licensed under the MIT License.

package cli

import (
	"context"
	"fmt"

	"github.com/gotidy/ptr"
	"github.com/spf13/cobra"

	"lvm2-cmd/internal/pkg/lvm"
	"lvm2-cmd/internal/pkg/output"
)

func newVGCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "vg",
		Aliases: []string{"vgs"},
		Short:   "Manage volume groups",
	}
	cmd.AddCommand(
		newVGListCommand(a),
		newVGGetCommand(a),
		newVGCreateCommand(a),
		newVGRemoveCommand(a),
	)
	return cmd
}

func newVGListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List volume groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, func(ctx context.Context, f output.Formatter) error {
				vgs, err := a.manager.ListVolumeGroups(ctx)
				if err != nil {
					return fmt.Errorf("failed to list volume groups: %w", err)
				}
				out, err := f.FormatVolumeGroupList(vgs)
				if err != nil {
					return fmt.Errorf("failed to format output: %w", err)
				}
				write(cmd, out)
				return nil
			})
		},
	}
}

func newVGGetCommand(a *app) *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "get (NAME | --uuid UUID)",
		Short: "Show a volume group",
		Args:  identifierArgs(&id),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, f output.Formatter) error {
				vg, err := a.lookupVG(ctx, args, id)
				if err != nil {
					return err
				}
				out, err := f.FormatVolumeGroup(vg)
				if err != nil {
					return fmt.Errorf("failed to format output: %w", err)
				}
				write(cmd, out)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&id, "uuid", "", "Look the group up by lvm UUID.")
	return cmd
}

func newVGCreateCommand(a *app) *cobra.Command {
	var (
		clustered bool
		maxLVs    int
		maxPVs    int
		force     bool
	)
	cmd := &cobra.Command{
		Use:   "create NAME PV...",
		Short: "Create a volume group",
		Long: `Create a volume group on one or more physical volumes.

Devices that are not yet physical volumes are initialized by vgcreate.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, f output.Formatter) error {
				name, err := lvm.ParseName(args[0])
				if err != nil {
					return err
				}
				if !force {
					if err := a.checkDevices(args[1:]); err != nil {
						return err
					}
				}
				opts := lvm.CreateVGOptions{
					Name:            name,
					PhysicalVolumes: args[1:],
				}
				// Unset flags leave lvm's defaults in place.
				if cmd.Flags().Changed("clustered") {
					opts.Clustered = ptr.Of(clustered)
				}
				if cmd.Flags().Changed("max-lvs") {
					opts.MaxLogicalVolumes = ptr.Of(maxLVs)
				}
				if cmd.Flags().Changed("max-pvs") {
					opts.MaxPhysicalVolumes = ptr.Of(maxPVs)
				}

				vg, err := a.manager.CreateVolumeGroup(ctx, opts)
				if err != nil {
					return fmt.Errorf("failed to create volume group: %w", err)
				}
				out, err := f.FormatVolumeGroup(vg)
				if err != nil {
					return fmt.Errorf("failed to format output: %w", err)
				}
				write(cmd, out)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&clustered, "clustered", false, "Mark the group clustered.")
	cmd.Flags().IntVar(&maxLVs, "max-lvs", 0, "Maximum number of logical volumes. 0 means unlimited.")
	cmd.Flags().IntVar(&maxPVs, "max-pvs", 0, "Maximum number of physical volumes. 0 means unlimited.")
	cmd.Flags().BoolVar(&force, "force", false, "Skip the block device check on the physical volumes.")
	return cmd
}

func newVGRemoveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove NAME",
		Aliases: []string{"rm"},
		Short:   "Remove a volume group and every volume in it",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, _ output.Formatter) error {
				vg, err := a.lookupVG(ctx, args, "")
				if err != nil {
					return err
				}
				if err := a.manager.RemoveVolumeGroup(ctx, vg); err != nil {
					return fmt.Errorf("failed to remove volume group: %w", err)
				}
				write(cmd, fmt.Sprintf("volume group %s removed\n", vg.Name))
				return nil
			})
		},
	}
}

// checkDevices fails unless every path is a block device.
func (a *app) checkDevices(paths []string) error {
	for _, p := range paths {
		ok, err := a.devices.IsBlockDevice(p)
		if err != nil {
			return fmt.Errorf("%w: %v", lvm.ErrInvalidInput, err)
		}
		if !ok {
			return fmt.Errorf("%w: %s is not a block device", lvm.ErrInvalidInput, p)
		}
	}
	return nil
}

// lookupVG resolves either a name argument or a UUID.
func (a *app) lookupVG(ctx context.Context, args []string, id string) (*lvm.VolumeGroup, error) {
	if id != "" {
		u, err := lvm.ParseUUID(id)
		if err != nil {
			return nil, err
		}
		return a.manager.GetVolumeGroupByUUID(ctx, u)
	}
	name, err := lvm.ParseName(args[0])
	if err != nil {
		return nil, err
	}
	return a.manager.GetVolumeGroup(ctx, name)
}
