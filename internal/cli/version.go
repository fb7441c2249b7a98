// Copyright (c) Microsoft Corporation.
// Licensed under the MIT License.

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lvm2-cmd/internal/pkg/output"
	"lvm2-cmd/internal/pkg/version"
)

func newVersionCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print lvmctl and lvm versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, func(ctx context.Context, f output.Formatter) error {
				info := version.GetInfo()
				version.Log(a.log.V(2))

				// The lvm version is omitted when lvm cannot be run.
				if v, err := a.manager.Version(ctx); err == nil {
					info.LVMVersion = v
				} else {
					a.log.V(2).Info("could not determine lvm version", "error", err.Error())
				}

				out, err := f.FormatVersion(info)
				if err != nil {
					return fmt.Errorf("failed to format output: %w", err)
				}
				write(cmd, out)
				return nil
			})
		},
	}
}
