// Copyright (c) Microsoft Corporation.
// Licensed under the MIT License.

package version

import (
	"context"
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
)

// These are set during build time via -ldflags.
var (
	version   = ""
	gitCommit = "N/A"
	buildDate = "N/A"
)

// Info holds the version information.
type Info struct {
	Version   string `json:"version" yaml:"version"`
	GitCommit string `json:"gitCommit" yaml:"gitCommit"`
	BuildDate string `json:"buildDate" yaml:"buildDate"`
	GoVersion string `json:"goVersion" yaml:"goVersion"`
	Compiler  string `json:"compiler" yaml:"compiler"`
	Platform  string `json:"platform" yaml:"platform"`
	// LVMVersion is the version of the lvm tools on the host, when known.
	LVMVersion string `json:"lvmVersion,omitempty" yaml:"lvmVersion,omitempty"`
}

// GetInfo returns the version information. Without -ldflags the module
// version from the build info is used.
func GetInfo() Info {
	return Info{
		Version:   resolveVersion(version, debug.ReadBuildInfo),
		GitCommit: gitCommit,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
		Compiler:  runtime.Compiler,
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

func resolveVersion(linked string, read func() (*debug.BuildInfo, bool)) string {
	if linked != "" {
		return linked
	}
	if bi, ok := read(); ok && bi.Main.Version != "" {
		return bi.Main.Version
	}
	return "(devel)"
}

func Log(log logr.Logger) {
	info := GetInfo()
	log.Info("version info",
		"version", info.Version,
		"gitCommit", info.GitCommit,
		"buildDate", info.BuildDate,
		"goVersion", info.GoVersion,
		"compiler", info.Compiler,
		"platform", info.Platform,
	)
}

// Detect is used by OTel to decorate resources with the version info.
func (i Info) Detect(context.Context) (*resource.Resource, error) {
	return resource.NewWithAttributes(
		"",
		attribute.String("service.version", i.Version),
		attribute.String("service.gitCommit", i.GitCommit),
		attribute.String("service.buildDate", i.BuildDate),
	), nil
}
