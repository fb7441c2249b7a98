// Copyright (c) Microsoft Corporation.
// Licensed under the MIT License.

package version

import (
	"context"
	"fmt"
	"runtime"
	"runtime/debug"
	"testing"
)

func TestGetVersion(t *testing.T) {
	info := GetInfo()

	if info.Version == "" {
		t.Errorf("expected a version, got empty string")
	}
	if info.GitCommit != "N/A" || info.BuildDate != "N/A" {
		t.Errorf("unexpected build metadata: %#v", info)
	}
	if info.GoVersion != runtime.Version() || info.Compiler != runtime.Compiler {
		t.Errorf("unexpected toolchain info: %#v", info)
	}
	if info.Platform != fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH) {
		t.Errorf("Platform = %q", info.Platform)
	}
}

func TestResolveVersion(t *testing.T) {
	tests := []struct {
		name   string
		linked string
		read   func() (*debug.BuildInfo, bool)
		want   string
	}{
		{
			name:   "ldflags win",
			linked: "v1.2.3",
			read: func() (*debug.BuildInfo, bool) {
				return &debug.BuildInfo{Main: debug.Module{Version: "v0.0.1"}}, true
			},
			want: "v1.2.3",
		},
		{
			name: "module version",
			read: func() (*debug.BuildInfo, bool) {
				return &debug.BuildInfo{Main: debug.Module{Version: "v0.4.0"}}, true
			},
			want: "v0.4.0",
		},
		{
			name: "no build info",
			read: func() (*debug.BuildInfo, bool) { return nil, false },
			want: "(devel)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveVersion(tt.linked, tt.read); got != tt.want {
				t.Errorf("resolveVersion() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetect(t *testing.T) {
	res, err := Info{Version: "v1.0.0", GitCommit: "abc"}.Detect(context.Background())
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	v, ok := res.Set().Value("service.version")
	if !ok || v.AsString() != "v1.0.0" {
		t.Errorf("service.version = %v", v)
	}
}
