// Copyright (c) Microsoft Corporation.
// Licensed under the MIT License.

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-logr/logr"
	"github.com/gotidy/ptr"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/mock/gomock"

	"lvm2-cmd/internal/pkg/config"
	"lvm2-cmd/internal/pkg/lvm"
	"lvm2-cmd/internal/pkg/sys"
)

// run executes lvmctl with args against m and returns its exit code and
// output streams.
func run(t *testing.T, m lvm.Manager, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	devices := sys.NewFake("/dev/loop0", "/dev/loop1", "/dev/sdb", "/dev/sdc")
	devices.SetIsBlockDevice("/tmp/disk.img", false)
	code := Execute(context.Background(), args, &stdout, &stderr, WithManager(m), WithDeviceUtils(devices))
	return code, stdout.String(), stderr.String()
}

func mustRun(t *testing.T, m lvm.Manager, args ...string) string {
	t.Helper()
	code, stdout, stderr := run(t, m, args...)
	if code != 0 {
		t.Fatalf("lvmctl %s exited %d: %s", strings.Join(args, " "), code, stderr)
	}
	return stdout
}

func TestLifecycle(t *testing.T) {
	f := lvm.NewFake()

	out := mustRun(t, f, "vg", "create", "vg0", "/dev/loop0", "/dev/loop1")
	if !strings.Contains(out, "vg0") || !strings.Contains(out, "2Gi") {
		t.Errorf("unexpected vg create output:\n%s", out)
	}

	out = mustRun(t, f, "vg", "list", "--no-headers")
	if fields := strings.Fields(out); len(fields) != 6 || fields[0] != "vg0" || fields[4] != "2" {
		t.Errorf("unexpected vg list output: %q", out)
	}

	out = mustRun(t, f, "lv", "create", "vg0", "data", "--size", "10Mi", "--tag", "a", "--tag", "b", "-o", "json")
	var created map[string]any
	if err := json.Unmarshal([]byte(out), &created); err != nil {
		t.Fatalf("lv create output is not JSON: %v\n%s", err, out)
	}
	if created["lv_size"] != float64(12<<20) {
		t.Errorf("lv_size = %v, want size rounded up to 12Mi", created["lv_size"])
	}
	id, _ := created["lv_uuid"].(string)

	out = mustRun(t, f, "lv", "list", "--vg", "vg0")
	for _, s := range []string{"VG", "data", "12Mi", "yes", "a,b"} {
		if !strings.Contains(out, s) {
			t.Errorf("lv list output missing %q:\n%s", s, out)
		}
	}

	out = mustRun(t, f, "lv", "deactivate", "vg0/data")
	if out != "logical volume vg0/data deactivated\n" {
		t.Errorf("unexpected deactivate output %q", out)
	}
	out = mustRun(t, f, "lv", "get", "--uuid", id, "-o", "yaml")
	if !strings.Contains(out, "name: data") {
		t.Errorf("unexpected lv get output:\n%s", out)
	}
	lv, err := f.GetLogicalVolume(context.Background(), lvm.MustParseName("vg0"), lvm.MustParseName("data"))
	if err != nil {
		t.Fatalf("GetLogicalVolume() error = %v", err)
	}
	if lv.Attributes.IsActive() {
		t.Errorf("expected volume to be inactive after deactivate")
	}
	mustRun(t, f, "lv", "activate", "vg0/data")

	out = mustRun(t, f, "lv", "remove", "vg0/data")
	if out != "logical volume vg0/data removed\n" {
		t.Errorf("unexpected remove output %q", out)
	}

	code, _, stderr := run(t, f, "lv", "get", "vg0/data")
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if stderr != "not found: vg0/data\n" {
		t.Errorf("stderr = %q", stderr)
	}

	mustRun(t, f, "vg", "rm", "vg0")
	out = mustRun(t, f, "vg", "list")
	if out != "No volume groups found\n" {
		t.Errorf("unexpected vg list output %q", out)
	}
}

func TestArgumentErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "bad output", args: []string{"vg", "list", "-o", "xml"}, want: "output"},
		{name: "negative timeout", args: []string{"vg", "list", "--timeout=-1s"}, want: "timeout"},
		{name: "name and uuid", args: []string{"lv", "get", "vg0/data", "--uuid", "Q2cM3D-0Zyl-8Yok-gbOD-JIBN-iFls-VyMjVq"}, want: "not both"},
		{name: "missing identifier", args: []string{"vg", "get"}, want: "--uuid"},
		{name: "bad lv path", args: []string{"lv", "remove", "data"}, want: "VG/LV"},
		{name: "bad uuid", args: []string{"vg", "get", "--uuid", "nope"}, want: "uuid"},
		{name: "missing size", args: []string{"lv", "create", "vg0", "data"}, want: "size"},
		{name: "bad size", args: []string{"lv", "create", "vg0", "data", "--size", "lots"}, want: "lots"},
		{name: "no pvs", args: []string{"vg", "create", "vg0"}, want: "arg"},
		{name: "missing pv", args: []string{"vg", "create", "vg0", "/dev/sdz"}, want: "/dev/sdz"},
		{name: "pv not a block device", args: []string{"vg", "create", "vg0", "/tmp/disk.img"}, want: "not a block device"},
		{name: "bad name", args: []string{"vg", "get", "b@d"}, want: "b@d"},
		{name: "missing config", args: []string{"vg", "list", "--config", "/nonexistent/lvmctl.yaml"}, want: "config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := run(t, lvm.NewFake(), tt.args...)
			if code != 1 {
				t.Errorf("exit code = %d, want 1", code)
			}
			if !strings.Contains(stderr, tt.want) {
				t.Errorf("stderr = %q, want it to mention %q", stderr, tt.want)
			}
		})
	}
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lvmctl.yaml")
	if err := os.WriteFile(path, []byte("output: json\n"), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	f := lvm.NewFake()
	mustRun(t, f, "vg", "create", "vg0", "/dev/loop0")

	out := mustRun(t, f, "vg", "list", "--config", path)
	if !strings.HasPrefix(out, "[") {
		t.Errorf("expected JSON from config file, got:\n%s", out)
	}

	out = mustRun(t, f, "vg", "list", "--config", path, "-o", "table")
	if !strings.HasPrefix(out, "NAME") {
		t.Errorf("expected flag to override config file, got:\n%s", out)
	}
}

func TestVGCreateFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want lvm.CreateVGOptions
	}{
		{
			name: "defaults",
			args: []string{"vg", "create", "vg0", "/dev/sdb"},
			want: lvm.CreateVGOptions{
				Name:            lvm.MustParseName("vg0"),
				PhysicalVolumes: []string{"/dev/sdb"},
			},
		},
		{
			name: "all flags",
			args: []string{"vg", "create", "vg0", "/dev/sdb", "/dev/sdc", "--clustered", "--max-lvs", "4", "--max-pvs", "0"},
			want: lvm.CreateVGOptions{
				Name:               lvm.MustParseName("vg0"),
				PhysicalVolumes:    []string{"/dev/sdb", "/dev/sdc"},
				Clustered:          ptr.Of(true),
				MaxLogicalVolumes:  ptr.Of(4),
				MaxPhysicalVolumes: ptr.Of(0),
			},
		},
		{
			name: "force skips device check",
			args: []string{"vg", "create", "vg0", "/tmp/disk.img", "--force"},
			want: lvm.CreateVGOptions{
				Name:            lvm.MustParseName("vg0"),
				PhysicalVolumes: []string{"/tmp/disk.img"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := lvm.NewMockManager(ctrl)
			m.EXPECT().CreateVolumeGroup(gomock.Any(), tt.want).Return(&lvm.VolumeGroup{Name: tt.want.Name}, nil)

			mustRun(t, m, tt.args...)
		})
	}
}

func TestCommandErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := lvm.NewMockManager(ctrl)
	m.EXPECT().ListVolumeGroups(gomock.Any()).Return(nil, &lvm.CommandError{
		Command:  "vgs",
		ExitCode: 3,
		Stderr:   "locking failed",
	})

	code, stdout, stderr := run(t, m, "vg", "list")
	if code != 1 || stdout != "" {
		t.Errorf("exit code = %d, stdout = %q", code, stdout)
	}
	if !strings.HasPrefix(stderr, "Error: failed to list volume groups: ") || !strings.Contains(stderr, "locking failed") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestVersion(t *testing.T) {
	tests := []struct {
		name       string
		lvmVersion string
		lvmErr     error
		want       string
	}{
		{name: "with lvm", lvmVersion: "v2.3.16", want: `"lvmVersion": "v2.3.16"`},
		{name: "without lvm", lvmErr: &lvm.InternalError{Err: errors.New("no such file")}, want: `"gitCommit"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := lvm.NewMockManager(ctrl)
			m.EXPECT().Version(gomock.Any()).Return(tt.lvmVersion, tt.lvmErr)

			out := mustRun(t, m, "version", "-o", "json")
			if !strings.Contains(out, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out)
			}
			if tt.lvmErr != nil && strings.Contains(out, "lvmVersion") {
				t.Errorf("lvmVersion should be omitted:\n%s", out)
			}
		})
	}
}

func TestMetricsHandler(t *testing.T) {
	f := lvm.NewFake()
	if _, err := f.CreateVolumeGroup(context.Background(), lvm.CreateVGOptions{
		Name:            lvm.MustParseName("vg0"),
		PhysicalVolumes: []string{"/dev/loop0"},
	}); err != nil {
		t.Fatalf("CreateVolumeGroup() error = %v", err)
	}

	cfg := config.Default()
	cfg.Metrics.NodeName = "node-1"
	a := &app{
		cfg:      cfg,
		log:      logr.Discard(),
		registry: prometheus.NewRegistry(),
		manager:  f,
	}
	if err := a.registerCollectors(); err != nil {
		t.Fatalf("registerCollectors() error = %v", err)
	}

	srv := httptest.NewServer(newMetricsHandler(a.registry))
	defer srv.Close()

	tests := []struct {
		path     string
		contains []string
	}{
		{path: "/healthz", contains: []string{"ok"}},
		{path: "/metrics", contains: []string{
			`lvm_vg_size_bytes{node="node-1",vg="vg0"} 1.073741824e+09`,
			"lvm_scrape_error",
			"go_goroutines",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(srv.URL + tt.path)
			if err != nil {
				t.Fatalf("GET %s: %v", tt.path, err)
			}
			defer func() { _ = resp.Body.Close() }()
			body, err := io.ReadAll(resp.Body)
			if err != nil {
				t.Fatalf("failed to read body: %v", err)
			}
			if resp.StatusCode != http.StatusOK {
				t.Errorf("status = %d", resp.StatusCode)
			}
			for _, s := range tt.contains {
				if !strings.Contains(string(body), s) {
					t.Errorf("%s missing %q", tt.path, s)
				}
			}
		})
	}
}

func TestServeStopsOnCancel(t *testing.T) {
	a := &app{log: logr.Discard()}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := serve(ctx, a, "127.0.0.1:0", http.NotFoundHandler()); err != nil {
		t.Errorf("serve() error = %v", err)
	}
}

func TestParseLVPath(t *testing.T) {
	tests := []struct {
		in      string
		wantVG  string
		wantLV  string
		wantErr bool
	}{
		{in: "vg0/data", wantVG: "vg0", wantLV: "data"},
		{in: "vg0", wantErr: true},
		{in: "vg0/", wantErr: true},
		{in: "/data", wantErr: true},
		{in: "vg0/b@d", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			vg, lv, err := parseLVPath(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseLVPath() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, lvm.ErrInvalidInput) {
					t.Errorf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if vg.String() != tt.wantVG || lv.String() != tt.wantLV {
				t.Errorf("parseLVPath() = %s/%s", vg, lv)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: &lvm.NotFoundError{Resource: "vg0"}, want: "not found: vg0"},
		{err: errors.Join(errors.New("context"), &lvm.NotFoundError{Resource: "vg0/data"}), want: "not found: vg0/data"},
		{err: errors.New("boom"), want: "Error: boom"},
	}
	for _, tt := range tests {
		if got := ErrorMessage(tt.err); got != tt.want {
			t.Errorf("ErrorMessage(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
