// Copyright (c) Microsoft Corporation.
// Licensed under the MIT License.

package e2e

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os/exec"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"lvm2-cmd/test/pkg/utils"
	"lvm2-cmd/test/pkg/utils/device"
)

// run invokes lvmctl with the lvm found in PATH.
func run(ctx context.Context, args ...string) (string, error) {
	return utils.RunOutput(exec.CommandContext(ctx, lvmctl, append([]string{"--lvm", "lvm"}, args...)...))
}

var _ = Describe("lvmctl", Label("e2e"), Ordered, func() {
	SetDefaultEventuallyTimeout(30 * time.Second)
	SetDefaultEventuallyPollingInterval(time.Second)
	EnforceDefaultTimeoutsWhenUsingContexts()

	var (
		dev    *device.LoopDevice
		vgName string
		lvName string
	)

	BeforeAll(func() {
		var err error
		dev, err = device.NewLoopDevice(256 << 20)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(dev.Close)

		vgName = "e2e" + utils.RandomTag()
		lvName = "data" + utils.RandomTag()
	})

	AfterAll(func(ctx context.Context) {
		// Best effort, the group is already gone on success.
		_, _ = run(ctx, "vg", "remove", vgName)
	})

	It("should report versions", func(ctx context.Context) {
		out, err := run(ctx, "version", "-o", "json")
		Expect(err).NotTo(HaveOccurred())

		var info map[string]string
		Expect(json.Unmarshal([]byte(out), &info)).To(Succeed())
		Expect(info).To(HaveKeyWithValue("lvmVersion", HavePrefix("v2.")))
	})

	It("should create a volume group", func(ctx context.Context) {
		out, err := run(ctx, "vg", "create", vgName, dev.Path(), "-o", "json")
		Expect(err).NotTo(HaveOccurred())

		var vg map[string]any
		Expect(json.Unmarshal([]byte(out), &vg)).To(Succeed())
		Expect(vg).To(HaveKeyWithValue("vg_name", vgName))
		Expect(vg).To(HaveKeyWithValue("pv_count", BeEquivalentTo(1)))

		out, err = run(ctx, "vg", "list", "--no-headers")
		Expect(err).NotTo(HaveOccurred())
		Expect(utils.GetNonEmptyLines(out)).To(ContainElement(HavePrefix(vgName + " ")))
	})

	It("should create a logical volume", func(ctx context.Context) {
		out, err := run(ctx, "lv", "create", vgName, lvName, "--size", "16Mi", "--tag", "e2e", "-o", "yaml")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("name: " + lvName))
		Expect(out).To(ContainSubstring("capacity: 16777216"))

		out, err = run(ctx, "lv", "list", "--vg", vgName, "--no-headers")
		Expect(err).NotTo(HaveOccurred())
		lines := utils.GetNonEmptyLines(out)
		Expect(lines).To(HaveLen(1))
		Expect(lines[0]).To(And(ContainSubstring(lvName), ContainSubstring("16Mi"), ContainSubstring("e2e")))
	})

	It("should toggle activation", func(ctx context.Context) {
		id := vgName + "/" + lvName

		_, err := run(ctx, "lv", "deactivate", id)
		Expect(err).NotTo(HaveOccurred())
		out, err := run(ctx, "lv", "get", id, "-o", "json")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).NotTo(ContainSubstring(`"lv_attr": "-wi-a-"`))

		_, err = run(ctx, "lv", "activate", id)
		Expect(err).NotTo(HaveOccurred())
		out, err = run(ctx, "lv", "get", id, "-o", "json")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring(`"lv_attr": "-wi-a-"`))
	})

	It("should serve metrics", func(ctx context.Context) {
		serveCtx, cancel := context.WithCancel(context.Background())
		DeferCleanup(cancel)
		cmd := exec.CommandContext(serveCtx, lvmctl, "--lvm", "lvm", "metrics", "serve", "--address", *metricsAddress)
		cmd.Stdout = GinkgoWriter
		cmd.Stderr = GinkgoWriter
		Expect(cmd.Start()).To(Succeed())
		DeferCleanup(func() { _ = cmd.Wait() })

		scrape := func(g Gomega) string {
			resp, err := http.Get("http://" + *metricsAddress + "/metrics")
			g.Expect(err).NotTo(HaveOccurred())
			defer func() { _ = resp.Body.Close() }()
			body, err := io.ReadAll(resp.Body)
			g.Expect(err).NotTo(HaveOccurred())
			return string(body)
		}
		Eventually(scrape).WithContext(ctx).Should(And(
			ContainSubstring(`lvm_lv_size_bytes{lv="`+lvName+`",vg="`+vgName+`"} 1.6777216e+07`),
			ContainSubstring("lvm_scrape_error 0"),
			ContainSubstring("lvm_command_duration_seconds"),
		))
	})

	It("should remove the logical volume", func(ctx context.Context) {
		id := vgName + "/" + lvName
		_, err := run(ctx, "lv", "remove", id)
		Expect(err).NotTo(HaveOccurred())

		out, err := utils.Run(exec.CommandContext(ctx, lvmctl, "--lvm", "lvm", "lv", "get", id))
		Expect(err).To(HaveOccurred())
		Expect(out).To(ContainSubstring("not found: " + id))
	})

	It("should remove the volume group", func(ctx context.Context) {
		_, err := run(ctx, "vg", "remove", vgName)
		Expect(err).NotTo(HaveOccurred())

		out, err := run(ctx, "vg", "list", "--no-headers")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).NotTo(ContainSubstring(vgName + " "))
	})
})
