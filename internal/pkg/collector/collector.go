// Copyright (c) Microsoft Corporation.
// Licensed under the MIT License.

// Package collector exports lvm volume group and logical volume state as
// prometheus metrics.
package collector

import (
	"context"
	"time"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	"k8s.io/apimachinery/pkg/api/resource"

	"lvm2-cmd/internal/pkg/convert"
	"lvm2-cmd/internal/pkg/lvm"
)

const (
	namespace = "lvm"

	// DefaultTimeout bounds the lvm queries of a single scrape.
	DefaultTimeout = 10 * time.Second
)

// Collector queries lvm on every scrape. Records are not cached between
// scrapes.
type Collector struct {
	manager  lvm.Manager
	timeout  time.Duration
	nodeName string
	log      logr.Logger

	vgSize      *prometheus.Desc
	vgFree      *prometheus.Desc
	vgLVCount   *prometheus.Desc
	vgPVCount   *prometheus.Desc
	vgPartial   *prometheus.Desc
	lvSize      *prometheus.Desc
	lvActive    *prometheus.Desc
	lvOpen      *prometheus.Desc
	scrapeError *prometheus.Desc
}

var _ prometheus.Collector = &Collector{}

// Option configures a Collector.
type Option func(*Collector)

// WithTimeout bounds each scrape. Zero or negative values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Collector) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithNodeName adds a constant node label to every metric.
func WithNodeName(name string) Option {
	return func(c *Collector) {
		c.nodeName = name
	}
}

// WithLogger sets the logger used to report scrape failures.
func WithLogger(log logr.Logger) Option {
	return func(c *Collector) {
		c.log = log
	}
}

// New returns a Collector reading from m.
func New(m lvm.Manager, opts ...Option) *Collector {
	c := &Collector{
		manager: m,
		timeout: DefaultTimeout,
		log:     logr.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}

	var constLabels prometheus.Labels
	if c.nodeName != "" {
		constLabels = prometheus.Labels{"node": c.nodeName}
	}
	vg := []string{"vg"}
	lv := []string{"vg", "lv"}
	desc := func(subsystem, name, help string, labels []string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystem, name), help, labels, constLabels)
	}

	c.vgSize = desc("vg", "size_bytes", "Size of the volume group in bytes.", vg)
	c.vgFree = desc("vg", "free_bytes", "Unallocated space in the volume group in bytes.", vg)
	c.vgLVCount = desc("vg", "lv_count", "Number of logical volumes in the volume group.", vg)
	c.vgPVCount = desc("vg", "pv_count", "Number of physical volumes in the volume group.", vg)
	c.vgPartial = desc("vg", "partial", "1 if one or more physical volumes of the group are missing.", vg)
	c.lvSize = desc("lv", "size_bytes", "Size of the logical volume in bytes.", lv)
	c.lvActive = desc("lv", "active", "1 if the logical volume is active.", lv)
	c.lvOpen = desc("lv", "open", "1 if the logical volume device is open.", lv)
	c.scrapeError = desc("", "scrape_error", "1 if the last scrape failed to query lvm.", nil)
	return c
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range []*prometheus.Desc{
		c.vgSize, c.vgFree, c.vgLVCount, c.vgPVCount, c.vgPartial,
		c.lvSize, c.lvActive, c.lvOpen, c.scrapeError,
	} {
		ch <- d
	}
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	vgs, lvs, err := c.query(ctx)
	if err != nil {
		c.log.Error(err, "failed to query lvm")
		ch <- prometheus.MustNewConstMetric(c.scrapeError, prometheus.GaugeValue, 1)
		return
	}
	ch <- prometheus.MustNewConstMetric(c.scrapeError, prometheus.GaugeValue, 0)

	total := resource.NewQuantity(0, resource.BinarySI)
	free := resource.NewQuantity(0, resource.BinarySI)
	for _, vg := range vgs {
		name := vg.Name.String()
		ch <- prometheus.MustNewConstMetric(c.vgSize, prometheus.GaugeValue, float64(vg.Capacity.Bytes()), name)
		ch <- prometheus.MustNewConstMetric(c.vgFree, prometheus.GaugeValue, float64(vg.Free.Bytes()), name)
		ch <- prometheus.MustNewConstMetric(c.vgLVCount, prometheus.GaugeValue, float64(vg.LVCount), name)
		ch <- prometheus.MustNewConstMetric(c.vgPVCount, prometheus.GaugeValue, float64(vg.PVCount), name)
		ch <- prometheus.MustNewConstMetric(c.vgPartial, prometheus.GaugeValue, boolToFloat(vg.Attributes.Partial), name)
		total.Add(*convert.CapacityToQuantity(vg.Capacity))
		free.Add(*convert.CapacityToQuantity(vg.Free))
	}
	for _, lv := range lvs {
		labels := []string{lv.VolumeGroupName.String(), lv.Name.String()}
		ch <- prometheus.MustNewConstMetric(c.lvSize, prometheus.GaugeValue, float64(lv.Capacity.Bytes()), labels...)
		ch <- prometheus.MustNewConstMetric(c.lvActive, prometheus.GaugeValue, boolToFloat(lv.Attributes.IsActive()), labels...)
		ch <- prometheus.MustNewConstMetric(c.lvOpen, prometheus.GaugeValue, boolToFloat(lv.Attributes.IsOpen()), labels...)
	}

	c.log.V(4).Info("collected lvm metrics",
		"volumeGroups", len(vgs),
		"logicalVolumes", len(lvs),
		"totalCapacity", total.String(),
		"totalFree", free.String(),
	)
}

func (c *Collector) query(ctx context.Context) ([]lvm.VolumeGroup, []lvm.LogicalVolume, error) {
	vgs, err := c.manager.ListVolumeGroups(ctx)
	if err != nil {
		return nil, nil, err
	}
	lvs, err := c.manager.ListLogicalVolumes(ctx)
	if err != nil {
		return nil, nil, err
	}
	return vgs, lvs, nil
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
