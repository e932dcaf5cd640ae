// Copyright 2018 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package metrics

import (
	"context"
	"sort"
	"time"

	project_model "code.mojo.dev/mojo/models/project"
	"code.mojo.dev/mojo/modules/log"
	"code.mojo.dev/mojo/modules/timeutil"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "mojo_"

// Collector implements the prometheus.Collector interface and
// exposes mojo metrics for prometheus
type Collector struct {
	ctx context.Context
	now func() time.Time

	Releases         *prometheus.Desc
	Projects         *prometheus.Desc
	ProjectsByStatus *prometheus.Desc
	Issues           *prometheus.Desc
	IssuesByStage    *prometheus.Desc
	IssuesByStatus   *prometheus.Desc
	IssuesByBoarding *prometheus.Desc
	Items            *prometheus.Desc
	ItemsToEstimate  *prometheus.Desc
	Dailyreports     *prometheus.Desc
}

// NewCollector returns a new Collector reading from the database of ctx, derived
// values are evaluated at the instant now returns, the clock when now is nil
func NewCollector(ctx context.Context, now func() time.Time) Collector {
	if now == nil {
		now = timeutil.Now
	}
	return Collector{
		ctx: ctx,
		now: now,
		Releases: prometheus.NewDesc(
			namespace+"releases",
			"Number of Releases",
			nil, nil,
		),
		Projects: prometheus.NewDesc(
			namespace+"projects",
			"Number of Projects",
			nil, nil,
		),
		ProjectsByStatus: prometheus.NewDesc(
			namespace+"projects_by_status",
			"Number of Projects by status",
			[]string{"status"}, nil,
		),
		Issues: prometheus.NewDesc(
			namespace+"issues",
			"Number of Issues",
			nil, nil,
		),
		IssuesByStage: prometheus.NewDesc(
			namespace+"issues_by_stage",
			"Number of Issues by stage",
			[]string{"stage"}, nil,
		),
		IssuesByStatus: prometheus.NewDesc(
			namespace+"issues_by_status",
			"Number of Issues by derived status",
			[]string{"status"}, nil,
		),
		IssuesByBoarding: prometheus.NewDesc(
			namespace+"issues_by_boarding",
			"Number of Issues by boarding",
			[]string{"boarding"}, nil,
		),
		Items: prometheus.NewDesc(
			namespace+"items",
			"Number of Items",
			nil, nil,
		),
		ItemsToEstimate: prometheus.NewDesc(
			namespace+"items_need_estimate",
			"Number of Items waiting for an estimate",
			nil, nil,
		),
		Dailyreports: prometheus.NewDesc(
			namespace+"dailyreports",
			"Number of Dailyreports",
			nil, nil,
		),
	}
}

// Describe returns all possible prometheus.Desc
func (c Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.Releases
	ch <- c.Projects
	ch <- c.ProjectsByStatus
	ch <- c.Issues
	ch <- c.IssuesByStage
	ch <- c.IssuesByStatus
	ch <- c.IssuesByBoarding
	ch <- c.Items
	ch <- c.ItemsToEstimate
	ch <- c.Dailyreports
}

func gauge(ch chan<- prometheus.Metric, desc *prometheus.Desc, v int64, labels ...string) {
	ch <- prometheus.MustNewConstMetric(desc, prometheus.GaugeValue, float64(v), labels...)
}

// byLabel emits one gauge per key of m, in label order
func byLabel[K ~string](ch chan<- prometheus.Metric, desc *prometheus.Desc, m map[K]int64) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	for _, k := range keys {
		gauge(ch, desc, m[K(k)], k)
	}
}

// Collect returns the metrics with values
func (c Collector) Collect(ch chan<- prometheus.Metric) {
	stats, err := project_model.GetStatistic(c.ctx, c.now())
	if err != nil {
		log.Error("Unable to collect mojo statistic: %v", err)
		return
	}

	gauge(ch, c.Releases, stats.Counter.Release)
	gauge(ch, c.Projects, stats.Counter.Project)
	byLabel(ch, c.ProjectsByStatus, stats.Counter.ProjectByStatus)
	gauge(ch, c.Issues, stats.Counter.Issue)
	byLabel(ch, c.IssuesByStage, stats.Counter.IssueByStage)
	byLabel(ch, c.IssuesByStatus, stats.Counter.IssueByStatus)
	byLabel(ch, c.IssuesByBoarding, stats.Counter.IssueByBoarding)
	gauge(ch, c.Items, stats.Counter.Item)
	gauge(ch, c.ItemsToEstimate, stats.Counter.ItemNeedEstimate)
	gauge(ch, c.Dailyreports, stats.Counter.Dailyreport)
}

// WriteTextfile gathers the metrics of a fresh registry into filename,
// in the text format understood by the node exporter textfile collector
func WriteTextfile(ctx context.Context, filename string, now func() time.Time) error {
	registry := prometheus.NewRegistry()
	if err := registry.Register(NewCollector(ctx, now)); err != nil {
		return err
	}
	return prometheus.WriteToTextfile(filename, registry)
}
