// Copyright 2020 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package cron

import (
	"context"

	"code.mojo.dev/mojo/modules/metrics"
	"code.mojo.dev/mojo/modules/util"
)

// ExportMetricsConfig writes the tracker metrics for the node exporter textfile collector
type ExportMetricsConfig struct {
	BaseConfig
	FileName string
}

func exportMetrics(ctx context.Context, cfg Config) error {
	emc := cfg.(*ExportMetricsConfig)
	if emc.FileName == "" {
		return util.NewInvalidArgumentErrorf("[cron.export_metrics] FILE_NAME is empty")
	}
	return metrics.WriteTextfile(ctx, emc.FileName, nil)
}

func registerExportMetrics() error {
	return RegisterTask("export_metrics", &ExportMetricsConfig{
		BaseConfig: BaseConfig{
			Enabled:    false,
			RunAtStart: true,
			Schedule:   "@every 1m",
		},
		FileName: "mojo.prom",
	}, exportMetrics)
}

func initBasicTasks() error {
	return registerExportMetrics()
}
