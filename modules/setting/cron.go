// Copyright 2020 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

// GetCronSettings maps the cron subsection to the provided config
func GetCronSettings(name string, config any) (any, error) {
	return getCronSettings(CfgProvider, name, config)
}

func getCronSettings(rootCfg ConfigProvider, name string, config any) (any, error) {
	if rootCfg == nil {
		return config, nil
	}
	if err := rootCfg.Section("cron." + name).MapTo(config); err != nil {
		return config, err
	}
	return config, nil
}
