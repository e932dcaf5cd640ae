// Copyright 2014 The Gogs Authors. All rights reserved.
// Copyright 2017 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

import (
	"time"
)

var (
	// AppName is the program name shown in logs and the CLI
	AppName = "mojo"

	// CustomConf is the path of the ini file, set from the --config flag
	CustomConf = "custom/conf/app.ini"

	// DefaultUILocation is the location where "today" is determined
	DefaultUILocation = time.UTC

	// CfgProvider is the provider of the last loaded configuration
	CfgProvider ConfigProvider
)

// LoadCommonSettings loads every section the models and modules depend on
func LoadCommonSettings(cfg ConfigProvider) {
	CfgProvider = cfg
	loadLogFrom(cfg)
	loadDBSetting(cfg)
	loadMojoFrom(cfg)
}

// InitCfgProvider reads CustomConf and loads all settings from it
func InitCfgProvider(file string) error {
	if file != "" {
		CustomConf = file
	}
	cfg, err := NewConfigProviderFromFile(CustomConf)
	if err != nil {
		return err
	}
	LoadCommonSettings(cfg)
	return nil
}
