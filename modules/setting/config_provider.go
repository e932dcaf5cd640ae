// Copyright 2023 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

import (
	"fmt"
	"os"

	"gopkg.in/ini.v1"
)

// ConfigProvider represents a config provider
type ConfigProvider interface {
	Section(section string) *ini.Section
	HasSection(name string) bool
}

type iniConfigProvider struct {
	file *ini.File
}

var _ ConfigProvider = (*iniConfigProvider)(nil)

// NewConfigProviderFromData this function is mainly for testing purpose
func NewConfigProviderFromData(configContent string) (ConfigProvider, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: false}, []byte(configContent))
	if err != nil {
		return nil, err
	}
	cfg.NameMapper = ini.SnackCase
	return &iniConfigProvider{file: cfg}, nil
}

// NewConfigProviderFromFile loads the ini file, a missing file yields the built-in defaults
func NewConfigProviderFromFile(file string) (ConfigProvider, error) {
	cfg := ini.Empty()
	if file != "" {
		if _, err := os.Stat(file); err == nil {
			if err := cfg.Append(file); err != nil {
				return nil, fmt.Errorf("failed to load config file %q: %w", file, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("unable to check if %q exists: %w", file, err)
		}
	}
	cfg.NameMapper = ini.SnackCase
	return &iniConfigProvider{file: cfg}, nil
}

func (p *iniConfigProvider) Section(section string) *ini.Section {
	return p.file.Section(section)
}

func (p *iniConfigProvider) HasSection(name string) bool {
	_, err := p.file.GetSection(name)
	return err == nil
}
