// Copyright 2019 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

import (
	"code.mojo.dev/mojo/modules/log"
)

// Log settings
var Log struct {
	Level    log.Level
	Mode     string
	FileName string
}

func loadLogFrom(rootCfg ConfigProvider) {
	sec := rootCfg.Section("log")
	Log.Level = log.LevelFromString(sec.Key("LEVEL").MustString("info"))
	Log.Mode = sec.Key("MODE").In("console", []string{"console", "file"})
	Log.FileName = sec.Key("FILE_NAME").MustString(AppName + ".log")

	log.Init(log.WriterMode{
		Level:    Log.Level,
		Mode:     Log.Mode,
		FileName: Log.FileName,
	})
}
