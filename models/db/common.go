// Copyright 2022 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package db

import (
	"strings"

	"code.mojo.dev/mojo/modules/setting"

	"xorm.io/builder"
)

// BuildCaseInsensitiveLike returns a condition to check if the given value is like the given key case-insensitively.
// Handles especially SQLite correctly as UPPER there only transforms ASCII letters.
func BuildCaseInsensitiveLike(key, value string) builder.Cond {
	if setting.Database.Type.IsSQLite3() {
		return builder.Expr(key+" LIKE ? COLLATE NOCASE", "%"+value+"%")
	}
	if setting.Database.Type.IsPostgreSQL() {
		return builder.Expr(key+" ILIKE ?", "%"+value+"%")
	}
	return builder.Like{"LOWER(" + key + ")", strings.ToLower(value)}
}
