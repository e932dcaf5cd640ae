// Copyright 2021 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package unittest

import (
	"context"
	"testing"

	"code.mojo.dev/mojo/models/db"
	"code.mojo.dev/mojo/modules/setting"

	"github.com/stretchr/testify/require"
	"xorm.io/xorm"
	"xorm.io/xorm/names"
)

// PrepareTestDatabase opens a fresh in-memory sqlite database, syncs every
// registered model into it and makes it the default engine until the test ends
func PrepareTestDatabase(t testing.TB) {
	t.Helper()

	x, err := xorm.NewEngine("sqlite", "file::memory:?_pragma=busy_timeout(5000)")
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	x.SetMaxOpenConns(1)
	x.SetMapper(names.GonicMapper{})
	x.SetLogger(db.NewXORMLogger(false))

	oldType := setting.Database.Type
	setting.Database.Type = "sqlite"
	db.SetDefaultEngine(context.Background(), x)
	require.NoError(t, db.SyncAllTables())

	t.Cleanup(func() {
		db.UnsetDefaultEngine()
		setting.Database.Type = oldType
	})
}
