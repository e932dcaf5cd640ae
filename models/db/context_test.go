// Copyright 2022 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package db_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"code.mojo.dev/mojo/models/db"
	"code.mojo.dev/mojo/models/unittest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
	"xorm.io/builder"
)

type TestRecord struct {
	ID    int64 `xorm:"pk autoincr"`
	Name  string
	Score int
}

type findRecordsOptions struct {
	MinScore int
}

func (opts findRecordsOptions) ToConds() builder.Cond {
	return builder.Gte{"score": opts.MinScore}
}

func (opts findRecordsOptions) ToOrders() string {
	return "score DESC"
}

func init() {
	db.RegisterModel(new(TestRecord))
}

func insertRecords(t *testing.T, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		require.NoError(t, db.Insert(db.DefaultContext, &TestRecord{Name: "record", Score: i}))
	}
}

func TestInTransaction(t *testing.T) {
	unittest.PrepareTestDatabase(t)
	assert.False(t, db.InTransaction(db.DefaultContext))
	assert.NoError(t, db.WithTx(db.DefaultContext, func(ctx context.Context) error {
		assert.True(t, db.InTransaction(ctx))
		assert.ErrorIs(t, db.WithTx(ctx, func(ctx context.Context) error { return nil }), db.ErrAlreadyInTransaction)
		return db.AutoTx(ctx, func(ctx context.Context) error {
			assert.True(t, db.InTransaction(ctx))
			return nil
		})
	}))
}

func TestWithTx_Rollback(t *testing.T) {
	unittest.PrepareTestDatabase(t)
	boom := errors.New("boom")
	err := db.WithTx(db.DefaultContext, func(ctx context.Context) error {
		require.NoError(t, db.Insert(ctx, &TestRecord{Name: "gone"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)
	unittest.AssertNotExistsBean(t, &TestRecord{Name: "gone"})
}

func TestFind(t *testing.T) {
	unittest.PrepareTestDatabase(t)
	insertRecords(t, 5)

	records, err := db.Find[TestRecord](db.DefaultContext, findRecordsOptions{MinScore: 3})
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, 5, records[0].Score)

	count, err := db.Count[TestRecord](db.DefaultContext, findRecordsOptions{MinScore: 4})
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	r, has, err := db.GetByID[TestRecord](db.DefaultContext, records[0].ID)
	require.NoError(t, err)
	assert.True(t, has)
	assert.Equal(t, 5, r.Score)

	exist, err := db.Exist[TestRecord](db.DefaultContext, builder.Eq{"score": 6})
	require.NoError(t, err)
	assert.False(t, exist)

	n, err := db.DeleteByID[TestRecord](db.DefaultContext, r.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	_, has, err = db.GetByID[TestRecord](db.DefaultContext, r.ID)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestIterate(t *testing.T) {
	unittest.PrepareTestDatabase(t)
	insertRecords(t, 120)

	var scores []int
	err := db.Iterate(db.DefaultContext, builder.Gt{"score": 10}, func(ctx context.Context, r *TestRecord) error {
		scores = append(scores, r.Score)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, scores, 110)
	assert.Equal(t, 11, scores[0])
	assert.Equal(t, 120, scores[109])

	stop := errors.New("stop")
	seen := 0
	err = db.Iterate(db.DefaultContext, nil, func(ctx context.Context, r *TestRecord) error {
		seen++
		if seen == 3 {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 3, seen)

	ctx, cancel := context.WithCancel(db.DefaultContext)
	cancel()
	err = db.Iterate(ctx, nil, func(ctx context.Context, r *TestRecord) error { return nil })
	assert.True(t, db.IsErrCancelled(err))
}

func TestDumpTablesAsYAML(t *testing.T) {
	unittest.PrepareTestDatabase(t)
	insertRecords(t, 2)

	dir := t.TempDir()
	require.NoError(t, db.DumpTablesAsYAML(dir, new(TestRecord)))

	data, err := os.ReadFile(filepath.Join(dir, "test_record.yml"))
	require.NoError(t, err)
	var rows []map[string]any
	require.NoError(t, yaml.Unmarshal(data, &rows))
	require.Len(t, rows, 2)
	assert.EqualValues(t, 1, rows[0]["id"])
	assert.EqualValues(t, 2, rows[1]["score"])
}

func TestNamesToBean(t *testing.T) {
	unittest.PrepareTestDatabase(t)

	beans, err := db.NamesToBean("test_record", "TestRecord")
	require.NoError(t, err)
	assert.Len(t, beans, 1)

	beans, err = db.NamesToBean()
	require.NoError(t, err)
	assert.Len(t, beans, len(db.Tables()))

	_, err = db.NamesToBean("missing")
	assert.Error(t, err)
}
