// Copyright 2022 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package db

import (
	"context"

	"code.mojo.dev/mojo/modules/setting"

	"xorm.io/builder"
)

// Iterate iterates the beans of T matching cond in primary key order, batch by batch
func Iterate[T any](ctx context.Context, cond builder.Cond, f func(ctx context.Context, bean *T) error) error {
	var start int
	batchSize := setting.Database.IterateBufferSize
	if batchSize <= 0 {
		batchSize = 50
	}
	for {
		select {
		case <-ctx.Done():
			return ErrCancelledf("before next batch of %d", start)
		default:
		}

		beans := make([]*T, 0, batchSize)
		sess := GetEngine(ctx).Asc("id").Limit(batchSize, start)
		if cond != nil {
			sess = sess.Where(cond)
		}
		if err := sess.Find(&beans); err != nil {
			return err
		}
		if len(beans) == 0 {
			return nil
		}
		start += len(beans)

		for _, bean := range beans {
			if err := f(ctx, bean); err != nil {
				return err
			}
		}
		if len(beans) < batchSize {
			return nil
		}
	}
}
