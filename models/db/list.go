// Copyright 2020 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package db

import (
	"context"

	"xorm.io/builder"
)

// FindOptions represents a find options
type FindOptions interface {
	ToConds() builder.Cond
}

// FindOptionsOrder is implemented by options that want a stable order
type FindOptionsOrder interface {
	ToOrders() string
}

// Find represents a common find function which accept an options interface
func Find[T any](ctx context.Context, opts FindOptions) ([]*T, error) {
	sess := GetEngine(ctx).Where(opts.ToConds())
	if o, ok := opts.(FindOptionsOrder); ok && o.ToOrders() != "" {
		sess = sess.OrderBy(o.ToOrders())
	}
	objects := make([]*T, 0, 10)
	if err := sess.Find(&objects); err != nil {
		return nil, err
	}
	return objects, nil
}

// Count represents a common count function which accept an options interface
func Count[T any](ctx context.Context, opts FindOptions) (int64, error) {
	var object T
	return GetEngine(ctx).Where(opts.ToConds()).Count(&object)
}

// GetByID loads the object with the given primary key
func GetByID[T any](ctx context.Context, id int64) (object *T, exist bool, err error) {
	var bean T
	has, err := GetEngine(ctx).ID(id).NoAutoCondition().Get(&bean)
	if err != nil {
		return nil, false, err
	} else if !has {
		return nil, false, nil
	}
	return &bean, true, nil
}

// Exist reports whether any row of T matches cond
func Exist[T any](ctx context.Context, cond builder.Cond) (bool, error) {
	if cond == nil {
		cond = builder.NewCond()
	}
	var bean T
	return GetEngine(ctx).Where(cond).NoAutoCondition().Exist(&bean)
}

// DeleteByID deletes the object with the given primary key
func DeleteByID[T any](ctx context.Context, id int64) (int64, error) {
	var bean T
	return GetEngine(ctx).ID(id).NoAutoCondition().NoAutoTime().Delete(&bean)
}
