// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package optional

type Option[T any] []T

func None[T any]() Option[T] {
	return nil
}

func Some[T any](v T) Option[T] {
	return Option[T]{v}
}

func FromPtr[T any](v *T) Option[T] {
	if v == nil {
		return None[T]()
	}
	return Some(*v)
}

func (o Option[T]) Has() bool {
	return o != nil
}

func (o Option[T]) Value() T {
	var zero T
	return o.ValueOrDefault(zero)
}

func (o Option[T]) ValueOrDefault(v T) T {
	if o.Has() {
		return o[0]
	}
	return v
}

// Ptr returns nil for None, used where a nullable column or JSON field is expected
func (o Option[T]) Ptr() *T {
	if !o.Has() {
		return nil
	}
	v := o[0]
	return &v
}

// Map applies f to the value of a Some
func Map[T, R any](o Option[T], f func(T) R) Option[R] {
	if !o.Has() {
		return None[R]()
	}
	return Some(f(o[0]))
}
