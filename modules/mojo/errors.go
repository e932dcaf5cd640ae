// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package mojo

import (
	"errors"
	"fmt"

	"code.mojo.dev/mojo/modules/util"
)

// ErrInvalidStage represents a stage outside triage, backlog, working and on-hold
type ErrInvalidStage struct {
	Stage string
}

// IsErrInvalidStage checks if an error is a ErrInvalidStage.
func IsErrInvalidStage(err error) bool {
	var e ErrInvalidStage
	return errors.As(err, &e)
}

func (err ErrInvalidStage) Error() string {
	return fmt.Sprintf("invalid stage [stage: %q]", err.Stage)
}

func (err ErrInvalidStage) Unwrap() error {
	return util.ErrInvalidArgument
}

// ErrInvalidStatus represents a value outside the enumeration of a field
type ErrInvalidStatus struct {
	Field string
	Value string
}

// IsErrInvalidStatus checks if an error is a ErrInvalidStatus.
func IsErrInvalidStatus(err error) bool {
	var e ErrInvalidStatus
	return errors.As(err, &e)
}

func (err ErrInvalidStatus) Error() string {
	return fmt.Sprintf("invalid %s [value: %q]", err.Field, err.Value)
}

func (err ErrInvalidStatus) Unwrap() error {
	return util.ErrInvalidArgument
}
