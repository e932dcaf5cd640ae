// Copyright 2015 The Gogs Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package structs

import (
	"time"
)

// Project represents a project of a release
type Project struct {
	ID        int64  `json:"id"`
	ReleaseID int64  `json:"release_id"`
	Title     string `json:"title"`
	// enum: queued,active,on-hold,done
	Status string `json:"status"`
	// enum: on-time,delayed,at-risk
	Boarding *string   `json:"boarding"`
	Created  time.Time `json:"created_at"`
	Updated  time.Time `json:"updated_at"`
}

// Release groups projects that ship together
type Release struct {
	ID       int64      `json:"id"`
	Title    string     `json:"title"`
	Cutoff   *time.Time `json:"cutoff"`
	Boarding *string    `json:"boarding"`
	Created  time.Time  `json:"created_at"`
}
