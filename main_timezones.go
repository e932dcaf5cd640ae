// Copyright 2025 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build windows

package main

// [mojo] TIME_ZONE is resolved with time.LoadLocation, which cannot find the
// zone database on some Windows installs. Embed it there.
import _ "time/tzdata"
