// Copyright 2023 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package convert

import (
	"context"
	"time"

	project_model "code.mojo.dev/mojo/models/project"
	api "code.mojo.dev/mojo/modules/structs"
)

// ToAPIProject converts a project to API format with its boarding at now
func ToAPIProject(ctx context.Context, project *project_model.Project, now time.Time) (*api.Project, error) {
	boarding, err := project_model.GetProjectBoarding(ctx, project.ID, now)
	if err != nil {
		return nil, err
	}
	return &api.Project{
		ID:        project.ID,
		ReleaseID: project.ReleaseID,
		Title:     project.Title,
		Status:    string(project.Status),
		Boarding:  boardingPtr(boarding),
		Created:   project.CreatedUnix.AsTime(),
		Updated:   project.UpdatedUnix.AsTime(),
	}, nil
}

// ToAPIRelease converts a release to API format with its boarding at now
func ToAPIRelease(ctx context.Context, release *project_model.Release, now time.Time) (*api.Release, error) {
	boarding, err := project_model.GetReleaseBoarding(ctx, release.ID, now)
	if err != nil {
		return nil, err
	}
	return &api.Release{
		ID:       release.ID,
		Title:    release.Title,
		Cutoff:   release.Cutoff.AsTimePtr(),
		Boarding: boardingPtr(boarding),
		Created:  release.CreatedUnix.AsTime(),
	}, nil
}
