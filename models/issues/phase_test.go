// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package issues_test

import (
	"testing"

	"code.mojo.dev/mojo/models/db"
	issues_model "code.mojo.dev/mojo/models/issues"
	"code.mojo.dev/mojo/models/unittest"
	"code.mojo.dev/mojo/modules/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePhasesYAML(t *testing.T) {
	phases, err := issues_model.ParsePhasesYAML([]byte(`
- title: Design
  order: 1
  skill: ux
- title: Development
  order: 2
  skill: backend
`))
	require.NoError(t, err)
	require.Len(t, phases, 2)
	assert.Equal(t, "Design", phases[0].Title)
	assert.EqualValues(t, 2, phases[1].Order)
	assert.Equal(t, "backend", phases[1].Skill)

	_, err = issues_model.ParsePhasesYAML([]byte("- order: 1\n"))
	assert.ErrorIs(t, err, util.ErrInvalidArgument)

	_, err = issues_model.ParsePhasesYAML([]byte("title: [unclosed"))
	assert.Error(t, err)
}

func TestUpsertPhases(t *testing.T) {
	unittest.PrepareTestDatabase(t)
	design := createPhase(t, "Design", 5)

	got, err := issues_model.GetPhaseByID(db.DefaultContext, design.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 5, got.Order)

	require.NoError(t, issues_model.UpsertPhases(db.DefaultContext, []*issues_model.Phase{
		{Title: "design", Order: 1, Skill: "ux"},
		{Title: "QA", Order: 3, Skill: "qa"},
	}))
	unittest.AssertCount(t, &issues_model.Phase{}, 2)

	// the cached entry is dropped on update
	got, err = issues_model.GetPhaseByID(db.DefaultContext, design.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.Order)
	assert.Equal(t, "ux", got.Skill)
	assert.Equal(t, "Design", got.Title)

	qa, err := issues_model.GetPhaseByTitle(db.DefaultContext, "qa")
	require.NoError(t, err)
	assert.EqualValues(t, 3, qa.Order)

	phases, err := issues_model.GetPhases(db.DefaultContext)
	require.NoError(t, err)
	require.Len(t, phases, 2)
	assert.Equal(t, design.ID, phases[0].ID)
	assert.Equal(t, qa.ID, phases[1].ID)

	_, err = issues_model.GetPhaseByTitle(db.DefaultContext, "Deploy")
	assert.True(t, issues_model.IsErrPhaseNotExist(err))
	_, err = issues_model.GetPhaseByID(db.DefaultContext, unittest.NonexistentID)
	assert.True(t, issues_model.IsErrPhaseNotExist(err))

	assert.ErrorIs(t, issues_model.CreatePhase(db.DefaultContext, &issues_model.Phase{}), util.ErrInvalidArgument)
}
