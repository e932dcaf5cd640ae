// Copyright 2020 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package convert

import (
	"context"

	issues_model "code.mojo.dev/mojo/models/issues"
	"code.mojo.dev/mojo/modules/mojo"
	"code.mojo.dev/mojo/modules/optional"
	api "code.mojo.dev/mojo/modules/structs"
	"code.mojo.dev/mojo/modules/timeutil"
)

func dateString(d timeutil.Date) string {
	return d.String()
}

func boardingPtr[T ~string](o optional.Option[T]) *string {
	return optional.Map(o, func(b T) string { return string(b) }).Ptr()
}

// ToAPIIssue converts an issue and its derived state to API format
func ToAPIIssue(ctx context.Context, issue *issues_model.Issue, state *mojo.IssueState) (*api.Issue, error) {
	relatedIDs, err := issues_model.GetRelatedIssueIDs(ctx, issue.ID)
	if err != nil {
		return nil, err
	}
	if relatedIDs == nil {
		relatedIDs = []int64{}
	}

	apiIssue := &api.Issue{
		ID:              issue.ID,
		ProjectID:       issue.ProjectID,
		Title:           issue.Title,
		Kind:            string(issue.Kind),
		Priority:        string(issue.Priority),
		Stage:           string(issue.Stage),
		Origin:          string(issue.Origin),
		LastMovingTime:  issue.LastMovingTime.AsTimePtr(),
		IsDraft:         issue.IsDraft,
		RelatedIssueIDs: relatedIDs,
		Created:         issue.CreatedUnix.AsTime(),
		Updated:         issue.UpdatedUnix.AsTime(),
		Phases:          []*api.IssuePhase{},
	}
	if state == nil {
		return apiIssue, nil
	}

	apiIssue.DueDate = dateString(state.DueDate)
	apiIssue.IsDone = state.IsDone
	apiIssue.PhaseID = state.PhaseID.Ptr()
	apiIssue.Status = string(state.Status)
	apiIssue.Boarding = string(state.Boarding)
	apiIssue.BoardingValue = state.BoardingValue
	apiIssue.PriorityValue = state.PriorityValue
	apiIssue.ResponseTime = state.ResponseTime.Ptr()
	for i := range state.Phases {
		apiIssue.Phases = append(apiIssue.Phases, ToAPIIssuePhase(&state.Phases[i], nil))
	}
	return apiIssue, nil
}

// ToAPIIssuePhase converts a phase rollup to API format, items are looked up in beans by id when given
func ToAPIIssuePhase(state *mojo.PhaseState, beans map[int64]*issues_model.Item) *api.IssuePhase {
	p := &api.IssuePhase{
		ID:             state.ID,
		PhaseID:        state.PhaseID,
		Status:         string(state.Status),
		StartDate:      dateString(state.StartDate),
		EndDate:        dateString(state.EndDate),
		EstimatedHours: state.EstimatedHours.Ptr(),
		HoursWorked:    state.HoursWorked.Ptr(),
		RemainingHours: state.RemainingHours.Ptr(),
		Progress:       state.Progress.Ptr(),
		AllEstimated:   state.AllEstimated,
		Boarding:       boardingPtr(state.Boarding),
		Items:          make([]*api.Item, 0, len(state.Items)),
	}
	for i := range state.Items {
		p.Items = append(p.Items, ToAPIItem(beans[state.Items[i].ID], &state.Items[i]))
	}
	return p
}

// ToAPIItem converts an item to API format, either argument may be nil
func ToAPIItem(item *issues_model.Item, state *mojo.ItemState) *api.Item {
	apiItem := &api.Item{}
	if item != nil {
		apiItem.ID = item.ID
		apiItem.IssuePhaseID = item.IssuePhaseID
		apiItem.MemberID = item.MemberID
		apiItem.StartDate = dateString(item.StartDate)
		apiItem.EndDate = dateString(item.EndDate)
		apiItem.EstimatedHours = item.EstimatedHours
		apiItem.IsDone = item.IsDone
	}
	if state != nil {
		apiItem.ID = state.ID
		apiItem.Status = string(state.Status)
		apiItem.Perspective = string(state.Perspective)
		apiItem.HoursWorked = state.HoursWorked.Ptr()
		apiItem.ResponseTime = state.ResponseTime.Ptr()
		apiItem.GracePeriod = state.GracePeriod.Ptr()
		apiItem.RemainingHours = state.RemainingHours.Ptr()
		apiItem.Progress = state.Progress.Ptr()
		apiItem.DaysLeftToEstimate = state.DaysLeftToEstimate.Ptr()
		apiItem.Boarding = boardingPtr(state.Boarding)
	}
	return apiItem
}

// ToAPIDailyreport converts a daily report to API format
func ToAPIDailyreport(r *issues_model.Dailyreport) *api.Dailyreport {
	return &api.Dailyreport{
		ID:     r.ID,
		ItemID: r.ItemID,
		Date:   dateString(r.Date),
		Hours:  r.Hours,
		Note:   r.Note,
	}
}

// ToAPIPhases converts configured phases to API format
func ToAPIPhases(phases []*issues_model.Phase) []*api.Phase {
	result := make([]*api.Phase, 0, len(phases))
	for _, p := range phases {
		result = append(result, &api.Phase{
			ID:    p.ID,
			Title: p.Title,
			Order: p.Order,
			Skill: p.Skill,
		})
	}
	return result
}
