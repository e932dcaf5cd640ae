// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package issues

import (
	"context"
	"time"

	"code.mojo.dev/mojo/models/db"
	"code.mojo.dev/mojo/modules/mojo"
	"code.mojo.dev/mojo/modules/optional"
	"code.mojo.dev/mojo/modules/setting"
	"code.mojo.dev/mojo/modules/timeutil"

	"xorm.io/builder"
)

// MojoConfig returns the engine windows from the [mojo] settings
func MojoConfig() mojo.Config {
	return mojo.Config{
		ResponseTimeSLA:      setting.Mojo.ResponseTimeSLA,
		GraceWindow:          setting.Mojo.GraceWindow,
		IssueResponseTimeSLA: setting.Mojo.IssueResponseTimeSLA,
		Location:             setting.DefaultUILocation,
	}
}

func (it *Item) snapshot(reports []*Dailyreport) mojo.ItemSnapshot {
	s := mojo.ItemSnapshot{
		ID:                    it.ID,
		IssuePhaseID:          it.IssuePhaseID,
		MemberID:              it.MemberID,
		StartDate:             it.StartDate,
		EndDate:               it.EndDate,
		EstimatedHours:        optional.FromPtr(it.EstimatedHours),
		NeedEstimateTimestamp: it.NeedEstimateTimestamp,
		IsDone:                optional.FromPtr(it.IsDone),
		Reports:               make([]mojo.ReportSnapshot, 0, len(reports)),
	}
	for _, r := range reports {
		s.Reports = append(s.Reports, r.snapshot())
	}
	return s
}

// loadPhaseSnapshots loads the items and reports of the issue phases
func loadPhaseSnapshots(ctx context.Context, ips []*IssuePhase) ([]mojo.PhaseSnapshot, error) {
	if len(ips) == 0 {
		return nil, nil
	}
	ipIDs := make([]int64, 0, len(ips))
	for _, ip := range ips {
		ipIDs = append(ipIDs, ip.ID)
	}
	items, err := db.Find[Item](ctx, FindItemsOptions{IssuePhaseIDs: ipIDs})
	if err != nil {
		return nil, err
	}
	reports, err := loadReportsByItem(ctx, items)
	if err != nil {
		return nil, err
	}

	itemsByPhase := make(map[int64][]mojo.ItemSnapshot, len(ips))
	for _, it := range items {
		itemsByPhase[it.IssuePhaseID] = append(itemsByPhase[it.IssuePhaseID], it.snapshot(reports[it.ID]))
	}

	phases := make([]mojo.PhaseSnapshot, 0, len(ips))
	for _, ip := range ips {
		p, err := GetPhaseByID(ctx, ip.PhaseID)
		if err != nil {
			return nil, err
		}
		phases = append(phases, mojo.PhaseSnapshot{
			ID:      ip.ID,
			IssueID: ip.IssueID,
			PhaseID: ip.PhaseID,
			Order:   p.Order,
			Items:   itemsByPhase[ip.ID],
		})
	}
	return phases, nil
}

func loadReportsByItem(ctx context.Context, items []*Item) (map[int64][]*Dailyreport, error) {
	res := make(map[int64][]*Dailyreport, len(items))
	if len(items) == 0 {
		return res, nil
	}
	itemIDs := make([]int64, 0, len(items))
	for _, it := range items {
		itemIDs = append(itemIDs, it.ID)
	}
	reports, err := db.Find[Dailyreport](ctx, FindDailyreportsOptions{ItemIDs: itemIDs})
	if err != nil {
		return nil, err
	}
	for _, r := range reports {
		res[r.ItemID] = append(res[r.ItemID], r)
	}
	return res, nil
}

// LoadIssueSnapshot loads an issue with its whole subgraph in one transaction
func LoadIssueSnapshot(ctx context.Context, issueID int64) (*mojo.IssueSnapshot, error) {
	var snap *mojo.IssueSnapshot
	err := db.AutoTx(ctx, func(ctx context.Context) error {
		issue, err := GetIssueByID(ctx, issueID)
		if err != nil {
			return err
		}
		related, err := GetRelatedIssueIDs(ctx, issueID)
		if err != nil {
			return err
		}
		ips, err := db.Find[IssuePhase](ctx, FindIssuePhasesOptions{IssueIDs: []int64{issueID}})
		if err != nil {
			return err
		}
		phases, err := loadPhaseSnapshots(ctx, ips)
		if err != nil {
			return err
		}
		snap = &mojo.IssueSnapshot{
			ID:              issue.ID,
			ProjectID:       issue.ProjectID,
			Kind:            issue.Kind,
			Priority:        issue.Priority,
			Stage:           issue.Stage,
			Origin:          issue.Origin,
			LastMovingTime:  issue.LastMovingTime,
			RelatedIssueIDs: related,
			Phases:          phases,
		}
		return nil
	})
	return snap, err
}

// LoadIssuePhaseSnapshot loads an issue phase with its items and reports
func LoadIssuePhaseSnapshot(ctx context.Context, issuePhaseID int64) (*mojo.PhaseSnapshot, error) {
	var snap *mojo.PhaseSnapshot
	err := db.AutoTx(ctx, func(ctx context.Context) error {
		ip, err := GetIssuePhaseByID(ctx, issuePhaseID)
		if err != nil {
			return err
		}
		phases, err := loadPhaseSnapshots(ctx, []*IssuePhase{ip})
		if err != nil {
			return err
		}
		snap = &phases[0]
		return nil
	})
	return snap, err
}

// LoadItemSnapshot loads an item with its reports
func LoadItemSnapshot(ctx context.Context, itemID int64) (*mojo.ItemSnapshot, error) {
	var snap *mojo.ItemSnapshot
	err := db.AutoTx(ctx, func(ctx context.Context) error {
		item, err := GetItemByID(ctx, itemID)
		if err != nil {
			return err
		}
		reports, err := loadReportsByItem(ctx, []*Item{item})
		if err != nil {
			return err
		}
		s := item.snapshot(reports[item.ID])
		snap = &s
		return nil
	})
	return snap, err
}

// GetIssueState computes the derived state of an issue at now
func GetIssueState(ctx context.Context, issueID int64, now time.Time) (*mojo.IssueState, error) {
	snap, err := LoadIssueSnapshot(ctx, issueID)
	if err != nil {
		return nil, err
	}
	state := mojo.ComputeIssue(snap, now, MojoConfig())
	return &state, nil
}

// GetIssuePhaseState computes the derived state of an issue phase at now
func GetIssuePhaseState(ctx context.Context, issuePhaseID int64, now time.Time) (*mojo.PhaseState, error) {
	snap, err := LoadIssuePhaseSnapshot(ctx, issuePhaseID)
	if err != nil {
		return nil, err
	}
	state := mojo.ComputePhase(snap, now, MojoConfig())
	return &state, nil
}

// GetItemState computes the derived state of an item at now
func GetItemState(ctx context.Context, itemID int64, now time.Time) (*mojo.ItemState, error) {
	snap, err := LoadItemSnapshot(ctx, itemID)
	if err != nil {
		return nil, err
	}
	state := mojo.ComputeItem(snap, now, MojoConfig())
	return &state, nil
}

type issueDueDate struct {
	IssueID int64
	DueDate timeutil.Date
}

// GetIssueDueDates returns the due date, the latest item end date, of every
// issue of issueIDs. Issues without a scheduled item are missing from the map.
func GetIssueDueDates(ctx context.Context, issueIDs []int64) (map[int64]timeutil.Date, error) {
	res := make(map[int64]timeutil.Date, len(issueIDs))
	if len(issueIDs) == 0 {
		return res, nil
	}
	rows := make([]*issueDueDate, 0, len(issueIDs))
	if err := db.GetEngine(ctx).Table("item").
		Select("issue_phase.issue_id AS issue_id, MAX(item.end_date) AS due_date").
		Join("INNER", "issue_phase", "issue_phase.id = item.issue_phase_id").
		Where(builder.In("issue_phase.issue_id", issueIDs)).
		GroupBy("issue_phase.issue_id").
		Find(&rows); err != nil {
		return nil, err
	}
	for _, r := range rows {
		if !r.DueDate.IsZero() {
			res[r.IssueID] = r.DueDate
		}
	}
	return res, nil
}
