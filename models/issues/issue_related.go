// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package issues

import (
	"context"

	"code.mojo.dev/mojo/models/db"
	"code.mojo.dev/mojo/modules/util"

	"xorm.io/builder"
)

// RelatedIssue is one directed edge of the symmetric "related to" relation,
// every relation is stored once per direction
type RelatedIssue struct {
	ID        int64 `xorm:"pk autoincr"`
	IssueID   int64 `xorm:"UNIQUE(s) NOT NULL"`
	RelatedID int64 `xorm:"UNIQUE(s) INDEX NOT NULL"`
}

func init() {
	db.RegisterModel(new(RelatedIssue))
}

// GetRelatedIssueIDs returns the ids of the issues related to issueID in ascending order
func GetRelatedIssueIDs(ctx context.Context, issueID int64) ([]int64, error) {
	ids := make([]int64, 0, 4)
	return ids, db.GetEngine(ctx).Table("related_issue").
		Where("issue_id = ?", issueID).
		Asc("related_id").
		Cols("related_id").
		Find(&ids)
}

// RelateIssues relates issueID to every issue of relatedIDs, in both directions.
// Existing relations are kept.
func RelateIssues(ctx context.Context, issueID int64, relatedIDs ...int64) error {
	return db.WithTx(ctx, func(ctx context.Context) error {
		if _, err := GetIssueByID(ctx, issueID); err != nil {
			return err
		}
		return relateIssues(ctx, issueID, util.UniqueIDs(relatedIDs))
	})
}

func relateIssues(ctx context.Context, issueID int64, relatedIDs []int64) error {
	if len(relatedIDs) == 0 {
		return nil
	}
	for _, id := range relatedIDs {
		if id == issueID {
			return util.NewInvalidArgumentErrorf("issue %d cannot be related to itself", issueID)
		}
	}

	cnt, err := db.Count[Issue](ctx, FindIssuesOptions{IssueIDs: relatedIDs})
	if err != nil {
		return err
	}
	if int(cnt) != len(relatedIDs) {
		for _, id := range relatedIDs {
			if _, err := GetIssueByID(ctx, id); err != nil {
				return err
			}
		}
	}

	existing := make([]*RelatedIssue, 0, len(relatedIDs))
	if err := db.GetEngine(ctx).Where(builder.Eq{"issue_id": issueID}.And(builder.In("related_id", relatedIDs))).
		Find(&existing); err != nil {
		return err
	}
	known := make(map[int64]bool, len(existing))
	for _, r := range existing {
		known[r.RelatedID] = true
	}

	edges := make([]*RelatedIssue, 0, 2*len(relatedIDs))
	for _, id := range relatedIDs {
		if known[id] {
			continue
		}
		edges = append(edges, &RelatedIssue{IssueID: issueID, RelatedID: id}, &RelatedIssue{IssueID: id, RelatedID: issueID})
	}
	if len(edges) == 0 {
		return nil
	}
	_, err = db.GetEngine(ctx).Insert(edges)
	return err
}

// UnrelateIssues drops the relations between issueID and relatedIDs in both directions
func UnrelateIssues(ctx context.Context, issueID int64, relatedIDs ...int64) error {
	if len(relatedIDs) == 0 {
		return nil
	}
	cond := builder.Eq{"issue_id": issueID}.And(builder.In("related_id", relatedIDs)).
		Or(builder.Eq{"related_id": issueID}.And(builder.In("issue_id", relatedIDs)))
	_, err := db.GetEngine(ctx).Where(cond).Delete(new(RelatedIssue))
	return err
}
