// Copyright 2021 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package unittest

import (
	"reflect"

	"code.mojo.dev/mojo/models/db"

	"github.com/stretchr/testify/assert"
	"xorm.io/builder"
)

var consistencyCheckMap = make(map[string]func(t assert.TestingT, bean any))

// CheckConsistencyFor test that all matching database entries are consistent
func CheckConsistencyFor(t assert.TestingT, beansToCheck ...any) {
	for _, bean := range beansToCheck {
		sliceType := reflect.SliceOf(reflect.TypeOf(bean))
		sliceValue := reflect.MakeSlice(sliceType, 0, 10)

		ptrToSliceValue := reflect.New(sliceType)
		ptrToSliceValue.Elem().Set(sliceValue)

		assert.NoError(t, db.GetEngine(db.DefaultContext).Table(bean).Find(ptrToSliceValue.Interface()))
		sliceValue = ptrToSliceValue.Elem()

		for i := 0; i < sliceValue.Len(); i++ {
			entity := sliceValue.Index(i).Interface()
			checkForConsistency(t, entity)
		}
	}
}

func checkForConsistency(t assert.TestingT, bean any) {
	tb, err := db.TableInfo(bean)
	assert.NoError(t, err)
	f := consistencyCheckMap[tb.Name]
	if f == nil {
		assert.Fail(t, "unknown bean type: %#v", bean)
		return
	}
	f(t, bean)
}

type reflectionValue struct {
	v reflect.Value
}

func reflectionWrap(v any) *reflectionValue {
	return &reflectionValue{v: reflect.ValueOf(v)}
}

func (rv *reflectionValue) int(field string) int {
	return int(rv.v.Elem().FieldByName(field).Int())
}

func (rv *reflectionValue) bool(field string) bool {
	return rv.v.Elem().FieldByName(field).Bool()
}

func init() {
	checkForRelatedIssueConsistency := func(t assert.TestingT, bean any) {
		rel := reflectionWrap(bean)
		assert.NotEqual(t, rel.int("IssueID"), rel.int("RelatedID"), "issue related to itself: %+v", bean)
		// every edge has its mirror
		AssertCountByCond(t, "related_issue", builder.Eq{"issue_id": rel.int("RelatedID"), "related_id": rel.int("IssueID")}, 1)
		AssertExistsAndLoadMap(t, "issue", builder.Eq{"id": rel.int("IssueID")})
	}

	checkForIssuePhaseConsistency := func(t assert.TestingT, bean any) {
		ip := reflectionWrap(bean)
		AssertExistsAndLoadMap(t, "issue", builder.Eq{"id": ip.int("IssueID")})
		AssertExistsAndLoadMap(t, "phase", builder.Eq{"id": ip.int("PhaseID")})
	}

	checkForItemConsistency := func(t assert.TestingT, bean any) {
		item := reflectionWrap(bean)
		AssertExistsAndLoadMap(t, "issue_phase", builder.Eq{"id": item.int("IssuePhaseID")})
		if start, end := item.int("StartDate"), item.int("EndDate"); start != 0 && end != 0 {
			assert.LessOrEqual(t, start, end, "item scheduled backwards: %+v", bean)
		}
	}

	checkForDailyreportConsistency := func(t assert.TestingT, bean any) {
		report := reflectionWrap(bean)
		itemRow := AssertExistsAndLoadMap(t, "item", builder.Eq{"id": report.int("ItemID")})
		if itemRow == nil {
			return
		}
		if itemRow["start_date"] != "0" && itemRow["end_date"] != "0" {
			AssertCountByCond(t, "item", builder.Eq{"id": report.int("ItemID")}.
				And(builder.Lte{"start_date": report.int("Date")}).
				And(builder.Gte{"end_date": report.int("Date")}), 1)
		}
	}

	checkForSubscriptionConsistency := func(t assert.TestingT, bean any) {
		s := reflectionWrap(bean)
		AssertCountByCond(t, "subscription", builder.Eq{
			"subscribable_id": s.int("SubscribableID"),
			"member_id":       s.int("MemberID"),
			"one_shot":        s.bool("OneShot"),
		}, 1)
	}

	consistencyCheckMap["related_issue"] = checkForRelatedIssueConsistency
	consistencyCheckMap["issue_phase"] = checkForIssuePhaseConsistency
	consistencyCheckMap["item"] = checkForItemConsistency
	consistencyCheckMap["dailyreport"] = checkForDailyreportConsistency
	consistencyCheckMap["subscription"] = checkForSubscriptionConsistency
}
