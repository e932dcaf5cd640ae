// Copyright 2019 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package references

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegExp_mentionPattern(t *testing.T) {
	trueTestCases := []struct {
		pat string
		exp string
	}{
		{"@7", "@7"},
		{"@1234", "@1234"},
		{"   @12   ", "@12"},
		{"(@3)", "@3"},
		{"[@3]", "@3"},
		{"@3! this", "@3"},
		{"@3? this", "@3"},
		{"@3. this", "@3"},
		{"@3, this", "@3"},
		{"@3;\nthis", "@3"},
		{"\n@3?\nthis", "@3"},
		{"@3:", "@3"},
	}
	falseTestCases := []string{
		"@ 0",
		"@",
		"",
		"ABC",
		"@alice",
		"@12abc",
		"mail@12",
		"\"@12\"",
		"@@12",
		"@12!this",
		"@12,this",
	}

	for _, testCase := range trueTestCases {
		found := mentionPattern.FindStringSubmatch(testCase.pat)
		if assert.Len(t, found, 3, "pattern %q", testCase.pat) {
			assert.Equal(t, testCase.exp, found[1])
		}
	}
	for _, testCase := range falseTestCases {
		assert.False(t, mentionPattern.MatchString(testCase), "[%s] should not match", testCase)
	}
}

func TestFindAllMentionIDs(t *testing.T) {
	for _, c := range []struct {
		content string
		ids     []int64
	}{
		{"", []int64{}},
		{"no mentions here", []int64{}},
		{"@1 @2 @3", []int64{1, 2, 3}},
		{"ping @5, and @5 again (@9)", []int64{5, 9}},
		{"@0 is nobody, @99999999999999999999 is too big", []int64{}},
		{"@4\n@6.", []int64{4, 6}},
	} {
		assert.Equal(t, c.ids, FindAllMentionIDs(c.content), "content %q", c.content)
	}
}
