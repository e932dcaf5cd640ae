// Copyright 2019 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package references

import (
	"regexp"
	"strconv"

	"code.mojo.dev/mojo/modules/util"
)

var (
	// mentionPattern matches member mentions in the form of "@42"
	mentionPattern = regexp.MustCompile(`(?:\s|^|\(|\[)(@[0-9]+)(?:\s|$|[:,;.?!](\s|$)|'|\)|\])`)
	// spaceTrimmedPattern let's find the trailing space
	spaceTrimmedPattern = regexp.MustCompile(`(?:.*[0-9])\s`)
)

// RefSpan is the location of a reference in the content
type RefSpan struct {
	Start int
	End   int
}

// FindAllMentionsBytes matches mention patterns in given content
// and returns a list of locations for the unvalidated member ids, including the @ prefix.
func FindAllMentionsBytes(content []byte) []RefSpan {
	// Sadly we can't use FindAllSubmatchIndex because our pattern checks for starting and
	// trailing spaces (\s@mention,\s), so if we get two consecutive references, the space
	// from the second reference will be "eaten" by the first one:
	// ...\s@1\s@2\s...	--> ...`\s@1\s`, (not) `@2,\s...`
	ret := make([]RefSpan, 0, 5)
	pos := 0
	for {
		match := mentionPattern.FindSubmatchIndex(content[pos:])
		if match == nil {
			break
		}
		ret = append(ret, RefSpan{Start: match[2] + pos, End: match[3] + pos})
		notrail := spaceTrimmedPattern.FindSubmatchIndex(content[match[2]+pos : match[3]+pos])
		if notrail == nil {
			pos = match[3] + pos
		} else {
			pos = match[3] + pos + notrail[1] - notrail[3]
		}
	}
	return ret
}

// FindAllMentionIDs returns the distinct member ids mentioned in content, in
// order of first mention. Ids that do not fit an int64 or are zero are dropped.
func FindAllMentionIDs(content string) []int64 {
	bcontent := []byte(content)
	locations := FindAllMentionsBytes(bcontent)
	ids := make([]int64, 0, len(locations))
	for _, loc := range locations {
		id, err := strconv.ParseInt(string(bcontent[loc.Start+1:loc.End]), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return util.UniqueIDs(ids)
}
