// Package stats counts issues into status buckets and keeps a history of
// past run summaries.
package stats

import "github.com/spiffcs/linear-stats/internal/model"

// Classify counts issues into the fixed status buckets. A status matching
// one of the named buckets exactly is counted there; everything else,
// including a missing status, is counted as Other.
func Classify(issues []model.Issue) model.StatusTally {
	var tally model.StatusTally
	for _, issue := range issues {
		tally.Add(issue.StatusName())
	}
	return tally
}

// OtherStatuses returns how many issues each status name contributed to
// the Other bucket. Issues without a status are keyed by "".
func OtherStatuses(issues []model.Issue) map[string]int {
	counts := make(map[string]int)
	for _, issue := range issues {
		name := issue.StatusName()
		if model.BucketFor(name) == model.BucketOther {
			counts[name]++
		}
	}
	return counts
}
