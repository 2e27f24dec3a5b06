package stats

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/spiffcs/linear-stats/internal/model"
	"github.com/stretchr/testify/assert"
)

func issue(id, status string) model.Issue {
	i := model.Issue{ID: id, Title: "issue " + id}
	if status != "" {
		i.State = &model.WorkflowState{ID: "state-" + status, Name: status}
	}
	return i
}

func TestClassifyEmpty(t *testing.T) {
	tally := Classify(nil)

	assert.Equal(t, model.StatusTally{}, tally)
	assert.Equal(t, 0, tally.Total())
	for _, b := range model.Buckets() {
		assert.Zero(t, tally.Count(b))
	}
}

func TestClassify(t *testing.T) {
	issues := []model.Issue{
		issue("1", "Todo"),
		issue("2", "Todo"),
		issue("3", "Todo"),
		issue("4", "In Progress"),
		issue("5", "In Progress"),
		issue("6", "Backlog"),
		issue("7", "Done"),
	}

	tally := Classify(issues)

	assert.Equal(t, model.StatusTally{Todo: 3, InProgress: 2, Backlog: 1, Waiting: 0, Other: 1}, tally)
	assert.Equal(t, 7, tally.Total())
}

func TestClassifyMissingStatusIsOther(t *testing.T) {
	issues := []model.Issue{
		{ID: "1", Title: "no state"},
		{ID: "2", Title: "empty state", State: &model.WorkflowState{ID: "s"}},
		issue("3", "Canceled"),
	}

	tally := Classify(issues)

	assert.Equal(t, model.StatusTally{Other: 3}, tally)
}

func TestClassifySumEqualsLength(t *testing.T) {
	statuses := []string{"Todo", "In Progress", "Backlog", "Waiting", "Done", "Triage", "", "todo"}
	rng := rand.New(rand.NewSource(1))

	for n := range 50 {
		issues := make([]model.Issue, n)
		for i := range issues {
			issues[i] = issue(fmt.Sprint(i), statuses[rng.Intn(len(statuses))])
		}

		tally := Classify(issues)

		assert.Equal(t, n, tally.Total(), "length %d", n)
	}
}

func TestOtherStatuses(t *testing.T) {
	issues := []model.Issue{
		issue("1", "Todo"),
		issue("2", "Done"),
		issue("3", "Done"),
		issue("4", "todo"),
		issue("5", ""),
	}

	assert.Equal(t, map[string]int{"Done": 2, "todo": 1, "": 1}, OtherStatuses(issues))
	assert.Empty(t, OtherStatuses([]model.Issue{issue("1", "Backlog")}))
}
