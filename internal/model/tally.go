package model

// Bucket is one of the fixed status buckets issues are counted into.
type Bucket string

const (
	BucketTodo       Bucket = "Todo"
	BucketInProgress Bucket = "In Progress"
	BucketBacklog    Bucket = "Backlog"
	BucketWaiting    Bucket = "Waiting"
	BucketOther      Bucket = "Other"
)

// Buckets returns every bucket in canonical output order.
func Buckets() []Bucket {
	return []Bucket{BucketTodo, BucketInProgress, BucketBacklog, BucketWaiting, BucketOther}
}

// StatusTally maps each bucket to a count. The zero value has every bucket at
// zero, and field order fixes the JSON key order.
type StatusTally struct {
	Todo       int `json:"Todo"`
	InProgress int `json:"In Progress"`
	Backlog    int `json:"Backlog"`
	Waiting    int `json:"Waiting"`
	Other      int `json:"Other"`
}

// BucketFor returns the bucket a status name is counted in. Only an exact,
// case-sensitive match selects a named bucket; anything else, including an
// empty name, is Other.
func BucketFor(status string) Bucket {
	switch Bucket(status) {
	case BucketTodo, BucketInProgress, BucketBacklog, BucketWaiting:
		return Bucket(status)
	default:
		return BucketOther
	}
}

// Add counts one issue with the given status name.
func (t *StatusTally) Add(status string) {
	*t.slot(BucketFor(status))++
}

// Merge adds every count of other into t.
func (t *StatusTally) Merge(other StatusTally) {
	for _, b := range Buckets() {
		*t.slot(b) += other.Count(b)
	}
}

// Count returns the count for a bucket.
func (t StatusTally) Count(b Bucket) int {
	return *t.slot(b)
}

// Total returns the sum of all buckets.
func (t StatusTally) Total() int {
	return t.Todo + t.InProgress + t.Backlog + t.Waiting + t.Other
}

// TallyEntry is a single bucket/count pair.
type TallyEntry struct {
	Bucket Bucket
	Count  int
}

// Entries returns the bucket counts in canonical order.
func (t StatusTally) Entries() []TallyEntry {
	entries := make([]TallyEntry, 0, len(Buckets()))
	for _, b := range Buckets() {
		entries = append(entries, TallyEntry{Bucket: b, Count: t.Count(b)})
	}
	return entries
}

func (t *StatusTally) slot(b Bucket) *int {
	switch b {
	case BucketTodo:
		return &t.Todo
	case BucketInProgress:
		return &t.InProgress
	case BucketBacklog:
		return &t.Backlog
	case BucketWaiting:
		return &t.Waiting
	default:
		return &t.Other
	}
}
