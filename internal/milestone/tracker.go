package milestone

import (
	"time"

	"idlepark/internal/catalog"
)

// Predicate evaluates one requirement kind against the tracked
// progress. New requirement kinds register here; the check loop never
// changes.
type Predicate func(req catalog.Requirement, p Progress) bool

var predicates = map[catalog.RequirementKind]Predicate{
	catalog.ReqPeakGuests: func(req catalog.Requirement, p Progress) bool {
		return p.PeakGuests >= req.Amount
	},
}

// RegisterRequirement installs a predicate for a requirement kind.
// Intended for init-time use.
func RegisterRequirement(kind catalog.RequirementKind, pred Predicate) {
	predicates[kind] = pred
}

// Progress is the persisted milestone state: a monotonically
// non-decreasing peak guest counter and an append-only completed set.
type Progress struct {
	PeakGuests  float64              `json:"peak_guests"`
	Completed   []string             `json:"completed"`
	CompletedAt map[string]time.Time `json:"completed_at"`
}

func NewProgress() Progress {
	return Progress{
		Completed:   []string{},
		CompletedAt: map[string]time.Time{},
	}
}

// Tracker owns milestone progress and the pending-unlock queue used
// for user-facing acknowledgment.
type Tracker struct {
	defs     []catalog.Milestone
	progress Progress
	pending  []catalog.Milestone
}

func NewTracker(defs []catalog.Milestone) *Tracker {
	return &Tracker{
		defs:     defs,
		progress: NewProgress(),
	}
}

// UpdatePeak raises the peak-guests counter; it never decreases.
func (t *Tracker) UpdatePeak(candidate float64) {
	if candidate > t.progress.PeakGuests {
		t.progress.PeakGuests = candidate
	}
}

// Check scans milestones not yet completed and marks each whose
// requirement the current peak satisfies. Newly completed milestones
// are returned exactly once so the caller can apply rewards, and are
// queued for acknowledgment. Completion is terminal.
func (t *Tracker) Check(now time.Time) []catalog.Milestone {
	var newly []catalog.Milestone

	for _, m := range t.defs {
		if t.IsCompleted(m.ID) {
			continue
		}
		pred, ok := predicates[m.Requirement.Kind]
		if !ok {
			continue
		}
		if !pred(m.Requirement, t.progress) {
			continue
		}

		t.progress.Completed = append(t.progress.Completed, m.ID)
		if t.progress.CompletedAt == nil {
			t.progress.CompletedAt = map[string]time.Time{}
		}
		t.progress.CompletedAt[m.ID] = now
		newly = append(newly, m)
	}

	t.pending = append(t.pending, newly...)
	return newly
}

func (t *Tracker) IsCompleted(id string) bool {
	for _, c := range t.progress.Completed {
		if c == id {
			return true
		}
	}
	return false
}

// PendingUnlocks drains the acknowledgment queue.
func (t *Tracker) PendingUnlocks() []catalog.Milestone {
	out := t.pending
	t.pending = nil
	return out
}

// Peek returns the queued unlocks without draining them.
func (t *Tracker) Peek() []catalog.Milestone {
	out := make([]catalog.Milestone, len(t.pending))
	copy(out, t.pending)
	return out
}

// Progress returns a copy of the persisted progress.
func (t *Tracker) Progress() Progress {
	out := t.progress
	out.Completed = make([]string, len(t.progress.Completed))
	copy(out.Completed, t.progress.Completed)
	out.CompletedAt = make(map[string]time.Time, len(t.progress.CompletedAt))
	for k, v := range t.progress.CompletedAt {
		out.CompletedAt[k] = v
	}
	return out
}

// Load replaces progress wholesale, filling nil fields from an older
// save with empty defaults.
func (t *Tracker) Load(p Progress) {
	if p.Completed == nil {
		p.Completed = []string{}
	}
	if p.CompletedAt == nil {
		p.CompletedAt = map[string]time.Time{}
	}
	t.progress = p
	t.pending = nil
}

// Reset clears all progress, including the peak counter.
func (t *Tracker) Reset() {
	t.progress = NewProgress()
	t.pending = nil
}
