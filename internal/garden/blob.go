// AngelaMos | 2026
// blob.go

package garden

import (
	"slices"
)

// Blob is the full per-user garden state, stored as one JSON document on the
// users row. Field names mirror what the web client persists, so a blob can
// round-trip through an untouched client. Coins and UnlockedItems are
// server-authoritative; everything else belongs to the client.
type Blob struct {
	Coins         int      `json:"coins"`
	UnlockedItems []string `json:"unlockedItems"`
	Plants        []Plant  `json:"plants"`
	Habits        []Habit  `json:"habits"`
}

type TaskMode string

const (
	TaskModeChecklist TaskMode = "checklist"
	TaskModeCounter   TaskMode = "counter"
)

// Plant tracks one task, either a checklist or a bounded counter. IDs are
// client-assigned epoch-millisecond timestamps.
type Plant struct {
	ID         int64           `json:"id"`
	Title      string          `json:"title"`
	Type       string          `json:"type"`
	Pot        string          `json:"pot"`
	TaskMode   TaskMode        `json:"taskMode"`
	Checklist  []ChecklistItem `json:"checklist"`
	CounterMax int             `json:"counterMax"`
	CounterVal int             `json:"counterVal"`
	Completed  bool            `json:"completed"`
}

type ChecklistItem struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// Habit tracks a daily yes/no activity. History keys are YYYY-MM-DD dates;
// a present key means completed that day. Streaks are never stored, always
// recomputed from the key set.
type Habit struct {
	ID      int64           `json:"id"`
	Title   string          `json:"title"`
	Type    string          `json:"type"`
	History map[string]bool `json:"history"`
}

// Progress reports completion in [0, 1].
func (p *Plant) Progress() float64 {
	if p.TaskMode == TaskModeCounter {
		if p.CounterMax <= 0 {
			return 0
		}
		return float64(p.CounterVal) / float64(p.CounterMax)
	}

	if len(p.Checklist) == 0 {
		return 0
	}

	done := 0
	for _, item := range p.Checklist {
		if item.Done {
			done++
		}
	}
	return float64(done) / float64(len(p.Checklist))
}

// StepCount is the number of units a plant takes to complete; it sizes the
// completion reward (clamped server-side on grant).
func (p *Plant) StepCount() int {
	if p.TaskMode == TaskModeCounter {
		return max(p.CounterMax, 1)
	}
	return max(len(p.Checklist), 1)
}

// DefaultBlob is the garden a fresh account starts with: the three free
// starter items and no plants or habits.
func DefaultBlob(startingCoins int) Blob {
	b := Blob{
		Coins:         startingCoins,
		UnlockedItems: DefaultItems(),
		Plants:        []Plant{},
		Habits:        []Habit{},
	}
	b.Normalize()
	return b
}

// Normalize repairs a blob after any deserialization: clamps coins at zero,
// guarantees the starter items, bounds counters and derives plant
// completion. Called on every load and before every persist so a malformed
// client blob can never corrupt stored state.
func (b *Blob) Normalize() {
	if b.Coins < 0 {
		b.Coins = 0
	}

	if b.UnlockedItems == nil {
		b.UnlockedItems = []string{}
	}
	for _, key := range DefaultItems() {
		if !slices.Contains(b.UnlockedItems, key) {
			b.UnlockedItems = append(b.UnlockedItems, key)
		}
	}

	if b.Plants == nil {
		b.Plants = []Plant{}
	}
	for i := range b.Plants {
		p := &b.Plants[i]

		if p.TaskMode != TaskModeCounter {
			p.TaskMode = TaskModeChecklist
		}
		if p.Checklist == nil {
			p.Checklist = []ChecklistItem{}
		}
		if p.CounterMax < 1 {
			p.CounterMax = 1
		}
		if p.CounterVal < 0 {
			p.CounterVal = 0
		}
		if p.CounterVal > p.CounterMax {
			p.CounterVal = p.CounterMax
		}

		p.Completed = p.Progress() >= 1
	}

	if b.Habits == nil {
		b.Habits = []Habit{}
	}
	for i := range b.Habits {
		h := &b.Habits[i]
		if h.History == nil {
			h.History = map[string]bool{}
		}
		// A stored false is the same as absent; drop it.
		for date, done := range h.History {
			if !done {
				delete(h.History, date)
			}
		}
	}
}

func (b *Blob) Owns(itemKey string) bool {
	return slices.Contains(b.UnlockedItems, itemKey)
}

func (b *Blob) FindHabit(id int64) *Habit {
	for i := range b.Habits {
		if b.Habits[i].ID == id {
			return &b.Habits[i]
		}
	}
	return nil
}

func (b *Blob) FindPlant(id int64) *Plant {
	for i := range b.Plants {
		if b.Plants[i].ID == id {
			return &b.Plants[i]
		}
	}
	return nil
}
