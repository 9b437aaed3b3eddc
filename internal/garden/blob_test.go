// AngelaMos | 2026
// blob_test.go

package garden

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Run("clamps negative coins", func(t *testing.T) {
		b := Blob{Coins: -10}
		b.Normalize()
		assert.Equal(t, 0, b.Coins)
	})

	t.Run("restores starter items", func(t *testing.T) {
		b := Blob{UnlockedItems: []string{"sun"}}
		b.Normalize()
		assert.ElementsMatch(t, []string{"sun", "basic", "terra", "grape"}, b.UnlockedItems)
	})

	t.Run("nil collections become empty", func(t *testing.T) {
		var b Blob
		b.Normalize()
		assert.NotNil(t, b.Plants)
		assert.NotNil(t, b.Habits)
		assert.NotNil(t, b.UnlockedItems)
	})

	t.Run("bounds counters and derives completion", func(t *testing.T) {
		b := Blob{Plants: []Plant{
			{ID: 1, TaskMode: TaskModeCounter, CounterMax: 5, CounterVal: 9},
			{ID: 2, TaskMode: TaskModeCounter, CounterMax: 0, CounterVal: -3},
			{ID: 3, TaskMode: TaskModeChecklist, Checklist: []ChecklistItem{
				{Text: "a", Done: true},
				{Text: "b", Done: false},
			}},
		}}
		b.Normalize()

		assert.Equal(t, 5, b.Plants[0].CounterVal)
		assert.True(t, b.Plants[0].Completed)

		assert.Equal(t, 1, b.Plants[1].CounterMax)
		assert.Equal(t, 0, b.Plants[1].CounterVal)
		assert.False(t, b.Plants[1].Completed)

		assert.False(t, b.Plants[2].Completed)
	})

	t.Run("unknown task mode defaults to checklist", func(t *testing.T) {
		b := Blob{Plants: []Plant{{ID: 1, TaskMode: "weird"}}}
		b.Normalize()
		assert.Equal(t, TaskModeChecklist, b.Plants[0].TaskMode)
	})

	t.Run("false history entries are dropped", func(t *testing.T) {
		b := Blob{Habits: []Habit{{ID: 1, History: map[string]bool{
			"2024-01-01": true,
			"2024-01-02": false,
		}}}}
		b.Normalize()
		assert.Equal(t, map[string]bool{"2024-01-01": true}, b.Habits[0].History)
	})
}

func TestBlobJSONFieldNames(t *testing.T) {
	b := DefaultBlob(50)
	b.Plants = []Plant{{
		ID:       1700000000000,
		Title:    "Read",
		Type:     "basic",
		Pot:      "terra",
		TaskMode: TaskModeCounter,

		CounterMax: 3,
		CounterVal: 1,
	}}
	b.Habits = []Habit{{
		ID:      1700000000001,
		Title:   "Stretch",
		Type:    "grape",
		History: map[string]bool{"2024-01-01": true},
	}}

	raw, err := json.Marshal(b)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))

	assert.Contains(t, doc, "coins")
	assert.Contains(t, doc, "unlockedItems")
	assert.Contains(t, doc, "plants")
	assert.Contains(t, doc, "habits")

	plant := doc["plants"].([]any)[0].(map[string]any)
	assert.Contains(t, plant, "taskMode")
	assert.Contains(t, plant, "counterMax")
	assert.Contains(t, plant, "counterVal")

	habit := doc["habits"].([]any)[0].(map[string]any)
	assert.Contains(t, habit, "history")

	var back Blob
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, b, back)
}

func TestDefaultBlob(t *testing.T) {
	b := DefaultBlob(50)

	assert.Equal(t, 50, b.Coins)
	assert.ElementsMatch(t, []string{"basic", "terra", "grape"}, b.UnlockedItems)
	assert.Empty(t, b.Plants)
	assert.Empty(t, b.Habits)
}

func TestPlantProgress(t *testing.T) {
	counter := Plant{TaskMode: TaskModeCounter, CounterMax: 4, CounterVal: 1}
	assert.InDelta(t, 0.25, counter.Progress(), 1e-9)
	assert.Equal(t, 4, counter.StepCount())

	checklist := Plant{TaskMode: TaskModeChecklist, Checklist: []ChecklistItem{
		{Done: true}, {Done: true}, {Done: false},
	}}
	assert.InDelta(t, 2.0/3.0, checklist.Progress(), 1e-9)
	assert.Equal(t, 3, checklist.StepCount())

	empty := Plant{TaskMode: TaskModeChecklist}
	assert.Zero(t, empty.Progress())
	assert.Equal(t, 1, empty.StepCount())
}

func TestCatalogLookup(t *testing.T) {
	item, ok := LookupItem("rose")
	require.True(t, ok)
	assert.Equal(t, 40, item.Price)
	assert.True(t, item.Premium)
	assert.Equal(t, CategoryPlant, item.Category)

	_, ok = LookupItem("orchid")
	assert.False(t, ok)

	for _, key := range DefaultItems() {
		item, ok := LookupItem(key)
		require.True(t, ok, key)
		assert.Zero(t, item.Price, key)
		assert.False(t, item.Premium, key)
	}

	assert.Len(t, Catalog(), 14)
}
