// AngelaMos | 2026
// service_test.go

package garden

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/garden-api/internal/config"
	"github.com/carterperez-dev/garden-api/internal/core"
)

// memRepository mimics the row-locked persistence path in memory: every
// mutation goes through the same load, apply, normalize, store cycle.
type memRepository struct {
	accounts map[uuid.UUID]*Account
}

func newMemRepository() *memRepository {
	return &memRepository{accounts: map[uuid.UUID]*Account{}}
}

func (r *memRepository) seed(userID uuid.UUID, acct Account) {
	acct.Blob.Normalize()
	r.accounts[userID] = &acct
}

func (r *memRepository) Load(ctx context.Context, userID uuid.UUID) (*Account, error) {
	acct, ok := r.accounts[userID]
	if !ok {
		return nil, core.ErrNotFound
	}
	copied := *acct
	return &copied, nil
}

func (r *memRepository) Mutate(
	ctx context.Context,
	userID uuid.UUID,
	fn func(acct *Account) error,
) (*Account, error) {
	acct, ok := r.accounts[userID]
	if !ok {
		return nil, core.ErrNotFound
	}

	working := *acct
	if err := fn(&working); err != nil {
		return nil, err
	}
	working.Blob.Normalize()

	r.accounts[userID] = &working
	copied := working
	return &copied, nil
}

func testEconomy() config.EconomyConfig {
	return config.EconomyConfig{
		MaxTaskReward: 50,
		StartingCoins: 50,
		FreeSlotLimit: 3,
	}
}

func newTestService(t *testing.T, acct Account) (*Service, uuid.UUID, *memRepository) {
	t.Helper()

	repo := newMemRepository()
	userID := uuid.New()
	repo.seed(userID, acct)

	svc := NewService(repo, testEconomy())
	svc.now = func() time.Time { return date("2024-01-04") }
	return svc, userID, repo
}

func TestSyncPinsAuthoritativeFields(t *testing.T) {
	svc, userID, _ := newTestService(t, Account{Blob: DefaultBlob(50)})

	forged := DefaultBlob(50)
	forged.Coins = 999999
	forged.UnlockedItems = append(forged.UnlockedItems, "gold")
	forged.Plants = []Plant{{ID: 1, Title: "Read", TaskMode: TaskModeChecklist}}

	acct, err := svc.Sync(context.Background(), userID, forged)
	require.NoError(t, err)

	assert.Equal(t, 50, acct.Blob.Coins)
	assert.NotContains(t, acct.Blob.UnlockedItems, "gold")
	require.Len(t, acct.Blob.Plants, 1)
	assert.Equal(t, "Read", acct.Blob.Plants[0].Title)
}

func TestSyncSlotLimit(t *testing.T) {
	plants := func(n int) []Plant {
		out := make([]Plant, n)
		for i := range out {
			out[i] = Plant{ID: int64(i + 1), TaskMode: TaskModeChecklist}
		}
		return out
	}

	t.Run("free accounts cannot grow past the limit", func(t *testing.T) {
		svc, userID, _ := newTestService(t, Account{Blob: DefaultBlob(50)})

		client := DefaultBlob(50)
		client.Plants = plants(4)

		_, err := svc.Sync(context.Background(), userID, client)
		assert.ErrorIs(t, err, ErrSlotLimit)
	})

	t.Run("premium accounts are unlimited", func(t *testing.T) {
		svc, userID, _ := newTestService(t, Account{Blob: DefaultBlob(50), Premium: true})

		client := DefaultBlob(50)
		client.Plants = plants(10)

		acct, err := svc.Sync(context.Background(), userID, client)
		require.NoError(t, err)
		assert.Len(t, acct.Blob.Plants, 10)
	})

	t.Run("lapsed premium keeps existing plants", func(t *testing.T) {
		seed := DefaultBlob(50)
		seed.Plants = plants(5)
		svc, userID, _ := newTestService(t, Account{Blob: seed})

		client := DefaultBlob(50)
		client.Plants = plants(5)

		_, err := svc.Sync(context.Background(), userID, client)
		assert.NoError(t, err)
	})

	habits := func(n int) []Habit {
		out := make([]Habit, n)
		for i := range out {
			out[i] = Habit{ID: int64(i + 1)}
		}
		return out
	}

	t.Run("free accounts cannot grow habits past the limit", func(t *testing.T) {
		svc, userID, _ := newTestService(t, Account{Blob: DefaultBlob(50)})

		client := DefaultBlob(50)
		client.Habits = habits(4)

		_, err := svc.Sync(context.Background(), userID, client)
		assert.ErrorIs(t, err, ErrSlotLimit)
	})

	t.Run("premium accounts have unlimited habits", func(t *testing.T) {
		svc, userID, _ := newTestService(t, Account{Blob: DefaultBlob(50), Premium: true})

		client := DefaultBlob(50)
		client.Habits = habits(8)

		acct, err := svc.Sync(context.Background(), userID, client)
		require.NoError(t, err)
		assert.Len(t, acct.Blob.Habits, 8)
	})

	t.Run("lapsed premium keeps existing habits", func(t *testing.T) {
		seed := DefaultBlob(50)
		seed.Habits = habits(5)
		svc, userID, _ := newTestService(t, Account{Blob: seed})

		client := DefaultBlob(50)
		client.Habits = habits(5)

		_, err := svc.Sync(context.Background(), userID, client)
		assert.NoError(t, err)
	})
}

func TestBuy(t *testing.T) {
	t.Run("debits price and unlocks item", func(t *testing.T) {
		svc, userID, _ := newTestService(t, Account{Blob: DefaultBlob(50)})

		acct, err := svc.Buy(context.Background(), userID, "sun")
		require.NoError(t, err)

		assert.Equal(t, 30, acct.Blob.Coins)
		assert.Contains(t, acct.Blob.UnlockedItems, "sun")
	})

	t.Run("unknown item", func(t *testing.T) {
		svc, userID, _ := newTestService(t, Account{Blob: DefaultBlob(50)})

		_, err := svc.Buy(context.Background(), userID, "orchid")
		assert.ErrorIs(t, err, ErrUnknownItem)
	})

	t.Run("buying twice fails and charges once", func(t *testing.T) {
		svc, userID, repo := newTestService(t, Account{Blob: DefaultBlob(50)})

		_, err := svc.Buy(context.Background(), userID, "sun")
		require.NoError(t, err)

		_, err = svc.Buy(context.Background(), userID, "sun")
		assert.ErrorIs(t, err, ErrAlreadyOwned)

		acct, err := repo.Load(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, 30, acct.Blob.Coins)
	})

	t.Run("insufficient funds leaves state untouched", func(t *testing.T) {
		seed := DefaultBlob(50)
		seed.Coins = 10
		svc, userID, repo := newTestService(t, Account{Blob: seed})

		_, err := svc.Buy(context.Background(), userID, "sun")
		assert.ErrorIs(t, err, ErrInsufficientFunds)

		acct, err := repo.Load(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, 10, acct.Blob.Coins)
		assert.NotContains(t, acct.Blob.UnlockedItems, "sun")
	})

	t.Run("premium item needs premium even with funds", func(t *testing.T) {
		seed := DefaultBlob(50)
		seed.Coins = 500
		svc, userID, _ := newTestService(t, Account{Blob: seed})

		_, err := svc.Buy(context.Background(), userID, "gold")
		assert.ErrorIs(t, err, ErrPremiumRequired)
	})

	t.Run("premium account can buy premium item", func(t *testing.T) {
		seed := DefaultBlob(50)
		seed.Coins = 500
		svc, userID, _ := newTestService(t, Account{Blob: seed, Premium: true})

		acct, err := svc.Buy(context.Background(), userID, "gold")
		require.NoError(t, err)
		assert.Equal(t, 400, acct.Blob.Coins)
		assert.Contains(t, acct.Blob.UnlockedItems, "gold")
	})
}

func TestGrantReward(t *testing.T) {
	t.Run("credits requested amount", func(t *testing.T) {
		svc, userID, _ := newTestService(t, Account{Blob: DefaultBlob(50)})

		acct, granted, err := svc.GrantReward(context.Background(), userID, 15)
		require.NoError(t, err)
		assert.Equal(t, 15, granted)
		assert.Equal(t, 65, acct.Blob.Coins)
	})

	t.Run("inflated request caps at the maximum", func(t *testing.T) {
		svc, userID, _ := newTestService(t, Account{Blob: DefaultBlob(50)})

		acct, granted, err := svc.GrantReward(context.Background(), userID, 1000)
		require.NoError(t, err)
		assert.Equal(t, 50, granted)
		assert.Equal(t, 100, acct.Blob.Coins)
	})

	t.Run("negative request grants nothing", func(t *testing.T) {
		svc, userID, _ := newTestService(t, Account{Blob: DefaultBlob(50)})

		acct, granted, err := svc.GrantReward(context.Background(), userID, -20)
		require.NoError(t, err)
		assert.Zero(t, granted)
		assert.Equal(t, 50, acct.Blob.Coins)
	})
}

func habitAccount(history map[string]bool) Account {
	blob := DefaultBlob(50)
	blob.Habits = []Habit{{ID: 42, Title: "Stretch", Type: "grape", History: history}}
	return Account{Blob: blob}
}

func TestToggleHabit(t *testing.T) {
	t.Run("marking pays one coin", func(t *testing.T) {
		svc, userID, _ := newTestService(t, habitAccount(nil))

		acct, checked, err := svc.ToggleHabit(context.Background(), userID, 42, "2024-01-04")
		require.NoError(t, err)
		assert.True(t, checked)
		assert.Equal(t, 51, acct.Blob.Coins)
		assert.True(t, acct.Blob.Habits[0].History["2024-01-04"])
	})

	t.Run("unmarking takes the coin back", func(t *testing.T) {
		svc, userID, _ := newTestService(t, habitAccount(map[string]bool{"2024-01-03": true}))

		acct, checked, err := svc.ToggleHabit(context.Background(), userID, 42, "2024-01-03")
		require.NoError(t, err)
		assert.False(t, checked)
		assert.Equal(t, 49, acct.Blob.Coins)
		assert.NotContains(t, acct.Blob.Habits[0].History, "2024-01-03")
	})

	t.Run("unmarking at zero coins stays at zero", func(t *testing.T) {
		acct := habitAccount(map[string]bool{"2024-01-03": true})
		acct.Blob.Coins = 0
		svc, userID, _ := newTestService(t, acct)

		result, _, err := svc.ToggleHabit(context.Background(), userID, 42, "2024-01-03")
		require.NoError(t, err)
		assert.Zero(t, result.Blob.Coins)
	})

	t.Run("future dates are locked", func(t *testing.T) {
		svc, userID, _ := newTestService(t, habitAccount(nil))

		_, _, err := svc.ToggleHabit(context.Background(), userID, 42, "2024-01-05")
		assert.ErrorIs(t, err, ErrFutureDate)
	})

	t.Run("unparseable date", func(t *testing.T) {
		svc, userID, _ := newTestService(t, habitAccount(nil))

		_, _, err := svc.ToggleHabit(context.Background(), userID, 42, "January 4th")
		assert.ErrorIs(t, err, ErrFutureDate)
	})

	t.Run("unknown habit", func(t *testing.T) {
		svc, userID, _ := newTestService(t, habitAccount(nil))

		_, _, err := svc.ToggleHabit(context.Background(), userID, 7, "2024-01-04")
		assert.ErrorIs(t, err, ErrHabitNotFound)
	})
}

func TestStats(t *testing.T) {
	history := map[string]bool{
		"2024-01-01": true,
		"2024-01-02": true,
		"2024-01-04": true,
	}
	svc, userID, _ := newTestService(t, habitAccount(history))

	stats, err := svc.Stats(context.Background(), userID, 0, 0)
	require.NoError(t, err)
	require.Len(t, stats, 1)

	assert.Equal(t, int64(42), stats[0].ID)
	assert.Equal(t, 1, stats[0].Current)
	assert.Equal(t, 2, stats[0].Best)
	assert.Equal(t, 3, stats[0].Total)
	assert.Nil(t, stats[0].Days)
}

func TestStatsWithCalendar(t *testing.T) {
	svc, userID, _ := newTestService(t, habitAccount(map[string]bool{"2024-01-02": true}))

	stats, err := svc.Stats(context.Background(), userID, 2024, time.January)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	require.Len(t, stats[0].Days, 31)

	assert.Equal(t, DayDone, stats[0].Days[1].State)
	assert.Equal(t, DayLocked, stats[0].Days[30].State)
}
