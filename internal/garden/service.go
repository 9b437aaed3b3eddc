// AngelaMos | 2026
// service.go

package garden

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/garden-api/internal/config"
)

var (
	ErrUnknownItem       = errors.New("item not in catalog")
	ErrAlreadyOwned      = errors.New("item already owned")
	ErrInsufficientFunds = errors.New("not enough coins")
	ErrPremiumRequired   = errors.New("premium subscription required")
	ErrSlotLimit         = errors.New("free plant slots exhausted")
	ErrHabitNotFound     = errors.New("habit not found")
	ErrFutureDate        = errors.New("date is in the future")
)

// Service owns every coin and unlock mutation. The client renders and
// suggests; nothing it sends can mint currency or items, because each write
// path below recomputes the authoritative fields inside a row-locked
// transaction.
type Service struct {
	repo          Repository
	maxTaskReward int
	freeSlotLimit int
	now           func() time.Time
}

func NewService(repo Repository, cfg config.EconomyConfig) *Service {
	return &Service{
		repo:          repo,
		maxTaskReward: cfg.MaxTaskReward,
		freeSlotLimit: cfg.FreeSlotLimit,
		now:           time.Now,
	}
}

func (s *Service) Load(ctx context.Context, userID uuid.UUID) (*Account, error) {
	return s.repo.Load(ctx, userID)
}

// Sync replaces the stored blob with the client's copy of plants and
// habits while pinning coins and unlocked items to the server's values.
// A forged client blob therefore saves fine but buys nothing.
func (s *Service) Sync(ctx context.Context, userID uuid.UUID, client Blob) (*Account, error) {
	return s.repo.Mutate(ctx, userID, func(acct *Account) error {
		if !acct.Premium {
			// Plants and habits share the same free-tier cap. Accounts
			// already over it (lapsed premium) keep what they have but
			// cannot grow.
			if len(client.Plants) > s.freeSlotLimit &&
				len(client.Plants) > len(acct.Blob.Plants) {
				return ErrSlotLimit
			}
			if len(client.Habits) > s.freeSlotLimit &&
				len(client.Habits) > len(acct.Blob.Habits) {
				return ErrSlotLimit
			}
		}

		coins := acct.Blob.Coins
		items := acct.Blob.UnlockedItems

		acct.Blob = client
		acct.Blob.Coins = coins
		acct.Blob.UnlockedItems = items
		return nil
	})
}

// Buy debits the catalog price and unlocks the item. Ownership and premium
// gating are checked against server state, never the request.
func (s *Service) Buy(ctx context.Context, userID uuid.UUID, itemKey string) (*Account, error) {
	item, ok := LookupItem(itemKey)
	if !ok {
		return nil, ErrUnknownItem
	}

	return s.repo.Mutate(ctx, userID, func(acct *Account) error {
		if acct.Blob.Owns(item.Key) {
			return ErrAlreadyOwned
		}
		if item.Premium && !acct.Premium {
			return ErrPremiumRequired
		}
		if acct.Blob.Coins < item.Price {
			return ErrInsufficientFunds
		}

		acct.Blob.Coins -= item.Price
		acct.Blob.UnlockedItems = append(acct.Blob.UnlockedItems, item.Key)
		return nil
	})
}

// GrantReward credits coins for task progress. The client proposes an
// amount sized to the task; the server clamps it to [0, maxTaskReward] so
// an inflated request caps out instead of failing.
func (s *Service) GrantReward(ctx context.Context, userID uuid.UUID, amount int) (*Account, int, error) {
	granted := min(max(amount, 0), s.maxTaskReward)

	acct, err := s.repo.Mutate(ctx, userID, func(acct *Account) error {
		acct.Blob.Coins += granted
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return acct, granted, nil
}

// ToggleHabit flips one history day and settles the coin it is worth:
// marking a day pays one coin, unmarking takes it back (never below zero).
// Future dates are locked.
func (s *Service) ToggleHabit(
	ctx context.Context,
	userID uuid.UUID,
	habitID int64,
	date string,
) (*Account, bool, error) {
	day, err := ParseDate(date)
	if err != nil {
		return nil, false, ErrFutureDate
	}
	if day.After(dayOf(s.now().UTC())) {
		return nil, false, ErrFutureDate
	}

	checked := false
	acct, err := s.repo.Mutate(ctx, userID, func(acct *Account) error {
		habit := acct.Blob.FindHabit(habitID)
		if habit == nil {
			return ErrHabitNotFound
		}

		key := DateKey(day)
		if habit.History[key] {
			delete(habit.History, key)
			if acct.Blob.Coins > 0 {
				acct.Blob.Coins--
			}
		} else {
			habit.History[key] = true
			acct.Blob.Coins++
			checked = true
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return acct, checked, nil
}

// HabitStats summarizes one habit's streak standing, recomputed from its
// history on every request.
type HabitStats struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Current int    `json:"current"`
	Best    int    `json:"best"`
	Total   int    `json:"total"`
	Days    []Day  `json:"days,omitempty"`
}

// Stats recomputes streak standings for every habit. A non-zero month adds
// that month's calendar to each entry.
func (s *Service) Stats(
	ctx context.Context,
	userID uuid.UUID,
	year int,
	month time.Month,
) ([]HabitStats, error) {
	acct, err := s.repo.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := s.now().UTC()
	stats := make([]HabitStats, 0, len(acct.Blob.Habits))
	for _, h := range acct.Blob.Habits {
		entry := HabitStats{
			ID:      h.ID,
			Title:   h.Title,
			Current: CurrentStreak(h.History, today),
			Best:    BestStreak(h.History),
			Total:   TotalDone(h.History),
		}
		if month != 0 {
			entry.Days = MonthDays(year, month, h.History, today)
		}
		stats = append(stats, entry)
	}
	return stats, nil
}
