// AngelaMos | 2026
// dto.go

package garden

type BuyRequest struct {
	ItemID string `json:"itemId" validate:"required"`
}

type RewardRequest struct {
	Amount int    `json:"amount" validate:"gte=0"`
	Source string `json:"source" validate:"required,max=64"`
}

type ToggleHabitRequest struct {
	HabitID int64  `json:"habitId" validate:"required"`
	Date    string `json:"date"    validate:"required,datetime=2006-01-02"`
}

type LoadResponse struct {
	Data      Blob `json:"data"`
	IsPremium bool `json:"isPremium"`
}

type SyncResponse struct {
	Saved     bool `json:"saved"`
	FixedData Blob `json:"fixedData"`
}

type BuyResponse struct {
	Coins         int      `json:"coins"`
	UnlockedItems []string `json:"unlockedItems"`
}

type RewardResponse struct {
	Coins   int `json:"coins"`
	Granted int `json:"granted"`
}

type ToggleHabitResponse struct {
	Coins   int  `json:"coins"`
	Checked bool `json:"checked"`
}

type StatsResponse struct {
	Habits []HabitStats `json:"habits"`
}

type CatalogResponse struct {
	Items []CatalogItem `json:"items"`
}
