// AngelaMos | 2026
// catalog.go

package garden

// Category splits the shop into the three slot kinds a garden cell is
// composed of.
type Category string

const (
	CategoryPlant Category = "plant"
	CategoryVine  Category = "vine"
	CategoryPot   Category = "pot"
)

// CatalogItem is one purchasable shop entry. The catalog is fixed at build
// time; prices and the premium flag are enforced server-side on every buy.
type CatalogItem struct {
	Key      string   `json:"key"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Price    int      `json:"price"`
	Premium  bool     `json:"premium"`
	Icon     string   `json:"icon"`
	Color    string   `json:"color"`
}

var catalogItems = []CatalogItem{
	{Key: "basic", Name: "Sprout", Category: CategoryPlant, Price: 0, Icon: "🌱", Color: "#7bb661"},
	{Key: "sun", Name: "Sunflower", Category: CategoryPlant, Price: 20, Icon: "🌻", Color: "#f2c14e"},
	{Key: "rose", Name: "Rose", Category: CategoryPlant, Price: 40, Premium: true, Icon: "🌹", Color: "#d4586d"},
	{Key: "cactus", Name: "Cactus", Category: CategoryPlant, Price: 30, Icon: "🌵", Color: "#5a9367"},
	{Key: "fern", Name: "Fern", Category: CategoryPlant, Price: 50, Premium: true, Icon: "🌿", Color: "#4f7942"},
	{Key: "tulip", Name: "Tulip", Category: CategoryPlant, Price: 35, Icon: "🌷", Color: "#e88fb0"},

	{Key: "grape", Name: "Grape Vine", Category: CategoryVine, Price: 0, Icon: "🍇", Color: "#8e6bb0"},
	{Key: "tomato", Name: "Tomato Vine", Category: CategoryVine, Price: 25, Icon: "🍅", Color: "#d95d49"},
	{Key: "blueberry", Name: "Blueberry Vine", Category: CategoryVine, Price: 40, Premium: true, Icon: "🫐", Color: "#5b7fbd"},
	{Key: "strawberry", Name: "Strawberry Vine", Category: CategoryVine, Price: 30, Icon: "🍓", Color: "#d9536f"},

	{Key: "terra", Name: "Terracotta", Category: CategoryPot, Price: 0, Icon: "🪴", Color: "#c4713b"},
	{Key: "classic", Name: "Classic", Category: CategoryPot, Price: 15, Icon: "⚱️", Color: "#9aa0a6"},
	{Key: "modern", Name: "Modern", Category: CategoryPot, Price: 25, Premium: true, Icon: "🏺", Color: "#44484d"},
	{Key: "gold", Name: "Gold", Category: CategoryPot, Price: 100, Premium: true, Icon: "🏆", Color: "#d4af37"},
}

var catalogByKey = func() map[string]CatalogItem {
	m := make(map[string]CatalogItem, len(catalogItems))
	for _, item := range catalogItems {
		m[item.Key] = item
	}
	return m
}()

// LookupItem resolves a shop key against the server catalog.
func LookupItem(key string) (CatalogItem, bool) {
	item, ok := catalogByKey[key]
	return item, ok
}

// Catalog returns all shop entries in display order.
func Catalog() []CatalogItem {
	out := make([]CatalogItem, len(catalogItems))
	copy(out, catalogItems)
	return out
}

// DefaultItems are the free starters every account owns; Normalize re-adds
// them if a client blob ever drops one.
func DefaultItems() []string {
	return []string{"basic", "terra", "grape"}
}
