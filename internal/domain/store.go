package domain

// PurchaseCategory buckets store items for the audit log.
type PurchaseCategory string

const (
	CategoryBonus    PurchaseCategory = "bonus"
	CategoryFood     PurchaseCategory = "food"
	CategoryDopamine PurchaseCategory = "dopamine"
)

// Valid reports whether c is a known category.
func (c PurchaseCategory) Valid() bool {
	switch c {
	case CategoryBonus, CategoryFood, CategoryDopamine:
		return true
	}
	return false
}

// PurchaseEntry is one row of the append-only purchase audit log. The
// log keeps only the most recent entries; see PurchaseLogCap.
type PurchaseEntry struct {
	ID       string           `json:"id"`
	Date     string           `json:"date"` // logical date
	ItemName string           `json:"item_name"`
	Cost     int64            `json:"cost"`
	Category PurchaseCategory `json:"category"`
}

// PurchaseLogCap is the maximum retained audit-log length. Oldest
// entries are evicted on overflow.
const PurchaseLogCap = 100

// Bonus item prices.
const (
	FreezeCost    int64 = 500
	GoldenDayCost int64 = 5000
)

// StoreItem is a purchasable catalog entry. Food and dopamine items
// only deduct coins and log; their "active reward" timer is a UI
// concern outside the engine.
type StoreItem struct {
	Name     string           `json:"name"`
	Cost     int64            `json:"cost"`
	Category PurchaseCategory `json:"category"`
	Desc     string           `json:"desc"`
}

// StoreCatalog returns every purchasable item, bonus items first.
func StoreCatalog() []StoreItem {
	return []StoreItem{
		{Name: "Streak Freeze", Cost: FreezeCost, Category: CategoryBonus, Desc: "Forgives exactly one missed day."},
		{Name: "Golden Day", Cost: GoldenDayCost, Category: CategoryBonus, Desc: "Doubles all XP for 24 hours."},

		{Name: "Juicy Pizza", Cost: 500, Category: CategoryFood, Desc: "Italian classic for the soul."},
		{Name: "Mighty Burger", Cost: 450, Category: CategoryFood, Desc: "A proper patty with cheese."},
		{Name: "Loaded Shawarma", Cost: 300, Category: CategoryFood, Desc: "Food of the gods."},
		{Name: "Sushi Set", Cost: 800, Category: CategoryFood, Desc: "Premium rolls for recovery."},
		{Name: "Ribeye Steak", Cost: 1200, Category: CategoryFood, Desc: "Meat for a true predator."},
		{Name: "Can of Cola", Cost: 150, Category: CategoryFood, Desc: "Ice cold and refreshing."},
		{Name: "Chocolate Bar", Cost: 100, Category: CategoryFood, Desc: "Fast energy and endorphins."},

		{Name: "Movie Night", Cost: 500, Category: CategoryDopamine, Desc: "A full two-hour rest."},
		{Name: "Series Episode", Cost: 300, Category: CategoryDopamine, Desc: "One episode of a favorite show."},
		{Name: "YouTube Video", Cost: 100, Category: CategoryDopamine, Desc: "Something fun or educational."},
		{Name: "Shorts Timer", Cost: 300, Category: CategoryDopamine, Desc: "Thirty minutes of quick dopamine."},
		{Name: "Phone Charge Ritual", Cost: 30, Category: CategoryDopamine, Desc: "The full-charge ritual."},
		{Name: "Day Nap", Cost: 300, Category: CategoryDopamine, Desc: "Brain reboot and recovery."},
	}
}

// FindStoreItem looks an item up by name. Returns false if the catalog
// has no such item.
func FindStoreItem(name string) (StoreItem, bool) {
	for _, it := range StoreCatalog() {
		if it.Name == name {
			return it, true
		}
	}
	return StoreItem{}, false
}
