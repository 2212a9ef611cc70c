package domain

// Rank is one tier of the static progression ladder. Thresholds are
// strictly increasing; the current rank is the highest entry whose
// threshold does not exceed lifetime XP.
type Rank struct {
	Threshold int64  `json:"threshold"`
	Title     string `json:"title"`
}

// Ranks is the full ladder, lowest first.
var Ranks = []Rank{
	{Threshold: 0, Title: "Wood I"},
	{Threshold: 500, Title: "Wood II"},
	{Threshold: 1500, Title: "Iron I"},
	{Threshold: 3000, Title: "Iron II"},
	{Threshold: 6000, Title: "Bronze"},
	{Threshold: 12000, Title: "Silver"},
	{Threshold: 25000, Title: "Gold"},
	{Threshold: 50000, Title: "Diamond"},
	{Threshold: 100000, Title: "Master"},
	{Threshold: 250000, Title: "Global Elite"},
}
