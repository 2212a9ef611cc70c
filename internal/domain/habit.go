package domain

// DefaultHabits is the fixed daily habit checklist. The habit penalty
// at rollover is computed against the full list length, so the list
// size is part of the balance tuning.
var DefaultHabits = []string{
	"Medication",
	"Self Review",
	"Deep Work Block",
	"Brush Teeth",
	"Stretching",
	"Creatine",
	"Citrulline",
	"Learn Something New",
	"Socialize",
	"Guitar Practice",
	"Tongue Twisters",
	"Cold Shower",
	"Reading",
	"Walk Outside",
	"No Sugar",
}
