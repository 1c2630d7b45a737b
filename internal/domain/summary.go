package domain

// SaveSummary is the whitelisted projection of a container shown to clients.
type SaveSummary struct {
	Profile    ProfileSummary
	Inventory  map[int]InventorySummaryEntry
	Collection map[int]CollectionSummaryEntry
}

type ProfileSummary struct {
	Name      string   `json:"name"`
	Gender    Gender   `json:"gender"`
	TrainerID uint32   `json:"tid"`
	Language  Language `json:"language"`
}

type InventorySummaryEntry struct {
	Category ItemCategory `json:"category"`
	Quantity uint32       `json:"quantity"`
}

type CollectionSummaryEntry struct {
	CaptureFlag uint8 `json:"capture_flag"`
	BattleFlag  uint8 `json:"battle_flag"`
	ShinyFlag   uint8 `json:"shiny_flag"`
	VariantFlag uint8 `json:"variant_flag"`
}
