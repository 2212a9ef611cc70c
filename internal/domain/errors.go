package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────

var (
	// Store / currency errors
	ErrInsufficientFunds = errors.New("insufficient coins for purchase")
	ErrFreezeAlreadyHeld = errors.New("streak freeze already held")
	ErrUnknownItem       = errors.New("item not in store catalog")

	// Chest errors
	ErrUnknownChest  = errors.New("chest not in inventory")
	ErrUnknownRarity = errors.New("unknown chest rarity")

	// Snapshot errors
	ErrInvalidSnapshot = errors.New("snapshot is structurally invalid")
)
