package value

type InventoryStatus string

const (
	StatusPurchased InventoryStatus = "purchased"
	StatusListed    InventoryStatus = "listed"
	StatusSold      InventoryStatus = "sold"
)

func (s InventoryStatus) String() string {
	return string(s)
}

// CanTransitionTo encodes purchased -> listed -> sold. Sold is terminal.
func (s InventoryStatus) CanTransitionTo(next InventoryStatus) bool {
	switch s {
	case StatusPurchased:
		return next == StatusListed
	case StatusListed:
		return next == StatusSold
	default:
		return false
	}
}
