package enums

import "fmt"

// InventoryLogReason tags why a ledger entry was written.
type InventoryLogReason string

const (
	InventoryLogReasonInitialStock     InventoryLogReason = "initial stock"
	InventoryLogReasonManualAdjustment InventoryLogReason = "manual adjustment"
	InventoryLogReasonSale             InventoryLogReason = "sale"
)

var validInventoryLogReasons = []InventoryLogReason{
	InventoryLogReasonInitialStock,
	InventoryLogReasonManualAdjustment,
	InventoryLogReasonSale,
}

// String returns the raw string value.
func (r InventoryLogReason) String() string {
	return string(r)
}

// IsValid reports whether the value is one of the fixed ledger tags.
func (r InventoryLogReason) IsValid() bool {
	for _, candidate := range validInventoryLogReasons {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseInventoryLogReason converts raw input into InventoryLogReason.
func ParseInventoryLogReason(value string) (InventoryLogReason, error) {
	for _, candidate := range validInventoryLogReasons {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid inventory log reason %q", value)
}
