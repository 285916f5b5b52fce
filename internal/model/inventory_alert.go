package model

import "time"

type AlertType string

const (
	AlertLowStock   AlertType = "low_stock"
	AlertOutOfStock AlertType = "out_of_stock"
	AlertOverstock  AlertType = "overstock"
)

type AlertSeverity string

const (
	SeverityInfo     AlertSeverity = "info"
	SeverityWarning  AlertSeverity = "warning"
	SeverityCritical AlertSeverity = "critical"
)

// InventoryAlert is raised when an item crosses a stock threshold.
// Only acknowledgement mutates it; alerts never expire.
type InventoryAlert struct {
	ID             string        `json:"id"`
	Type           AlertType     `json:"type"`
	ItemID         string        `json:"itemId"`
	Message        string        `json:"message"`
	Severity       AlertSeverity `json:"severity"`
	Acknowledged   bool          `json:"acknowledged"`
	CreatedAt      time.Time     `json:"createdAt"`
	AcknowledgedAt *time.Time    `json:"acknowledgedAt,omitempty"`
}

// AlertForStatus returns the alert raised when an item enters status.
// ok is false for in-stock.
func AlertForStatus(status StockStatus) (t AlertType, sev AlertSeverity, ok bool) {
	switch status {
	case StatusOutOfStock:
		return AlertOutOfStock, SeverityCritical, true
	case StatusLowStock:
		return AlertLowStock, SeverityWarning, true
	case StatusOverstocked:
		return AlertOverstock, SeverityInfo, true
	}
	return "", "", false
}
