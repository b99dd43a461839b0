package logics

import "time"

// Pub/sub channels consumed by dashboard clients. Payloads are advisory
// "re-read the cache" signals, not a synchronization primitive.
const (
	ChannelProductDataUpdated = "productDataUpdated"
	ChannelOKRDataUpdated     = "okrDataUpdated"
)

// UpdateEvent is the payload published after a merge or import.
type UpdateEvent struct {
	ProductID  string    `json:"productId"`
	Categories []string  `json:"categories"`
	At         time.Time `json:"at"`
}
