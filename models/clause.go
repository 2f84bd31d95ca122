package models

// Clause represents one addressable unit of contract text produced by
// segmentation. IDs are 1-based and follow contract order.
type Clause struct {
	ID       int    `json:"id"`
	Text     string `json:"text"`
	Position int    `json:"position"` // byte offset into the source text
}
