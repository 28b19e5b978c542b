package model

import "encoding/json"

// SubmissionRequest is the calculator cart sent to POST /send-order.
type SubmissionRequest struct {
	Windows []json.RawMessage `json:"windows"`
	Total   json.Number       `json:"total"`
	Images  []string          `json:"images"`
	Comment string            `json:"comment"`
	Files   []SubmissionFile  `json:"files"`
}

type SubmissionFile struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Data string `json:"data"`
}

// WindowSummary is the subset of a calculated window shown in the email.
// Dimensions arrive under the calculator's Russian side names.
type WindowSummary struct {
	Top   any `json:"верх"`
	Right any `json:"право"`
	Area  any `json:"area"`
	Price any `json:"price"`
}

// SubmissionOrderData is persisted as order_data for submitted orders.
type SubmissionOrderData struct {
	Windows     []json.RawMessage `json:"windows"`
	Comment     string            `json:"comment"`
	ImagesCount int               `json:"images_count"`
	FilesCount  int               `json:"files_count"`
	CreatedAt   string            `json:"created_at"`
}
