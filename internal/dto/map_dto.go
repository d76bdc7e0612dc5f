package dto

import "encoding/json"

type GenerateMapRequest struct {
	Topic string `json:"topic"`
	Level string `json:"level"`
}

type ExpandNodeRequest struct {
	NodeLabel string `json:"node_label"`
	Topic     string `json:"topic"`
	Level     string `json:"level"`
}

// SaveMapRequest carries the node and edge arrays as raw JSON: their element
// shape is whatever the generation engine produced and is stored verbatim.
type SaveMapRequest struct {
	Topic string          `json:"topic"`
	Level string          `json:"level"`
	Nodes json.RawMessage `json:"nodes"`
	Edges json.RawMessage `json:"edges"`
}
