// types.go
package main

import "clickcount/clicks"

// Sheet is a fully loaded input file: header names plus the raw data lines.
type Sheet struct {
	Headers  []string
	Rows     [][]string
	FileName string
	FileSize int64
}

// CountPage feeds upload.html. With neither Tally nor Error set the page
// shows the upload prompt.
type CountPage struct {
	Tally    *clicks.Tally
	Error    string
	FileName string
	FileSize int64
	UploadID string
	MaxSize  int64
}

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}
