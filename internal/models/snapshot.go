package models

import "time"

// SchemaVersion is written next to every transaction save and into exports.
const SchemaVersion = "1.0.0"

// Snapshot is the portable export document.
type Snapshot struct {
	Version      string        `json:"version"`
	ExportDate   time.Time     `json:"exportDate"`
	Transactions []Transaction `json:"transactions"`
	Settings     Settings      `json:"settings"`
}
