package domain

import (
	"encoding/json"
	"time"
)

// BackupVersion is the format version written by this server.
const BackupVersion = "1.0.0"

// BackupDocument is a document without its identity, so a restore always
// creates fresh records.
type BackupDocument struct {
	Document
	DropID     json.RawMessage `json:"id,omitempty"`
	DropUserID json.RawMessage `json:"user_id,omitempty"`
}

// BackupMetadata describes a backup file.
type BackupMetadata struct {
	TotalDocuments int    `json:"total_documents"`
	BackupSize     string `json:"backup_size"`
	AppVersion     string `json:"app_version"`
}

// Backup is the export/restore file for one user.
type Backup struct {
	Version         string                 `json:"version"`
	Timestamp       time.Time              `json:"timestamp"`
	Documents       []BackupDocument       `json:"documents"`
	Settings        map[string]interface{} `json:"settings"`
	UserPreferences map[string]interface{} `json:"user_preferences"`
	Metadata        BackupMetadata         `json:"metadata"`
}
