package model

import (
	"encoding/json"
	"fmt"
)

// BugDraft holds the structured fields of a bug about to be filed,
// assembled either automatically on the triage path or from the values a
// user submitted through the Slack modal.
type BugDraft struct {
	Title        string
	Description  string
	Assignee     string // Email, resolved to an account id at filing time
	TeamCategory string
}

// BugMetadataVersion is the current schema version of the round-tripped
// metadata blob. Blobs with any other version fail closed.
const BugMetadataVersion = 1

// BugMetadata is the opaque blob threaded through the Slack button value and
// modal private_metadata. It is the only cross-request state the system
// carries, and it travels with the client, not the server.
type BugMetadata struct {
	Version     int    `json:"v"`
	Summary     string `json:"summary"`
	Description string `json:"description"`
	JobName     string `json:"job_name"`
	CommitSHA   string `json:"commit_sha"`
}

// EncodeBugMetadata serializes the blob for embedding in a button value.
func EncodeBugMetadata(m BugMetadata) (string, error) {
	m.Version = BugMetadataVersion
	b, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("failed to encode bug metadata: %w", err)
	}
	return string(b), nil
}

// DecodeBugMetadata parses a round-tripped blob. Malformed JSON or an
// unknown schema version is an error, never a silent misparse.
func DecodeBugMetadata(raw string) (BugMetadata, error) {
	var m BugMetadata
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return BugMetadata{}, fmt.Errorf("malformed bug metadata: %w", err)
	}
	if m.Version != BugMetadataVersion {
		return BugMetadata{}, fmt.Errorf("unsupported bug metadata version %d", m.Version)
	}
	return m, nil
}
