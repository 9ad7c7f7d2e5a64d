package vmremote

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// snapshotFormatVersion is bumped on incompatible Snapshot layout changes.
const snapshotFormatVersion = "1.0.0"

// SnapshotValue is one captured parameter value with its discovered kind.
type SnapshotValue struct {
	Kind  string  `json:"kind"` // "float" or "text"
	Float float32 `json:"float,omitempty"`
	Text  string  `json:"text,omitempty"`
}

// Snapshot is a point-in-time capture of named parameters together with the
// engine's identity. Snapshots are read-only records; this client has no
// parameter write path to restore them through.
type Snapshot struct {
	FormatVersion string                   `json:"formatVersion"`
	MixerType     string                   `json:"mixerType"`
	EngineVersion string                   `json:"engineVersion"`
	Timestamp     int64                    `json:"timestamp"`
	Values        map[string]SnapshotValue `json:"values"`
}

// Snapshot resolves every named parameter and captures it alongside the
// engine identity. Requires a logged-in session; the first failing read
// aborts the capture.
func (c *Client) Snapshot(names []string) (Snapshot, error) {
	mixerType, err := c.MixerType()
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot identity: %w", err)
	}
	version, err := c.Version()
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot identity: %w", err)
	}

	snap := Snapshot{
		FormatVersion: snapshotFormatVersion,
		MixerType:     mixerType.String(),
		EngineVersion: version,
		Timestamp:     time.Now().Unix(),
		Values:        make(map[string]SnapshotValue, len(names)),
	}

	for _, name := range names {
		value, err := c.Parameter(name)
		if err != nil {
			return Snapshot{}, fmt.Errorf("snapshot parameter %s: %w", name, err)
		}
		snap.Values[name] = toSnapshotValue(value)
	}

	return snap, nil
}

func toSnapshotValue(v Value) SnapshotValue {
	if v.IsFloat() {
		return SnapshotValue{Kind: "float", Float: v.Float()}
	}
	return SnapshotValue{Kind: "text", Text: v.Text()}
}

// Value converts the captured entry back into the tagged representation.
func (sv SnapshotValue) Value() Value {
	if sv.Kind == "text" {
		return TextValue(sv.Text)
	}
	return FloatValue(sv.Float)
}

// SaveToWriter writes the snapshot as indented JSON.
func (s Snapshot) SaveToWriter(writer io.Writer) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ") // Pretty print

	if err := encoder.Encode(s); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	return nil
}

// LoadSnapshot reads a snapshot back from JSON.
func LoadSnapshot(reader io.Reader) (Snapshot, error) {
	var snap Snapshot

	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	if snap.FormatVersion != snapshotFormatVersion {
		return Snapshot{}, fmt.Errorf("incompatible snapshot version: got %s, expected %s",
			snap.FormatVersion, snapshotFormatVersion)
	}

	return snap, nil
}
