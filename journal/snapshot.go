package journal

import (
	"errors"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var (
	// ErrInvalidSnapshotJSON is returned when snapshot data is not valid JSON.
	ErrInvalidSnapshotJSON = errors.New("snapshot json is not valid")

	// ErrEmptyProjectionType is returned when a snapshot has no projection type.
	ErrEmptyProjectionType = errors.New("projection type must not be empty")

	// ErrEmptyFilterHash is returned when a snapshot has no filter hash.
	ErrEmptyFilterHash = errors.New("filter hash must not be empty")
)

// Snapshot is a serialized projection together with the sequence number of the last event it covers.
// Projections resume from there instead of replaying the whole journal.
type Snapshot struct {
	ProjectionType string
	FilterHash     string
	SequenceNumber MaxSequenceNumberUint
	Data           jsoniter.RawMessage
	CreatedAt      time.Time
}

// Validate checks that the snapshot can be stored.
func (s Snapshot) Validate() error {
	if s.ProjectionType == "" {
		return ErrEmptyProjectionType
	}

	if s.FilterHash == "" {
		return ErrEmptyFilterHash
	}

	if !jsoniter.ConfigFastest.Valid(s.Data) {
		return ErrInvalidSnapshotJSON
	}

	return nil
}

// BuildSnapshot creates a validated Snapshot stamped with createdAt.
func BuildSnapshot(
	projectionType string,
	filterHash string,
	sequenceNumber MaxSequenceNumberUint,
	data []byte,
	createdAt time.Time,
) (Snapshot, error) {

	snapshot := Snapshot{
		ProjectionType: projectionType,
		FilterHash:     filterHash,
		SequenceNumber: sequenceNumber,
		Data:           data,
		CreatedAt:      createdAt,
	}

	if err := snapshot.Validate(); err != nil {
		return Snapshot{}, err
	}

	return snapshot, nil
}
