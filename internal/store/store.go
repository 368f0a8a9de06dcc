// Package store persists profile snapshots and the weight progress log.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"fitplanner/internal/models"
)

var ErrNotFound = errors.New("store: not found")

type ProfileSnapshot struct {
	CreatedAt time.Time       `json:"created_at"`
	Payload   json.RawMessage `json:"payload"`
}

func NewProfileSnapshot(p models.Profile, at time.Time) (ProfileSnapshot, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return ProfileSnapshot{}, err
	}
	return ProfileSnapshot{CreatedAt: at.UTC(), Payload: payload}, nil
}

func (s ProfileSnapshot) Profile() (models.Profile, error) {
	var p models.Profile
	if err := json.Unmarshal(s.Payload, &p); err != nil {
		return models.Profile{}, err
	}
	return p, nil
}

type ProgressEntry struct {
	Date     time.Time `json:"date"`
	WeightKg float64   `json:"weight_kg"`
}

type ProfileStore interface {
	SaveProfile(ctx context.Context, userID string, snap ProfileSnapshot) error
	// LatestProfile returns ErrNotFound when nothing was saved for userID.
	LatestProfile(ctx context.Context, userID string) (ProfileSnapshot, error)
}

type ProgressLog interface {
	AppendProgress(ctx context.Context, userID string, entry ProgressEntry) error
	// ListProgress returns the most recent limit entries, oldest first. A
	// limit of zero or less returns everything.
	ListProgress(ctx context.Context, userID string, limit int) ([]ProgressEntry, error)
}

type Store interface {
	ProfileStore
	ProgressLog
}
