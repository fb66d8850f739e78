// Package store persists the named records the engine operates on. A record
// is an opaque JSON document saved under a (user, name) pair; absence is a
// normal outcome, not an error.
package store

import (
	"context"
	"encoding/json"
)

// Record names. Each user has at most one record per name.
const (
	RecordProfile  = "profile"
	RecordTargets  = "targets"
	RecordWeights  = "weights"
	RecordCheckIns = "checkins"
	RecordProgram  = "program"
	RecordWorkouts = "workouts"
	RecordAdvice   = "advice"
)

// Store loads and saves named records. Load returns (nil, false, nil) when
// the record does not exist. Save failures are non-fatal to callers: the
// in-memory state stays authoritative for the session.
type Store interface {
	Load(ctx context.Context, userID, name string) (json.RawMessage, bool, error)
	Save(ctx context.Context, userID, name string, record any) error
	Users(ctx context.Context) ([]string, error)
}

// LoadInto unmarshals a named record into out, reporting whether it existed.
func LoadInto(ctx context.Context, s Store, userID, name string, out any) (bool, error) {
	raw, ok, err := s.Load(ctx, userID, name)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, err
	}
	return true, nil
}
