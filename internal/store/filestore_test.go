package store

import (
	"context"
	"testing"

	"github.com/gbell030587-alt/Gbell3587/engine"
)

func TestFileStoreRoundTrip(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	ctx := context.Background()

	targets := engine.Targets{Calories: 2200, Protein: 150, Carbs: 240, Fat: 61, TDEE: 2700}
	if err := fs.Save(ctx, "user-1", RecordTargets, targets); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	var got engine.Targets
	ok, err := LoadInto(ctx, fs, "user-1", RecordTargets, &got)
	if err != nil {
		t.Fatalf("LoadInto failed: %v", err)
	}
	if !ok {
		t.Fatal("record should exist")
	}
	if got != targets {
		t.Errorf("round trip = %+v, want %+v", got, targets)
	}
}

func TestFileStoreAbsent(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	raw, ok, err := fs.Load(context.Background(), "nobody", RecordProfile)
	if err != nil {
		t.Fatalf("Load of absent record errored: %v", err)
	}
	if ok || raw != nil {
		t.Error("absent record should be (nil, false, nil)")
	}
}

func TestFileStoreOverwrite(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	ctx := context.Background()

	weights := engine.WeightLog{"2026-01-01": 200.0}
	if err := fs.Save(ctx, "u", RecordWeights, weights); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	weights.Put("2026-01-01", 199.2)
	if err := fs.Save(ctx, "u", RecordWeights, weights); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	var got engine.WeightLog
	if _, err := LoadInto(ctx, fs, "u", RecordWeights, &got); err != nil {
		t.Fatalf("LoadInto failed: %v", err)
	}
	if got["2026-01-01"] != 199.2 {
		t.Errorf("weight = %f, want 199.2", got["2026-01-01"])
	}
}

func TestFileStoreUsers(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	ctx := context.Background()

	for _, u := range []string{"b-user", "a-user"} {
		if err := fs.Save(ctx, u, RecordProfile, engine.Profile{Name: u}); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	users, err := fs.Users(ctx)
	if err != nil {
		t.Fatalf("Users failed: %v", err)
	}
	if len(users) != 2 || users[0] != "a-user" || users[1] != "b-user" {
		t.Errorf("users = %v, want [a-user b-user]", users)
	}
}
