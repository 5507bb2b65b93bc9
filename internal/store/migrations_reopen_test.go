package store_test

import (
	"context"
	"testing"

	"visionboard/internal/store"
	"visionboard/internal/testsupport"
)

func TestReopenSkipsAppliedMigrations(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	ctx := context.Background()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	record := testsupport.NewRecord(t, "The Quiet Curator", 0, nil, nil, nil)
	if err := st.Save(ctx, record); err != nil {
		t.Fatalf("save record: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	// A second open re-runs migrate against the populated database; applied
	// scripts must be skipped and existing rows survive.
	st, err = store.Open(cfg)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer st.Close()

	records, err := st.List(ctx)
	if err != nil {
		t.Fatalf("list records: %v", err)
	}
	if len(records) != 1 || records[0].ID != record.ID {
		t.Fatalf("expected the saved record to survive reopen, got %d records", len(records))
	}
}
