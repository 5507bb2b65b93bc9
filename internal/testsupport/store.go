package testsupport

import (
	"context"
	"testing"
	"time"

	"visionboard/internal/config"
	"visionboard/internal/sop"
	"visionboard/internal/store"
	"visionboard/internal/vision"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// NewRecord builds a schema-valid record for tests. The archetype, palette,
// emotions, and values shape how the record relates to others.
func NewRecord(t testing.TB, archetype string, batchIndex int, palette, emotions, values []string) *vision.Record {
	t.Helper()

	result := vision.Result{
		VisualDNA: vision.VisualDNA{
			ColorPalette:  palette,
			EmotionalCore: emotions,
			Archetype:     archetype,
		},
		Lifestyle: vision.LifestyleInference{
			Values: values,
		},
		SopMapping: []vision.SopMappingEntry{
			{
				Module:    vision.ModuleWritePlan,
				SubSystem: sop.SubVisionJournal,
				Actions:   []string{"Write one page"},
			},
		},
	}
	now := time.Now()
	return &vision.Record{
		ID:         vision.NewRecordID(now, batchIndex),
		ImagePath:  "/boards/" + archetype + ".jpg",
		UploadedAt: now.UnixMilli(),
		Result:     result,
		Path:       sop.DeriveManifestationPath(result),
	}
}

// SaveRecord persists a record through the store and fails the test on error.
func SaveRecord(t testing.TB, st *store.Store, record *vision.Record) {
	t.Helper()

	if err := st.Save(context.Background(), record); err != nil {
		t.Fatalf("store.Save: %v", err)
	}
}
