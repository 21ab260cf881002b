package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/bormex/bormex/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "bormex.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_SaveAndLoadEntries(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	entries := []model.Entry{
		{ID: "2021-200", Text: "Ceses/Dimisiones. Administrador Solidario: PEREZ GARCIA JUAN.",
			Date: time.Date(2021, 6, 15, 0, 0, 0, 0, time.UTC)},
		{ID: "2019-100", Text: "Constitución. Capital: 3.000 euros.",
			Date: time.Date(2019, 4, 1, 0, 0, 0, 0, time.UTC)},
	}
	if err := s.SaveEntries(ctx, "ACME SL", entries); err != nil {
		t.Fatalf("SaveEntries: %v", err)
	}

	got, err := s.Entries(ctx, "ACME SL")
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	// Ordered by date regardless of insert order.
	if got[0].ID != "2019-100" || got[1].ID != "2021-200" {
		t.Errorf("order = %s, %s", got[0].ID, got[1].ID)
	}
	if got[0].Date.Year() != 2019 {
		t.Errorf("Date = %v", got[0].Date)
	}

	if other, _ := s.Entries(ctx, "OTHER SL"); len(other) != 0 {
		t.Errorf("unexpected entries for other company: %d", len(other))
	}
}

func TestStore_SaveEntries_Upsert(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	e := model.Entry{ID: "e1", Text: "old text"}
	if err := s.SaveEntries(ctx, "ACME SL", []model.Entry{e}); err != nil {
		t.Fatal(err)
	}
	e.Text = "new text"
	if err := s.SaveEntries(ctx, "ACME SL", []model.Entry{e}); err != nil {
		t.Fatal(err)
	}

	got, err := s.Entries(ctx, "ACME SL")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d entries, want 1 after upsert", len(got))
	}
	if got[0].Text != "new text" {
		t.Errorf("Text = %q", got[0].Text)
	}
}

func TestStore_Snapshots(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rec := &model.CompanyRecord{
		Name:    "ACME SL",
		Status:  model.StatusActive,
		Capital: "3.000 euros",
	}
	if err := s.SaveSnapshot(ctx, rec); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	loaded, ok, err := s.Snapshot(ctx, "ACME SL")
	if err != nil || !ok {
		t.Fatalf("Snapshot: ok=%v err=%v", ok, err)
	}
	if loaded.Status != model.StatusActive {
		t.Errorf("Status = %s", loaded.Status)
	}
	if loaded.Capital != "3.000 euros" {
		t.Errorf("Capital = %q", loaded.Capital)
	}

	// Replacing keeps one snapshot per company.
	rec.Status = model.StatusDissolved
	if err := s.SaveSnapshot(ctx, rec); err != nil {
		t.Fatal(err)
	}
	infos, err := s.ListSnapshots(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(infos) != 1 {
		t.Fatalf("got %d snapshots, want 1", len(infos))
	}
	if infos[0].Status != string(model.StatusDissolved) {
		t.Errorf("listed status = %s", infos[0].Status)
	}

	if _, ok, _ := s.Snapshot(ctx, "MISSING SL"); ok {
		t.Error("expected no snapshot for unknown company")
	}
}
