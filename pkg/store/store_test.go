package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/boxlayout/pkg/errors"
	"github.com/matzehuels/boxlayout/pkg/geom"
	"github.com/matzehuels/boxlayout/pkg/scene"
)

func testRecord() Record {
	return Record{
		Name:     "toolbar",
		Format:   "toml",
		Document: "width = 10\nheight = 10\n",
		DocHash:  "abc",
		Result: &scene.Result{
			Width: 10, Height: 10,
			Boxes: []scene.BoxResult{{ID: scene.RootID, Rect: geom.R(0, 0, 10, 10)}},
		},
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	saved, err := s.Save(ctx, testRecord())
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := ValidateID(saved.ID); err != nil {
		t.Errorf("Save() assigned invalid id %q: %v", saved.ID, err)
	}
	if !saved.CreatedAt.Equal(fixed) {
		t.Errorf("CreatedAt = %v, want %v", saved.CreatedAt, fixed)
	}

	got, err := s.Get(ctx, saved.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if diff := cmp.Diff(saved, got); diff != "" {
		t.Errorf("Get() mismatch (-saved +got):\n%s", diff)
	}

	other, _ := s.Save(ctx, testRecord())
	if other.ID == saved.ID {
		t.Error("two saves should get distinct ids")
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}

	if err := s.Delete(ctx, saved.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get(ctx, saved.ID); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Get(deleted) error = %v, want NOT_FOUND", err)
	}
	if err := s.Delete(ctx, saved.ID); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Delete(deleted) error = %v, want NOT_FOUND", err)
	}
}

func TestSaveKeepsGivenID(t *testing.T) {
	s := NewMemoryStore()
	rec := testRecord()
	rec.ID = "5f1c1c34-2f5e-4d57-9a43-3f0b8a0d7e21"

	saved, err := s.Save(context.Background(), rec)
	if err != nil {
		t.Fatal(err)
	}
	if saved.ID != rec.ID {
		t.Errorf("ID = %q, want %q", saved.ID, rec.ID)
	}
}

func TestValidateID(t *testing.T) {
	tests := []struct {
		id      string
		wantErr bool
	}{
		{"5f1c1c34-2f5e-4d57-9a43-3f0b8a0d7e21", false},
		{"", true},
		{"not-a-uuid", true},
		{"../etc/passwd", true},
	}
	for _, tt := range tests {
		err := ValidateID(tt.id)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
		}
	}
}
