package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/typeracer/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "prompts.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestAddAndListPrompts(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	now := time.Unix(1700000000, 0).UTC()

	added, err := st.AddPrompts(ctx, model.LevelMedium, []string{"Second level.", "  Another one.  "}, now)
	if err != nil {
		t.Fatalf("add prompts: %v", err)
	}
	if added != 2 {
		t.Fatalf("expected 2 added, got %d", added)
	}
	added, err = st.AddPrompts(ctx, model.LevelEasy, []string{"Easy one.", "Easy one."}, now)
	if err != nil {
		t.Fatalf("add prompts: %v", err)
	}
	if added != 1 {
		t.Fatalf("expected duplicate to be skipped, got %d", added)
	}

	all, err := st.ListPrompts(ctx, 0)
	if err != nil {
		t.Fatalf("list prompts: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 prompts, got %d", len(all))
	}
	if all[0].Level != model.LevelEasy || all[1].Text != "Second level." || all[2].Text != "Another one." {
		t.Fatalf("unexpected order: %+v", all)
	}
	if !all[0].CreatedAt.Equal(now) {
		t.Fatalf("unexpected created_at %v", all[0].CreatedAt)
	}

	medium, err := st.ListPrompts(ctx, model.LevelMedium)
	if err != nil {
		t.Fatalf("list prompts: %v", err)
	}
	if len(medium) != 2 {
		t.Fatalf("expected 2 medium prompts, got %d", len(medium))
	}
}

func TestAddPromptsRejectsBlank(t *testing.T) {
	st := openTestStore(t)
	_, err := st.AddPrompts(context.Background(), model.LevelEasy, []string{"ok", "   "}, time.Now())
	if !errors.Is(err, ErrEmptyPrompt) {
		t.Fatalf("expected ErrEmptyPrompt, got %v", err)
	}
	prompts, err := st.ListPrompts(context.Background(), 0)
	if err != nil {
		t.Fatalf("list prompts: %v", err)
	}
	if len(prompts) != 0 {
		t.Fatalf("expected nothing stored, got %d", len(prompts))
	}
}

func TestPromptPools(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	if _, err := st.AddPrompts(ctx, model.LevelHard, []string{"Hard A.", "Hard B."}, time.Now()); err != nil {
		t.Fatalf("add prompts: %v", err)
	}
	if _, err := st.AddPrompts(ctx, 5, []string{"Level five."}, time.Now()); err != nil {
		t.Fatalf("add prompts: %v", err)
	}
	pools, err := st.PromptPools(ctx)
	if err != nil {
		t.Fatalf("prompt pools: %v", err)
	}
	if len(pools) != 2 || len(pools[model.LevelHard]) != 2 || pools[5][0] != "Level five." {
		t.Fatalf("unexpected pools: %v", pools)
	}
}

func TestRemovePrompt(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	if _, err := st.AddPrompts(ctx, model.LevelEasy, []string{"Remove me."}, time.Now()); err != nil {
		t.Fatalf("add prompts: %v", err)
	}
	prompts, err := st.ListPrompts(ctx, 0)
	if err != nil || len(prompts) != 1 {
		t.Fatalf("list prompts: %v %d", err, len(prompts))
	}
	if err := st.RemovePrompt(ctx, prompts[0].ID); err != nil {
		t.Fatalf("remove prompt: %v", err)
	}
	if err := st.RemovePrompt(ctx, prompts[0].ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
