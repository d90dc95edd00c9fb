// Package storetest holds the behaviour every store backend must share.
package storetest

import (
	"context"
	"sort"
	"strconv"
	"testing"

	"payments-gateway/internal/models"
	"payments-gateway/internal/store"
)

// ExistingID is an explicit id handed straight to Save.
const ExistingID = "existingId123"

// Payment builds the fixture used across the suite: from<amount>, to<amount>.
func Payment(id string, amount int64) models.Payment {
	return models.Payment{
		ID:     id,
		From:   "from" + strconv.FormatInt(amount, 10),
		To:     "to" + strconv.FormatInt(amount, 10),
		Amount: amount,
	}
}

// Run exercises the full store contract against a fresh, empty store
// produced by newStore for every subtest.
func Run(t *testing.T, newStore func(t *testing.T) store.Store) {
	t.Run("Lifecycle", func(t *testing.T) { testLifecycle(t, newStore(t)) })
	t.Run("EmptyList", func(t *testing.T) { testEmptyList(t, newStore(t)) })
	t.Run("GetAbsent", func(t *testing.T) { testGetAbsent(t, newStore(t)) })
	t.Run("DeleteAbsent", func(t *testing.T) { testDeleteAbsent(t, newStore(t)) })
	t.Run("SaveExplicitIDInserts", func(t *testing.T) { testSaveExplicitIDInserts(t, newStore(t)) })
	t.Run("UniqueIDs", func(t *testing.T) { testUniqueIDs(t, newStore(t)) })
	t.Run("Ping", func(t *testing.T) {
		if err := newStore(t).Ping(context.Background()); err != nil {
			t.Fatalf("Ping: %v", err)
		}
	})
}

func testLifecycle(t *testing.T, s store.Store) {
	ctx := context.Background()

	mustCount(t, s, 0)

	// Save without id: store generates one.
	p1, err := s.Save(ctx, Payment("", 1))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if p1.ID == "" {
		t.Fatal("expected generated id")
	}

	// Save with id: store keeps it.
	p2, err := s.Save(ctx, Payment(ExistingID, 1))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if p2.ID != ExistingID {
		t.Fatalf("id = %q, want %q", p2.ID, ExistingID)
	}
	mustCount(t, s, 2)

	if *p1 != Payment(p1.ID, 1) {
		t.Errorf("saved payment = %+v", *p1)
	}

	// Update in place.
	p3, err := s.Save(ctx, Payment(p1.ID, 2))
	if err != nil {
		t.Fatalf("Save update: %v", err)
	}
	if p3.ID != p1.ID {
		t.Fatalf("update changed id %q -> %q", p1.ID, p3.ID)
	}
	mustCount(t, s, 2)

	got, err := s.Get(ctx, p1.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || *got != Payment(p1.ID, 2) {
		t.Fatalf("Get after update = %+v", got)
	}

	// The update did not touch the other record.
	other, err := s.Get(ctx, ExistingID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if other == nil || *other != Payment(ExistingID, 1) {
		t.Fatalf("Get other = %+v", other)
	}

	all, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	assertSameSet(t, all, []models.Payment{*p2, *p3})

	if err := s.Delete(ctx, p1.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	gone, err := s.Get(ctx, p1.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if gone != nil {
		t.Fatalf("deleted payment still present: %+v", gone)
	}
	mustCount(t, s, 1)
}

func testEmptyList(t *testing.T, s store.Store) {
	all, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if all == nil {
		t.Fatal("List returned nil slice")
	}
	if len(all) != 0 {
		t.Fatalf("List = %d items, want 0", len(all))
	}
}

func testGetAbsent(t *testing.T, s store.Store) {
	got, err := s.Get(context.Background(), "xxxxxxxxxxxxxxxxxxxxxxxx")
	if err != nil {
		t.Fatalf("Get absent returned error: %v", err)
	}
	if got != nil {
		t.Fatalf("Get absent = %+v, want nil", got)
	}
}

func testDeleteAbsent(t *testing.T, s store.Store) {
	ctx := context.Background()
	if _, err := s.Save(ctx, Payment("", 1)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Delete(ctx, "missing"); err != nil {
		t.Fatalf("Delete absent returned error: %v", err)
	}
	mustCount(t, s, 1)
}

func testSaveExplicitIDInserts(t *testing.T, s store.Store) {
	ctx := context.Background()
	if _, err := s.Save(ctx, Payment("fresh-id", 7)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Get(ctx, "fresh-id")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || *got != Payment("fresh-id", 7) {
		t.Fatalf("Get = %+v", got)
	}
}

func testUniqueIDs(t *testing.T, s store.Store) {
	ctx := context.Background()
	seen := make(map[string]bool)
	for i := int64(0); i < 20; i++ {
		p, err := s.Save(ctx, Payment("", i))
		if err != nil {
			t.Fatalf("Save: %v", err)
		}
		if seen[p.ID] {
			t.Fatalf("duplicate id %q", p.ID)
		}
		seen[p.ID] = true
	}
	mustCount(t, s, 20)
}

func mustCount(t *testing.T, s store.Store, want int64) {
	t.Helper()
	n, err := s.Count(context.Background())
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != want {
		t.Fatalf("Count = %d, want %d", n, want)
	}
}

func assertSameSet(t *testing.T, got, want []models.Payment) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d payments, want %d: %+v", len(got), len(want), got)
	}
	byID := func(ps []models.Payment) {
		sort.Slice(ps, func(i, j int) bool { return ps[i].ID < ps[j].ID })
	}
	got = append([]models.Payment(nil), got...)
	want = append([]models.Payment(nil), want...)
	byID(got)
	byID(want)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("payment %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}
