package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/techstore/techstore-go/internal/model"
	"golang.org/x/sync/errgroup"
)

func seededMemoryStore() *MemoryStore {
	store := NewMemoryStore()
	store.InsertProduct(model.Product{ID: 1, Name: "Gaming Mouse", Price: "199.00", Category: model.CategoryPeripherals, InStock: true})
	return store
}

func TestMemoryStore_DuplicateEmail(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	u1 := &model.User{Name: "A", Email: "a@example.com", PasswordHash: "x"}
	if err := store.CreateUser(ctx, u1); err != nil {
		t.Fatalf("CreateUser() unexpected error: %v", err)
	}
	if u1.ID == 0 {
		t.Error("CreateUser() did not assign an ID")
	}

	u2 := &model.User{Name: "B", Email: "a@example.com", PasswordHash: "y"}
	if err := store.CreateUser(ctx, u2); !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestMemoryStore_AddItemMerges(t *testing.T) {
	store := seededMemoryStore()
	ctx := context.Background()

	if _, err := store.AddItem(ctx, 1, 1, 2); err != nil {
		t.Fatalf("AddItem() unexpected error: %v", err)
	}
	item, err := store.AddItem(ctx, 1, 1, 3)
	if err != nil {
		t.Fatalf("AddItem() unexpected error: %v", err)
	}
	if item.Quantity != 5 {
		t.Errorf("quantity = %d, want 5", item.Quantity)
	}

	items, err := store.ListItems(ctx, 1)
	if err != nil {
		t.Fatalf("ListItems() unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("expected one row per (user, product) pair, got %d", len(items))
	}
}

func TestMemoryStore_ConcurrentAdds(t *testing.T) {
	store := seededMemoryStore()
	ctx := context.Background()

	const n = 100
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			_, err := store.AddItem(ctx, 1, 1, 1)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent AddItem failed: %v", err)
	}

	items, err := store.ListItems(ctx, 1)
	if err != nil {
		t.Fatalf("ListItems() unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d rows, want exactly 1", len(items))
	}
	if items[0].Quantity != n {
		t.Errorf("quantity = %d, want %d", items[0].Quantity, n)
	}
}

func TestMemoryStore_ListOmitsOrphanedLines(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	// A line item referencing a product that was never inserted.
	if _, err := store.AddItem(ctx, 1, 42, 1); err != nil {
		t.Fatalf("AddItem() unexpected error: %v", err)
	}

	items, err := store.ListItems(ctx, 1)
	if err != nil {
		t.Fatalf("ListItems() unexpected error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("orphaned line item not omitted: %+v", items)
	}
}
