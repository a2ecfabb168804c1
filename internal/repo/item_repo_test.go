package repo

import (
	"context"
	"errors"
	"testing"
	"time"
)

// Item lifecycle mirrors Recipient; these tests cover the mirrored surface
// plus the item-side reference count.

func TestItemLifecycle(t *testing.T) {
	db := newRepoTestDB(t)
	ctx := context.Background()

	created, err := CreateItemIfAbsent(ctx, db, "핸드타올")
	if err != nil || !created {
		t.Fatalf("insert: created=%v err=%v", created, err)
	}
	if created, _ = CreateItemIfAbsent(ctx, db, "핸드타올"); created {
		t.Fatalf("duplicate item insert must be skipped")
	}
	_, _ = CreateItemIfAbsent(ctx, db, "점보롤")

	items, _ := ListItems(ctx, db, false)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	id := items[0].ID

	if err := RenameItem(ctx, db, id, "물비누"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if got, _ := GetItem(ctx, db, id); got.Name != "물비누" {
		t.Fatalf("rename not persisted: %+v", got)
	}
	if err := RenameItem(ctx, db, id, "점보롤"); err == nil {
		t.Fatalf("expected unique violation renaming onto existing name")
	}
	if err := RenameItem(ctx, db, 9999, "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := SetItemActive(ctx, db, id, false); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if active, _ := ListItems(ctx, db, true); len(active) != 1 {
		t.Fatalf("expected 1 active item after deactivation")
	}
	if err := SetItemActive(ctx, db, 9999, false); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteItem_BlockedWhileReferenced(t *testing.T) {
	db := newRepoTestDB(t)
	ctx := context.Background()

	_, _ = CreateRecipientIfAbsent(ctx, db, "김순영")
	_, _ = CreateItemIfAbsent(ctx, db, "락스")
	recs, _ := ListRecipients(ctx, db, false)
	items, _ := ListItems(ctx, db, false)

	if _, err := InsertLog(ctx, db, recs[0].ID, items[0].ID, 1, "", time.Now()); err != nil {
		t.Fatalf("insert log: %v", err)
	}
	if n, _ := CountLogsForItem(ctx, db, items[0].ID); n != 1 {
		t.Fatalf("item ref count = %d; want 1", n)
	}
	if err := DeleteItem(ctx, db, items[0].ID); err == nil {
		t.Fatalf("expected FK violation deleting referenced item")
	}

	// Row and its log must remain present after the failed delete.
	if _, err := GetItem(ctx, db, items[0].ID); err != nil {
		t.Fatalf("item vanished after blocked delete: %v", err)
	}
	rows, _ := ListLogs(ctx, db, LogFilter{})
	if len(rows) != 1 {
		t.Fatalf("log vanished after blocked delete")
	}

	if err := DeleteLog(ctx, db, rows[0].ID); err != nil {
		t.Fatalf("delete log: %v", err)
	}
	if err := DeleteItem(ctx, db, items[0].ID); err != nil {
		t.Fatalf("delete unreferenced item: %v", err)
	}
}
