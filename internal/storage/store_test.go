package storage_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Joelrtharakan/boredom-breaker/backend/internal/model/chat"
	"github.com/Joelrtharakan/boredom-breaker/backend/internal/storage"
)

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open err: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestJournalRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	id, err := store.CreateJournal(ctx, 1, "first entry", "today was fine", false)
	if err != nil {
		t.Fatalf("CreateJournal err: %v", err)
	}
	if _, err := store.CreateJournal(ctx, 2, "someone else", "private", true); err != nil {
		t.Fatalf("CreateJournal err: %v", err)
	}

	entries, err := store.ListJournals(ctx, 1)
	if err != nil {
		t.Fatalf("ListJournals err: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries: got %d want 1", len(entries))
	}
	if entries[0].ID != id || entries[0].Title != "first entry" || entries[0].Encrypted {
		t.Fatalf("unexpected entry: %+v", entries[0])
	}
	if entries[0].CreatedAt.IsZero() {
		t.Fatal("created_at not set")
	}

	if err := store.DeleteJournal(ctx, 1, id); err != nil {
		t.Fatalf("DeleteJournal err: %v", err)
	}
	if err := store.DeleteJournal(ctx, 1, id); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("second delete: got %v want ErrNoRows", err)
	}
}

func TestConcurrentWritesDoNotCollide(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	const (
		writers          = 8
		entriesPerWriter = 10
	)

	var wg sync.WaitGroup
	errs := make(chan error, writers*entriesPerWriter)
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < entriesPerWriter; i++ {
				title := fmt.Sprintf("writer %d entry %d", w, i)
				if _, err := store.CreateJournal(ctx, int64(w), title, "busy evening", false); err != nil {
					errs <- err
				}
			}
		}(w)
	}
	wg.Wait()
	close(errs)

	if err := <-errs; err != nil {
		t.Fatalf("concurrent write failed: %v", err)
	}

	total := 0
	for w := 0; w < writers; w++ {
		entries, err := store.ListJournals(ctx, int64(w))
		if err != nil {
			t.Fatalf("ListJournals err: %v", err)
		}
		total += len(entries)
	}
	if total != writers*entriesPerWriter {
		t.Fatalf("persisted entries: got %d want %d", total, writers*entriesPerWriter)
	}
}

func TestLockboxKeepsBlobsOutOfListings(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	blob := []byte{0xde, 0xad, 0xbe, 0xef}
	id, err := store.SaveLockbox(ctx, 1, "diary key", blob)
	if err != nil {
		t.Fatalf("SaveLockbox err: %v", err)
	}

	items, err := store.ListLockbox(ctx, 1)
	if err != nil {
		t.Fatalf("ListLockbox err: %v", err)
	}
	if len(items) != 1 || items[0].Label != "diary key" {
		t.Fatalf("unexpected listing: %+v", items)
	}

	data, err := store.GetLockbox(ctx, 1, id)
	if err != nil {
		t.Fatalf("GetLockbox err: %v", err)
	}
	if string(data) != string(blob) {
		t.Fatalf("blob mismatch: got %x", data)
	}

	if _, err := store.GetLockbox(ctx, 2, id); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("cross-user read: got %v want ErrNoRows", err)
	}
}

func TestMoodHistoryNewestFirst(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if _, err := store.LogMood(ctx, 1, "sad", "sadness", 0.9, []string{"music"}); err != nil {
		t.Fatalf("LogMood err: %v", err)
	}
	if _, err := store.LogMood(ctx, 1, "happy", "joy", 0.7, nil); err != nil {
		t.Fatalf("LogMood err: %v", err)
	}

	entries, err := store.MoodHistory(ctx, 1, 0)
	if err != nil {
		t.Fatalf("MoodHistory err: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries: got %d want 2", len(entries))
	}
	if entries[0].Mood != "happy" || entries[1].Mood != "sad" {
		t.Fatalf("order wrong: %+v", entries)
	}
	if len(entries[1].ActivitiesUsed) != 1 || entries[1].ActivitiesUsed[0] != "music" {
		t.Fatalf("activities: %+v", entries[1].ActivitiesUsed)
	}
}

func TestGameScoresFilterByGame(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if _, err := store.SubmitScore(ctx, 1, "reaction", 312, `{"score": 312}`); err != nil {
		t.Fatalf("SubmitScore err: %v", err)
	}
	if _, err := store.SubmitScore(ctx, 1, "memory", 9, `{"score": 9}`); err != nil {
		t.Fatalf("SubmitScore err: %v", err)
	}

	scores, err := store.Scores(ctx, 1, "reaction", 0)
	if err != nil {
		t.Fatalf("Scores err: %v", err)
	}
	if len(scores) != 1 || scores[0].Score != 312 {
		t.Fatalf("unexpected scores: %+v", scores)
	}

	all, err := store.Scores(ctx, 1, "", 0)
	if err != nil {
		t.Fatalf("Scores err: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("all scores: got %d want 2", len(all))
	}
}

func TestChatHistoryScopedBySession(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	save := func(id, session, role, content string, at time.Time) {
		t.Helper()
		err := store.SaveChatMessage(ctx, chat.Message{
			ID: id, SessionID: session, UserID: 1, Role: role, Content: content, CreatedAt: at,
		})
		if err != nil {
			t.Fatalf("SaveChatMessage err: %v", err)
		}
	}

	save("m1", "s1", "user", "hi", base)
	save("m2", "s1", "assistant", "hello", base.Add(time.Second))
	save("m3", "s2", "user", "other session", base.Add(2*time.Second))

	messages, err := store.ChatHistory(ctx, 1, "s1", 0)
	if err != nil {
		t.Fatalf("ChatHistory err: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("messages: got %d want 2", len(messages))
	}
	if messages[0].ID != "m1" || messages[1].ID != "m2" {
		t.Fatalf("order wrong: %+v", messages)
	}

	all, err := store.ChatHistory(ctx, 1, "", 0)
	if err != nil {
		t.Fatalf("ChatHistory err: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("all messages: got %d want 3", len(all))
	}
}
