package redis

import (
	"context"
	"testing"
	"time"

	"github.com/DRSN-tech/price-compare/internal/cfg"
	"github.com/DRSN-tech/price-compare/pkg/clients"
	"github.com/DRSN-tech/price-compare/pkg/logger"
	"github.com/alicebob/miniredis/v2"
)

func newTestRepo(t *testing.T) (*SearchCacheRepo, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	redisCfg := &cfg.RedisCfg{
		Addr:           mr.Addr(),
		Timeout:        time.Second,
		DialTimeout:    time.Second,
		SearchCacheTTL: time.Minute,
	}
	client := clients.NewRedisClient(redisCfg)
	t.Cleanup(func() { _ = client.Close(context.Background()) })

	return NewSearchCacheRepo(client, redisCfg, logger.NewNopLogger()), mr
}

func TestSearchCache_RoundTrip(t *testing.T) {
	repo, mr := newTestRepo(t)
	ctx := context.Background()

	if _, ok, err := repo.GetSearch(ctx, "milk"); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	payload := []byte(`{"products":[],"prices":{}}`)
	if err := repo.SetSearch(ctx, "milk", payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok, err := repo.GetSearch(ctx, "milk")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if string(got) != string(payload) {
		t.Errorf("expected %s, got %s", payload, got)
	}

	if ttl := mr.TTL(searchKey("milk")); ttl != time.Minute {
		t.Errorf("expected ttl 1m, got %v", ttl)
	}

	mr.FastForward(2 * time.Minute)
	if _, ok, _ := repo.GetSearch(ctx, "milk"); ok {
		t.Error("expected entry to expire")
	}
}

func TestSearchCache_RejectsInvalidPayload(t *testing.T) {
	repo, _ := newTestRepo(t)

	if err := repo.SetSearch(context.Background(), "milk", []byte("not json")); err == nil {
		t.Error("expected error for invalid payload")
	}
}

func TestSearchCache_CorruptedEntryIsMiss(t *testing.T) {
	repo, mr := newTestRepo(t)

	if err := mr.Set(searchKey("milk"), "{broken"); err != nil {
		t.Fatal(err)
	}

	if _, ok, err := repo.GetSearch(context.Background(), "milk"); ok || err != nil {
		t.Errorf("expected silent miss, got ok=%v err=%v", ok, err)
	}
	if mr.Exists(searchKey("milk")) {
		t.Error("corrupted entry must be removed")
	}
}

func TestSearchCache_QueryMismatchIsMiss(t *testing.T) {
	repo, mr := newTestRepo(t)

	if err := mr.Set(searchKey("milk"), `{"query":"bread","payload":{},"cached_at":1}`); err != nil {
		t.Fatal(err)
	}

	if _, ok, _ := repo.GetSearch(context.Background(), "milk"); ok {
		t.Error("expected miss on query mismatch")
	}
}

func TestSearchCache_Delete(t *testing.T) {
	repo, mr := newTestRepo(t)
	ctx := context.Background()

	if err := repo.SetSearch(ctx, "milk", []byte(`{}`)); err != nil {
		t.Fatal(err)
	}
	if err := repo.DeleteSearch(ctx, "milk"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mr.Exists(searchKey("milk")) {
		t.Error("expected key to be deleted")
	}
}
