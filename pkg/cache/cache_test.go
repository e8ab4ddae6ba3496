package cache

import (
	"context"
	"errors"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/switchpuzzle/pkg/perm"
	"github.com/matzehuels/switchpuzzle/pkg/route"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	key := NewDefaultKeyer().ReportKey(InputHash(sampleInput("2314", "2134")), ReportKeyOpts{})
	if err := c.Set(ctx, key, []byte(`{"reports":[]}`), DefaultReportTTL); err != nil {
		t.Fatalf("Set: %v", err)
	}

	data, hit, err := c.Get(ctx, key)
	if err != nil || hit || data != nil {
		t.Errorf("Get after Set = (%q, %v, %v), want a miss", data, hit, err)
	}
	if err := c.Delete(ctx, key); err != nil {
		t.Errorf("Delete: %v", err)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	k1 := k.ReportKey("hash123", ReportKeyOpts{})
	k2 := k.ReportKey("hash123", ReportKeyOpts{Limit: 10})
	k3 := k.ReportKey("hash456", ReportKeyOpts{})
	if k1 == k2 {
		t.Error("Different ReportKeyOpts should produce different keys")
	}
	if k1 == k3 {
		t.Error("Different input hashes should produce different keys")
	}
	if !strings.HasPrefix(k1, "reports:") {
		t.Errorf("ReportKey unexpected: %s", k1)
	}
	if k1 != k.ReportKey("hash123", ReportKeyOpts{}) {
		t.Error("ReportKey should be deterministic")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "switchpuzzle:v1:")

	key := scoped.ReportKey("hash123", ReportKeyOpts{})
	want := "switchpuzzle:v1:" + inner.ReportKey("hash123", ReportKeyOpts{})
	if key != want {
		t.Errorf("ScopedKeyer ReportKey = %s, want %s", key, want)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.ReportKey("h", ReportKeyOpts{})
	if key != "prefix:"+NewDefaultKeyer().ReportKey("h", ReportKeyOpts{}) {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func sampleInput(goal string, ops ...string) route.Input {
	stage := make([]perm.Operation, len(ops))
	for i, s := range ops {
		stage[i] = perm.MustParseOperation(s)
	}
	return route.Input{
		Initial: perm.MustParseArrangement("1234"),
		Goal:    perm.MustParseArrangement(goal),
		Stages:  []route.Stage{route.NewStage("Path 1", stage...)},
	}
}

func TestInputHash(t *testing.T) {
	a := sampleInput("2314", "2134", "1324")
	if InputHash(a) != InputHash(sampleInput("2314", "2134", "1324")) {
		t.Error("InputHash should be deterministic")
	}

	tests := []struct {
		name string
		in   route.Input
	}{
		{"goal", sampleInput("2134", "2134", "1324")},
		{"menu order", sampleInput("2314", "1324", "2134")},
		{"menu size", sampleInput("2314", "2134")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if InputHash(tt.in) == InputHash(a) {
				t.Errorf("InputHash should change with %s", tt.name)
			}
		})
	}

	renamed := sampleInput("2314", "2134", "1324")
	renamed.Stages[0].Name = "Other"
	if InputHash(renamed) == InputHash(a) {
		t.Error("InputHash should change with stage name")
	}

	relabelled := sampleInput("2314", "2134", "1324")
	relabelled.Stages[0].Ops[0] = relabelled.Stages[0].Ops[0].WithLabel("swap")
	if InputHash(relabelled) == InputHash(a) {
		t.Error("InputHash should change with operation label")
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "key"); err != nil || hit {
		t.Fatalf("Get on empty cache = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || !hit {
		t.Fatalf("Get after Set = hit %v, err %v", hit, err)
	}
	if string(data) != "value" {
		t.Errorf("Get = %q, want %q", data, "value")
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete missing: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if err := c.Set(ctx, "old", []byte("x"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "old"); hit {
		t.Error("expired entry should miss")
	}

	if err := c.Set(ctx, "forever", []byte("x"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("entry without ttl should hit")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	if c.Dir() != dir {
		t.Errorf("Dir = %s, want %s", c.Dir(), dir)
	}

	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), time.Hour); err != nil {
			t.Fatalf("Set %s: %v", k, err)
		}
	}
	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("Get after Clear should miss")
	}
}

func TestParseRedisURL(t *testing.T) {
	opts, err := ParseRedisURL("redis://:secret@localhost:6380/2")
	if err != nil {
		t.Fatalf("ParseRedisURL: %v", err)
	}
	if opts.Addr != "localhost:6380" {
		t.Errorf("Addr = %s, want localhost:6380", opts.Addr)
	}
	if opts.DB != 2 {
		t.Errorf("DB = %d, want 2", opts.DB)
	}
	if opts.Password != "secret" {
		t.Errorf("Password = %q, want secret", opts.Password)
	}

	if _, err := NewRedisCache("http://localhost"); err == nil {
		t.Error("NewRedisCache should reject non-redis URLs")
	}
}

func TestUnavailable(t *testing.T) {
	if unavailable(nil) != nil {
		t.Error("unavailable(nil) should be nil")
	}
	if err := unavailable(redis.Nil); err != redis.Nil {
		t.Errorf("unavailable(redis.Nil) = %v, want redis.Nil", err)
	}
	netErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	if err := unavailable(netErr); !errors.Is(err, ErrUnavailable) {
		t.Errorf("unavailable(dial error) = %v, want ErrUnavailable", err)
	}
	reply := errors.New("WRONGTYPE Operation against a key holding the wrong kind of value")
	if unavailable(reply) != reply {
		t.Error("Redis replies should pass through")
	}
}

func testRedis(t *testing.T, attempts int) *RedisCache {
	t.Helper()
	c, err := NewRedisCache("redis://127.0.0.1:6379/0")
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	c.attempts = attempts
	c.backoff = time.Millisecond
	return c
}

func TestRedisRetry(t *testing.T) {
	ctx := context.Background()
	netErr := &net.OpError{Op: "read", Net: "tcp", Err: errors.New("connection reset")}

	tests := []struct {
		name      string
		failures  int
		failWith  error
		wantCalls int
		wantErr   error
	}{
		{"first try", 0, nil, 1, nil},
		{"recovers", 2, netErr, 3, nil},
		{"gives up", 5, netErr, 3, ErrUnavailable},
		{"miss is final", 5, redis.Nil, 1, redis.Nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testRedis(t, 3)
			calls := 0
			err := c.retry(ctx, func() error {
				calls++
				if calls <= tt.failures {
					return tt.failWith
				}
				return nil
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if tt.wantErr == nil && err != nil {
				t.Errorf("err = %v, want nil", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRedisRetryContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := testRedis(t, 3)
	calls := 0
	err := c.retry(ctx, func() error {
		calls++
		return &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
