package log_test

import (
	"fmt"
	"testing"
	"time"

	applog "soukel/internal/log"
)

func TestBufferKeepsLastHundred(t *testing.T) {
	l := applog.New(applog.LevelDebug, "test")
	for i := 0; i < 150; i++ {
		l.Info(nil, fmt.Sprintf("event.%d", i), nil)
	}
	got := l.RecentLogs(0)
	if len(got) != 100 {
		t.Fatalf("expected 100 buffered entries, got %d", len(got))
	}
	// oldest 50 evicted, order chronological
	if got[0].Action != "event.50" {
		t.Fatalf("expected oldest entry event.50, got %s", got[0].Action)
	}
	if got[99].Action != "event.149" {
		t.Fatalf("expected newest entry event.149, got %s", got[99].Action)
	}
}

func TestThresholdFiltersBelowLevel(t *testing.T) {
	l := applog.New(applog.LevelWarn, "test")
	l.Debug(nil, "dropped.debug", nil)
	l.Info(nil, "dropped.info", nil)
	l.Warn(nil, "kept.warn", nil)
	l.Error(nil, "kept.error", fmt.Errorf("boom"), nil)

	got := l.RecentLogs(0)
	if len(got) != 2 {
		t.Fatalf("expected 2 entries above threshold, got %d", len(got))
	}
	if got[0].Action != "kept.warn" || got[1].Action != "kept.error" {
		t.Fatalf("unexpected entries: %+v", got)
	}
	if got[1].Err != "boom" {
		t.Fatalf("error not recorded: %+v", got[1])
	}
}

func TestSetLevelTakesEffect(t *testing.T) {
	l := applog.New(applog.LevelError, "test")
	l.Info(nil, "before", nil)
	l.SetLevel(applog.LevelDebug)
	l.Info(nil, "after", nil)

	got := l.RecentLogs(0)
	if len(got) != 1 || got[0].Action != "after" {
		t.Fatalf("unexpected entries: %+v", got)
	}
}

func TestRecentLogsLimit(t *testing.T) {
	l := applog.New(applog.LevelDebug, "test")
	for i := 0; i < 10; i++ {
		l.Info(nil, fmt.Sprintf("e.%d", i), nil)
	}
	got := l.RecentLogs(3)
	if len(got) != 3 {
		t.Fatalf("expected 3, got %d", len(got))
	}
	if got[0].Action != "e.7" || got[2].Action != "e.9" {
		t.Fatalf("expected most recent three in order, got %+v", got)
	}
}

func TestAPIResponseSeverity(t *testing.T) {
	l := applog.New(applog.LevelDebug, "test")
	l.APIResponse("api.ads.list", 200, nil)
	l.APIResponse("api.ads.list", 302, nil)
	l.APIResponse("api.ads.list", 404, nil)

	got := l.RecentLogs(0)
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	want := []string{"debug", "warn", "error"}
	for i, lv := range want {
		if got[i].Level != lv {
			t.Errorf("status entry %d: level %s, want %s", i, got[i].Level, lv)
		}
	}
}

func TestDurationPromotesSlowOps(t *testing.T) {
	l := applog.New(applog.LevelDebug, "test")
	l.Duration("db.query", 20*time.Millisecond, nil)
	l.Duration("db.query", 1500*time.Millisecond, nil)

	got := l.RecentLogs(0)
	if got[0].Level != "debug" {
		t.Fatalf("fast op recorded at %s", got[0].Level)
	}
	if got[1].Level != "warn" {
		t.Fatalf("slow op recorded at %s", got[1].Level)
	}
	if got[1].Fields["duration_ms"].(int64) != 1500 {
		t.Fatalf("duration not recorded: %+v", got[1].Fields)
	}
}

func TestUserActionCarriesUserID(t *testing.T) {
	l := applog.New(applog.LevelDebug, "test")
	l.UserAction("user_demo", "ad.create", map[string]any{"ad_id": "ad_1"})

	got := l.RecentLogs(1)
	if len(got) != 1 {
		t.Fatal("entry not recorded")
	}
	if got[0].Fields["user_id"] != "user_demo" || got[0].Fields["ad_id"] != "ad_1" {
		t.Fatalf("fields missing: %+v", got[0].Fields)
	}
	if got[0].Level != "info" {
		t.Fatalf("user actions record at info, got %s", got[0].Level)
	}
}
