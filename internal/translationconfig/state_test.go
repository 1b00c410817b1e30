package translationconfig

import (
	"context"
	"testing"
	"time"
)

func TestStateCanTranslate(t *testing.T) {
	state := NewState(Settings{
		TranslationsEnabled: true,
		BaseLanguage:        "en",
		Languages:           []string{"fr", "es"},
	})

	cases := []struct {
		name           string
		source, target string
		want           bool
	}{
		{"base to configured", "en", "fr", true},
		{"case insensitive", "EN", " Es ", true},
		{"non base source", "fr", "es", false},
		{"same language", "en", "en", false},
		{"unconfigured target", "en", "de", false},
		{"empty target", "en", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := state.CanTranslate(tc.source, tc.target); got != tc.want {
				t.Fatalf("CanTranslate(%q, %q) = %v, want %v", tc.source, tc.target, got, tc.want)
			}
		})
	}
}

func TestStateDisabledDeniesEverything(t *testing.T) {
	state := NewState(Settings{TranslationsEnabled: true, BaseLanguage: "en"})
	if !state.CanTranslate("en", "de") {
		t.Fatal("expected any target to be allowed without a language list")
	}
	state.SetEnabled(false)
	if state.CanTranslate("en", "de") {
		t.Fatal("expected disabled state to deny")
	}
	if state.BaseLanguage() != "en" {
		t.Fatalf("expected base language to survive toggle, got %q", state.BaseLanguage())
	}
}

func TestNilStateIsSafe(t *testing.T) {
	var state *State
	if state.Enabled() || state.CanTranslate("en", "fr") {
		t.Fatal("expected nil state to deny")
	}
	state.Apply(Settings{TranslationsEnabled: true})
}

func TestWatchAppliesChanges(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	repo := NewMemoryRepository()
	fallback := Settings{TranslationsEnabled: false, BaseLanguage: "en"}
	state := NewState(fallback)

	done, err := Watch(ctx, repo, state, fallback, nil)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	if _, err := repo.Upsert(ctx, Settings{TranslationsEnabled: true, BaseLanguage: "en"}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	waitFor(t, func() bool { return state.CanTranslate("en", "fr") })

	if err := repo.Delete(ctx); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	waitFor(t, func() bool { return !state.Enabled() })

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestLoadSeedsState(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	state := NewState(Settings{})

	if err := Load(ctx, repo, state); err != nil {
		t.Fatalf("Load() on empty repo error = %v", err)
	}
	if _, err := repo.Upsert(ctx, Settings{TranslationsEnabled: true, BaseLanguage: "de"}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if err := Load(ctx, repo, state); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if state.BaseLanguage() != "de" || !state.Enabled() {
		t.Fatalf("unexpected state %+v", state.Settings())
	}
}

func TestBroadcasterDropsClosedSubscribers(t *testing.T) {
	b := newChangeBroadcaster()
	ctx, cancel := context.WithCancel(context.Background())
	if _, err := b.Subscribe(ctx); err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	if b.subscriberCount() != 1 {
		t.Fatalf("expected 1 subscriber, got %d", b.subscriberCount())
	}
	cancel()
	waitFor(t, func() bool { return b.subscriberCount() == 0 })
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}
