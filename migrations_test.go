package configi18n_test

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	configi18n "github.com/goliatone/go-config-i18n"
	"github.com/goliatone/go-config-i18n/internal/di"
	"github.com/goliatone/go-config-i18n/internal/users"
	"github.com/goliatone/go-config-i18n/pkg/testsupport"
)

func TestMigrationsMatchRepositories(t *testing.T) {
	ctx := context.Background()
	sqlDB, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("new sqlite db: %v", err)
	}
	db := bun.NewDB(sqlDB, sqlitedialect.New())
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	cfg := configi18n.DefaultConfig()
	cfg.Users.InstallOnStart = true
	module, err := configi18n.New(cfg, di.WithBunDB(db))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	t.Cleanup(func() { _ = module.Close() })

	if err := module.MigrateUp(ctx); err != nil {
		t.Fatalf("MigrateUp returned error: %v", err)
	}
	if err := module.MigrateUp(ctx); err != nil {
		t.Fatalf("second MigrateUp returned error: %v", err)
	}

	if err := module.Start(ctx); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	accounts, err := module.Users().List(ctx)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("expected 2 default users, got %d", len(accounts))
	}

	if _, err := module.Strings().Save(ctx, configi18n.LocaleString{Language: "fr", Source: "Home", Translation: "Accueil"}); err != nil {
		t.Fatalf("save string: %v", err)
	}
	if _, err := module.UpdateSettings(ctx, configi18n.TranslationSettings{TranslationsEnabled: true, BaseLanguage: "en", Languages: []string{"fr"}}); err != nil {
		t.Fatalf("update settings: %v", err)
	}
	if _, err := module.Terms().Create(ctx, &configi18n.Term{Vocabulary: "tags", Name: "Music", Translations: map[string]string{"fr": "Musique"}}); err != nil {
		t.Fatalf("create term: %v", err)
	}

	if err := module.MigrateDown(ctx); err != nil {
		t.Fatalf("MigrateDown returned error: %v", err)
	}
	if _, err := module.Users().GetByUID(ctx, users.AdminUID); err == nil {
		t.Fatalf("expected users table to be dropped")
	}
}

func TestMigrationFilesUseBunSplitMarkers(t *testing.T) {
	fsys, err := configi18n.Migrations()
	if err != nil {
		t.Fatalf("migrations fs: %v", err)
	}
	for _, name := range []string{
		"20260301000000_initial_schema.up.sql",
		"20260301000000_initial_schema.down.sql",
	} {
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			t.Fatalf("read migration %s: %v", name, err)
		}
		if !strings.Contains(string(raw), "---bun:split") {
			t.Fatalf("expected %s to separate statements with bun:split markers", name)
		}
	}
}

func TestMigrateUpIsNoopForMemoryStorage(t *testing.T) {
	module, err := configi18n.New(configi18n.DefaultConfig())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := module.MigrateUp(context.Background()); err != nil {
		t.Fatalf("expected no-op for memory storage, got %v", err)
	}
}
