package taxonomy

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestMemoryTermRepository_CreateAssignsDeterministicID(t *testing.T) {
	repo := NewMemoryTermRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, &Term{Vocabulary: "tags", Name: "Go", Published: true})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("expected ID to be assigned")
	}
	again, err := repo.Create(ctx, &Term{Vocabulary: " TAGS ", Name: "Go"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if again.ID != created.ID {
		t.Fatalf("expected deterministic ID %s, got %s", created.ID, again.ID)
	}
}

func TestMemoryTermRepository_Validation(t *testing.T) {
	repo := NewMemoryTermRepository()
	if _, err := repo.Create(context.Background(), &Term{Name: "Go"}); !errors.Is(err, ErrVocabularyRequired) {
		t.Fatalf("expected ErrVocabularyRequired, got %v", err)
	}
	if _, err := repo.Create(context.Background(), &Term{Vocabulary: "tags"}); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
}

func TestMemoryTermRepository_GetMissing(t *testing.T) {
	_, err := NewMemoryTermRepository().GetByID(context.Background(), uuid.New())
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestMemoryTermRepository_ListByIDsKeepsRequestOrder(t *testing.T) {
	repo := NewMemoryTermRepository()
	ctx := context.Background()

	first, _ := repo.Create(ctx, &Term{Vocabulary: "tags", Name: "first"})
	second, _ := repo.Create(ctx, &Term{Vocabulary: "tags", Name: "second"})

	terms, err := repo.ListByIDs(ctx, []uuid.UUID{second.ID, uuid.New(), first.ID, second.ID})
	if err != nil {
		t.Fatalf("ListByIDs() error = %v", err)
	}
	if len(terms) != 2 || terms[0].Name != "second" || terms[1].Name != "first" {
		t.Fatalf("unexpected terms %+v", terms)
	}
}

func TestTermLabelFallsBackToDefaultName(t *testing.T) {
	term := &Term{Name: "Music", Translations: map[string]string{"fr": "Musique", "de": " "}}
	cases := map[string]string{
		"fr":  "Musique",
		" FR": "Musique",
		"de":  "Music",
		"es":  "Music",
		"":    "Music",
	}
	for code, want := range cases {
		if got := term.Label(code); got != want {
			t.Fatalf("Label(%q) = %q, want %q", code, got, want)
		}
	}
}

func TestMemoryTermRepository_ReturnsCopies(t *testing.T) {
	repo := NewMemoryTermRepository()
	ctx := context.Background()
	created, _ := repo.Create(ctx, &Term{Vocabulary: "tags", Name: "Go", Translations: map[string]string{"fr": "Go"}})
	created.Translations["fr"] = "mutated"

	stored, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if stored.Translations["fr"] != "Go" {
		t.Fatalf("expected stored term to be isolated, got %q", stored.Translations["fr"])
	}
}
