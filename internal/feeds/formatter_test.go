package feeds_test

import (
	"context"
	"errors"
	"testing"

	urlkit "github.com/goliatone/go-urlkit"
	"github.com/google/uuid"

	"github.com/goliatone/go-config-i18n/internal/feeds"
	"github.com/goliatone/go-config-i18n/internal/taxonomy"
)

func TestCategoryFormatterView(t *testing.T) {
	ctx := context.Background()
	terms := taxonomy.NewMemoryTermRepository()

	music := mustCreateTerm(t, terms, &taxonomy.Term{
		Vocabulary:   "tags",
		Name:         "Music",
		Published:    true,
		Translations: map[string]string{"fr": "Musique"},
	})
	draft := mustCreateTerm(t, terms, &taxonomy.Term{Vocabulary: "tags", Name: "Draft"})
	film := mustCreateTerm(t, terms, &taxonomy.Term{Vocabulary: "tags", Name: "Film", Published: true})

	formatter := feeds.NewCategoryFormatter(terms, feeds.WithURLResolver(newResolver()))

	refs := []taxonomy.TermReference{
		{TargetID: film.ID},
		{TargetID: uuid.New()},
		{TargetID: draft.ID},
		{TargetID: music.ID},
	}
	elements, err := formatter.View(ctx, refs, "fr")
	if err != nil {
		t.Fatalf("View() error = %v", err)
	}
	if len(elements) != 2 {
		t.Fatalf("expected 2 elements, got %d: %+v", len(elements), elements)
	}

	if elements[0].Key != "category" || elements[0].Value != "Film" {
		t.Fatalf("unexpected first element %+v", elements[0])
	}
	if elements[1].Value != "Musique" {
		t.Fatalf("expected translated name, got %q", elements[1].Value)
	}
	wantDomain := "https://example.com/fr/etiquettes/" + music.ID.String() + "/musique"
	if elements[1].Attributes["domain"] != wantDomain {
		t.Fatalf("expected domain %q, got %q", wantDomain, elements[1].Attributes["domain"])
	}
}

func TestCategoryFormatterDefaultLanguageURL(t *testing.T) {
	ctx := context.Background()
	terms := taxonomy.NewMemoryTermRepository()
	music := mustCreateTerm(t, terms, &taxonomy.Term{Vocabulary: "tags", Name: "Music", Published: true})

	formatter := feeds.NewCategoryFormatter(terms, feeds.WithURLResolver(newResolver()))
	elements, err := formatter.View(ctx, []taxonomy.TermReference{{TargetID: music.ID}}, "en")
	if err != nil {
		t.Fatalf("View() error = %v", err)
	}
	want := "https://example.com/tags/" + music.ID.String() + "/music"
	if len(elements) != 1 || elements[0].Attributes["domain"] != want {
		t.Fatalf("expected domain %q, got %+v", want, elements)
	}
}

func TestCategoryFormatterWithoutResolverLeavesDomainEmpty(t *testing.T) {
	terms := taxonomy.NewMemoryTermRepository()
	term := mustCreateTerm(t, terms, &taxonomy.Term{Vocabulary: "tags", Name: "Music", Published: true})

	item := &feeds.Item{Title: "Post"}
	formatter := feeds.NewCategoryFormatter(terms)
	if err := formatter.AttachTo(context.Background(), item, []taxonomy.TermReference{{TargetID: term.ID}}, "en"); err != nil {
		t.Fatalf("AttachTo() error = %v", err)
	}
	if len(item.Elements) != 1 {
		t.Fatalf("expected element attached to item, got %d", len(item.Elements))
	}
	if domain, ok := item.Elements[0].Attributes["domain"]; !ok || domain != "" {
		t.Fatalf("expected empty domain attribute, got %q (present=%v)", domain, ok)
	}
}

func TestCategoryFormatterPropagatesRepositoryErrors(t *testing.T) {
	boom := errors.New("boom")
	formatter := feeds.NewCategoryFormatter(failingTerms{err: boom})
	_, err := formatter.View(context.Background(), []taxonomy.TermReference{{TargetID: uuid.New()}}, "en")
	if !errors.Is(err, boom) {
		t.Fatalf("expected repository error, got %v", err)
	}
}

func TestCategoryFormatterUnknownRouteFails(t *testing.T) {
	terms := taxonomy.NewMemoryTermRepository()
	term := mustCreateTerm(t, terms, &taxonomy.Term{Vocabulary: "tags", Name: "Music", Published: true})

	resolver := feeds.NewURLKitResolver(feeds.URLKitResolverOptions{
		Manager:      newManager(),
		DefaultGroup: "frontend",
		Route:        "missing",
	})
	formatter := feeds.NewCategoryFormatter(terms, feeds.WithURLResolver(resolver))
	_, err := formatter.View(context.Background(), []taxonomy.TermReference{{TargetID: term.ID}}, "en")
	if err == nil {
		t.Fatal("expected resolver error for unknown route")
	}
}

func TestRenderElements(t *testing.T) {
	out, err := feeds.RenderElements([]feeds.Element{
		{Key: "category", Value: "Rock & Roll", Attributes: map[string]string{"domain": "https://example.com/tags/1"}},
		{Key: "category", Value: "Jazz", Attributes: map[string]string{"domain": ""}},
	})
	if err != nil {
		t.Fatalf("RenderElements() error = %v", err)
	}
	want := `<category domain="https://example.com/tags/1">Rock &amp; Roll</category><category domain="">Jazz</category>`
	if string(out) != want {
		t.Fatalf("unexpected xml\nwant %s\ngot  %s", want, out)
	}
}

type failingTerms struct {
	taxonomy.TermRepository
	err error
}

func (f failingTerms) ListByIDs(context.Context, []uuid.UUID) ([]*taxonomy.Term, error) {
	return nil, f.err
}

func mustCreateTerm(t *testing.T, repo taxonomy.TermRepository, term *taxonomy.Term) *taxonomy.Term {
	t.Helper()
	created, err := repo.Create(context.Background(), term)
	if err != nil {
		t.Fatalf("create term: %v", err)
	}
	return created
}

func newManager() *urlkit.RouteManager {
	return urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    "frontend",
				BaseURL: "https://example.com",
				Paths: map[string]string{
					"term": "/tags/:id/:slug",
				},
				Groups: []urlkit.GroupConfig{
					{
						Name: "fr",
						Path: "/fr",
						Paths: map[string]string{
							"term": "/etiquettes/:id/:slug",
						},
					},
				},
			},
		},
	})
}

func newResolver() *feeds.URLKitResolver {
	return feeds.NewURLKitResolver(feeds.URLKitResolverOptions{
		Manager:      newManager(),
		DefaultGroup: "frontend",
		LocaleGroups: map[string]string{"fr": "frontend.fr"},
	})
}
