package feeds

import (
	"context"

	"github.com/google/uuid"

	"github.com/goliatone/go-config-i18n/internal/logging"
	"github.com/goliatone/go-config-i18n/internal/taxonomy"
	"github.com/goliatone/go-config-i18n/pkg/interfaces"
)

const (
	categoryKey    = "category"
	domainAttrName = "domain"
)

// URLResolver produces the absolute URL of a term.
type URLResolver interface {
	TermURL(ctx context.Context, term *taxonomy.Term, langcode string) (string, error)
}

// CategoryFormatter renders taxonomy term references as RSS category
// elements.
type CategoryFormatter struct {
	terms  taxonomy.TermRepository
	urls   URLResolver
	logger interfaces.Logger
}

// FormatterOption configures a CategoryFormatter.
type FormatterOption func(*CategoryFormatter)

// WithURLResolver sets the resolver used for the domain attribute.
func WithURLResolver(resolver URLResolver) FormatterOption {
	return func(f *CategoryFormatter) {
		f.urls = resolver
	}
}

// WithLogger sets the formatter logger.
func WithLogger(logger interfaces.Logger) FormatterOption {
	return func(f *CategoryFormatter) {
		f.logger = logging.Ensure(logger)
	}
}

// NewCategoryFormatter constructs a formatter reading terms from repo.
func NewCategoryFormatter(terms taxonomy.TermRepository, opts ...FormatterOption) *CategoryFormatter {
	f := &CategoryFormatter{
		terms:  terms,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// View returns one category element per reference, in reference order.
// References to missing or unpublished terms are skipped.
func (f *CategoryFormatter) View(ctx context.Context, refs []taxonomy.TermReference, langcode string) ([]Element, error) {
	if f == nil || f.terms == nil || len(refs) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(refs))
	for _, ref := range refs {
		if ref.TargetID != uuid.Nil {
			ids = append(ids, ref.TargetID)
		}
	}
	terms, err := f.terms.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*taxonomy.Term, len(terms))
	for _, term := range terms {
		byID[term.ID] = term
	}

	elements := make([]Element, 0, len(refs))
	for _, ref := range refs {
		term, ok := byID[ref.TargetID]
		if !ok || !term.Published {
			f.logger.Debug("feeds.category.skipped", "term_id", ref.TargetID.String())
			continue
		}
		domain, err := f.termURL(ctx, term, langcode)
		if err != nil {
			return nil, err
		}
		elements = append(elements, Element{
			Key:        categoryKey,
			Value:      term.Label(langcode),
			Attributes: map[string]string{domainAttrName: domain},
		})
	}
	return elements, nil
}

// AttachTo formats refs and appends the resulting elements to item.
func (f *CategoryFormatter) AttachTo(ctx context.Context, item *Item, refs []taxonomy.TermReference, langcode string) error {
	elements, err := f.View(ctx, refs, langcode)
	if err != nil {
		return err
	}
	item.AddElements(elements...)
	return nil
}

func (f *CategoryFormatter) termURL(ctx context.Context, term *taxonomy.Term, langcode string) (string, error) {
	if f.urls == nil || term.ID == uuid.Nil {
		return "", nil
	}
	return f.urls.TermURL(ctx, term, langcode)
}
