package configtranslation

import (
	"context"

	"github.com/goliatone/go-config-i18n/internal/configtree"
	"github.com/goliatone/go-config-i18n/internal/logging"
	"github.com/goliatone/go-config-i18n/pkg/interfaces"
)

// Options selects the language pair of a translation request.
type Options struct {
	Source string
	Target string
}

// Overlay is a sparse nested mapping of translated values. Nested composites
// are stored as Overlay values; keys absent from the overlay keep their source
// value.
type Overlay map[string]any

// IsEmpty reports whether the overlay carries no translations.
func (o Overlay) IsEmpty() bool {
	return len(o) == 0
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithPolicy replaces the translation policy. A nil policy is ignored.
func WithPolicy(policy Policy) ServiceOption {
	return func(s *Service) {
		if policy != nil {
			s.policy = policy
		}
	}
}

// WithBaseLanguage installs BaseLanguagePolicy(base).
func WithBaseLanguage(base string) ServiceOption {
	return WithPolicy(BaseLanguagePolicy(base))
}

// WithLogger sets the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logging.Ensure(logger)
	}
}

// Service computes translation overlays for configuration trees.
type Service struct {
	lookup interfaces.StringLookup
	policy Policy
	logger interfaces.Logger
}

// NewService builds a Service around lookup. Without options every request is
// denied, since no base language is known.
func NewService(lookup interfaces.StringLookup, opts ...ServiceOption) *Service {
	s := &Service{
		lookup: lookup,
		policy: DenyAll,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// CanTranslate reports whether the configured policy permits the pair.
func (s *Service) CanTranslate(source, target string) bool {
	if s == nil || s.policy == nil {
		return false
	}
	return s.policy(source, target)
}

// Overlay walks node depth first and returns the translated values found for
// opts.Target. Composite children are visited in insertion order and only
// children with a non-empty result are stored. A scalar root has no key to
// store its translation under, so callers use TranslateElement for single
// values.
func (s *Service) Overlay(ctx context.Context, name string, node *configtree.Node, opts Options) Overlay {
	if ctx == nil {
		ctx = context.Background()
	}
	overlay := Overlay{}
	if node == nil || !node.IsComposite() {
		return overlay
	}
	logger := logging.WithTranslationContext(s.logger, name, opts.Source, opts.Target)
	s.walk(ctx, logger, name, node, opts, overlay)
	logger.Debug("translation.overlay.computed", "entries", len(overlay))
	return overlay
}

func (s *Service) walk(ctx context.Context, logger interfaces.Logger, name string, node *configtree.Node, opts Options, into Overlay) {
	for _, key := range node.Keys() {
		child, _ := node.Child(key)
		if child.IsComposite() {
			nested := Overlay{}
			s.walk(ctx, logger, name, child, opts, nested)
			if !nested.IsEmpty() {
				into[key] = nested
			}
			continue
		}
		if translated, ok := s.translate(ctx, logger, name, child, opts); ok {
			into[key] = translated
		}
	}
}

// TranslateElement returns the translation of a single scalar node. On
// success the translation is also recorded on the node, so node.Resolved()
// yields it afterwards.
func (s *Service) TranslateElement(ctx context.Context, name string, node *configtree.Node, opts Options) (string, bool) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.WithTranslationContext(s.logger, name, opts.Source, opts.Target)
	return s.translate(ctx, logger, name, node, opts)
}

func (s *Service) translate(ctx context.Context, logger interfaces.Logger, name string, node *configtree.Node, opts Options) (string, bool) {
	if node == nil || node.IsComposite() || s.lookup == nil {
		return "", false
	}
	if !s.CanTranslate(opts.Source, opts.Target) {
		return "", false
	}
	def := node.Definition()
	if !def.Translatable {
		return "", false
	}
	source := node.StringValue()
	if source == "" {
		return "", false
	}
	translated, ok := s.lookup.Lookup(ctx, name, opts.Target, source, def.Context)
	if !ok || translated == "" {
		logger.Trace("translation.overlay.miss", "source", source, "context", def.Context)
		return "", false
	}
	node.SetTranslation(translated)
	return translated, true
}
