package feeds

import (
	"context"
	"fmt"
	"strings"
	"sync"

	slug "github.com/goliatone/go-slug"
	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-config-i18n/internal/taxonomy"
)

// URLKitResolverOptions configures the go-urlkit backed resolver.
type URLKitResolverOptions struct {
	Manager      *urlkit.RouteManager
	DefaultGroup string
	// LocaleGroups maps a language code to a dotted group path.
	LocaleGroups map[string]string
	Route        string
	IDParam      string
	SlugParam    string
}

// URLKitResolver builds term URLs from a go-urlkit RouteManager.
type URLKitResolver struct {
	manager      *urlkit.RouteManager
	defaultGroup string
	localeGroups map[string]string
	route        string
	idParam      string
	slugParam    string

	groupCache map[string]*urlkit.Group
	mu         sync.RWMutex
}

var _ URLResolver = (*URLKitResolver)(nil)

// NewURLKitResolver constructs a resolver backed by go-urlkit.
func NewURLKitResolver(opts URLKitResolverOptions) *URLKitResolver {
	if opts.Route == "" {
		opts.Route = "term"
	}
	if opts.IDParam == "" {
		opts.IDParam = "id"
	}
	if opts.SlugParam == "" {
		opts.SlugParam = "slug"
	}
	localeGroups := make(map[string]string, len(opts.LocaleGroups))
	for code, path := range opts.LocaleGroups {
		localeGroups[strings.ToLower(strings.TrimSpace(code))] = strings.TrimSpace(path)
	}
	return &URLKitResolver{
		manager:      opts.Manager,
		defaultGroup: strings.TrimSpace(opts.DefaultGroup),
		localeGroups: localeGroups,
		route:        strings.TrimSpace(opts.Route),
		idParam:      opts.IDParam,
		slugParam:    opts.SlugParam,
		groupCache:   make(map[string]*urlkit.Group),
	}
}

// TermURL resolves the canonical URL of term for langcode.
func (r *URLKitResolver) TermURL(_ context.Context, term *taxonomy.Term, langcode string) (string, error) {
	if r == nil || r.manager == nil || term == nil {
		return "", nil
	}
	groupPath := r.defaultGroup
	if path, ok := r.localeGroups[strings.ToLower(strings.TrimSpace(langcode))]; ok && path != "" {
		groupPath = path
	}
	if groupPath == "" {
		return "", nil
	}

	group, err := r.groupForPath(groupPath)
	if err != nil {
		return "", err
	}
	builder, err := safeBuilder(group, r.route)
	if err != nil {
		return "", err
	}
	builder.WithParam(r.idParam, term.ID.String())
	builder.WithParam(r.slugParam, termSlug(term, langcode))
	return builder.Build()
}

func termSlug(term *taxonomy.Term, langcode string) string {
	normalized, err := slug.Normalize(term.Label(langcode))
	if err != nil || normalized == "" {
		return term.ID.String()
	}
	return normalized
}

func (r *URLKitResolver) groupForPath(path string) (*urlkit.Group, error) {
	r.mu.RLock()
	group, ok := r.groupCache[path]
	r.mu.RUnlock()
	if ok {
		return group, nil
	}

	parts := strings.Split(path, ".")
	current, err := lookupGroup(r.manager, parts[0])
	if err != nil {
		return nil, err
	}
	for _, part := range parts[1:] {
		current, err = lookupChildGroup(current, part)
		if err != nil {
			return nil, err
		}
	}

	r.mu.Lock()
	r.groupCache[path] = current
	r.mu.Unlock()
	return current, nil
}

// go-urlkit panics on unknown groups and routes.

func safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	if group == nil {
		return nil, fmt.Errorf("feeds: urlkit group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			builder, err = nil, fmt.Errorf("feeds: urlkit builder panic: %v", rec)
		}
	}()
	return group.Builder(route), nil
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			group, err = nil, fmt.Errorf("feeds: route group %q not found", name)
		}
	}()
	return manager.Group(name), nil
}

func lookupChildGroup(parent *urlkit.Group, name string) (group *urlkit.Group, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			group, err = nil, fmt.Errorf("feeds: child group %q not found", name)
		}
	}()
	return parent.Group(name), nil
}
