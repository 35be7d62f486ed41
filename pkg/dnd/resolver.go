package dnd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formdesigner/pkg/catalog"
	"github.com/goliatone/go-formdesigner/pkg/document"
)

// ErrUnknownKind is returned under PolicyRejectUnknown when the dragged
// palette item names a kind outside the catalog.
var ErrUnknownKind = errors.New("dnd: unknown field kind")

// KindPolicy decides what happens to drag sources outside the catalog.
type KindPolicy string

const (
	// PolicyPermissive stores any kind verbatim; renderers skip the ones
	// they do not know.
	PolicyPermissive KindPolicy = "permissive"
	// PolicyIgnoreUnknown treats an unknown kind like a drop outside any
	// zone.
	PolicyIgnoreUnknown KindPolicy = "ignore"
	// PolicyRejectUnknown reports ErrUnknownKind to the caller.
	PolicyRejectUnknown KindPolicy = "reject"
)

// ParsePolicy maps a configuration string onto a KindPolicy, defaulting to
// permissive for blank input.
func ParsePolicy(raw string) (KindPolicy, error) {
	switch KindPolicy(strings.ToLower(strings.TrimSpace(raw))) {
	case "", PolicyPermissive:
		return PolicyPermissive, nil
	case PolicyIgnoreUnknown:
		return PolicyIgnoreUnknown, nil
	case PolicyRejectUnknown:
		return PolicyRejectUnknown, nil
	default:
		return "", fmt.Errorf("dnd: unknown kind policy %q", raw)
	}
}

// DragEnd describes a finished drag gesture. Active is the drag source id
// (the palette field kind); Over is the drop zone id, which is the section
// id, or "" when the pointer was released outside every zone.
type DragEnd struct {
	Active string `json:"active"`
	Over   string `json:"over,omitempty"`
}

// Drop is the addField request a gesture resolves to.
type Drop struct {
	SectionID string
	Kind      catalog.Kind
}

// Action converts the drop into the store action it stands for.
func (d Drop) Action() document.Action {
	return document.AddField(d.SectionID, d.Kind)
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithPolicy selects how unknown kinds are handled.
func WithPolicy(policy KindPolicy) Option {
	return func(r *Resolver) {
		if policy != "" {
			r.policy = policy
		}
	}
}

// WithSourcePrefix strips a prefix some palettes add to drag source ids
// (for example "palette-"). Sources without the prefix pass through.
func WithSourcePrefix(prefix string) Option {
	return func(r *Resolver) {
		r.sourcePrefix = prefix
	}
}

// Resolver maps drag gestures to store mutations.
type Resolver struct {
	policy       KindPolicy
	sourcePrefix string
}

// NewResolver returns a permissive resolver unless options say otherwise.
func NewResolver(options ...Option) *Resolver {
	r := &Resolver{policy: PolicyPermissive}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Policy reports the configured kind policy.
func (r *Resolver) Policy() KindPolicy {
	return r.policy
}

// Resolve turns a gesture into a Drop. ok is false for gestures that should
// not mutate anything (no drop zone, empty source, or an unknown kind under
// PolicyIgnoreUnknown). A blank Over means no drop zone; otherwise both ids
// are used exactly as given. The section id is not checked here; addField
// already ignores ids that name no section.
func (r *Resolver) Resolve(event DragEnd) (Drop, bool, error) {
	if strings.TrimSpace(event.Over) == "" {
		return Drop{}, false, nil
	}
	over := event.Over
	source := event.Active
	if r.sourcePrefix != "" {
		source = strings.TrimPrefix(source, r.sourcePrefix)
	}
	if source == "" {
		return Drop{}, false, nil
	}

	kind := catalog.Kind(source)
	if !catalog.Known(kind) {
		switch r.policy {
		case PolicyIgnoreUnknown:
			return Drop{}, false, nil
		case PolicyRejectUnknown:
			return Drop{}, false, fmt.Errorf("%w %q%s", ErrUnknownKind, kind, catalog.SuggestionSuffix(kind))
		}
	}
	return Drop{SectionID: over, Kind: kind}, true, nil
}

// Apply resolves the gesture and dispatches exactly one addField into the
// store. The boolean reports whether the document changed.
func (r *Resolver) Apply(store *document.Store, event DragEnd) (bool, error) {
	if store == nil {
		return false, errors.New("dnd: store is required")
	}
	drop, ok, err := r.Resolve(event)
	if err != nil || !ok {
		return false, err
	}
	return store.AddField(drop.SectionID, drop.Kind), nil
}
