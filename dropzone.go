package dropzone

import (
	"log/slog"

	"github.com/aretw0/dropzone/internal/runtime"
	"github.com/aretw0/dropzone/pkg/catalog"
	"github.com/aretw0/dropzone/pkg/domain"
)

// IDGenerator produces IDs for palette copies.
type IDGenerator = runtime.IDGenerator

// Builder is the interaction state of one page builder session.
// It is not safe for concurrent use; drive it from the UI event loop.
type Builder struct {
	ctrl    *runtime.Controller
	catalog *catalog.Catalog
}

// Option defines a functional option for configuring the Builder.
type Option func(*config)

type config struct {
	catalog *catalog.Catalog
	ctrl    []runtime.Option
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *config) {
		c.ctrl = append(c.ctrl, runtime.WithLifecycleHooks(hooks))
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.ctrl = append(c.ctrl, runtime.WithLogger(logger))
	}
}

// WithIDGenerator overrides the generator used for palette copies.
func WithIDGenerator(ids IDGenerator) Option {
	return func(c *config) {
		c.ctrl = append(c.ctrl, runtime.WithIDGenerator(ids))
	}
}

// WithSessionID labels lifecycle events.
func WithSessionID(id string) Option {
	return func(c *config) {
		c.ctrl = append(c.ctrl, runtime.WithSessionID(id))
	}
}

// WithCatalog replaces the embedded default catalog.
func WithCatalog(cat *catalog.Catalog) Option {
	return func(c *config) {
		c.catalog = cat
	}
}

// New creates an idle Builder.
func New(opts ...Option) *Builder {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.catalog == nil {
		cfg.catalog = catalog.Default()
	}
	return &Builder{
		ctrl:    runtime.NewController(cfg.ctrl...),
		catalog: cfg.catalog,
	}
}

// Catalog returns the palette catalog.
func (b *Builder) Catalog() *catalog.Catalog {
	return b.catalog
}

// StartDrag begins dragging item. See runtime.Controller.Start.
func (b *Builder) StartDrag(item *domain.ComponentNode, fromPalette bool) {
	b.ctrl.Start(item, fromPalette)
}

// StartPaletteDrag begins a palette drag of the catalog entry componentID.
func (b *Builder) StartPaletteDrag(componentID string) error {
	tmpl, err := b.catalog.Template(componentID)
	if err != nil {
		return err
	}
	b.ctrl.Start(tmpl, true)
	return nil
}

// EndDrag clears the drag and hides the indicator.
func (b *Builder) EndDrag() {
	b.ctrl.End()
}

// ShowIndicator points the drop indicator at index within targetID.
func (b *Builder) ShowIndicator(targetID string, index int, x, y float64, orientation domain.Orientation) {
	b.ctrl.Show(targetID, index, x, y, orientation)
}

// HideIndicator hides the drop indicator.
func (b *Builder) HideIndicator() {
	b.ctrl.Hide()
}

// Session returns the current drag session.
func (b *Builder) Session() domain.DragSession {
	return b.ctrl.Session()
}

// Indicator returns the current drop indicator.
func (b *Builder) Indicator() domain.DropIndicator {
	return b.ctrl.Indicator()
}

// Snapshot captures the current state.
func (b *Builder) Snapshot() *domain.Snapshot {
	return b.ctrl.Snapshot()
}

// Subscribe registers fn to run after every state change.
func (b *Builder) Subscribe(fn func(domain.Change)) (unsubscribe func()) {
	return b.ctrl.Subscribe(fn)
}

// Drop commits the current drag into root and ends it. On error the drag
// stays active and root is unchanged.
func (b *Builder) Drop(root *domain.ComponentNode, zones ...domain.DropZone) (*domain.ComponentNode, error) {
	return b.ctrl.Drop(root, zones...)
}
