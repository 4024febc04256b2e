package runtime

import (
	"log/slog"
	"time"

	"github.com/aretw0/dropzone/internal/logging"
	"github.com/aretw0/dropzone/pkg/canvas"
	"github.com/aretw0/dropzone/pkg/domain"
	"github.com/aretw0/dropzone/pkg/identity"
)

// IDGenerator produces identifiers for palette copies.
type IDGenerator interface {
	Next() string
}

// Controller owns the drag session and drop indicator of one builder session.
//
// It is a single-writer state holder: every method must be called from the
// hosting UI's event loop (or under the session lock in server mode). It never
// blocks and never fails.
type Controller struct {
	sessionID string
	session   domain.DragSession
	indicator domain.DropIndicator

	ids    IDGenerator
	hooks  domain.LifecycleHooks
	logger *slog.Logger
	now    func() time.Time

	observers []observer
	nextObsID uint64
}

type observer struct {
	id uint64
	fn func(domain.Change)
}

// Option configures the Controller.
type Option func(*Controller)

// WithIDGenerator overrides the identity generator used for palette copies.
func WithIDGenerator(ids IDGenerator) Option {
	return func(c *Controller) {
		c.ids = ids
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Controller) {
		c.hooks = hooks
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithSessionID labels events and snapshots produced by the controller.
func WithSessionID(id string) Option {
	return func(c *Controller) {
		c.sessionID = id
	}
}

// WithClock injects the time source used for event timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// NewController creates an idle controller with a hidden indicator.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		indicator: domain.NewDropIndicator(),
		logger:    logging.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.ids == nil {
		c.ids = identity.New(identity.WithClock(c.now))
	}
	return c
}

// Restore rebuilds a controller from a persisted snapshot.
func Restore(snap *domain.Snapshot, opts ...Option) *Controller {
	c := NewController(opts...)
	if snap == nil {
		return c
	}
	if c.sessionID == "" {
		c.sessionID = snap.SessionID
	}
	c.session = domain.DragSession{
		ActiveItem:  snap.Session.ActiveItem.Clone(),
		FromPalette: snap.Session.FromPalette,
	}
	if c.session.ActiveItem == nil {
		c.session.FromPalette = false
	}
	c.indicator = snap.Indicator
	if !c.indicator.Visible {
		c.indicator.TargetContainerID = ""
		c.indicator.InsertIndex = domain.NoIndex
	}
	return c
}

// SessionID returns the label passed via WithSessionID or Restore.
func (c *Controller) SessionID() string {
	return c.sessionID
}

// Session returns the current drag session.
// The ActiveItem pointer is shared with the controller.
func (c *Controller) Session() domain.DragSession {
	return c.session
}

// Indicator returns the current drop indicator.
func (c *Controller) Indicator() domain.DropIndicator {
	return c.indicator
}

// Snapshot captures the current state for persistence.
func (c *Controller) Snapshot() *domain.Snapshot {
	snap := &domain.Snapshot{
		SessionID: c.sessionID,
		Session:   c.session,
		Indicator: c.indicator,
		UpdatedAt: c.now(),
	}
	return snap.Clone()
}

// Start begins a drag, silently replacing any drag already in progress.
//
// With fromPalette set, the stored item is a copy of item whose nodes all get
// fresh IDs, so the palette template is never mutated and repeated drags never
// collide.
// Otherwise item itself is stored and keeps its ID: it is being moved, not
// duplicated. A nil item leaves the session idle.
func (c *Controller) Start(item *domain.ComponentNode, fromPalette bool) {
	if item == nil {
		c.resetSession()
		return
	}

	active := item
	if fromPalette {
		active = item.Clone()
		c.renumber(active)
	}
	c.session = domain.DragSession{ActiveItem: active, FromPalette: fromPalette}

	c.logger.Debug("drag started",
		"session_id", c.sessionID,
		"item_id", active.ID,
		"kind", active.Kind,
		"from_palette", fromPalette,
	)
	if c.hooks.OnDragStart != nil {
		c.hooks.OnDragStart(c.dragEvent(domain.EventDragStart, active, fromPalette))
	}
	c.notify(domain.ChangeSession)
}

// End clears the drag session and hides the indicator. Calling End with no
// drag in progress is a no-op.
//
// End does not know whether the drop succeeded; a cancelled drag is simply an
// End without the host's tree mutation.
func (c *Controller) End() {
	if c.session.Active() {
		item, fromPalette := c.session.ActiveItem, c.session.FromPalette
		c.session = domain.DragSession{}

		c.logger.Debug("drag ended",
			"session_id", c.sessionID,
			"item_id", item.ID,
		)
		if c.hooks.OnDragEnd != nil {
			c.hooks.OnDragEnd(c.dragEvent(domain.EventDragEnd, item, fromPalette))
		}
		c.notify(domain.ChangeSession)
	}
	c.Hide()
}

// Show points the indicator at index within targetID and marks it visible.
//
// Values are stored as given: the target is not checked against known zones
// and the index is not checked against the target's children. An empty
// orientation means Horizontal. Show runs on every pointer-move and does not
// allocate unless an OnIndicatorShow hook is registered.
func (c *Controller) Show(targetID string, index int, x, y float64, orientation domain.Orientation) {
	if orientation == "" {
		orientation = domain.Horizontal
	}
	c.indicator = domain.DropIndicator{
		Visible:           true,
		Position:          domain.Point{X: x, Y: y},
		TargetContainerID: targetID,
		InsertIndex:       index,
		Orientation:       orientation,
	}
	if c.hooks.OnIndicatorShow != nil {
		c.hooks.OnIndicatorShow(c.indicatorEvent(domain.EventIndicatorShow))
	}
	c.notify(domain.ChangeIndicator)
}

// Hide marks the indicator invisible and resets its target. Position and
// orientation keep their last values.
func (c *Controller) Hide() {
	if !c.indicator.Visible &&
		c.indicator.TargetContainerID == "" &&
		c.indicator.InsertIndex == domain.NoIndex {
		return
	}
	c.indicator.Visible = false
	c.indicator.TargetContainerID = ""
	c.indicator.InsertIndex = domain.NoIndex

	if c.hooks.OnIndicatorHide != nil {
		c.hooks.OnIndicatorHide(c.indicatorEvent(domain.EventIndicatorHide))
	}
	c.notify(domain.ChangeIndicator)
}

// Drop commits the current drag into root at the indicator's target and ends
// the drag. A rejected drop leaves the drag active and the tree unchanged so
// the host can retry or call End.
func (c *Controller) Drop(root *domain.ComponentNode, zones ...domain.DropZone) (*domain.ComponentNode, error) {
	session, indicator := c.session, c.indicator
	node, err := canvas.Drop(root, session, indicator, zones...)

	if c.hooks.OnDrop != nil {
		ev := &domain.DropEvent{
			EventBase: domain.EventBase{
				Timestamp: c.now(),
				Type:      domain.EventDrop,
				SessionID: c.sessionID,
			},
			TargetContainerID: indicator.TargetContainerID,
			InsertIndex:       indicator.InsertIndex,
			FromPalette:       session.FromPalette,
			Err:               err,
		}
		if session.Active() {
			ev.ItemID = session.ActiveItem.ID
		}
		c.hooks.OnDrop(ev)
	}
	if err != nil {
		c.logger.Debug("drop rejected", "session_id", c.sessionID, "err", err)
		return nil, err
	}

	c.logger.Debug("drop committed",
		"session_id", c.sessionID,
		"item_id", node.ID,
		"target", indicator.TargetContainerID,
		"index", indicator.InsertIndex,
	)
	c.End()
	return node, nil
}

// Subscribe registers fn to run synchronously after every state change, in
// registration order. The returned function removes the subscription.
func (c *Controller) Subscribe(fn func(domain.Change)) (unsubscribe func()) {
	c.nextObsID++
	id := c.nextObsID
	c.observers = append(c.observers, observer{id: id, fn: fn})

	return func() {
		kept := make([]observer, 0, len(c.observers))
		for _, o := range c.observers {
			if o.id != id {
				kept = append(kept, o)
			}
		}
		c.observers = kept
	}
}

// renumber assigns fresh IDs to n and its subtree, parents first.
func (c *Controller) renumber(n *domain.ComponentNode) {
	n.ID = c.ids.Next()
	for _, child := range n.Children {
		c.renumber(child)
	}
}

func (c *Controller) resetSession() {
	if !c.session.Active() {
		return
	}
	c.session = domain.DragSession{}
	c.notify(domain.ChangeSession)
}

// notify iterates over the slice captured at call time; unsubscribe replaces
// c.observers instead of editing it in place.
func (c *Controller) notify(kind domain.ChangeKind) {
	observers := c.observers
	if len(observers) == 0 {
		return
	}
	change := domain.Change{Kind: kind, Session: c.session, Indicator: c.indicator}
	for _, o := range observers {
		o.fn(change)
	}
}

func (c *Controller) dragEvent(t domain.EventType, item *domain.ComponentNode, fromPalette bool) *domain.DragEvent {
	return &domain.DragEvent{
		EventBase: domain.EventBase{
			Timestamp: c.now(),
			Type:      t,
			SessionID: c.sessionID,
		},
		ItemID:      item.ID,
		Kind:        item.Kind,
		FromPalette: fromPalette,
	}
}

func (c *Controller) indicatorEvent(t domain.EventType) *domain.IndicatorEvent {
	return &domain.IndicatorEvent{
		EventBase: domain.EventBase{
			Timestamp: c.now(),
			Type:      t,
			SessionID: c.sessionID,
		},
		Indicator: c.indicator,
	}
}
