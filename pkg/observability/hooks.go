package observability

import (
	"log/slog"

	"github.com/aretw0/dropzone/pkg/domain"
)

// LoggingHooks logs drag starts, ends and drops at info level. Indicator
// events are logged at debug level since they fire on every pointer-move.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnDragStart: func(e *domain.DragEvent) {
			logger.Info("drag_start",
				"session_id", e.SessionID,
				"item_id", e.ItemID,
				"kind", e.Kind,
				"origin", Origin(e.FromPalette),
			)
		},
		OnDragEnd: func(e *domain.DragEvent) {
			logger.Info("drag_end", "session_id", e.SessionID, "item_id", e.ItemID)
		},
		OnIndicatorShow: func(e *domain.IndicatorEvent) {
			logger.Debug("indicator_show",
				"session_id", e.SessionID,
				"target", e.Indicator.TargetContainerID,
				"index", e.Indicator.InsertIndex,
			)
		},
		OnIndicatorHide: func(e *domain.IndicatorEvent) {
			logger.Debug("indicator_hide", "session_id", e.SessionID)
		},
		OnDrop: func(e *domain.DropEvent) {
			if e.Err != nil {
				logger.Warn("drop_rejected",
					"session_id", e.SessionID,
					"item_id", e.ItemID,
					"target", e.TargetContainerID,
					"err", e.Err,
				)
				return
			}
			logger.Info("drop",
				"session_id", e.SessionID,
				"item_id", e.ItemID,
				"target", e.TargetContainerID,
				"index", e.InsertIndex,
			)
		},
	}
}

// Compose merges hook sets; each event reaches every non-nil hook in order.
// Events with no registered hook stay nil so the controller skips building them.
func Compose(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var (
		starts, ends []func(*domain.DragEvent)
		shows, hides []func(*domain.IndicatorEvent)
		drops        []func(*domain.DropEvent)
	)
	for _, h := range sets {
		if h.OnDragStart != nil {
			starts = append(starts, h.OnDragStart)
		}
		if h.OnDragEnd != nil {
			ends = append(ends, h.OnDragEnd)
		}
		if h.OnIndicatorShow != nil {
			shows = append(shows, h.OnIndicatorShow)
		}
		if h.OnIndicatorHide != nil {
			hides = append(hides, h.OnIndicatorHide)
		}
		if h.OnDrop != nil {
			drops = append(drops, h.OnDrop)
		}
	}
	return domain.LifecycleHooks{
		OnDragStart:     fanOut(starts),
		OnDragEnd:       fanOut(ends),
		OnIndicatorShow: fanOut(shows),
		OnIndicatorHide: fanOut(hides),
		OnDrop:          fanOut(drops),
	}
}

func fanOut[E any](fns []func(*E)) func(*E) {
	switch len(fns) {
	case 0:
		return nil
	case 1:
		return fns[0]
	}
	return func(e *E) {
		for _, fn := range fns {
			fn(e)
		}
	}
}
