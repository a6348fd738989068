package sources

import (
	"time"

	"gumcheck/internal"
)

// Resolver picks the authoritative TableSource for a slot. Pure read logic
// over {manual input, cache}; it performs no I/O itself.
type Resolver struct {
	store Store
}

func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns the manual source when one was supplied for this
// invocation — it wins regardless of how fresh the cached automatic copy
// is and is never written into the cache. Otherwise the cached automatic
// copy, otherwise nil: the slot is unavailable ("waiting for input").
func (r *Resolver) Resolve(slot Slot, manual *internal.TableSource) (*internal.TableSource, error) {
	if manual != nil {
		return manual, nil
	}
	return r.store.GetSource(slot)
}

// ManualSource wraps a table decoded from a user-supplied file.
func ManualSource(table internal.Table, loadedAt time.Time) *internal.TableSource {
	return &internal.TableSource{Table: table, LoadedAt: &loadedAt, Origin: internal.OriginManual}
}
