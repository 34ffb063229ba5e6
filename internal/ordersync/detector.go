package ordersync

import "github.com/creamcroissant/foodpos/internal/repository"

// Detector diffs consecutive poll snapshots into events. It is pure state
// plus comparison: no network access, no blocking. Not safe for concurrent
// use; each subscription owns its own detector.
type Detector struct {
	// knownIDs is a one-way ratchet: identifiers accumulate and are never
	// purged when an order leaves the filtered view, so an order cycling
	// status can never re-trigger a NewOrder event.
	knownIDs map[int64]struct{}
	// visible holds the ids present in the previous snapshot, for removal
	// detection.
	visible map[int64]struct{}
	// tracked maps order ids under detailed tracking to their last seen
	// status.
	tracked map[int64]repository.OrderStatus
	first   bool
}

// NewDetector returns a detector armed with the first-poll guard.
func NewDetector() *Detector {
	return &Detector{
		knownIDs: make(map[int64]struct{}),
		visible:  make(map[int64]struct{}),
		tracked:  make(map[int64]repository.OrderStatus),
		first:    true,
	}
}

// Track registers an order for status-change detection, seeding the last
// seen status so only later changes fire events.
func (d *Detector) Track(id int64, status repository.OrderStatus) {
	d.tracked[id] = status
}

// Untrack stops status-change detection for an order.
func (d *Detector) Untrack(id int64) {
	delete(d.tracked, id)
}

// Observe compares a snapshot against accumulated state and returns the
// resulting events. The very first snapshot after (re)start populates the
// known set but emits no NewOrder events: orders already pending at launch
// must not fire alarms.
func (d *Detector) Observe(snap Snapshot) []Event {
	currentIDs := make(map[int64]struct{}, len(snap.Orders))
	var events []Event

	for _, order := range snap.Orders {
		currentIDs[order.ID] = struct{}{}
		if _, known := d.knownIDs[order.ID]; !known && !d.first {
			events = append(events, NewOrder{Order: order})
		}
		d.knownIDs[order.ID] = struct{}{}

		if last, ok := d.tracked[order.ID]; ok && last != order.Status {
			events = append(events, StatusChanged{OrderID: order.ID, Old: last, New: order.Status})
			d.tracked[order.ID] = order.Status
		}
	}

	if !d.first {
		for id := range d.visible {
			if _, still := currentIDs[id]; !still {
				events = append(events, OrderRemoved{OrderID: id})
			}
		}
	}

	d.visible = currentIDs
	d.first = false
	return events
}
