package game

// EventType identifies a lifecycle event on the game's bus.
type EventType string

const (
	EventGameStart   EventType = "game_start"
	EventGameEnd     EventType = "game_end"
	EventTurnStart   EventType = "turn_start"
	EventTurnReset   EventType = "turn_reset"
	EventTurnEnd     EventType = "turn_end"
	EventActionStart EventType = "action_start"
	EventActionEnd   EventType = "action_end"
)

// Event carries the bus payload. Fields beyond Type are optional and depend
// on the event kind.
type Event struct {
	Type     EventType
	PlayerID string // acting or affected player, if any
	CardID   string // card involved, if any
}

// Subscriber reacts to one event. Subscribers run sequentially on the
// notifying goroutine while the game lock is held: they must be short and
// must not call back into the game's public API.
type Subscriber func(Event)

type subscription struct {
	handle int
	fn     Subscriber
}

// EventBus dispatches named events to ordered subscriber lists. Insertion
// order is notification order; SubscribeAt places a subscriber at an
// explicit index for handlers that must observe first or last.
type EventBus struct {
	subs       map[EventType][]subscription
	nextHandle int
}

// NewEventBus constructs an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{subs: make(map[EventType][]subscription)}
}

// Subscribe appends a subscriber for the event type and returns its handle.
func (b *EventBus) Subscribe(t EventType, fn Subscriber) int {
	return b.SubscribeAt(t, -1, fn)
}

// SubscribeAt inserts a subscriber at the given index (0 = notified first,
// -1 or out of range = appended) and returns a handle for Unsubscribe.
func (b *EventBus) SubscribeAt(t EventType, index int, fn Subscriber) int {
	if fn == nil {
		return -1
	}
	handle := b.nextHandle
	b.nextHandle++
	sub := subscription{handle: handle, fn: fn}
	list := b.subs[t]
	if index < 0 || index >= len(list) {
		b.subs[t] = append(list, sub)
	} else {
		list = append(list, subscription{})
		copy(list[index+1:], list[index:])
		list[index] = sub
		b.subs[t] = list
	}
	return handle
}

// Unsubscribe removes the subscriber with the given handle. Removing an
// unknown handle is a no-op.
func (b *EventBus) Unsubscribe(t EventType, handle int) {
	list := b.subs[t]
	for i := range list {
		if list[i].handle == handle {
			b.subs[t] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

// Notify delivers the event to each subscriber in order. The subscriber
// list is copied first so a handler may unsubscribe itself mid-notification.
func (b *EventBus) Notify(ev Event) {
	list := b.subs[ev.Type]
	if len(list) == 0 {
		return
	}
	snapshot := make([]subscription, len(list))
	copy(snapshot, list)
	for _, sub := range snapshot {
		sub.fn(ev)
	}
}
