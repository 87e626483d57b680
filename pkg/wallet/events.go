package wallet

import (
	"github.com/google/uuid"
	"github.com/solstice-labs/solana-signer-go/pkg/keys"
)

// EventListener receives adapter lifecycle notifications. The adapter emits
// no error events; failures surface as returned errors from the operation
// that caused them.
type EventListener interface {
	// OnConnect is invoked after a successful Connect with the identity's
	// derived public key.
	OnConnect(pk keys.PublicKey)

	// OnDisconnect is invoked after Disconnect.
	OnDisconnect()
}

// ListenerFuncs adapts plain functions to EventListener. Nil fields are
// skipped.
type ListenerFuncs struct {
	Connect    func(pk keys.PublicKey)
	Disconnect func()
}

var _ EventListener = (*ListenerFuncs)(nil)

func (l *ListenerFuncs) OnConnect(pk keys.PublicKey) {
	if l.Connect != nil {
		l.Connect(pk)
	}
}

func (l *ListenerFuncs) OnDisconnect() {
	if l.Disconnect != nil {
		l.Disconnect()
	}
}

// Subscribe registers a listener and returns a token for Unsubscribe.
func (a *Adapter) Subscribe(l EventListener) uuid.UUID {
	a.mu.Lock()
	defer a.mu.Unlock()

	id := uuid.New()
	a.listeners[id] = l
	return id
}

// Unsubscribe removes a previously registered listener. Unknown tokens are
// ignored.
func (a *Adapter) Unsubscribe(id uuid.UUID) {
	a.mu.Lock()
	defer a.mu.Unlock()

	delete(a.listeners, id)
}

// snapshotListeners copies the listener set so notifications run without
// holding the adapter lock.
func (a *Adapter) snapshotListeners() []EventListener {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]EventListener, 0, len(a.listeners))
	for _, l := range a.listeners {
		out = append(out, l)
	}
	return out
}

func (a *Adapter) notifyConnect(pk keys.PublicKey) {
	for _, l := range a.snapshotListeners() {
		l.OnConnect(pk)
	}
}

func (a *Adapter) notifyDisconnect() {
	for _, l := range a.snapshotListeners() {
		l.OnDisconnect()
	}
}
