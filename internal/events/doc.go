// Package events provides the lifecycle events of practice sessions and the
// handler interfaces used to react to them.
//
// The practice service emits events without knowing which handlers will
// process them; the result recorder is one such handler.
//
// The primary components are:
// - SessionEvent: a started, completed or reset notification for one session
// - EventHandler: Interface for components that can handle events
// - EventEmitter: Interface for components that can emit events
package events
