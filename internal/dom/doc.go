// Package dom provides the in-process document model that widgets bind to.
//
// A Document owns Elements. Each Element carries attributes (with presence,
// so an absent attribute differs from an empty one), an ordered class list,
// a data store for attaching widget instances, and event listeners.
//
// Events dispatched on an element run the element's listeners and then,
// for bubbling types, the document's listeners. Listen returns a
// Subscription handle; cancelling it removes the listener. Handles are the
// only way to remove a listener, so whoever subscribes owns the cleanup.
//
// The model is not safe for concurrent use. Hosts serialize all access on a
// single goroutine (see package schedule).
package dom
