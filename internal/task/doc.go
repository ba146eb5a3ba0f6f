// Package task runs background work on a bounded in-memory queue drained by a
// pool of workers. Event handlers that should not block the emitting request,
// such as recording a finished session, are wrapped with AsyncEventHandler so
// each event becomes a task.
package task
