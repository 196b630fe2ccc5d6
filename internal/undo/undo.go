// Package undo is the host-side transaction log: scoped batches of object
// mutations that revert together as one user-visible step.
package undo

import (
	"github.com/jinzhu/copier"

	"level-editor/internal/editor"
	"level-editor/internal/logger"
	"level-editor/internal/world"
)

// Log holds committed transactions, most recent last.
type Log struct {
	scene  *world.Scene
	stack  []*Transaction
	errLog *logger.Logger
}

// NewLog returns a log over the given scene.
func NewLog(scene *world.Scene) *Log {
	return &Log{scene: scene}
}

// SetLogger routes snapshot-copy failures to the action log. Nil (the default)
// drops them.
func (l *Log) SetLogger(log *logger.Logger) {
	l.errLog = log
}

// Open starts a transaction. It commits on Close only if at least one object
// was recorded, so a scope opened for a gesture that never mutates anything
// leaves no undo entry.
func (l *Log) Open(label string) editor.UndoScope {
	return &Transaction{log: l, label: label}
}

// Len returns the number of committed transactions.
func (l *Log) Len() int {
	return len(l.stack)
}

// LastLabel returns the label of the most recent transaction, or "".
func (l *Log) LastLabel() string {
	if len(l.stack) == 0 {
		return ""
	}
	return l.stack[len(l.stack)-1].label
}

// Undo reverts the most recent transaction, restoring recorded objects in
// reverse order. Returns false when the log is empty.
func (l *Log) Undo() bool {
	if len(l.stack) == 0 {
		return false
	}
	txn := l.stack[len(l.stack)-1]
	l.stack = l.stack[:len(l.stack)-1]
	for i := len(txn.entries) - 1; i >= 0; i-- {
		e := txn.entries[i]
		l.scene.Restore(e.id, e.before)
	}
	return true
}

type entry struct {
	id     editor.ObjectID
	before world.State
}

// Transaction implements editor.UndoScope.
type Transaction struct {
	log     *Log
	label   string
	entries []entry
	closed  bool
}

// Record snapshots an object's state before its first mutation in this scope.
// Recording the same object twice keeps the first snapshot; gone objects are
// skipped.
func (t *Transaction) Record(id editor.ObjectID) {
	if t.closed {
		return
	}
	for _, e := range t.entries {
		if e.id == id {
			return
		}
	}
	st, ok := t.log.scene.State(id)
	if !ok {
		return
	}
	var before world.State
	if err := copier.CopyWithOption(&before, &st, copier.Option{DeepCopy: true}); err != nil {
		if t.log.errLog != nil {
			t.log.errLog.Logf("undo: snapshot copy for object %d: %v", id, err)
		}
		// A value copy of State is still safe today (no reference fields).
		before = st
	}
	t.entries = append(t.entries, entry{id: id, before: before})
}

// Close commits the transaction if anything was recorded, else discards it.
func (t *Transaction) Close() {
	if t.closed {
		return
	}
	t.closed = true
	if len(t.entries) == 0 {
		return
	}
	t.log.stack = append(t.log.stack, t)
}
