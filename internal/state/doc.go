// Package state holds the client's in-memory model of the coordination service:
// the session, the group list, the volunteer snapshot, the selected group and the
// role. It also defines the commands that may change that model and the pure
// routing from model to view.
//
// Nothing in this package performs I/O. The tui controller is the only owner of a
// State value and the only caller of its mutators.
package state
