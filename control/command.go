// Package control defines lightweight command messages used by the UI to
// request actions from the application command loop. The command loop
// centralizes session transitions to avoid races and to simplify
// synchronization.
package control

// CommandType enumerates supported command operations.
type CommandType int

const (
	CmdPlay CommandType = iota
	CmdCancel
	CmdAdoptLink
)

// Command is the message sent from the UI to the AppManager command loop.
// The optional Reply channel can be used by the loop to confirm completion
// back to the sender (useful for keeping UI state in sync).
type Command struct {
	Type  CommandType
	Link  string     // shared link, for CmdAdoptLink
	Reply chan error // optional reply channel
}
