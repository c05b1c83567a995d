// Package debugger steps through the loops program one printed line at a
// time, either in-process or through a headless delve server.
package debugger

import (
	"errors"

	"github.com/andersonjoseph/loopdrill/internal/types"
)

var (
	ErrExited  = errors.New("program has exited")
	ErrTimeout = errors.New("timeout waiting for debugger")
)

type Source int

const (
	SourceStdout Source = iota
	SourceStderr
)

type Output struct {
	Source  Source
	Content string
}

// State is where the program stopped.
type State struct {
	File   string
	Line   int
	Block  string
	Seq    int
	Vars   []types.Variable
	Exited bool
}

type Session interface {
	State() (State, error)
	// Next runs until the next printed line.
	Next() (State, error)
	// Continue runs until the first line of the next block.
	Continue() (State, error)
	Restart() error
	Output() <-chan Output
	Close() error
}
