// Package loops holds the loop demonstration program: a greeting, four
// counted loops, one nested loop and a counting function, each printing a
// fixed line per iteration.
package loops

import (
	"fmt"
	"io"
	"runtime"
)

const (
	MsgHello      = "Hello World"
	MsgCountingUp = "Counting up"
	MsgStartEnd   = "Counting from 1 to 9"
	MsgDynamic    = "Dynamic range"
	MsgExpression = "Expression in range"
	MsgNested     = "Nested loops"
	MsgFunction   = "Counting in function"
)

const (
	BlockGreeting   = "greeting"
	BlockRange      = "range"
	BlockStartEnd   = "start-end"
	BlockVariable   = "variable"
	BlockExpression = "expression"
	BlockNested     = "nested"
	BlockFunction   = "function"
)

// Block describes how many lines one section of the program prints.
type Block struct {
	Name    string
	Message string
	Count   int
}

// Blocks lists the program sections in execution order.
var Blocks = []Block{
	{Name: BlockGreeting, Message: MsgHello, Count: 1},
	{Name: BlockRange, Message: MsgCountingUp, Count: 5},
	{Name: BlockStartEnd, Message: MsgStartEnd, Count: 9},
	{Name: BlockVariable, Message: MsgDynamic, Count: 10},
	{Name: BlockExpression, Message: MsgExpression, Count: 2 * 3},
	{Name: BlockNested, Message: MsgNested, Count: 3 * 2},
	{Name: BlockFunction, Message: MsgFunction, Count: 5},
}

const TotalLines = 42

type Var struct {
	Name  string
	Value int
}

// Event is one printed line.
type Event struct {
	Seq        int
	Block      string
	Line       string
	Vars       []Var
	File       string
	SourceLine int
}

type Hook func(Event)

type Runner struct {
	w     io.Writer
	hooks []Hook
	seq   int
	block string
	err   error
}

func New(w io.Writer, hooks ...Hook) *Runner {
	return &Runner{
		w:     w,
		hooks: hooks,
	}
}

// Run executes the whole program. It stops printing at the first write error
// and returns it.
func (r *Runner) Run() error {
	r.block = BlockGreeting
	r.println(MsgHello)

	r.block = BlockRange
	for i := range 5 {
		r.println(MsgCountingUp, Var{"i", i})
	}

	r.block = BlockStartEnd
	for j := 1; j < 10; j++ {
		r.println(MsgStartEnd, Var{"j", j})
	}

	r.block = BlockVariable
	x := 10
	for k := range x {
		r.println(MsgDynamic, Var{"x", x}, Var{"k", k})
	}

	r.block = BlockExpression
	for m := range 2 * 3 {
		r.println(MsgExpression, Var{"m", m})
	}

	r.block = BlockNested
	for a := range 3 {
		for b := range 2 {
			r.println(MsgNested, Var{"a", a}, Var{"b", b})
		}
	}

	return r.CountTo(5)
}

// CountTo prints the function message n times.
func (r *Runner) CountTo(n int) error {
	r.block = BlockFunction
	for i := range n {
		r.println(MsgFunction, Var{"n", n}, Var{"i", i})
	}

	return r.err
}

func (r *Runner) println(msg string, vars ...Var) {
	if r.err != nil {
		return
	}

	if _, err := fmt.Fprintln(r.w, msg); err != nil {
		r.err = fmt.Errorf("error writing line %d: %w", r.seq+1, err)
		return
	}
	r.seq++

	if len(r.hooks) == 0 {
		return
	}

	e := Event{
		Seq:   r.seq,
		Block: r.block,
		Line:  msg,
		Vars:  vars,
	}
	if _, file, line, ok := runtime.Caller(1); ok {
		e.File = file
		e.SourceLine = line
	}

	for _, h := range r.hooks {
		h(e)
	}
}

// Trace runs the program without output and returns every line it would print.
func Trace() []Event {
	events := make([]Event, 0, TotalLines)
	_ = New(io.Discard, func(e Event) {
		events = append(events, e)
	}).Run()

	return events
}
