package debugger

import (
	"strconv"

	"github.com/andersonjoseph/loopdrill/internal/loops"
	"github.com/andersonjoseph/loopdrill/internal/types"
	"go.uber.org/zap"
)

const outputBuffer = 2 * loops.TotalLines

// Stepper replays the program in-process from its trace.
type Stepper struct {
	events []loops.Event
	pos    int
	output chan Output
	logger *zap.Logger
}

func NewStepper(logger *zap.Logger) *Stepper {
	return &Stepper{
		events: loops.Trace(),
		output: make(chan Output, outputBuffer),
		logger: logger,
	}
}

func (s *Stepper) State() (State, error) {
	if len(s.events) == 0 {
		return State{Exited: true}, nil
	}

	if s.pos == 0 {
		first := s.events[0]
		return State{File: first.File, Line: first.SourceLine}, nil
	}

	return eventState(s.events[s.pos-1], s.pos == len(s.events)), nil
}

func (s *Stepper) Next() (State, error) {
	if s.pos >= len(s.events) {
		return State{Exited: true}, ErrExited
	}

	e := s.events[s.pos]
	s.pos++
	s.publish(e)

	s.logger.Debug("stepped",
		zap.Int("seq", e.Seq),
		zap.String("block", e.Block),
		zap.Int("line", e.SourceLine))

	return eventState(e, s.pos == len(s.events)), nil
}

func (s *Stepper) Continue() (State, error) {
	st, err := s.State()
	if err != nil {
		return State{}, err
	}
	block := st.Block

	for {
		st, err = s.Next()
		if err != nil {
			return st, err
		}
		if st.Block != block || st.Exited {
			return st, nil
		}
	}
}

func (s *Stepper) Restart() error {
	s.pos = 0
	s.logger.Debug("restarted")
	return nil
}

func (s *Stepper) Output() <-chan Output {
	return s.output
}

func (s *Stepper) Close() error {
	return nil
}

func (s *Stepper) publish(e loops.Event) {
	select {
	case s.output <- Output{Source: SourceStdout, Content: e.Line}:
	default:
		s.logger.Warn("output buffer full, dropping line", zap.Int("seq", e.Seq))
	}
}

func eventState(e loops.Event, exited bool) State {
	vars := make([]types.Variable, len(e.Vars))
	for i, v := range e.Vars {
		vars[i] = types.Variable{
			Name:  v.Name,
			Value: strconv.Itoa(v.Value),
		}
	}

	return State{
		File:   e.File,
		Line:   e.SourceLine,
		Block:  e.Block,
		Seq:    e.Seq,
		Vars:   vars,
		Exited: exited,
	}
}
