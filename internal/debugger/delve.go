package debugger

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/andersonjoseph/loopdrill/internal/paths"
	"github.com/andersonjoseph/loopdrill/internal/types"
	"github.com/go-delve/delve/service/api"
	"github.com/go-delve/delve/service/rpc2"
	"go.uber.org/zap"
)

const (
	DefaultTarget = "./cmd/loops"

	printFunction = "github.com/andersonjoseph/loopdrill/internal/loops.(*Runner).println"
)

var addressRegex = regexp.MustCompile(`\b(?:(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.){3}(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?):\d{1,5}\b`)

// Delve drives a headless dlv server debugging the loops program. It stops
// on every call to the runner's print method, before the line is written.
type Delve struct {
	Client *rpc2.RPCClient
	cmd    *exec.Cmd
	ready  chan string
	output chan Output
	done   chan struct{}
	lcfg   api.LoadConfig
	logger *zap.Logger
	exited bool
}

func NewDelve(target string, logger *zap.Logger) (*Delve, error) {
	if target == "" {
		target = DefaultTarget
	}

	d := &Delve{
		ready:  make(chan string, 1),
		output: make(chan Output),
		done:   make(chan struct{}),
		logger: logger,
		lcfg: api.LoadConfig{
			FollowPointers:     true,
			MaxVariableRecurse: 1,
			MaxStringLen:       64,
			MaxArrayValues:     8,
			MaxStructFields:    8,
		},
	}

	if err := d.startProcess(target); err != nil {
		return nil, err
	}

	select {
	case addr := <-d.ready:
		d.logger.Info("delve listening", zap.String("addr", addr), zap.String("target", target))
		d.Client = rpc2.NewClient(addr)
	case <-time.After(time.Second * 10):
		close(d.done)
		_ = d.cmd.Process.Kill()
		return nil, ErrTimeout
	}

	if _, err := d.Client.CreateBreakpoint(&api.Breakpoint{FunctionName: printFunction}); err != nil {
		_ = d.Close()
		return nil, fmt.Errorf("error creating breakpoint: %w", err)
	}

	return d, nil
}

func (d *Delve) startProcess(target string) error {
	d.cmd = exec.Command("dlv", "debug", "--headless", "--api-version=2", target)
	if !filepath.IsAbs(target) {
		d.cmd.Dir = paths.ProjectRoot()
	}

	stdout, err := d.cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("error creating stdout pipe: %w", err)
	}
	stderr, err := d.cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("error creating stderr pipe: %w", err)
	}

	if err := d.cmd.Start(); err != nil {
		return fmt.Errorf("error starting debugger process: %w", err)
	}

	go d.forward(stdout, SourceStdout)
	go d.forward(stderr, SourceStderr)

	return nil
}

func (d *Delve) forward(r io.ReadCloser, source Source) {
	defer r.Close()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if source == SourceStdout && strings.Contains(line, "listening") {
			select {
			case d.ready <- addressRegex.FindString(line):
			default:
			}
			continue
		}

		select {
		case d.output <- Output{Source: source, Content: line}:
		case <-d.done:
			return
		}
	}
}

func (d *Delve) State() (State, error) {
	if d.exited {
		return State{Exited: true}, nil
	}

	state, err := d.Client.GetState()
	if err != nil {
		return State{}, fmt.Errorf("error getting debugger state: %w", err)
	}
	if state.Exited {
		d.exited = true
		return State{Exited: true}, nil
	}

	th := state.CurrentThread
	if th == nil {
		return State{}, nil
	}
	if th.Function == nil || th.Function.Name() != printFunction {
		return State{File: th.File, Line: th.Line}, nil
	}

	frames, err := d.Client.Stacktrace(th.GoroutineID, 1, 0, &d.lcfg)
	if err != nil {
		return State{}, fmt.Errorf("error getting stacktrace: %w", err)
	}
	if len(frames) < 2 {
		return State{File: th.File, Line: th.Line}, nil
	}

	// frame 1 is the loop that called println
	scope := api.EvalScope{GoroutineID: th.GoroutineID, Frame: 1}
	st := State{
		File: frames[1].File,
		Line: frames[1].Line,
	}

	st.Vars, err = d.counters(scope)
	if err != nil {
		return State{}, err
	}

	if v, err := d.Client.EvalVariable(scope, "r.block", d.lcfg); err == nil {
		st.Block = v.Value
	}
	if v, err := d.Client.EvalVariable(scope, "r.seq", d.lcfg); err == nil {
		if n, err := strconv.Atoi(v.Value); err == nil {
			st.Seq = n + 1
		}
	}

	return st, nil
}

// counters lists the arguments then the locals of the calling frame, without
// the runner itself.
func (d *Delve) counters(scope api.EvalScope) ([]types.Variable, error) {
	args, err := d.Client.ListFunctionArgs(scope, d.lcfg)
	if err != nil {
		return nil, fmt.Errorf("error getting function arguments: %w", err)
	}

	locals, err := d.Client.ListLocalVariables(scope, d.lcfg)
	if err != nil {
		return nil, fmt.Errorf("error getting local variables: %w", err)
	}

	vars := make([]types.Variable, 0, len(args)+len(locals))
	for _, v := range append(args, locals...) {
		if v.Name == "r" {
			continue
		}
		vars = append(vars, types.Variable{
			Name:  v.Name,
			Value: v.SinglelineString(),
		})
	}

	return vars, nil
}

func (d *Delve) Next() (State, error) {
	if d.exited {
		return State{Exited: true}, ErrExited
	}

	state := <-d.Client.Continue()
	if state.Exited || (state.Err != nil && strings.Contains(state.Err.Error(), "has exited with status")) {
		d.exited = true
		d.logger.Info("debuggee exited")
		return State{Exited: true}, nil
	}
	if state.Err != nil {
		return State{}, fmt.Errorf("error continuing: %w", state.Err)
	}

	return d.State()
}

func (d *Delve) Continue() (State, error) {
	st, err := d.State()
	if err != nil {
		return State{}, err
	}
	block := st.Block

	for {
		st, err = d.Next()
		if err != nil {
			return st, err
		}
		if st.Exited || (st.Block != block && st.Block != "") {
			return st, nil
		}
	}
}

func (d *Delve) Restart() error {
	if _, err := d.Client.Restart(false); err != nil {
		return fmt.Errorf("error restarting: %w", err)
	}
	d.exited = false
	d.logger.Info("debuggee restarted")

	return nil
}

func (d *Delve) Output() <-chan Output {
	return d.output
}

func (d *Delve) Close() error {
	select {
	case <-d.done:
	default:
		close(d.done)
	}

	if d.Client != nil {
		if err := d.Client.Detach(true); err != nil {
			d.logger.Warn("error detaching", zap.Error(err))
		}
	}

	if d.cmd == nil || d.cmd.Process == nil {
		return nil
	}
	if err := d.cmd.Wait(); err != nil {
		return fmt.Errorf("error waiting for debugger process: %w", err)
	}

	return nil
}
