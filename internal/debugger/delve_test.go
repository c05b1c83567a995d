package debugger

import (
	"errors"
	"os/exec"
	"sync"
	"testing"
	"time"

	"github.com/andersonjoseph/loopdrill/internal/loops"
	"github.com/andersonjoseph/loopdrill/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type outputCollector struct {
	mu    sync.Mutex
	lines []string
	done  chan struct{}
	wg    sync.WaitGroup
}

func collect(c <-chan Output) *outputCollector {
	oc := &outputCollector{done: make(chan struct{})}
	oc.wg.Add(1)
	go func() {
		defer oc.wg.Done()
		for {
			select {
			case o := <-c:
				if o.Source != SourceStdout {
					continue
				}
				oc.mu.Lock()
				oc.lines = append(oc.lines, o.Content)
				oc.mu.Unlock()
			case <-oc.done:
				return
			}
		}
	}()
	return oc
}

func (oc *outputCollector) len() int {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return len(oc.lines)
}

func (oc *outputCollector) stop() {
	close(oc.done)
	oc.wg.Wait()
}

func blockStarts() []string {
	blocks := make([]string, len(loops.Blocks))
	for i, b := range loops.Blocks {
		blocks[i] = b.Name
	}
	return blocks
}

func TestDelveSession(t *testing.T) {
	if _, err := exec.LookPath("dlv"); err != nil {
		t.Skip("dlv not installed")
	}

	d, err := NewDelve(DefaultTarget, zap.NewNop())
	require.NoError(t, err)
	oc := collect(d.Output())
	defer func() {
		assert.NoError(t, d.Close())
		oc.stop()
	}()

	var want []string
	for _, b := range loops.Blocks {
		for range b.Count {
			want = append(want, b.Name)
		}
	}

	var last State
	for i := 1; i <= loops.TotalLines; i++ {
		last, err = d.Next()
		require.NoError(t, err)
		require.Equal(t, i, last.Seq)
		assert.Equal(t, want[i-1], last.Block, "line %d", i)
	}
	assert.False(t, last.Exited)
	assert.Contains(t, last.Vars, types.Variable{Name: "n", Value: "5"})
	assert.Contains(t, last.Vars, types.Variable{Name: "i", Value: "4"})

	st, err := d.Next()
	require.NoError(t, err)
	assert.True(t, st.Exited)

	_, err = d.Next()
	assert.True(t, errors.Is(err, ErrExited))

	require.NoError(t, d.Restart())

	var blocks []string
	for {
		st, err := d.Continue()
		require.NoError(t, err)
		if st.Exited {
			break
		}
		blocks = append(blocks, st.Block)
	}
	assert.Equal(t, blockStarts(), blocks)

	require.Eventually(t, func() bool {
		return oc.len() == 2*loops.TotalLines
	}, 10*time.Second, 50*time.Millisecond)
}
