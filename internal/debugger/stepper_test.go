package debugger

import (
	"testing"

	"github.com/andersonjoseph/loopdrill/internal/loops"
	"github.com/andersonjoseph/loopdrill/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func drain(c <-chan Output) []string {
	var lines []string
	for {
		select {
		case o := <-c:
			lines = append(lines, o.Content)
		default:
			return lines
		}
	}
}

func TestStepperInitialState(t *testing.T) {
	s := NewStepper(zap.NewNop())

	st, err := s.State()
	require.NoError(t, err)
	assert.Zero(t, st.Seq)
	assert.Empty(t, st.Block)
	assert.False(t, st.Exited)
	assert.NotEmpty(t, st.File)
	assert.Empty(t, drain(s.Output()))
}

func TestStepperNextWalksWholeProgram(t *testing.T) {
	s := NewStepper(zap.NewNop())

	var st State
	var err error
	for i := 1; i <= loops.TotalLines; i++ {
		st, err = s.Next()
		require.NoError(t, err)
		assert.Equal(t, i, st.Seq)
	}
	assert.True(t, st.Exited)
	assert.Equal(t, loops.BlockFunction, st.Block)
	assert.Equal(t, []types.Variable{{Name: "n", Value: "5"}, {Name: "i", Value: "4"}}, st.Vars)

	_, err = s.Next()
	require.ErrorIs(t, err, ErrExited)

	lines := drain(s.Output())
	require.Len(t, lines, loops.TotalLines)
	assert.Equal(t, loops.MsgHello, lines[0])
	assert.Equal(t, loops.MsgFunction, lines[loops.TotalLines-1])
}

func TestStepperContinueStopsAtBlockBoundaries(t *testing.T) {
	s := NewStepper(zap.NewNop())

	var blocks []string
	var seqs []int
	for {
		st, err := s.Continue()
		require.NoError(t, err)
		blocks = append(blocks, st.Block)
		seqs = append(seqs, st.Seq)
		if st.Exited {
			break
		}
	}

	assert.Equal(t, []string{
		loops.BlockGreeting,
		loops.BlockRange,
		loops.BlockStartEnd,
		loops.BlockVariable,
		loops.BlockExpression,
		loops.BlockNested,
		loops.BlockFunction,
		loops.BlockFunction,
	}, blocks)
	assert.Equal(t, []int{1, 2, 7, 16, 26, 32, 38, 42}, seqs)

	_, err := s.Continue()
	require.ErrorIs(t, err, ErrExited)
	assert.Len(t, drain(s.Output()), loops.TotalLines)
}

func TestStepperContinueFromMidBlock(t *testing.T) {
	s := NewStepper(zap.NewNop())
	for range 4 {
		_, err := s.Next()
		require.NoError(t, err)
	}

	st, err := s.Continue()
	require.NoError(t, err)
	assert.Equal(t, loops.BlockStartEnd, st.Block)
	assert.Equal(t, []types.Variable{{Name: "j", Value: "1"}}, st.Vars)
}

func TestStepperRestart(t *testing.T) {
	s := NewStepper(zap.NewNop())
	for range 10 {
		_, err := s.Next()
		require.NoError(t, err)
	}
	drain(s.Output())

	require.NoError(t, s.Restart())

	st, err := s.State()
	require.NoError(t, err)
	assert.Zero(t, st.Seq)

	st, err = s.Next()
	require.NoError(t, err)
	assert.Equal(t, 1, st.Seq)
	assert.Equal(t, []string{loops.MsgHello}, drain(s.Output()))
	require.NoError(t, s.Close())
}

func TestStepperDropsWhenUndrained(t *testing.T) {
	s := NewStepper(zap.NewNop())
	for range 3 {
		for {
			if _, err := s.Next(); err != nil {
				break
			}
		}
		require.NoError(t, s.Restart())
	}

	assert.Len(t, drain(s.Output()), outputBuffer)
}
