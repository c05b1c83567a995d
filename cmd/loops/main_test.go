package main

import (
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/andersonjoseph/loopdrill/internal/loops"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestMainOutput(t *testing.T) {
	if os.Getenv("LOOPS_RUN_MAIN") == "1" {
		main()
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestMainOutput$")
	cmd.Env = append(os.Environ(), "LOOPS_RUN_MAIN=1")
	out, err := cmd.Output()
	require.NoError(t, err)

	// the child test binary appends its own PASS line
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.GreaterOrEqual(t, len(lines), loops.TotalLines)
	lines = lines[:loops.TotalLines]

	var want []string
	for _, b := range loops.Blocks {
		for range b.Count {
			want = append(want, b.Message)
		}
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}
