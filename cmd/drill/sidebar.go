package main

import (
	"github.com/andersonjoseph/loopdrill/internal/components/localvariables"
)

type sidebar struct {
	localVariables localvariables.Model
	width          int
	height         int
}

// calcSize gives the sidebar half the terminal, clamped to 20-40 columns,
// and the full height minus the status line.
func (s *sidebar) calcSize(w, h int) {
	w = w / 2
	if w >= 40 {
		w = 40
	} else if w <= 20 {
		w = 20
	}
	s.width = w

	s.height = max(h-statusHeight-2, 3)
}
