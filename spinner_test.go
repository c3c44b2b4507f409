package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpinnerInertWithoutTerminal(t *testing.T) {
	styles := NewStyles("default")

	s := NewSpinner("working", styles, nil)
	assert.False(t, s.enabled)
	s.Start()
	s.Success("done")
	s.Fail("failed")

	f, err := os.Create(filepath.Join(t.TempDir(), "out.log"))
	require.NoError(t, err)
	defer f.Close()

	s = NewSpinner("working", styles, f)
	assert.False(t, s.enabled)
	s.Start()
	s.Success("done")

	info, err := f.Stat()
	require.NoError(t, err)
	assert.Zero(t, info.Size(), "nothing is drawn to a plain file")
}

func TestSpinnerModel(t *testing.T) {
	m := newSpinnerModel("Generating plan...", NewStyles("default"))
	assert.Contains(t, m.View(), "Generating plan...")
	assert.NotNil(t, m.Init())

	model, cmd := m.Update(stopSpinnerMsg{final: "finished"})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, "finished\n", model.View())
}

func TestSpinnerRunsProgram(t *testing.T) {
	var out bytes.Buffer
	styles := NewStyles("default")
	s := &Spinner{
		program: newSpinnerProgram(newSpinnerModel("working", styles), &out),
		styles:  styles,
		done:    make(chan struct{}),
		enabled: true,
	}

	s.Start()
	s.Success("all done")
	assert.Contains(t, out.String(), "all done")

	// a second finish is a no-op
	s.Fail("ignored")
	assert.NotContains(t, out.String(), "ignored")
}
