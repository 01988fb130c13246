package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleCmd(t *testing.T) {
	cmd := newScheduleCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--birth", "2024-12-13", "--dam", "Luna"})

	require.NoError(t, cmd.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 14) // cabecera + 13 hitos
	assert.Contains(t, lines[1], "2024-12-13")
	assert.Contains(t, lines[1], "Wurf von Luna und Rüde geboren")
	assert.Contains(t, out.String(), "2025-02-04") // 7.5 semanas = 53 días
}

func TestScheduleCmd_InvalidDate(t *testing.T) {
	cmd := newScheduleCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--birth", "13.12.2024"})

	assert.Error(t, cmd.Execute())
}
