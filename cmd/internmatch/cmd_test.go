package main

import (
	"bytes"
	"strings"
	"testing"

	"intern-match/internal/domain/allocation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Subcommands(t *testing.T) {
	want := []string{"migrate", "seed", "allocate", "show", "version"}
	for _, n := range want {
		c, _, err := rootCmd.Find([]string{n})
		require.NoError(t, err, n)
		assert.Equal(t, n, c.Name())
	}
}

func TestShowCommand_RejectsBadID(t *testing.T) {
	rootCmd.SetArgs([]string{"show", "not-a-uuid"})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid student id")
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetArgs([]string{"version"})
	rootCmd.SetOut(&out)
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "internmatch version: unknown\n", out.String())
}

func TestWriteRun(t *testing.T) {
	sid := uuid.New()
	run := allocation.Run{
		ID:          uuid.New(),
		Students:    2,
		Assignments: []allocation.Assignment{{StudentID: sid, OrganizationID: uuid.New(), Project: "Data Intern", Score: 6}},
	}

	var out bytes.Buffer
	require.NoError(t, writeRun(&out, run))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "1 of 2 students assigned")
	assert.Contains(t, lines[2], sid.String())
	assert.Contains(t, lines[2], "Data Intern")
}

func TestWriteBreakdown(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, writeBreakdown(&out, allocation.Breakdown{SkillMatch: 2, LocationMatch: 1, Total: 5}))
	assert.Equal(t, "  skills 2 x2, location 1, internship type 0 = 5\n", out.String())
}
