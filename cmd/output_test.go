package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/careerlens/internal/admin"
	"github.com/abhisek/careerlens/internal/api"
)

func TestPrintTableAlignsColumns(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	printTable(&buf, admin.Table{
		Headers: []string{"ID", "User", "Status"},
		Rows: [][]string{
			{"1", "asha", "Normal"},
			{"12", "ravindranath", "Flagged"},
		},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "ID  User          Status", strings.TrimRight(lines[0], " "))
	assert.Equal(t, "1   asha          Normal", strings.TrimRight(lines[2], " "))
	assert.Equal(t, "12  ravindranath  Flagged", strings.TrimRight(lines[3], " "))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
	assert.Equal(t, "★★★★…", truncate("★★★★★★", 5))
}

func TestStatusText(t *testing.T) {
	assert.Equal(t, "-", statusText(0))
	assert.Equal(t, "404", statusText(404))
}

func TestFindPrediction(t *testing.T) {
	ps := []api.Prediction{{ID: 3}, {ID: 9, IsFlagged: true}}
	p, ok := findPrediction(ps, 9)
	require.True(t, ok)
	assert.True(t, p.IsFlagged)

	_, ok = findPrediction(ps, 4)
	assert.False(t, ok)
}
