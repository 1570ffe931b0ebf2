package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestMenuSkipsDisabled(t *testing.T) {
	called := ""
	m := NewMenu([]MenuItem{
		{Label: "A", Action: func() tea.Cmd { called = "A"; return nil }},
		{Label: "B", Disabled: true},
		{Label: "C", Action: func() tea.Cmd { called = "C"; return nil }},
	})

	m, _ = m.Update(specialKey(tea.KeyDown))
	assert.Equal(t, 2, m.Selected)

	m.Update(specialKey(tea.KeyEnter))
	assert.Equal(t, "C", called)
}

func TestChoiceCycles(t *testing.T) {
	c := NewChoice("Degree", []string{"B.Tech", "M.Tech"})
	assert.Equal(t, "", c.Value())

	c, _ = c.Update(specialKey(tea.KeyRight))
	assert.Equal(t, "B.Tech", c.Value())
	c, _ = c.Update(specialKey(tea.KeyRight))
	assert.Equal(t, "M.Tech", c.Value())
	c, _ = c.Update(specialKey(tea.KeyRight))
	assert.Equal(t, "B.Tech", c.Value())
	c, _ = c.Update(specialKey(tea.KeyLeft))
	assert.Equal(t, "M.Tech", c.Value())

	c.SetOptions([]string{"X"})
	assert.Equal(t, "", c.Value())
}

func TestStarRating(t *testing.T) {
	var r StarRating
	r, _ = r.Update(keyPress('4'))
	assert.Equal(t, 4, r.Value)
	r, _ = r.Update(specialKey(tea.KeyRight))
	r, _ = r.Update(specialKey(tea.KeyRight))
	assert.Equal(t, 5, r.Value)
	r, _ = r.Update(keyPress('9'))
	assert.Equal(t, 5, r.Value)
	assert.Contains(t, r.View(), "★")
}

func TestConfirmDialog(t *testing.T) {
	d := NewConfirm("delete", "Sure?")
	d, cmd := d.Update(keyPress('y'))
	require.NotNil(t, cmd)
	assert.False(t, d.Open)
	assert.Equal(t, DialogResultMsg{ID: "delete", OK: true}, cmd())

	d = NewConfirm("delete", "Sure?")
	_, cmd = d.Update(specialKey(tea.KeyEscape))
	require.NotNil(t, cmd)
	assert.False(t, cmd().(DialogResultMsg).OK)
}

func TestPromptDialogReturnsTypedText(t *testing.T) {
	d := NewPrompt("flag", "Correction?", "old")
	for _, r := range "er" {
		d, _ = d.Update(keyPress(r))
	}
	_, cmd := d.Update(specialKey(tea.KeyEnter))
	require.NotNil(t, cmd)
	res := cmd().(DialogResultMsg)
	assert.True(t, res.OK)
	assert.Equal(t, "older", res.Text)
}

func TestPromptDialogAcceptsEmpty(t *testing.T) {
	d := NewPrompt("flag", "Correction?", "")
	_, cmd := d.Update(specialKey(tea.KeyEnter))
	require.NotNil(t, cmd)
	res := cmd().(DialogResultMsg)
	assert.True(t, res.OK)
	assert.Equal(t, "", res.Text)
}

func TestProgressBarWidth(t *testing.T) {
	p := NewProgressBar("", 50, "5", 20)
	assert.Contains(t, p.View(), "█")
}
