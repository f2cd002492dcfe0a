package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/lanes/internal/models"
)

func sampleCards() []models.Card {
	return []models.Card{
		{ID: "b", Lane: "todo", Position: 1, Title: "second"},
		{ID: "a", Lane: "todo", Position: 0, Title: "first *bold*", Description: "line one\nline two"},
		{ID: "c", Lane: "done", Position: 0, Title: "shipped", FeatureID: "F-7"},
	}
}

func TestMarkdown(t *testing.T) {
	doc := Markdown("alice", models.LaneSet{"todo", "doing", "done"}, sampleCards())

	assert.True(t, strings.HasPrefix(doc, "# Board: alice\n"))
	assert.Contains(t, doc, "## Todo (2)")
	assert.Contains(t, doc, "## Doing (0)\n\n_No cards_")
	assert.Contains(t, doc, "1. **first \\*bold\\***")
	assert.Contains(t, doc, "   > line two")
	assert.Contains(t, doc, "1. **shipped** `F-7`")

	// Lane order and card order follow the board
	assert.Less(t, strings.Index(doc, "## Todo"), strings.Index(doc, "## Doing"))
	assert.Less(t, strings.Index(doc, "first"), strings.Index(doc, "second"))
}

func TestMarkdown_SkipsCardsOutsideLaneSet(t *testing.T) {
	doc := Markdown("alice", models.LaneSet{"todo"}, sampleCards())
	assert.NotContains(t, doc, "shipped")
}

func TestWrite_RawWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "alice", models.LaneSet{"todo"}, sampleCards(), false))
	assert.Equal(t, Markdown("alice", models.LaneSet{"todo"}, sampleCards()), buf.String())
	assert.False(t, IsTerminal(&buf))
}

func TestRender(t *testing.T) {
	out, err := Render("# Title\n\nsome text\n", 40)
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "some text")
}
