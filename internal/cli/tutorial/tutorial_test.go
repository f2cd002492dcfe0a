package tutorial

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTutorialCmd(t *testing.T) {
	var out bytes.Buffer
	cmd := TutorialCmd()
	cmd.SetOut(&out)
	cmd.SetArgs(nil)

	require.NoError(t, cmd.Execute())
	assert.Equal(t, tutorialContent, out.String())
	assert.Contains(t, out.String(), "lanes card move")
}
