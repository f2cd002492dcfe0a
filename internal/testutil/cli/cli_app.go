package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/lanes/internal/app"
	clipkg "github.com/thenoetrevino/lanes/internal/cli"
)

// ExecuteCLICommand runs cmd with args against testApp and returns what it
// wrote to stdout. Stderr is discarded.
func ExecuteCLICommand(t *testing.T, testApp *app.App, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()
	stdout, _, err := ExecuteCLICommandFull(t, testApp, cmd, args)
	return stdout, err
}

// ExecuteCLICommandFull is ExecuteCLICommand returning stderr as well
func ExecuteCLICommandFull(t *testing.T, testApp *app.App, cmd *cobra.Command, args []string) (stdout, stderr string, err error) {
	t.Helper()

	if testApp == nil {
		t.Fatal("testApp cannot be nil - SetupCLITest must be called first")
	}

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err = cmd.ExecuteContext(clipkg.WithApp(context.Background(), testApp))
	return out.String(), errOut.String(), err
}

// ParseJSON decodes a JSON object printed by a command
func ParseJSON(t *testing.T, output string) map[string]any {
	t.Helper()
	var result map[string]any
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("Failed to parse JSON output: %v\nOutput: %s", err, output)
	}
	return result
}
