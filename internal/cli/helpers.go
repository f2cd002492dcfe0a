package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/types"
)

// Formatter builds the output formatter from a command's --json and --quiet flags
func Formatter(cmd *cobra.Command) *OutputFormatter {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	return &OutputFormatter{
		JSON:   jsonOutput,
		Quiet:  quietMode,
		Out:    cmd.OutOrStdout(),
		ErrOut: cmd.ErrOrStderr(),
	}
}

// AddOutputFlags registers the agent-friendly output flags
func AddOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")
}

// ResolveLane maps a lane name to its id. An empty name resolves to "".
func ResolveLane(lanes models.LaneSet, name string) (types.LaneID, error) {
	if strings.TrimSpace(name) == "" {
		return "", nil
	}
	lane, ok := lanes.Lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", models.ErrUnknownLane, name)
	}
	return lane, nil
}

// FormatAvailableLanes lists the lane ids for error suggestions
func FormatAvailableLanes(lanes models.LaneSet) string {
	names := make([]string, len(lanes))
	for i, l := range lanes {
		names[i] = string(l)
	}
	return strings.Join(names, ", ")
}

// IsNotFound reports whether err means a card or lane does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, models.ErrCardNotFound) || errors.Is(err, models.ErrUnknownLane)
}
