package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"diskmonitor/internal/controllers"
	"diskmonitor/internal/services"

	"github.com/spf13/cobra"
)

// errAbsent makes the process exit non-zero without extra output
var errAbsent = errors.New("disk information not available")

var diskCmd = &cobra.Command{
	Use:   "disk [path]",
	Short: "Print disk usage for a path as JSON",
	Long: `Resolve the volume containing path (default /) and print its usage,
exiting 1 if it cannot be resolved. Relative paths are taken from the
current directory.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadConfig(); err != nil {
			return err
		}
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		return printDisk(cmd, services.NewDiskService(), path)
	},
}

var disksCmd = &cobra.Command{
	Use:   "disks",
	Short: "Print disk usage for every mounted partition as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadConfig(); err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), services.NewDiskService().ResolveAll(cmd.Context()))
	},
}

func printDisk(cmd *cobra.Command, resolver controllers.DiskResolver, path string) error {
	if path != "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", path, err)
		}
		path = abs
	}
	path = controllers.NormalizeDiskPath(path)

	info, ok := resolver.Resolve(cmd.Context(), path)
	if !ok {
		fmt.Fprintln(cmd.ErrOrStderr(), controllers.NotFoundDetail+path)
		return errAbsent
	}
	return writeJSON(cmd.OutOrStdout(), info)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
