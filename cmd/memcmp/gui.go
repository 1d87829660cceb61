package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
)

// guiBinaryName is the desktop build shipped next to the CLI
const guiBinaryName = "memcmp-gui"

func guiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Launch the desktop window",
		Long: `Launch the GPU memory comparison desktop window.

The window provides memory type toggles, the comparison table, a bar chart
for the chosen metric and the latency animation.

Note: The GUI requires a graphical environment (X11, Wayland, or Windows/macOS desktop).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !hasGUIEnvironment() {
				return fmt.Errorf("GUI environment not detected. The GUI requires a graphical desktop environment")
			}

			path, err := findGUIBinary()
			if err != nil {
				return err
			}
			return runGUI(cmd, path)
		},
	}
}

// findGUIBinary looks next to the CLI first, then in PATH
func findGUIBinary() (string, error) {
	name := guiBinaryName
	if runtime.GOOS == "windows" {
		name += ".exe"
	}

	if execPath, err := os.Executable(); err == nil {
		path := filepath.Join(filepath.Dir(execPath), name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	if path, err := exec.LookPath(name); err == nil {
		return path, nil
	}

	return "", fmt.Errorf("GUI binary '%s' not found. Please ensure it's built and in your PATH", name)
}

func hasGUIEnvironment() bool {
	switch runtime.GOOS {
	case "windows", "darwin":
		return true
	case "linux", "freebsd", "openbsd", "netbsd":
		return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
	default:
		return false
	}
}

// runGUI starts the desktop binary without waiting for it
func runGUI(cmd *cobra.Command, path string) error {
	proc := exec.Command(path) // #nosec G204 -- path is the resolved GUI binary
	proc.Stdout = os.Stdout
	proc.Stderr = os.Stderr

	if err := proc.Start(); err != nil {
		return fmt.Errorf("failed to start GUI: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "GUI launched (PID: %d)\n", proc.Process.Pid)
	return nil
}
