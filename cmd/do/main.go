package main

import (
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/templui/devlens/cmd/do/cmd"
)

// Packages compiled into bin/do. A change in any of them makes the binary stale.
var doSources = []string{"cmd/do", "internal/config", "internal/db"}

func main() {
	rebuildIfStale()

	rootCmd := &cobra.Command{
		Use:   "do",
		Short: "Development tools for devlens",
	}

	rootCmd.AddCommand(cmd.DevCmd())
	rootCmd.AddCommand(cmd.MigrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// rebuildIfStale recompiles bin/do and re-execs it when its sources changed.
// Running through `go run` is left alone.
func rebuildIfStale() {
	exe, err := os.Executable()
	if err != nil || !strings.HasSuffix(exe, filepath.Join("bin", "do")) {
		return
	}

	info, err := os.Stat(exe)
	if err != nil || !changedSince(info.ModTime(), doSources...) {
		return
	}

	fmt.Println("bin/do is stale, rebuilding...")
	build := exec.Command("go", "build", "-o", exe, "./cmd/do")
	build.Stdout = os.Stdout
	build.Stderr = os.Stderr
	err = build.Run()
	if err != nil {
		fmt.Println("rebuild failed, continuing with the old binary:", err)
		return
	}

	err = syscall.Exec(exe, os.Args, os.Environ())
	if err != nil {
		fmt.Println("re-exec failed:", err)
	}
}

// changedSince reports whether any .go or .sql file under dirs is newer than t
func changedSince(t time.Time, dirs ...string) bool {
	changed := false
	for _, dir := range dirs {
		_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			if ext := filepath.Ext(path); ext != ".go" && ext != ".sql" {
				return nil
			}
			fi, err := d.Info()
			if err == nil && fi.ModTime().After(t) {
				changed = true
				return filepath.SkipAll
			}
			return nil
		})
		if changed {
			return true
		}
	}
	return false
}
