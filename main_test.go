package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureOutput(f func()) string {
	var buf bytes.Buffer
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	done := make(chan bool)
	go func() {
		_, _ = io.Copy(&buf, r)
		done <- true
	}()

	f()
	_ = w.Close()
	os.Stdout = oldStdout
	<-done

	return buf.String()
}

func callMain() (int, string) {
	var exitCode int
	oldExit := exit
	defer func() { exit = oldExit }()
	exit = func(code int) {
		exitCode = code
		panic("exit")
	}

	output := captureOutput(func() {
		defer func() {
			if r := recover(); r != nil {
				if r != "exit" {
					panic(r)
				}
			}
		}()
		RealMain()
	})
	return exitCode, output
}

func TestRealMain(t *testing.T) {
	// Save original args
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	dbPath := filepath.Join(filepath.Dir(configPath), "badger")
	require.NoError(t, os.WriteFile(configPath, []byte("store:\n  path: "+dbPath+"\n"), 0644))

	tests := []struct {
		name           string
		args           []string
		expectedExit   int
		expectedOutput string
	}{
		{
			name:           "no arguments",
			args:           []string{"blogapi"},
			expectedExit:   1,
			expectedOutput: "Usage: blogapi <command>",
		},
		{
			name:           "help command",
			args:           []string{"blogapi", "help"},
			expectedExit:   0,
			expectedOutput: "Usage: blogapi <command> [options]",
		},
		{
			name:           "version command",
			args:           []string{"blogapi", "version"},
			expectedExit:   0,
			expectedOutput: "blogapi version " + CliVersion,
		},
		{
			name:           "unknown command",
			args:           []string{"blogapi", "unknown"},
			expectedExit:   1,
			expectedOutput: "Unknown command: unknown",
		},
		{
			name:           "init database",
			args:           []string{"blogapi", "init", "--config", configPath},
			expectedExit:   0,
			expectedOutput: "Database initialized successfully",
		},
		{
			name:           "restore without file",
			args:           []string{"blogapi", "restore", "--config", configPath},
			expectedExit:   1,
			expectedOutput: "Error: backup file path required for restore",
		},
		{
			name:           "clean confirmed by flag",
			args:           []string{"blogapi", "clean", "--config", configPath, "--yes"},
			expectedExit:   0,
			expectedOutput: "Database cleaned successfully",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Set up test args
			os.Args = tt.args

			exitCode, output := callMain()

			// Verify output and exit code
			assert.Contains(t, output, tt.expectedOutput)
			assert.Equal(t, tt.expectedExit, exitCode)
		})
	}
}

func TestPrintHelp(t *testing.T) {
	output := captureOutput(func() {
		printHelp()
	})

	// Verify help text contains all commands
	assert.Contains(t, output, "Usage: blogapi")
	for _, cmd := range []string{"help", "version", "serve", "clean", "init", "backup", "restore", "--config"} {
		assert.Contains(t, output, cmd)
	}
}
