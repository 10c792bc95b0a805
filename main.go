package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"blogapi/service"
)

const CliVersion = "1.0.0"

// exit is replaced in tests.
var exit = os.Exit

func main() {
	RealMain()
}

// RealMain dispatches os.Args to a command and exits non-zero on failure.
func RealMain() {
	if len(os.Args) < 2 {
		printHelp()
		exit(1)
		return
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("blogapi version %s\n", CliVersion)
	case "serve", "init", "clean", "backup", "restore":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		code := service.HandleCommand(ctx, append([]string{cmd}, os.Args[2:]...))
		stop()
		if code != 0 {
			exit(code)
		}
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		exit(1)
	}
}

func printHelp() {
	helpText := `Usage: blogapi <command> [options]
Commands:
  help                                       Display this help message.
  version                                    Show version information.
  serve   [--config <file>]                  Run the blog API server.
  init    [--config <file>]                  Initialize a new empty badger database.
  clean   [--config <file>] [--yes]          Remove the badger database.
  backup  [--config <file>]                  Back up the badger database.
  restore [--config <file>] [--yes] <file>   Restore the badger database from a backup.

Configuration is read from config.yaml unless --config is given; BLOGAPI_*
environment variables override file values.
`
	fmt.Println(helpText)
}
