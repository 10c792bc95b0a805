package service

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"blogapi/app/config"

	"github.com/dgraph-io/badger/v4"
)

// stdin is read for confirmations; tests replace it.
var stdin io.Reader = os.Stdin

// HandleCommand runs a store or server subcommand and returns an exit code.
func HandleCommand(ctx context.Context, args []string) int {
	if len(args) < 1 {
		printCommandHelp()
		return 1
	}

	cmd := args[0]
	switch cmd {
	case "serve":
		cfg, _, ok := parseFlags(cmd, args[1:])
		if !ok {
			return 1
		}
		if err := RunAppServer(ctx, cfg); err != nil {
			fmt.Printf("Server failed: %v\n", err)
			return 1
		}
		return 0
	case "clean":
		cfg, fs, ok := parseBadgerFlags(cmd, args[1:])
		if !ok {
			return 1
		}
		return clean(cfg.Store.Path, fs.yes)
	case "init":
		cfg, _, ok := parseBadgerFlags(cmd, args[1:])
		if !ok {
			return 1
		}
		return initDb(cfg.Store.Path)
	case "backup":
		cfg, _, ok := parseBadgerFlags(cmd, args[1:])
		if !ok {
			return 1
		}
		return backup(cfg.Store.Path, cfg.Store.BackupDir)
	case "restore":
		cfg, fs, ok := parseBadgerFlags(cmd, args[1:])
		if !ok {
			return 1
		}
		if len(fs.args) < 1 {
			fmt.Println("Error: backup file path required for restore")
			return 1
		}
		return restore(cfg.Store.Path, fs.args[0], fs.yes)
	case "help":
		printCommandHelp()
		return 0
	default:
		fmt.Printf("Unknown command: %s\n\n", cmd)
		printCommandHelp()
		return 1
	}
}

// printCommandHelp prints help for the server and store subcommands.
func printCommandHelp() {
	helpText := `Commands:
  serve   [--config <file>]                  Run the blog API
  init    [--config <file>]                  Initialize a new empty badger database
  clean   [--config <file>] [--yes]          Remove the badger database
  backup  [--config <file>]                  Create a backup of the badger database
  restore [--config <file>] [--yes] <file>   Restore the badger database from a backup
  help                                       Display this help message
`
	fmt.Println(helpText)
}

type parsedFlags struct {
	yes  bool
	args []string
}

func parseFlags(cmd string, args []string) (config.Config, parsedFlags, bool) {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(os.Stdout)
	configPath := fs.String("config", config.DefaultPath, "path to the YAML config file")
	yes := fs.Bool("yes", false, "skip confirmation prompts")
	if err := fs.Parse(args); err != nil {
		return config.Config{}, parsedFlags{}, false
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		return config.Config{}, parsedFlags{}, false
	}
	return cfg, parsedFlags{yes: *yes, args: fs.Args()}, true
}

// parseBadgerFlags is parseFlags for commands that only make sense on an
// on-disk badger store.
func parseBadgerFlags(cmd string, args []string) (config.Config, parsedFlags, bool) {
	cfg, fs, ok := parseFlags(cmd, args)
	if !ok {
		return cfg, fs, false
	}
	if cfg.Store.Driver != config.DriverBadger || cfg.Store.InMemory {
		fmt.Printf("Error: %s requires an on-disk badger store (driver is %q)\n", cmd, cfg.Store.Driver)
		return cfg, fs, false
	}
	return cfg, fs, true
}

func confirm(prompt string) bool {
	fmt.Print(prompt + " [y/N] ")
	line, _ := bufio.NewReader(stdin).ReadString('\n')
	response := strings.TrimSpace(line)
	return response == "y" || response == "Y"
}

// clean removes the database.
func clean(dbPath string, yes bool) int {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Println("Database is already clean (does not exist)")
		return 0
	}

	if !yes && !confirm("Are you sure you want to clean the database? This cannot be undone.") {
		fmt.Println("Operation cancelled")
		return 1
	}

	if err := os.RemoveAll(dbPath); err != nil {
		fmt.Printf("Failed to clean database: %v\n", err)
		return 1
	}
	fmt.Println("Database cleaned successfully")
	return 0
}

// initDb initializes a new empty database.
func initDb(dbPath string) int {
	if _, err := os.Stat(dbPath); err == nil {
		fmt.Println("Database already exists. Use 'clean' first if you want to reinitialize.")
		return 1
	}

	if err := os.MkdirAll(dbPath, 0755); err != nil {
		fmt.Printf("Failed to create database directory: %v\n", err)
		return 1
	}

	db, err := badger.Open(badger.DefaultOptions(dbPath).WithLogger(nil))
	if err != nil {
		fmt.Printf("Failed to initialize database: %v\n", err)
		return 1
	}
	defer db.Close()

	fmt.Println("Database initialized successfully")
	return 0
}

// backup writes a full backup of the database into backupDir.
func backup(dbPath, backupDir string) int {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Println("No database exists to backup")
		return 1
	}

	if err := os.MkdirAll(backupDir, 0755); err != nil {
		fmt.Printf("Failed to create backup directory: %v\n", err)
		return 1
	}

	db, err := badger.Open(badger.DefaultOptions(dbPath).WithLogger(nil))
	if err != nil {
		fmt.Printf("Failed to open database: %v\n", err)
		return 1
	}
	defer db.Close()

	backupFile := filepath.Join(backupDir, fmt.Sprintf("backup_%d.db", time.Now().Unix()))
	f, err := os.Create(backupFile)
	if err != nil {
		fmt.Printf("Failed to create backup file: %v\n", err)
		return 1
	}
	defer f.Close()

	if _, err := db.Backup(f, 0); err != nil {
		fmt.Printf("Failed to backup database: %v\n", err)
		return 1
	}

	fmt.Printf("Database backed up successfully to %s\n", backupFile)
	return 0
}

// restore replaces the database with the contents of backupFile.
func restore(dbPath, backupFile string, yes bool) int {
	fi, err := os.Stat(backupFile)
	if os.IsNotExist(err) {
		fmt.Printf("Backup file does not exist: %s\n", backupFile)
		return 1
	}
	if err != nil {
		fmt.Printf("Failed to stat backup file: %v\n", err)
		return 1
	}
	if fi.Size() == 0 {
		fmt.Printf("Backup file is empty: %s\n", backupFile)
		return 1
	}

	if _, err := os.Stat(dbPath); err == nil {
		if !yes && !confirm("Existing database found. Do you want to replace it?") {
			fmt.Println("Operation cancelled")
			return 1
		}
		if err := os.RemoveAll(dbPath); err != nil {
			fmt.Printf("Failed to remove existing database: %v\n", err)
			return 1
		}
	}

	if err := os.MkdirAll(dbPath, 0755); err != nil {
		fmt.Printf("Failed to create database directory: %v\n", err)
		return 1
	}

	db, err := badger.Open(badger.DefaultOptions(dbPath).WithLogger(nil))
	if err != nil {
		fmt.Printf("Failed to open database: %v\n", err)
		return 1
	}
	defer db.Close()

	f, err := os.Open(backupFile)
	if err != nil {
		fmt.Printf("Failed to open backup file: %v\n", err)
		return 1
	}
	defer f.Close()

	err = func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic occurred during restore: %v", r)
			}
		}()
		return db.Load(f, 4)
	}()
	if err != nil {
		fmt.Printf("Failed to restore database: %v\n", err)
		return 1
	}

	fmt.Println("Database restored successfully")
	return 0
}
