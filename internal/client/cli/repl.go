package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn and printFn are test seams for user-facing output. In tests,
// replace them with stubs.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error

	Scan(ctx context.Context) error
	Add(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error

	Profile(ctx context.Context, args []string) error
	Picture(ctx context.Context, args []string) error
	Settings(ctx context.Context, args []string) error

	Sync(ctx context.Context) error
}

const (
	helpCommon = `Contacts:  scan, add, list [recent|name|company], search <text>, show <id>, edit <id>, delete <id>...
Profile:   profile, profile set, picture <path>
QR card:   settings, settings set <field> <value>
Other:     help, exit`
	helpSignedOut = "Account:   register, login  (signed out: records stay on this device)"
	helpSignedIn  = "Account:   whoami, sync, logout"
)

func helpText(loggedIn bool) string {
	if loggedIn {
		return helpSignedIn + "\n" + helpCommon
	}
	return helpSignedOut + "\n" + helpCommon
}

// runREPL starts a simple read–eval–print loop.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a' with the remaining tokens as arguments.
// Errors returned by handlers are printed and the loop continues. The loop
// exits on EOF or when the user types "exit" or "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printFn(fmt.Sprintf("qrc %s> ", statusFn()))

		line, readErr := reader.ReadString('\n')
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if readErr != nil {
				printlnFn()
				return
			}
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			printlnFn(helpText(a.isLoggedIn()))

		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "whoami":
			err = a.WhoAmI(ctx)

		case "scan":
			err = a.Scan(ctx)
		case "add":
			err = a.Add(ctx)
		case "l", "list":
			err = a.List(ctx, args)
		case "search":
			err = a.Search(ctx, args)
		case "show":
			err = a.Show(ctx, args)
		case "edit":
			err = a.Edit(ctx, args)
		case "delete", "rm":
			err = a.Delete(ctx, args)

		case "profile":
			err = a.Profile(ctx, args)
		case "picture":
			err = a.Picture(ctx, args)
		case "settings":
			err = a.Settings(ctx, args)

		case "sync":
			err = a.Sync(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
		if readErr != nil {
			return
		}
	}
}
