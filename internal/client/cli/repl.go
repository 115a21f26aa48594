package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/shiftjournal/internal/client/client"
	"github.com/dmitrijs2005/shiftjournal/internal/common"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Forget(ctx context.Context) error

	Now(ctx context.Context) error
	Today(ctx context.Context) error
	SelectDate(ctx context.Context, arg string) error
	SelectShift(ctx context.Context, arg string) error

	List(ctx context.Context) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error

	Engineers(ctx context.Context) error
	Assign(ctx context.Context, name string) error
	Unassign(ctx context.Context, name string) error
	Directory(ctx context.Context, args []string) error

	Filter(ctx context.Context) error
	Export(ctx context.Context, args []string) error
	Archives(ctx context.Context) error
	Mail(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, forget, exit"
	helpLoggedIn  = `Available commands:
  now | today | date <yyyy-mm-dd> | shift <A|B>
  list | add | edit <id> <time|content|note> | delete <id>
  engineers | assign <name> | unassign <name>
  directory | directory add | directory remove
  filter | export [path] [--archive] | archives | mail
  logout | forget | exit`
)

// runREPL starts the read–eval–print loop.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on a. Errors returned by handlers are printed in a
// user-facing form and the loop continues. The loop exits on EOF or when the
// user types "exit" or "quit".
//
// Journal commands require a login; before that only register, login,
// forget and exit are accepted.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		fmt.Printf("journal %s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			if err != nil {
				return
			}
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}
		if herr := dispatch(ctx, a, cmd, args); herr != nil {
			printlnFn("Error:", describe(herr))
		}
		if err != nil {
			return
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn(helpLoggedIn)
		} else {
			printlnFn(helpLoggedOut)
		}
		return nil
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	case "forget":
		return a.Forget(ctx)
	}

	if !a.isLoggedIn() {
		if isJournalCommand(cmd) {
			return client.ErrNotLoggedIn
		}
		printlnFn("Unknown command:", cmd)
		return nil
	}

	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "now":
		return a.Now(ctx)
	case "today":
		return a.Today(ctx)
	case "date":
		if len(args) != 1 {
			printlnFn("Usage: date <yyyy-mm-dd>")
			return nil
		}
		return a.SelectDate(ctx, args[0])
	case "shift":
		if len(args) != 1 {
			printlnFn("Usage: shift <A|B>")
			return nil
		}
		return a.SelectShift(ctx, args[0])
	case "l", "list":
		return a.List(ctx)
	case "add":
		return a.Add(ctx)
	case "edit":
		return a.Edit(ctx, args)
	case "delete":
		return a.Delete(ctx, args)
	case "engineers":
		return a.Engineers(ctx)
	case "assign":
		if len(args) == 0 {
			printlnFn("Usage: assign <name>")
			return nil
		}
		return a.Assign(ctx, strings.Join(args, " "))
	case "unassign":
		if len(args) == 0 {
			printlnFn("Usage: unassign <name>")
			return nil
		}
		return a.Unassign(ctx, strings.Join(args, " "))
	case "directory":
		return a.Directory(ctx, args)
	case "filter":
		return a.Filter(ctx)
	case "export":
		return a.Export(ctx, args)
	case "archives":
		return a.Archives(ctx)
	case "mail":
		return a.Mail(ctx)
	default:
		printlnFn("Unknown command:", cmd)
		return nil
	}
}

func isJournalCommand(cmd string) bool {
	switch cmd {
	case "logout", "now", "today", "date", "shift", "l", "list", "add", "edit", "delete",
		"engineers", "assign", "unassign", "directory", "filter", "export", "archives", "mail":
		return true
	}
	return false
}

// describe turns transport and domain errors into messages for the prompt.
func describe(err error) string {
	switch {
	case errors.Is(err, common.ErrNotActiveShift):
		return "only the active shift can be changed"
	case errors.Is(err, client.ErrNotLoggedIn):
		return "please log in first"
	case errors.Is(err, client.ErrUnauthorized), errors.Is(err, common.ErrorUnauthorized):
		return "session expired or credentials rejected, please log in again"
	case errors.Is(err, common.ErrConnection), errors.Is(err, client.ErrUnavailable):
		return "server is unavailable"
	case errors.Is(err, common.ErrorNotFound):
		return "not found"
	case errors.Is(err, common.ErrorAlreadyExists):
		return "already exists"
	}
	return err.Error()
}
