package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	RegisterStudent(ctx context.Context) error
	RegisterInstructor(ctx context.Context) error
	Me(ctx context.Context) error
	Session(ctx context.Context) error
	Logout(ctx context.Context) error
	Get(ctx context.Context, args []string) error
	Create(ctx context.Context, args []string) error
	Update(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Upload(ctx context.Context, args []string) error
	SaveUser(ctx context.Context, args []string) error
	Profile(ctx context.Context) error
	Cep(ctx context.Context, args []string) error
	Media(ctx context.Context, args []string) error
}

// usageError is returned by commands called with the wrong arguments.
type usageError string

func (e usageError) Error() string { return "usage: " + string(e) }

const (
	guestHelp  = "Available commands: login, register, register-student, register-instructor, me, cep, media, help, exit"
	signedHelp = "Available commands: me, session, logout, get, create, update, delete, upload, save-user, profile, cep, media, help, exit"
)

// runREPL starts a simple read-eval-print loop for the Fusion CLI.
//
// It reads a line from reader and writes to out, parses the first token as the command, and
// dispatches to methods on 'a' with the remaining tokens as arguments.
// Commands prompt for further input on the same reader. The loop exits on
// EOF or when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Always:
//	  - help                        show available commands
//	  - me                          show the current user
//	  - cep <code>                  look up a postal code
//	  - media <url>                 tell how an attachment is displayed
//	  - exit | quit                 leave the program
//
//	Not logged in:
//	  - login                       authenticate
//	  - register                    create an account
//	  - register-student            resident sign-up
//	  - register-instructor         instructor sign-up with invite code
//
//	Logged in:
//	  - session                     show what the session token says
//	  - logout                      forget the session
//	  - get <table> [k=v ...]       list records
//	  - create <table>              create a record from JSON
//	  - update <table> <id>         update a record from JSON
//	  - delete <table> <id>         delete a record
//	  - upload <path>               upload a file
//	  - save-user [id]              create or edit a user (admin)
//	  - profile                     edit your own profile (admin)
//
// Errors returned by command handlers are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	printLine := func(args ...any) { fmt.Fprintln(out, args...) }

	for ctx.Err() == nil {
		printLine(fmt.Sprintf("fusion (%s) > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printLine(signedHelp)
			} else {
				printLine(guestHelp)
			}

		case "login":
			cmdErr = a.Login(ctx)
		case "register":
			cmdErr = a.Register(ctx)
		case "register-student":
			cmdErr = a.RegisterStudent(ctx)
		case "register-instructor":
			cmdErr = a.RegisterInstructor(ctx)
		case "me":
			cmdErr = a.Me(ctx)
		case "session":
			cmdErr = a.Session(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "get":
			cmdErr = a.Get(ctx, args)
		case "create":
			cmdErr = a.Create(ctx, args)
		case "update":
			cmdErr = a.Update(ctx, args)
		case "delete":
			cmdErr = a.Delete(ctx, args)
		case "upload":
			cmdErr = a.Upload(ctx, args)
		case "save-user":
			cmdErr = a.SaveUser(ctx, args)
		case "profile":
			cmdErr = a.Profile(ctx)
		case "cep":
			cmdErr = a.Cep(ctx, args)
		case "media":
			cmdErr = a.Media(ctx, args)

		case "exit", "quit":
			printLine("Bye!")
			return

		default:
			printLine("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printLine("Error:", cmdErr)
		}
		if err != nil {
			return
		}
	}
}
