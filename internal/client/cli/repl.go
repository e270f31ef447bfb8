package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. The real App
// satisfies it; tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	DeleteAccount(ctx context.Context) error

	List(ctx context.Context) error
	Add(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Refresh(ctx context.Context) error

	Tap(ctx context.Context, args []string) error
	Speak(ctx context.Context) error
	Clear(ctx context.Context) error

	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	Dashboard(ctx context.Context) error
	Breathe(ctx context.Context, args []string) error
	Sound(ctx context.Context) error
}

const (
	helpCommon  = "Phrases: (l)ist, add <text>, delete <n>, tap <n>, speak, clear, refresh\nCalm: breathe [cycles], sound\nOther: dashboard, profile, exit"
	helpGuest   = "Account: register, login"
	helpAccount = "Account: edit-profile, logout, delete-account"
)

// runREPL reads commands line by line from reader and dispatches them to a
// until EOF, "exit" or "quit". Command errors are reported to the user and
// never end the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("sns (%s)> ", statusFn()))
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
			printlnFn(helpCommon)
			if a.isLoggedIn() {
				printlnFn(helpAccount)
			} else {
				printlnFn(helpGuest)
			}

		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "delete-account":
			cmdErr = a.DeleteAccount(ctx)

		case "l", "list":
			cmdErr = a.List(ctx)
		case "add":
			cmdErr = a.Add(ctx, args)
		case "delete":
			cmdErr = a.Delete(ctx, args)
		case "refresh":
			cmdErr = a.Refresh(ctx)

		case "tap":
			cmdErr = a.Tap(ctx, args)
		case "speak":
			cmdErr = a.Speak(ctx)
		case "clear":
			cmdErr = a.Clear(ctx)

		case "profile":
			cmdErr = a.Profile(ctx)
		case "edit-profile":
			cmdErr = a.EditProfile(ctx)
		case "dashboard":
			cmdErr = a.Dashboard(ctx)
		case "breathe":
			cmdErr = a.Breathe(ctx, args)
		case "sound":
			cmdErr = a.Sound(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn(userMessage(cmdErr))
		}
		if err != nil {
			return
		}
	}
}
