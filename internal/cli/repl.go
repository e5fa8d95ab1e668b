package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it
// with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a
// lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Health(ctx context.Context) error
	ListPets(ctx context.Context, args []string) error
	ShowPet(ctx context.Context, args []string) error
	AddPet(ctx context.Context) error
	EditPet(ctx context.Context, args []string) error
	DeletePet(ctx context.Context, args []string) error
	PetPhoto(ctx context.Context, args []string) error
	ListTutors(ctx context.Context, args []string) error
	ShowTutor(ctx context.Context, args []string) error
	AddTutor(ctx context.Context) error
	EditTutor(ctx context.Context, args []string) error
	DeleteTutor(ctx context.Context, args []string) error
	TutorPhoto(ctx context.Context, args []string) error
	Link(ctx context.Context, args []string) error
	Unlink(ctx context.Context, args []string) error
	Available(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: login, health, exit"
	helpLoggedIn  = "Available commands: pets [page] [nome], pet <id>, addpet, editpet <id>, " +
		"delpet <id>, petphoto <id> <file>, tutors [page] [nome], tutor <id>, addtutor, " +
		"edittutor <id>, deltutor <id>, tutorphoto <id> <file>, link <tutorId> <petId>, " +
		"unlink <tutorId> <petId>, available, health, logout, exit"
)

// runREPL starts a read–eval–print loop over the pet-manager facades.
//
// It reads a line from the scanner, parses the first token as the command,
// and dispatches to methods on 'a'. Unknown commands are reported back to
// the user. The loop exits on scanner EOF or when the user types "exit" or
// "quit".
//
// Any errors returned by command handlers are ignored here; handlers print
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner, w io.Writer) {
	for {
		fmt.Fprintf(w, "pet %s> ", statusFn())
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "health":
			_ = a.Health(ctx)

		case "pets":
			_ = a.ListPets(ctx, args)

		case "pet":
			_ = a.ShowPet(ctx, args)

		case "addpet":
			_ = a.AddPet(ctx)

		case "editpet":
			_ = a.EditPet(ctx, args)

		case "delpet":
			_ = a.DeletePet(ctx, args)

		case "petphoto":
			_ = a.PetPhoto(ctx, args)

		case "tutors":
			_ = a.ListTutors(ctx, args)

		case "tutor":
			_ = a.ShowTutor(ctx, args)

		case "addtutor":
			_ = a.AddTutor(ctx)

		case "edittutor":
			_ = a.EditTutor(ctx, args)

		case "deltutor":
			_ = a.DeleteTutor(ctx, args)

		case "tutorphoto":
			_ = a.TutorPhoto(ctx, args)

		case "link":
			_ = a.Link(ctx, args)

		case "unlink":
			_ = a.Unlink(ctx, args)

		case "available":
			_ = a.Available(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
