package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/steelcutops/acctmenu/logger"
	"github.com/steelcutops/acctmenu/style"
)

// Directory is the account database the menu works against.
type Directory interface {
	List(ctx context.Context, w io.Writer) error
	Exists(ctx context.Context, username string) bool
	CurrentUser(ctx context.Context) (string, error)
	Create(ctx context.Context, username string) error
	Delete(ctx context.Context, username string) error
}

// Session is one interactive operator session.
type Session struct {
	dir   Directory
	in    *bufio.Reader
	out   io.Writer
	log   logger.Logger
	title string
}

type Option func(*Session)

// WithTitle replaces the menu heading.
func WithTitle(title string) Option {
	return func(s *Session) {
		s.title = title
	}
}

func WithLogger(l logger.Logger) Option {
	return func(s *Session) {
		s.log = l
	}
}

func New(dir Directory, in io.Reader, out io.Writer, options ...Option) *Session {
	s := &Session{
		dir:   dir,
		in:    bufio.NewReader(in),
		out:   out,
		log:   logger.Discard(),
		title: "Linux User & Permission Manager",
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Run shows the menu until the operator picks exit or input ends. Action
// failures never end the loop.
func (s *Session) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.showMenu()
		choice, err := s.ask("Select option: ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(s.out)
				fmt.Fprintln(s.out, "Goodbye")
				return nil
			}
			return err
		}

		var action string
		var outcome Outcome
		switch choice {
		case "1":
			action, outcome = "list", s.ListUsers(ctx)
		case "2":
			action, outcome = "check", s.CheckUser(ctx)
		case "3":
			action, outcome = "create", s.CreateUser(ctx)
		case "4":
			action, outcome = "delete", s.DeleteUser(ctx)
		case "5":
			fmt.Fprintln(s.out, "Goodbye")
			return nil
		default:
			fmt.Fprintln(s.out, "Invalid choice. Try again.")
			continue
		}

		s.log.Info("Action finished", "action", action, "status", outcome.Status, "message", outcome.Message)
		s.report(outcome)
	}
}

func (s *Session) showMenu() {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, style.Bold.Render("=== "+s.title+" ==="))
	fmt.Fprintln(s.out, "1. List all system users")
	fmt.Fprintln(s.out, "2. Check if a user exists")
	fmt.Fprintln(s.out, "3. Create a new user")
	fmt.Fprintln(s.out, "4. Delete a user")
	fmt.Fprintln(s.out, "5. Exit")
}

func (s *Session) report(o Outcome) {
	if o.Message == "" {
		return
	}
	switch o.Status {
	case Completed:
		fmt.Fprintln(s.out, style.SuccessPrefix, o.Message)
	case Cancelled:
		fmt.Fprintln(s.out, style.WarningPrefix, o.Message)
	case Failed:
		fmt.Fprintln(s.out, style.ErrorPrefix, o.Message)
	}
}
