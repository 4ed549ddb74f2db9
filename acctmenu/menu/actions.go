package menu

import (
	"context"
	"errors"
	"fmt"
	"strings"

	cm "github.com/steelcutops/acctmenu/acctmenu/commandmanager"
	"github.com/steelcutops/acctmenu/acctmenu/usermanager"
)

const cancelledByOperator = "Cancelled."

// ListUsers writes the account directory to the terminal as is.
func (s *Session) ListUsers(ctx context.Context) Outcome {
	fmt.Fprintln(s.out, "\n--- System Users ---")

	err := s.dir.List(ctx, s.out)
	if err == nil {
		return completed("")
	}

	s.log.Warn("Listing users failed", "error", err)
	// a utility that ran has already printed its own diagnostics
	var exitErr *cm.ExitError
	if errors.As(err, &exitErr) {
		return completed("")
	}
	return failed("Could not list users: " + diagnostic(err))
}

func (s *Session) CheckUser(ctx context.Context) Outcome {
	username, err := s.ask("Enter username to check: ")
	if err != nil {
		return cancelled(cancelledByOperator)
	}
	if username == "" {
		return cancelled("Please enter a username.")
	}

	if s.dir.Exists(ctx, username) {
		fmt.Fprintf(s.out, "User '%s' exists in the system.\n", username)
	} else {
		fmt.Fprintf(s.out, "User '%s' does NOT exist.\n", username)
	}
	return completed("")
}

func (s *Session) CreateUser(ctx context.Context) Outcome {
	username, err := s.ask("Enter new username: ")
	if err != nil {
		return cancelled(cancelledByOperator)
	}
	if username == "" {
		return cancelled("Please enter a username.")
	}

	if !usermanager.ValidUsername(username) {
		fmt.Fprintf(s.out, "Invalid username '%s'. A username:\n", username)
		for _, rule := range usermanager.UsernameRules {
			fmt.Fprintf(s.out, "  - %s\n", rule)
		}
		return cancelled("Invalid username.")
	}

	if s.dir.Exists(ctx, username) {
		return cancelled(fmt.Sprintf("User '%s' already exists.", username))
	}

	fmt.Fprintf(s.out, "About to create user '%s' with a home directory and the default shell.\n", username)
	ok, err := s.confirm("Proceed?")
	if err != nil || !ok {
		return cancelled(cancelledByOperator)
	}

	if err := s.dir.Create(ctx, username); err != nil {
		s.log.Error("Creating user failed", "user", username, "error", err)
		return failed(fmt.Sprintf("Failed to create user '%s': %s", username, diagnostic(err)))
	}
	return completed(fmt.Sprintf("User '%s' created successfully.", username))
}

func (s *Session) DeleteUser(ctx context.Context) Outcome {
	username, err := s.ask("Enter username to delete: ")
	if err != nil {
		return cancelled(cancelledByOperator)
	}
	if username == "" {
		return cancelled("Please enter a username.")
	}

	if !s.dir.Exists(ctx, username) {
		return cancelled(fmt.Sprintf("User '%s' does NOT exist.", username))
	}

	if username == "root" {
		s.log.Warn("Refused to delete root")
		return cancelled("Refusing to delete the root account.")
	}

	current, err := s.dir.CurrentUser(ctx)
	if err != nil {
		return failed("Could not determine the current user: " + diagnostic(err))
	}
	if username == current {
		s.log.Warn("Refused to delete the current user", "user", username)
		return cancelled(fmt.Sprintf("Refusing to delete '%s': it is the account you are logged in as.", username))
	}

	fmt.Fprintf(s.out, "WARNING: this removes user '%s', the home directory and the mail spool.\n", username)
	retyped, err := s.readLine(fmt.Sprintf("Type the username '%s' again to confirm: ", username))
	if err != nil || retyped != username {
		return cancelled("Username did not match. " + cancelledByOperator)
	}

	ok, err := s.confirm(fmt.Sprintf("Really delete user '%s'?", username))
	if err != nil || !ok {
		return cancelled(cancelledByOperator)
	}

	if err := s.dir.Delete(ctx, username); err != nil {
		s.log.Error("Deleting user failed", "user", username, "error", err)
		return failed(fmt.Sprintf("Failed to delete user '%s': %s", username, diagnostic(err)))
	}
	return completed(fmt.Sprintf("User '%s' deleted successfully.", username))
}

// diagnostic prefers what the utility printed over the Go error text.
func diagnostic(err error) string {
	var exitErr *cm.ExitError
	if errors.As(err, &exitErr) {
		if msg := strings.TrimSpace(exitErr.Stderr); msg != "" {
			return msg
		}
	}
	return err.Error()
}
