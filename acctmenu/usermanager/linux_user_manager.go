package usermanager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	cm "github.com/steelcutops/acctmenu/acctmenu/commandmanager"
	"github.com/steelcutops/acctmenu/logger"
)

const (
	DefaultAddCommand    = "useradd -m -s {shell} {user}"
	DefaultDeleteCommand = "userdel -r {user}"
	DefaultShell         = "/bin/bash"
)

var ErrNotFound = errors.New("user not found")

type LinuxUserManager struct {
	CommandManager cm.CommandManager
	AddCommand     string // template, {user} and {shell} are substituted
	DeleteCommand  string // template, {user} is substituted
	Shell          string
	Sudo           bool // run useradd/userdel through sudo
	Log            logger.Logger
}

func (l *LinuxUserManager) GetUser(ctx context.Context, username string) (User, error) {
	if username == "" {
		return User{}, ErrNotFound
	}

	output, err := l.CommandManager.Run(ctx, cm.CommandConfig{
		Command: "getent",
		Args:    []string{"passwd", username},
	})
	if err != nil {
		var exitErr *cm.ExitError
		// getent exits 2 when the key is not in the database
		if errors.As(err, &exitErr) && exitErr.ExitCode == 2 {
			return User{}, ErrNotFound
		}
		return User{}, err
	}

	user, ok := parsePasswdLine(strings.TrimRight(output.STDOUT, "\n"))
	if !ok {
		return User{}, errors.New("unexpected format")
	}
	// getent resolves numeric keys as uids, only an exact name counts
	if user.Username != username {
		return User{}, ErrNotFound
	}

	return user, nil
}

// Exists treats every lookup failure as absence.
func (l *LinuxUserManager) Exists(ctx context.Context, username string) bool {
	_, err := l.GetUser(ctx, username)
	if err != nil && !errors.Is(err, ErrNotFound) {
		l.log().Debug("User lookup failed", "user", username, "error", err)
	}
	return err == nil
}

func (l *LinuxUserManager) CurrentUser(ctx context.Context) (string, error) {
	output, err := l.CommandManager.Run(ctx, cm.CommandConfig{Command: "whoami"})
	if err != nil {
		return "", fmt.Errorf("could not get current user: %w", err)
	}
	name := strings.TrimSpace(output.STDOUT)
	if name == "" {
		return "", errors.New("could not get current user: empty whoami output")
	}
	return name, nil
}

func (l *LinuxUserManager) Create(ctx context.Context, username string) error {
	config, err := expand(l.addCommand(), username, l.shell())
	if err != nil {
		return err
	}
	config.Sudo = l.Sudo

	l.log().Info("Creating user", "user", username, "command", config.String())
	_, err = l.CommandManager.Run(ctx, config)
	return err
}

func (l *LinuxUserManager) Delete(ctx context.Context, username string) error {
	config, err := expand(l.deleteCommand(), username, l.shell())
	if err != nil {
		return err
	}
	config.Sudo = l.Sudo

	l.log().Info("Deleting user", "user", username, "command", config.String())
	_, err = l.CommandManager.Run(ctx, config)
	return err
}

// List copies the getent output through untouched, stderr included.
func (l *LinuxUserManager) List(ctx context.Context, w io.Writer) error {
	output, err := l.CommandManager.Run(ctx, cm.CommandConfig{
		Command: "getent",
		Args:    []string{"passwd"},
	})
	if _, werr := io.WriteString(w, output.STDOUT); werr != nil {
		return werr
	}
	if _, werr := io.WriteString(w, output.STDERR); werr != nil {
		return werr
	}
	return err
}

func (l *LinuxUserManager) ListUsers(ctx context.Context) ([]User, error) {
	output, err := l.CommandManager.Run(ctx, cm.CommandConfig{
		Command: "getent",
		Args:    []string{"passwd"},
	})
	if err != nil {
		return nil, err
	}

	lines := strings.Split(output.STDOUT, "\n")
	users := []User{}

	for _, line := range lines {
		user, ok := parsePasswdLine(line)
		if !ok {
			continue
		}
		users = append(users, user)
	}
	return users, nil
}

func parsePasswdLine(line string) (User, bool) {
	parts := strings.SplitN(line, ":", 7)
	if len(parts) < 7 {
		return User{}, false
	}

	uid, _ := strconv.Atoi(parts[2])
	gid, _ := strconv.Atoi(parts[3])

	return User{
		Username: parts[0],
		UID:      uid,
		GID:      gid,
		Comment:  parts[4],
		HomeDir:  parts[5],
		Shell:    parts[6],
	}, true
}

// expand splits the template into fields before substituting, so a value
// can never add arguments of its own.
func expand(template, username, shell string) (cm.CommandConfig, error) {
	fields := strings.Fields(template)
	if len(fields) == 0 {
		return cm.CommandConfig{}, errors.New("empty command template")
	}
	if !strings.Contains(template, "{user}") {
		return cm.CommandConfig{}, fmt.Errorf("command template %q has no {user} placeholder", template)
	}

	r := strings.NewReplacer("{user}", username, "{shell}", shell)
	args := make([]string, 0, len(fields)-1)
	for _, f := range fields[1:] {
		args = append(args, r.Replace(f))
	}
	return cm.CommandConfig{Command: fields[0], Args: args}, nil
}

func (l *LinuxUserManager) addCommand() string {
	if l.AddCommand == "" {
		return DefaultAddCommand
	}
	return l.AddCommand
}

func (l *LinuxUserManager) deleteCommand() string {
	if l.DeleteCommand == "" {
		return DefaultDeleteCommand
	}
	return l.DeleteCommand
}

func (l *LinuxUserManager) shell() string {
	if l.Shell == "" {
		return DefaultShell
	}
	return l.Shell
}

func (l *LinuxUserManager) log() logger.Logger {
	if l.Log == nil {
		return logger.Discard()
	}
	return l.Log
}
