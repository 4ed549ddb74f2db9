package host

import (
	"github.com/steelcutops/acctmenu/acctmenu/commandmanager"
	"github.com/steelcutops/acctmenu/logger"
)

type HostOption func(*Host)

// WithUser returns a HostOption that sets the SSH user for a Host.
func WithUser(user string) HostOption {
	return func(host *Host) {
		host.User = user
	}
}

// WithPassword returns a HostOption that sets the SSH password for a Host.
func WithPassword(password string) HostOption {
	return func(host *Host) {
		host.Password = password
	}
}

// WithKeyPassphrase returns a HostOption that sets the key passphrase for a Host.
func WithKeyPassphrase(keyPassphrase string) HostOption {
	return func(host *Host) {
		host.KeyPassphrase = keyPassphrase
	}
}

// WithSudoPassword returns a HostOption that sets the sudo password for a Host.
func WithSudoPassword(password string) HostOption {
	return func(host *Host) {
		host.SudoPassword = password
	}
}

// WithOS skips OS detection.
func WithOS(os OSType) HostOption {
	return func(host *Host) {
		host.OSType = os
	}
}

func WithSSHClient(client commandmanager.SSHDialer) HostOption {
	return func(host *Host) {
		host.SSHClient = client
	}
}

// WithCommandManager replaces the default UnixCommandManager.
func WithCommandManager(manager commandmanager.CommandManager) HostOption {
	return func(host *Host) {
		host.CommandManager = manager
	}
}

func WithLogger(l logger.Logger) HostOption {
	return func(host *Host) {
		host.Log = l
	}
}

// WithSudo runs account changing commands through sudo.
func WithSudo(sudo bool) HostOption {
	return func(host *Host) {
		host.Sudo = sudo
	}
}

// WithAccountCommands overrides the useradd/userdel templates and the login
// shell given to new accounts. Empty values keep the defaults.
func WithAccountCommands(add, del, shell string) HostOption {
	return func(host *Host) {
		host.AddCommand = add
		host.DeleteCommand = del
		host.Shell = shell
	}
}
