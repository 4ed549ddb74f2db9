package host

import (
	"context"
	"errors"
	"fmt"
	"os/user"

	"github.com/steelcutops/acctmenu/acctmenu/commandmanager"
	"github.com/steelcutops/acctmenu/acctmenu/usermanager"
	"github.com/steelcutops/acctmenu/logger"
)

func NewHost(ctx context.Context, hostname string, options ...HostOption) (*Host, error) {
	if hostname == "" {
		return nil, errors.New("hostname must not be empty")
	}

	h := &Host{Hostname: hostname}
	for _, option := range options {
		option(h)
	}
	if h.Log == nil {
		h.Log = logger.Discard()
	}
	h.Log = h.Log.With("host", hostname)

	if err := setDefaultUserIfEmpty(h); err != nil {
		return nil, err
	}

	// The command manager is needed before the OS can be determined
	if h.CommandManager == nil {
		h.CommandManager = &commandmanager.UnixCommandManager{
			Hostname:    hostname,
			SSHClient:   h.SSHClient,
			Log:         h.Log,
			Credentials: h.Credentials,
		}
	}

	if h.OSType == "" {
		osType, err := h.DetermineOS(ctx)
		if err != nil {
			return nil, err
		}
		h.OSType = osType
	}

	switch h.OSType {
	case Linux:
		configureLinuxHost(h)
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", h.OSType)
	}

	h.Log.Debug("Host configured", "os", h.OSType, "sudo", h.Sudo)
	return h, nil
}

func configureLinuxHost(h *Host) {
	h.UserManager = &usermanager.LinuxUserManager{
		CommandManager: h.CommandManager,
		AddCommand:     h.AddCommand,
		DeleteCommand:  h.DeleteCommand,
		Shell:          h.Shell,
		Sudo:           h.Sudo,
		Log:            h.Log,
	}
}

// setDefaultUserIfEmpty logs in to remote hosts as the local user unless told
// otherwise, like ssh does.
func setDefaultUserIfEmpty(h *Host) error {
	if h.User != "" || commandmanager.IsLocalHostname(h.Hostname) {
		return nil
	}
	currentUser, err := user.Current()
	if err != nil {
		return fmt.Errorf("could not get current user: %w", err)
	}
	h.User = currentUser.Username
	return nil
}
