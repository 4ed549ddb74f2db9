package host

import (
	"context"
	"fmt"
	"strings"

	"github.com/steelcutops/acctmenu/acctmenu/commandmanager"
	"github.com/steelcutops/acctmenu/acctmenu/usermanager"
	"github.com/steelcutops/acctmenu/common"
	"github.com/steelcutops/acctmenu/logger"
)

type OSType string

const (
	Linux  OSType = "Linux"
	Darwin OSType = "Darwin"
)

// Host is the machine whose accounts are managed.
type Host struct {
	Hostname string
	OSType   OSType
	common.Credentials

	SSHClient commandmanager.SSHDialer
	Log       logger.Logger

	// account command settings handed to the user manager
	Sudo          bool
	AddCommand    string
	DeleteCommand string
	Shell         string

	CommandManager commandmanager.CommandManager
	UserManager    usermanager.UserManager
}

// DetermineOS asks the target kernel for its name.
func (h *Host) DetermineOS(ctx context.Context) (OSType, error) {
	result, err := h.CommandManager.Run(ctx, commandmanager.CommandConfig{
		Command: "uname",
		Args:    []string{"-s"},
	})
	if err != nil {
		return "", fmt.Errorf("determining OS of %s: %w", h.Hostname, err)
	}
	return OSType(strings.TrimSpace(result.STDOUT)), nil
}
