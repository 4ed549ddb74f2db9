package config

import (
	"errors"
	"fmt"
	"path"
	"strings"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/steelcutops/acctmenu/acctmenu/usermanager"
	"gopkg.in/ini.v1"
)

// Config is the optional file based configuration. Flags override it.
type Config struct {
	AddCommand    string
	DeleteCommand string
	Shell         string
	Sudo          bool
	Hostname      string
	Username      string
}

func Default() Config {
	return Config{
		AddCommand:    usermanager.DefaultAddCommand,
		DeleteCommand: usermanager.DefaultDeleteCommand,
		Shell:         usermanager.DefaultShell,
		Hostname:      "localhost",
	}
}

// Load reads an ini file with [accounts] and [connection] sections. Missing
// keys keep their defaults.
//
//	[accounts]
//	useradd_cmd = useradd -m -s {shell} {user}
//	userdel_cmd = userdel -r {user}
//	shell       = /bin/bash
//	sudo        = false
//
//	[connection]
//	hostname = localhost
//	username =
func Load(filePath string) (Config, error) {
	cfg, err := ini.Load(filePath)
	if err != nil {
		return Config{}, fmt.Errorf("loading config %s: %w", filePath, err)
	}

	d := Default()
	accounts := cfg.Section("accounts")
	connection := cfg.Section("connection")

	var sudo bool
	if accounts.HasKey("sudo") {
		sudo, err = accounts.Key("sudo").Bool()
		if err != nil {
			return Config{}, fmt.Errorf("accounts.sudo: %w", err)
		}
	}

	c := Config{
		AddCommand:    accounts.Key("useradd_cmd").MustString(d.AddCommand),
		DeleteCommand: accounts.Key("userdel_cmd").MustString(d.DeleteCommand),
		Shell:         accounts.Key("shell").MustString(d.Shell),
		Sudo:          sudo,
		Hostname:      connection.Key("hostname").MustString(d.Hostname),
		Username:      connection.Key("username").String(),
	}

	return c, c.Validate()
}

// Validate reports every problem at once.
func (c Config) Validate() error {
	var result *multierror.Error

	if !strings.Contains(c.AddCommand, "{user}") {
		result = multierror.Append(result, fmt.Errorf("useradd_cmd %q must contain {user}", c.AddCommand))
	}
	if !strings.Contains(c.DeleteCommand, "{user}") {
		result = multierror.Append(result, fmt.Errorf("userdel_cmd %q must contain {user}", c.DeleteCommand))
	}
	if !path.IsAbs(c.Shell) {
		result = multierror.Append(result, fmt.Errorf("shell %q must be an absolute path", c.Shell))
	}
	if strings.TrimSpace(c.Hostname) == "" {
		result = multierror.Append(result, errors.New("hostname must not be empty"))
	}

	return result.ErrorOrNil()
}
