package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/steelcutops/acctmenu/acctmenu/commandmanager"
	"github.com/steelcutops/acctmenu/acctmenu/config"
	"github.com/steelcutops/acctmenu/acctmenu/host"
	"github.com/steelcutops/acctmenu/acctmenu/menu"
	"github.com/steelcutops/acctmenu/logger"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

type flags struct {
	ConfigPath         string
	Debug              bool
	Hostname           string
	KeyPassPrompt      bool
	LogFileName        string
	PasswordPrompt     bool
	Sudo               bool
	SudoPasswordPrompt bool
	Username           string
}

type secrets struct {
	Password     string
	KeyPass      string
	SudoPassword string
}

func newRootCmd(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "acctmenu",
		Short: "Interactive menu for managing Linux user accounts",
		Long: `acctmenu lists, checks, creates and deletes Linux user accounts from an
interactive menu. All changes are made by the system utilities getent,
useradd and userdel; acctmenu only validates input and asks for confirmation.

Without flags it manages the local machine. Use --hostname to manage a
remote machine over SSH and --sudo when the session is not root.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, f)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.ConfigPath, "config", "", "Path to INI file with account command settings")
	fl.BoolVar(&f.Debug, "debug", false, "Enable debug log level")
	fl.StringVar(&f.Hostname, "hostname", "localhost", "Host whose accounts are managed")
	fl.BoolVar(&f.KeyPassPrompt, "keypass", false, "Prompt for the passphrase of SSH keys")
	fl.StringVar(&f.LogFileName, "log", "", "Log file name (logging is off when empty)")
	fl.BoolVar(&f.PasswordPrompt, "password", false, "Prompt for an SSH password")
	fl.BoolVar(&f.Sudo, "sudo", false, "Run useradd and userdel through sudo")
	fl.BoolVar(&f.SudoPasswordPrompt, "sudo-password", false, "Prompt for the sudo password (implies --sudo)")
	fl.StringVar(&f.Username, "username", "", "Username to use for SSH connection")

	return cmd
}

func main() {
	if err := newRootCmd(&flags{}).Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, f *flags) error {
	log, closeLog, err := configureLogger(f)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return err
	}

	s, err := readPasswords(f, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	h, err := host.NewHost(ctx, cfg.Hostname, buildHostOptions(cfg, s, log)...)
	if err != nil {
		return err
	}
	log.Info("Session started", "host", h.Hostname, "sudo", h.Sudo)

	session := menu.New(h.UserManager, cmd.InOrStdin(), cmd.OutOrStdout(),
		menu.WithLogger(log),
		menu.WithTitle(title(h.Hostname)),
	)
	return session.Run(ctx)
}

func configureLogger(f *flags) (logger.Logger, func(), error) {
	if f.LogFileName == "" {
		return logger.New(io.Discard, f.Debug), func() {}, nil
	}

	file, err := os.OpenFile(f.LogFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	l := logger.New(file, f.Debug)
	l.Debug("Debug mode enabled")
	return l, func() { file.Close() }, nil
}

// loadConfig reads the optional config file and lets explicitly set flags
// win over it.
func loadConfig(cmd *cobra.Command, f *flags) (config.Config, error) {
	cfg := config.Default()
	if f.ConfigPath != "" {
		var err error
		cfg, err = config.Load(f.ConfigPath)
		if err != nil {
			return config.Config{}, err
		}
	}

	changed := cmd.Flags().Changed
	if changed("hostname") {
		cfg.Hostname = f.Hostname
	}
	if changed("username") {
		cfg.Username = f.Username
	}
	if changed("sudo") {
		cfg.Sudo = f.Sudo
	}
	if f.SudoPasswordPrompt {
		cfg.Sudo = true
	}

	return cfg, cfg.Validate()
}

func readPasswords(f *flags, w io.Writer) (secrets, error) {
	var s secrets
	var err error

	if f.PasswordPrompt {
		if s.Password, err = promptSecret(w, "Enter the password: "); err != nil {
			return secrets{}, fmt.Errorf("failed to read password: %w", err)
		}
	}
	if f.KeyPassPrompt {
		if s.KeyPass, err = promptSecret(w, "Enter the key passphrase: "); err != nil {
			return secrets{}, fmt.Errorf("failed to read key passphrase: %w", err)
		}
	}
	if f.SudoPasswordPrompt {
		if s.SudoPassword, err = promptSecret(w, "Enter the sudo password: "); err != nil {
			return secrets{}, fmt.Errorf("failed to read sudo password: %w", err)
		}
	}

	return s, nil
}

func promptSecret(w io.Writer, prompt string) (string, error) {
	fmt.Fprint(w, prompt)
	b, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func buildHostOptions(cfg config.Config, s secrets, log logger.Logger) []host.HostOption {
	options := []host.HostOption{
		host.WithLogger(log),
		host.WithSudo(cfg.Sudo),
		host.WithAccountCommands(cfg.AddCommand, cfg.DeleteCommand, cfg.Shell),
		host.WithSSHClient(commandmanager.RealSSHClient{}),
	}
	if cfg.Username != "" {
		options = append(options, host.WithUser(cfg.Username))
	}
	if s.Password != "" {
		options = append(options, host.WithPassword(s.Password))
	}
	if s.KeyPass != "" {
		options = append(options, host.WithKeyPassphrase(s.KeyPass))
	}
	if s.SudoPassword != "" {
		options = append(options, host.WithSudoPassword(s.SudoPassword))
	}
	return options
}

func title(hostname string) string {
	const base = "Linux User & Permission Manager"
	if commandmanager.IsLocalHostname(hostname) {
		return base
	}
	return base + " @ " + hostname
}
