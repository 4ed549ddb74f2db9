package commandmanager

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/steelcutops/acctmenu/common"
	"github.com/steelcutops/acctmenu/logger"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

const defaultDialTimeout = 15 * time.Minute

type SSHDialer interface {
	Dial(network, addr string, config *ssh.ClientConfig, timeout time.Duration) (*ssh.Client, error)
}

// RealSSHClient dials with golang.org/x/crypto/ssh.
type RealSSHClient struct{}

func (RealSSHClient) Dial(network, addr string, config *ssh.ClientConfig, timeout time.Duration) (*ssh.Client, error) {
	cfg := *config
	cfg.Timeout = timeout
	return ssh.Dial(network, addr, &cfg)
}

type UnixCommandManager struct {
	Hostname   string
	SSHClient  SSHDialer
	KeyManager SSHKeyManager
	Log        logger.Logger
	common.Credentials
}

func (u *UnixCommandManager) RunLocal(ctx context.Context, config CommandConfig) (CommandResult, error) {
	start := time.Now()

	name, args := u.commandLine(config)
	cmd := exec.CommandContext(ctx, name, args...)
	if config.Sudo && u.SudoPassword != "" {
		cmd.Stdin = strings.NewReader(u.SudoPassword + "\n")
	}
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	u.log().Debug("Executing local command", "command", config.String(), "sudo", config.Sudo)
	err := cmd.Run()

	result := CommandResult{
		Command:   config.String(),
		STDOUT:    stdout.String(),
		STDERR:    stderr.String(),
		Duration:  time.Since(start),
		Timestamp: start,
	}

	if sudoErr := checkSudo(result); config.Sudo && sudoErr != nil {
		return result, sudoErr
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, &ExitError{Command: result.Command, ExitCode: result.ExitCode, Stderr: result.STDERR}
		}
		return result, fmt.Errorf("running %s: %w", config.Command, err)
	}

	return result, nil
}

func (u *UnixCommandManager) RunRemote(ctx context.Context, config CommandConfig) (CommandResult, error) {
	u.log().Debug("Executing remote command", "hostname", u.Hostname, "command", config.Command)

	if u.SSHClient == nil {
		return CommandResult{}, errors.New("SSHClient is not initialized")
	}

	sshConfig, err := u.getSSHConfig()
	if err != nil {
		return CommandResult{}, err
	}

	dialTimeout := defaultDialTimeout
	if deadline, ok := ctx.Deadline(); ok {
		dialTimeout = time.Until(deadline)
	}

	client, err := u.SSHClient.Dial("tcp", u.address(), sshConfig, dialTimeout)
	if err != nil {
		return CommandResult{}, fmt.Errorf("dialing %s: %w", u.Hostname, err)
	}
	defer client.Close()

	session, err := client.NewSession()
	if err != nil {
		return CommandResult{}, err
	}
	defer session.Close()

	name, args := u.commandLine(config)
	cmdStr := CommandConfig{Command: name, Args: args}.String()
	if config.Sudo && u.SudoPassword != "" {
		session.Stdin = strings.NewReader(u.SudoPassword + "\n")
	}

	var stdout, stderr strings.Builder
	session.Stdout = &stdout
	session.Stderr = &stderr

	start := time.Now()
	done := make(chan error, 1)
	go func() {
		done <- session.Run(cmdStr)
	}()

	select {
	case err = <-done:
	case <-ctx.Done():
		_ = session.Signal(ssh.SIGKILL)
		u.log().Error("Remote command cancelled", "hostname", u.Hostname, "command", cmdStr)
		return CommandResult{Command: cmdStr}, ctx.Err()
	}

	result := CommandResult{
		Command:   config.String(),
		STDOUT:    stdout.String(),
		STDERR:    stderr.String(),
		Duration:  time.Since(start),
		Timestamp: start,
	}

	if sudoErr := checkSudo(result); config.Sudo && sudoErr != nil {
		return result, sudoErr
	}

	if err != nil {
		var exitErr *ssh.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitStatus()
			return result, &ExitError{Command: result.Command, ExitCode: result.ExitCode, Stderr: result.STDERR}
		}
		return result, fmt.Errorf("running %s on %s: %w", config.Command, u.Hostname, err)
	}

	return result, nil
}

func (u *UnixCommandManager) Run(ctx context.Context, config CommandConfig) (CommandResult, error) {
	if u.IsLocal() {
		return u.RunLocal(ctx, config)
	}
	return u.RunRemote(ctx, config)
}

// IsLocal reports whether commands run on this machine without SSH.
func (u *UnixCommandManager) IsLocal() bool {
	return IsLocalHostname(u.Hostname)
}

func IsLocalHostname(hostname string) bool {
	return hostname == "" || hostname == "localhost" || hostname == "127.0.0.1"
}

// commandLine prefixes sudo when asked to. Without a password sudo runs
// non-interactively so it fails instead of waiting on a prompt.
func (u *UnixCommandManager) commandLine(config CommandConfig) (string, []string) {
	if !config.Sudo {
		return config.Command, config.Args
	}
	args := []string{"-n", config.Command}
	if u.SudoPassword != "" {
		args = []string{"-S", "-p", "", config.Command}
	}
	return "sudo", append(args, config.Args...)
}

func (u *UnixCommandManager) address() string {
	if _, _, err := net.SplitHostPort(u.Hostname); err == nil {
		return u.Hostname
	}
	return net.JoinHostPort(u.Hostname, "22")
}

func (u *UnixCommandManager) getSSHConfig() (*ssh.ClientConfig, error) {
	var authMethod ssh.AuthMethod

	if u.Password != "" {
		u.log().Debug("Using password authentication", "hostname", u.Hostname)
		authMethod = ssh.Password(u.Password)
	} else {
		u.log().Debug("Using public key authentication", "hostname", u.Hostname)
		keyManager := u.KeyManager
		if keyManager == nil {
			if u.KeyPassphrase != "" {
				keyManager = FileSSHKeyManager{}
			} else {
				keyManager = AgentSSHKeyManager{}
			}
		}

		keys, err := keyManager.ReadPrivateKeys(u.KeyPassphrase)
		if err != nil {
			return nil, err
		}

		authMethod = ssh.PublicKeysCallback(func() ([]ssh.Signer, error) {
			return keys, nil
		})
	}

	return &ssh.ClientConfig{
		User:            u.User,
		Auth:            []ssh.AuthMethod{authMethod},
		HostKeyCallback: u.hostKeyCallback(),
	}, nil
}

func (u *UnixCommandManager) hostKeyCallback() ssh.HostKeyCallback {
	path := filepath.Join(os.Getenv("HOME"), ".ssh", "known_hosts")
	cb, err := knownhosts.New(path)
	if err != nil {
		u.log().Warn("known_hosts unavailable, host key not verified", "path", path, "error", err)
		return ssh.InsecureIgnoreHostKey()
	}
	return cb
}

func (u *UnixCommandManager) log() logger.Logger {
	if u.Log == nil {
		return logger.Discard()
	}
	return u.Log
}

func checkSudo(result CommandResult) error {
	out := result.STDOUT + result.STDERR
	switch {
	case strings.Contains(out, "incorrect password"):
		return errors.New("sudo: incorrect password provided")
	case strings.Contains(out, "is not in the sudoers file"):
		return errors.New("sudo: user is not in the sudoers file")
	case strings.Contains(out, "a password is required"):
		return errors.New("sudo: a password is required, use --sudo-password")
	}
	return nil
}
