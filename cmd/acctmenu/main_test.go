package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/steelcutops/acctmenu/acctmenu/config"
	"github.com/steelcutops/acctmenu/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "acctmenu.ini")
	content := `[accounts]
userdel_cmd = deluser --remove-home {user}

[connection]
hostname = db1.example.com
username = admin`
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))

	f := &flags{}
	cmd := newRootCmd(f)
	require.NoError(t, cmd.ParseFlags([]string{"--config", p, "--username", "ops"}))

	cfg, err := loadConfig(cmd, f)

	require.NoError(t, err)
	assert.Equal(t, "db1.example.com", cfg.Hostname)
	assert.Equal(t, "ops", cfg.Username, "explicit flag wins")
	assert.Equal(t, "deluser --remove-home {user}", cfg.DeleteCommand)
	assert.False(t, cfg.Sudo)
}

func TestLoadConfigDefaults(t *testing.T) {
	f := &flags{}
	cmd := newRootCmd(f)
	require.NoError(t, cmd.ParseFlags(nil))

	cfg, err := loadConfig(cmd, f)

	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadConfigSudoPasswordImpliesSudo(t *testing.T) {
	f := &flags{}
	cmd := newRootCmd(f)
	require.NoError(t, cmd.ParseFlags([]string{"--sudo-password"}))

	cfg, err := loadConfig(cmd, f)

	require.NoError(t, err)
	assert.True(t, cfg.Sudo)
}

func TestLoadConfigRejectsEmptyHostname(t *testing.T) {
	f := &flags{}
	cmd := newRootCmd(f)
	require.NoError(t, cmd.ParseFlags([]string{"--hostname", ""}))

	_, err := loadConfig(cmd, f)

	assert.ErrorContains(t, err, "hostname must not be empty")
}

func TestReadPasswords(t *testing.T) {
	old := readPassword
	t.Cleanup(func() { readPassword = old })
	answers := [][]byte{[]byte("ssh-pw"), []byte("sudo-pw")}
	readPassword = func(int) ([]byte, error) {
		a := answers[0]
		answers = answers[1:]
		return a, nil
	}

	var out bytes.Buffer
	s, err := readPasswords(&flags{PasswordPrompt: true, SudoPasswordPrompt: true}, &out)

	require.NoError(t, err)
	assert.Equal(t, secrets{Password: "ssh-pw", SudoPassword: "sudo-pw"}, s)
	assert.Contains(t, out.String(), "Enter the password: ")
	assert.Contains(t, out.String(), "Enter the sudo password: ")
	assert.NotContains(t, out.String(), "passphrase")
}

func TestReadPasswordsError(t *testing.T) {
	old := readPassword
	t.Cleanup(func() { readPassword = old })
	readPassword = func(int) ([]byte, error) {
		return nil, errors.New("not a terminal")
	}

	_, err := readPasswords(&flags{KeyPassPrompt: true}, &bytes.Buffer{})

	assert.EqualError(t, err, "failed to read key passphrase: not a terminal")
}

func TestBuildHostOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Username = "admin"

	options := buildHostOptions(cfg, secrets{Password: "pw"}, logger.Discard())

	// logger, sudo, account commands, ssh client, user, password
	assert.Len(t, options, 6)
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Linux User & Permission Manager", title("localhost"))
	assert.Equal(t, "Linux User & Permission Manager @ db1", title("db1"))
}

func TestConfigureLoggerFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "acctmenu.log")

	l, closeLog, err := configureLogger(&flags{LogFileName: p})
	require.NoError(t, err)
	l.Info("hello", "user", "bob")
	closeLog()

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(b), "user=bob")
}

func TestRootCmdRejectsArgs(t *testing.T) {
	cmd := newRootCmd(&flags{})
	cmd.SetArgs([]string{"extra"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	assert.Error(t, cmd.Execute())
}
