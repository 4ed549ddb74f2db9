package config

import (
	"os"
	"path/filepath"
	"testing"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "acctmenu.ini")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestLoad(t *testing.T) {
	p := writeConfig(t, `[accounts]
useradd_cmd = adduser --disabled-password --shell {shell} {user}
shell = /bin/zsh
sudo = true

[connection]
hostname = db1.example.com
username = admin
`)

	c, err := Load(p)

	require.NoError(t, err)
	assert.Equal(t, Config{
		AddCommand:    "adduser --disabled-password --shell {shell} {user}",
		DeleteCommand: "userdel -r {user}",
		Shell:         "/bin/zsh",
		Sudo:          true,
		Hostname:      "db1.example.com",
		Username:      "admin",
	}, c)
}

func TestLoadEmptyFileGivesDefaults(t *testing.T) {
	c, err := Load(writeConfig(t, ""))

	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.ini"))
	assert.Error(t, err)
}

func TestLoadBadSudo(t *testing.T) {
	_, err := Load(writeConfig(t, "[accounts]\nsudo = sometimes\n"))
	assert.ErrorContains(t, err, "accounts.sudo")
}

func TestValidateCollectsAllErrors(t *testing.T) {
	c := Config{
		AddCommand:    "useradd",
		DeleteCommand: "userdel -r",
		Shell:         "bash",
		Hostname:      " ",
	}

	err := c.Validate()

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 4)
}

func TestValidateDefault(t *testing.T) {
	assert.NoError(t, Default().Validate())
}
