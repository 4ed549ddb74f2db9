package common

// Credentials holds everything needed to reach a host and escalate on it.
type Credentials struct {
	User          string // SSH login user
	Password      string // SSH password, empty for key based auth
	KeyPassphrase string // passphrase for ~/.ssh/id_* keys
	SudoPassword  string // fed to sudo -S
}
