package lists

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"
)

// Predefined error variables for consistent error handling.
var (
	ErrSSHKeyRequired = errors.New("SSH authentication requires a private key")
	ErrUnknownAuth    = errors.New("unknown authentication method")
)

// AuthMethod names how a Git list repository is accessed.
type AuthMethod string

// Supported authentication methods.
const (
	AuthMethodNone  AuthMethod = "none"
	AuthMethodToken AuthMethod = "token"
	AuthMethodBasic AuthMethod = "basic"
	AuthMethodSSH   AuthMethod = "ssh"
)

// GitAuth holds credentials for a Git list repository.
type GitAuth struct {
	Method   AuthMethod
	Token    string
	Username string
	Password string
	SSHKey   []byte
}

// GitAuthFromFlags picks the authentication method from whichever credentials are set.
//
// A token wins over username/password, which win over an SSH key file.
func GitAuthFromFlags(token, username, password, sshKeyPath string) (GitAuth, error) {
	switch {
	case token != "":
		return GitAuth{Method: AuthMethodToken, Token: token}, nil
	case username != "" && password != "":
		return GitAuth{Method: AuthMethodBasic, Username: username, Password: password}, nil
	case sshKeyPath != "":
		key, err := os.ReadFile(sshKeyPath)
		if err != nil {
			return GitAuth{}, fmt.Errorf("failed to read SSH key file %s: %w", sshKeyPath, err)
		}

		return GitAuth{Method: AuthMethodSSH, SSHKey: key}, nil
	default:
		return GitAuth{Method: AuthMethodNone}, nil
	}
}

// transportAuth converts the credentials into a go-git authentication method.
// It returns nil for anonymous access.
func (a GitAuth) transportAuth() (transport.AuthMethod, error) {
	switch a.Method {
	case "", AuthMethodNone:
		return nil, nil //nolint:nilnil // anonymous access
	case AuthMethodToken:
		return &http.BasicAuth{Username: "token", Password: a.Token}, nil
	case AuthMethodBasic:
		return &http.BasicAuth{Username: a.Username, Password: a.Password}, nil
	case AuthMethodSSH:
		if len(a.SSHKey) == 0 {
			return nil, ErrSSHKeyRequired
		}

		keys, err := ssh.NewPublicKeys("git", a.SSHKey, "")
		if err != nil {
			return nil, fmt.Errorf("failed to create SSH public keys: %w", err)
		}

		return keys, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownAuth, a.Method)
	}
}
