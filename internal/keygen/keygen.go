// Package keygen creates Ed25519 SSH key pairs, preferring the system
// ssh-keygen and falling back to an in-process generator.
package keygen

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/byterings/gitid/internal/platform"
	"golang.org/x/crypto/ssh"
)

// ExternalToolError indicates key generation failed for one key. It is
// fatal only for the identity it blocks; other identities still attempt
// generation.
type ExternalToolError struct {
	Tool string
	Err  error
}

func (e *ExternalToolError) Error() string {
	return fmt.Sprintf("%s: %v", e.Tool, e.Err)
}

func (e *ExternalToolError) Unwrap() error {
	return e.Err
}

// DefaultKeyPath returns the conventional key location for an identity label
func DefaultKeyPath(label string) (string, error) {
	sshDir, err := platform.GetSSHDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(sshDir, "gitid_"+label), nil
}

// Generate creates an Ed25519 key pair at path with the given comment.
// Returns created=false without error when the key already exists.
func Generate(path, comment string) (created bool, err error) {
	expanded, err := platform.ExpandTilde(path)
	if err != nil {
		return false, err
	}
	path = expanded

	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	if err := platform.MkdirSecure(filepath.Dir(path)); err != nil {
		return false, fmt.Errorf("failed to create key directory: %w", err)
	}

	if platform.HasCommand("ssh-keygen") {
		cmd := exec.Command("ssh-keygen", "-t", "ed25519", "-f", path, "-N", "", "-C", comment)
		if output, err := cmd.CombinedOutput(); err != nil {
			return false, &ExternalToolError{Tool: "ssh-keygen", Err: fmt.Errorf("%s: %w", string(output), err)}
		}
		return true, nil
	}

	if err := generateBuiltin(path, comment); err != nil {
		return false, &ExternalToolError{Tool: "builtin keygen", Err: err}
	}
	return true, nil
}

// generateBuiltin writes an OpenSSH-format Ed25519 key pair without ssh-keygen
func generateBuiltin(path, comment string) error {
	pubKey, privKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return fmt.Errorf("failed to generate key: %w", err)
	}

	pemBlock, err := ssh.MarshalPrivateKey(privKey, comment)
	if err != nil {
		return fmt.Errorf("failed to marshal private key: %w", err)
	}

	privateKeyFile, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create private key file: %w", err)
	}
	defer privateKeyFile.Close()

	if err := pem.Encode(privateKeyFile, pemBlock); err != nil {
		return fmt.Errorf("failed to write private key: %w", err)
	}

	sshPubKey, err := ssh.NewPublicKey(pubKey)
	if err != nil {
		return fmt.Errorf("failed to convert public key: %w", err)
	}
	publicKeyBytes := ssh.MarshalAuthorizedKey(sshPubKey)
	if err := os.WriteFile(path+".pub", publicKeyBytes, 0644); err != nil {
		return fmt.Errorf("failed to write public key: %w", err)
	}

	return nil
}

// ValidateKeyPath checks that an SSH key exists and is a regular file.
// Returns a warning string (empty when fine) for insecure permissions.
func ValidateKeyPath(path string) (warning string, err error) {
	expanded, err := platform.ExpandTilde(path)
	if err != nil {
		return "", err
	}
	path = expanded

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("key file does not exist: %s", path)
		}
		return "", fmt.Errorf("failed to access key file: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("path is a directory, not a file: %s", path)
	}

	ok, err := platform.CheckFilePermissions(path)
	if err != nil {
		return "", err
	}
	if !ok {
		return fmt.Sprintf("key file %s has insecure permissions %s, run: chmod 600 %s", path, info.Mode(), path), nil
	}
	return "", nil
}
