// Package giturl maps Git remote URLs to and from identity host aliases.
// Exactly two URL shapes are recognized: SSH scp-like syntax
// (git@host:owner/repo.git) and HTTP(S) (https://host/owner/repo.git).
package giturl

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/byterings/gitid/internal/identity"
)

var (
	sshPattern  = regexp.MustCompile(`^git@([^:/]+):(.+)$`)
	httpPattern = regexp.MustCompile(`^https?://([^/]+)/(.+)$`)
)

// parse splits a remote URL into host and raw path
func parse(url string) (host, path string, ok bool) {
	if matches := sshPattern.FindStringSubmatch(url); matches != nil {
		return matches[1], matches[2], true
	}
	if matches := httpPattern.FindStringSubmatch(url); matches != nil {
		return matches[1], matches[2], true
	}
	return "", "", false
}

// ResolveHost determines the bare hostname behind a remote URL. A trailing
// "-<label>" alias suffix is stripped only when the remaining prefix is a
// hostname some identity declares; an unsuffixed host must itself be
// declared. Hosts unknown to the model yield ok=false and the caller must
// leave the remote untouched. Resolution uses only the model's host lists,
// never the SSH layer: the alias convention belongs to gitid.
func ResolveHost(m *identity.Model, url string) (string, bool) {
	host, _, ok := parse(url)
	if !ok {
		return "", false
	}

	if m.HasHost(host) {
		return host, true
	}

	for _, id := range m.Identities {
		suffix := "-" + id.Label
		if !strings.HasSuffix(host, suffix) {
			continue
		}
		bare := strings.TrimSuffix(host, suffix)
		if m.HasHost(bare) {
			return bare, true
		}
	}

	return "", false
}

// ExtractSlug returns the owner/repo path component of a remote URL with any
// .git suffix removed
func ExtractSlug(url string) (string, bool) {
	_, path, ok := parse(url)
	if !ok {
		return "", false
	}
	slug := strings.TrimSuffix(strings.TrimSuffix(path, "/"), ".git")
	if slug == "" {
		return "", false
	}
	return slug, true
}

// TargetURL builds the canonical aliased SSH URL for an identity. The alias
// form is used even for the default identity so that updated remotes stay
// unambiguous regardless of SSH-layer fallthrough behavior.
func TargetURL(label, host, slug string) string {
	return fmt.Sprintf("git@%s-%s:%s.git", host, label, slug)
}
