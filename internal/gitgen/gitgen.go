// Package gitgen derives Git configuration fragments from the identity model:
// one fragment file per identity, plus the aggregate fragment merged into the
// managed block of the global gitconfig.
package gitgen

import (
	"fmt"
	"strings"

	"github.com/byterings/gitid/internal/identity"
	"github.com/byterings/gitid/internal/sshgen"
)

// IdentityFragment builds the per-identity gitconfig fragment: a user stanza
// with whatever of name/email is set, and for non-default identities one URL
// rewrite stanza per host so that plain remote URLs route through the host
// alias. The default identity needs no rewrite; it is reached through the
// unaliased host. Returns "" when the fragment would be empty.
func IdentityFragment(m *identity.Model, id *identity.Identity) string {
	var b strings.Builder

	if id.Name != "" || id.Email != "" {
		b.WriteString("[user]\n")
		if id.Name != "" {
			fmt.Fprintf(&b, "    name = %s\n", id.Name)
		}
		if id.Email != "" {
			fmt.Fprintf(&b, "    email = %s\n", id.Email)
		}
	}

	if !m.IsDefault(id.Label) {
		for _, host := range id.Hosts {
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "[url \"git@%s:\"]\n", sshgen.HostAlias(host, id.Label))
			fmt.Fprintf(&b, "    insteadOf = git@%s:\n", host)
			fmt.Fprintf(&b, "    insteadOf = https://%s/\n", host)
		}
	}

	return b.String()
}

// AggregateFragment builds the managed block for the global gitconfig: the
// default identity's user stanza followed by one conditional include per
// (identity, path) pair. Include stanzas are driven purely by configured
// paths, independent of whether the identity's fragment has content.
// fragmentPath maps an identity label to its fragment file path.
func AggregateFragment(m *identity.Model, fragmentPath func(label string) string) string {
	var b strings.Builder

	if def := m.DefaultIdentity(); def != nil && (def.Name != "" || def.Email != "") {
		b.WriteString("[user]\n")
		if def.Name != "" {
			fmt.Fprintf(&b, "    name = %s\n", def.Name)
		}
		if def.Email != "" {
			fmt.Fprintf(&b, "    email = %s\n", def.Email)
		}
	}

	for _, id := range m.Identities {
		for _, path := range id.Paths {
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "[includeIf \"gitdir:%s\"]\n", gitdirPattern(path))
			fmt.Fprintf(&b, "    path = %s\n", fragmentPath(id.Label))
		}
	}

	return b.String()
}

// gitdirPattern normalizes a configured path for an includeIf condition.
// Git expands ~/ in gitdir patterns itself, so the shorthand is kept as-is;
// a trailing slash makes the pattern match the whole subtree.
func gitdirPattern(path string) string {
	p := strings.TrimRight(path, "/")
	if p == "" {
		p = "/"
	}
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}
