// Package sshgen derives SSH host-alias stanzas from the identity model.
package sshgen

import (
	"fmt"
	"strings"

	"github.com/byterings/gitid/internal/identity"
	"github.com/byterings/gitid/internal/platform"
)

// HostAlias returns the SSH host alias for a hostname under an identity
func HostAlias(host, label string) string {
	return fmt.Sprintf("%s-%s", host, label)
}

// Generate builds the managed SSH config fragment for the model. Each
// identity with an SSH key and at least one host gets one aliased Host
// stanza per host; the default identity additionally gets a plain stanza
// per host so unprefixed usage works without a URL rewrite. Identities
// missing a key or hosts are skipped and reported as warnings.
func Generate(m *identity.Model) (string, []string) {
	var b strings.Builder
	var warnings []string

	b.WriteString("# DO NOT EDIT THIS SECTION MANUALLY\n")
	b.WriteString("# This section is managed by gitid\n")
	b.WriteString("\n")

	for _, id := range m.Identities {
		if id.SSHKeyPath == "" || len(id.Hosts) == 0 {
			warnings = append(warnings, fmt.Sprintf("identity '%s' has no SSH key or hosts, skipped in SSH config", id.Label))
			continue
		}

		keyPath := platform.NormalizePathForSSHConfig(id.SSHKeyPath)
		isDefault := m.IsDefault(id.Label)

		for _, host := range id.Hosts {
			writeStanza(&b, HostAlias(host, id.Label), host, keyPath)
			if isDefault {
				writeStanza(&b, host, host, keyPath)
			}
		}
	}

	return b.String(), warnings
}

func writeStanza(b *strings.Builder, alias, host, keyPath string) {
	fmt.Fprintf(b, "Host %s\n", alias)
	fmt.Fprintf(b, "    HostName %s\n", host)
	b.WriteString("    User git\n")
	fmt.Fprintf(b, "    IdentityFile %s\n", keyPath)
	b.WriteString("    IdentitiesOnly yes\n")
	b.WriteString("\n")
}

// ScanShadowedHosts inspects the unmanaged portion of an existing SSH config
// for Host declarations naming a bare hostname that gitid also configures.
// Such a stanza can shadow the managed block's entries, so each match is
// reported as a warning. Only literal tokens are compared; glob patterns
// after the Host keyword are skipped.
func ScanShadowedHosts(unmanaged string, m *identity.Model) []string {
	var warnings []string

	for _, line := range strings.Split(unmanaged, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 || !strings.EqualFold(fields[0], "Host") {
			continue
		}
		for _, token := range fields[1:] {
			if strings.ContainsAny(token, "*?") {
				continue
			}
			if m.HasHost(token) {
				warnings = append(warnings, fmt.Sprintf("existing SSH config declares 'Host %s' which may shadow gitid entries", token))
			}
		}
	}

	return warnings
}
