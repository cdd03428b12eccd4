package identity

import (
	"fmt"
	"strings"
)

// Marshal encodes the model in the identities file format. Parsing the
// output yields an equivalent model: same labels, field values, list
// contents and order, and the same resolved default.
func (m *Model) Marshal() []byte {
	var b strings.Builder

	b.WriteString("version: 1\n")
	def := m.Default
	if def == "" {
		if id := m.DefaultIdentity(); id != nil {
			def = id.Label
		}
	}
	fmt.Fprintf(&b, "default: %s\n", def)
	b.WriteString("\n")
	b.WriteString("identities:\n")

	for _, id := range m.Identities {
		fmt.Fprintf(&b, "  %s:\n", id.Label)
		fmt.Fprintf(&b, "    name: \"%s\"\n", id.Name)
		fmt.Fprintf(&b, "    email: \"%s\"\n", id.Email)
		fmt.Fprintf(&b, "    ssh_key: \"%s\"\n", id.SSHKeyPath)
		b.WriteString("    hosts:\n")
		for _, h := range id.Hosts {
			fmt.Fprintf(&b, "      - \"%s\"\n", h)
		}
		b.WriteString("    paths:\n")
		for _, p := range id.Paths {
			fmt.Fprintf(&b, "      - \"%s\"\n", p)
		}
	}

	return []byte(b.String())
}
