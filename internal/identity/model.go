package identity

import (
	"fmt"
	"regexp"
)

// Identity represents one Git persona mapped to hosts and directories
type Identity struct {
	Label      string // Short unique name for switching (e.g., work, personal)
	Name       string
	Email      string
	SSHKeyPath string
	Hosts      []string // Bare hostnames this identity is used for (e.g., github.com)
	Paths      []string // Directories under which this identity applies
}

// Model holds every configured identity plus the default label.
// Identity order is insertion order and determines output order everywhere.
type Model struct {
	Identities []Identity
	Default    string
}

var labelPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// ValidLabel reports whether s is usable as an identity label
func ValidLabel(s string) bool {
	return labelPattern.MatchString(s)
}

// NewModel creates an empty model
func NewModel() *Model {
	return &Model{}
}

// Add appends a new identity to the model
func (m *Model) Add(id Identity) error {
	if !ValidLabel(id.Label) {
		return fmt.Errorf("invalid label '%s': use lowercase letters, digits, '-' or '_'", id.Label)
	}
	if m.Find(id.Label) != nil {
		return fmt.Errorf("identity with label '%s' already exists", id.Label)
	}
	m.Identities = append(m.Identities, id)
	return nil
}

// Remove deletes the identity with the given label. If it was the default,
// the default falls back to the first remaining identity.
func (m *Model) Remove(label string) bool {
	for i, id := range m.Identities {
		if id.Label == label {
			m.Identities = append(m.Identities[:i], m.Identities[i+1:]...)
			if m.Default == label {
				m.Default = ""
				if len(m.Identities) > 0 {
					m.Default = m.Identities[0].Label
				}
			}
			return true
		}
	}
	return false
}

// Find returns the identity with the given label, or nil
func (m *Model) Find(label string) *Identity {
	for i := range m.Identities {
		if m.Identities[i].Label == label {
			return &m.Identities[i]
		}
	}
	return nil
}

// DefaultIdentity resolves the default identity. An unset or unknown default
// label falls back to the first identity in insertion order.
func (m *Model) DefaultIdentity() *Identity {
	if m.Default != "" {
		if id := m.Find(m.Default); id != nil {
			return id
		}
	}
	if len(m.Identities) > 0 {
		return &m.Identities[0]
	}
	return nil
}

// IsDefault reports whether the given label resolves as the default identity
func (m *Model) IsDefault(label string) bool {
	def := m.DefaultIdentity()
	return def != nil && def.Label == label
}

// HasHost reports whether any identity lists the given bare hostname
func (m *Model) HasHost(host string) bool {
	for _, id := range m.Identities {
		for _, h := range id.Hosts {
			if h == host {
				return true
			}
		}
	}
	return false
}

// HasHost reports whether this identity lists the given bare hostname
func (id *Identity) HasHost(host string) bool {
	for _, h := range id.Hosts {
		if h == host {
			return true
		}
	}
	return false
}
