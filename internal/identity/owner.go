package identity

import "github.com/byterings/gitid/internal/platform"

// Owner returns the identity whose configured paths contain the given
// filesystem path, or nil when no identity claims it. When paths overlap
// across identities, the first match in model order wins.
func (m *Model) Owner(path string) *Identity {
	for i := range m.Identities {
		id := &m.Identities[i]
		for _, p := range id.Paths {
			base, err := platform.ExpandTilde(p)
			if err != nil {
				continue
			}
			if platform.IsPathInside(path, base) {
				return id
			}
		}
	}
	return nil
}
