package identity

import (
	"bufio"
	"fmt"
	"strings"
)

// The identities file uses a fixed three-level indentation schema:
//
//	version: 1
//	default: work
//	identities:
//	  work:
//	    name: "Jane Doe"
//	    email: "jane@work.com"
//	    ssh_key: "~/.ssh/gitid_work"
//	    hosts:
//	      - "github.com"
//	    paths:
//	      - "~/company"
//
// Only this schema is supported. Indentation is a count of leading spaces;
// lines indented with tabs are skipped. Malformed nesting (a field with no
// current identity, a list item with no open list) is silently ignored so
// that a hand-edited file does not abort the whole load.

const (
	indentIdentity = 2
	indentField    = 4
	indentListItem = 6
)

type listKind int

const (
	listNone listKind = iota
	listHosts
	listPaths
)

// Parse decodes the identities file format into a Model.
// Returns non-fatal warnings alongside the model; the only fatal condition
// after a readable input is a file that defines zero identities.
func Parse(data []byte) (*Model, []string, error) {
	model := NewModel()
	var warnings []string

	declaredDefault := ""
	var current *Identity
	list := listNone

	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimLeft(line, " ")
		indent := len(line) - len(trimmed)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		// Tab-indented lines are not part of the schema
		if strings.HasPrefix(trimmed, "\t") {
			continue
		}
		trimmed = strings.TrimRight(trimmed, " \t")

		switch {
		case indent == 0:
			current = nil
			list = listNone
			key, value, ok := splitKey(trimmed)
			if !ok {
				continue
			}
			switch key {
			case "version", "identities":
				// version is acknowledged but unused; identities opens the block
			case "default":
				declaredDefault = unquote(value)
			}

		case indent == indentIdentity:
			label, value, ok := splitKey(trimmed)
			if !ok || value != "" {
				continue
			}
			list = listNone
			label = unquote(label)
			model.Identities = append(model.Identities, Identity{Label: label})
			current = &model.Identities[len(model.Identities)-1]

		case indent == indentField:
			if current == nil {
				continue
			}
			key, value, ok := splitKey(trimmed)
			if !ok {
				continue
			}
			list = listNone
			switch key {
			case "name":
				current.Name = unquote(value)
			case "email":
				current.Email = unquote(value)
			case "ssh_key":
				current.SSHKeyPath = unquote(value)
			case "hosts":
				list = listHosts
			case "paths":
				list = listPaths
			}

		case indent >= indentListItem:
			if current == nil || list == listNone {
				continue
			}
			item, ok := strings.CutPrefix(trimmed, "-")
			if !ok {
				continue
			}
			value := unquote(strings.TrimSpace(item))
			if value == "" {
				continue
			}
			switch list {
			case listHosts:
				current.Hosts = append(current.Hosts, value)
			case listPaths:
				current.Paths = append(current.Paths, value)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, &ConfigError{Reason: "unreadable input", Err: err}
	}

	if len(model.Identities) == 0 {
		return nil, nil, &ConfigError{Reason: "no identities defined"}
	}

	switch {
	case declaredDefault == "":
		model.Default = model.Identities[0].Label
		warnings = append(warnings, fmt.Sprintf("no default identity set, using '%s'", model.Default))
	case model.Find(declaredDefault) == nil:
		model.Default = model.Identities[0].Label
		warnings = append(warnings, fmt.Sprintf("default identity '%s' not found, using '%s'", declaredDefault, model.Default))
	default:
		model.Default = declaredDefault
	}

	return model, warnings, nil
}

// splitKey splits "key: value" at the first colon. The key must be non-empty
// and must not itself contain spaces.
func splitKey(s string) (key, value string, ok bool) {
	key, value, found := strings.Cut(s, ":")
	if !found || key == "" || strings.ContainsAny(key, " \t") {
		return "", "", false
	}
	return key, strings.TrimSpace(value), true
}

// unquote trims s and strips one matching pair of surrounding quotes
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
