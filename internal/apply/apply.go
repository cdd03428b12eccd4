// Package apply runs the configuration compilation pipeline: identity model
// in, SSH and Git configuration out. Each target file is handled
// independently so one failed write does not block the others.
package apply

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/byterings/gitid/internal/gitgen"
	"github.com/byterings/gitid/internal/identity"
	"github.com/byterings/gitid/internal/logging"
	"github.com/byterings/gitid/internal/managed"
	"github.com/byterings/gitid/internal/platform"
	"github.com/byterings/gitid/internal/sshgen"
)

// Options configures one pipeline run
type Options struct {
	Model        *identity.Model
	SSHConfig    string                    // managed SSH config target
	GitConfig    string                    // managed gitconfig target
	FragmentPath func(label string) string // label -> fragment file path
	DryRun       bool
	Out          io.Writer // dry-run output target
}

// Report collects what one run produced
type Report struct {
	Written  []string // files written (or that would be written, in dry-run)
	Warnings []string
	Errors   []error // per-file failures, the rest of the run continued
}

// Run executes the pipeline. The returned report carries per-file errors;
// the error return is reserved for being unable to run at all.
func Run(opts Options) (*Report, error) {
	if opts.Model == nil || len(opts.Model.Identities) == 0 {
		return nil, &identity.ConfigError{Reason: "no identities defined"}
	}
	report := &Report{}

	sshFragment, warnings := sshgen.Generate(opts.Model)
	report.Warnings = append(report.Warnings, warnings...)

	// Shadow scan runs against the user-owned portion of the existing file
	if existing, err := os.ReadFile(opts.SSHConfig); err == nil {
		shadowed := sshgen.ScanShadowedHosts(managed.Unmanaged(string(existing)), opts.Model)
		report.Warnings = append(report.Warnings, shadowed...)
	}

	writeManaged(report, opts, opts.SSHConfig, sshFragment)

	for i := range opts.Model.Identities {
		id := &opts.Model.Identities[i]
		fragment := gitgen.IdentityFragment(opts.Model, id)
		if fragment == "" {
			logging.Debug("empty fragment, nothing to write", "identity", id.Label)
			continue
		}
		writeFragment(report, opts, opts.FragmentPath(id.Label), fragment)
	}

	aggregate := gitgen.AggregateFragment(opts.Model, opts.FragmentPath)
	writeManaged(report, opts, opts.GitConfig, aggregate)

	return report, nil
}

func writeManaged(report *Report, opts Options, path, block string) {
	if opts.DryRun {
		// Preview the same merge the real write would perform, user
		// content included
		existing := ""
		if content, err := os.ReadFile(path); err == nil {
			existing = string(content)
		}
		fmt.Fprintf(opts.Out, "--- %s (managed block) ---\n", platform.ShortenPath(path))
		fmt.Fprintln(opts.Out, managed.Render(existing, block))
		report.Written = append(report.Written, path)
		return
	}
	if err := managed.Merge(path, block); err != nil {
		report.Errors = append(report.Errors, err)
		return
	}
	report.Written = append(report.Written, path)
}

func writeFragment(report *Report, opts Options, path, content string) {
	if opts.DryRun {
		fmt.Fprintf(opts.Out, "--- %s ---\n", platform.ShortenPath(path))
		fmt.Fprintln(opts.Out, content)
		report.Written = append(report.Written, path)
		return
	}
	if err := platform.MkdirSecure(filepath.Dir(path)); err != nil {
		report.Errors = append(report.Errors, fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err))
		return
	}
	if err := platform.WriteFileAtomic(path, []byte(content)); err != nil {
		report.Errors = append(report.Errors, fmt.Errorf("failed to write %s: %w", path, err))
		return
	}
	report.Written = append(report.Written, path)
}
