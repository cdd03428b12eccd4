// Package remotes plans and applies batch updates of repository remote URLs
// so that every remote under an identity's paths uses that identity's host
// alias.
package remotes

import (
	"fmt"

	"github.com/byterings/gitid/internal/gitops"
	"github.com/byterings/gitid/internal/giturl"
	"github.com/byterings/gitid/internal/identity"
	"github.com/byterings/gitid/internal/logging"
	"github.com/byterings/gitid/internal/platform"
)

// Change is one proposed remote URL update
type Change struct {
	Repo   string
	Remote string
	Label  string
	OldURL string
	NewURL string
}

// Plan holds the proposed changes for one run plus what was passed over
type Plan struct {
	Changes  []Change
	Skipped  int      // remotes left untouched (unmanaged host, already correct, wrong shape)
	Warnings []string // per-path scan problems, non-fatal
}

// Compute walks every identity's configured paths, discovers repositories,
// and proposes a URL change for each remote whose host the owning identity
// declares and whose raw URL differs from the canonical aliased form.
// Remotes on hosts the model does not manage are skipped untouched. When
// identities' paths overlap, the first identity in model order that reaches
// a repository owns it.
func Compute(m *identity.Model, ops gitops.Ops) (*Plan, error) {
	plan := &Plan{}
	seen := make(map[string]bool)

	for i := range m.Identities {
		id := &m.Identities[i]
		for _, path := range id.Paths {
			base, err := platform.ExpandTilde(path)
			if err != nil {
				return nil, err
			}

			repos, err := ops.FindRepos(base)
			if err != nil {
				plan.Warnings = append(plan.Warnings, fmt.Sprintf("could not scan %s: %v", path, err))
				continue
			}

			for _, repo := range repos {
				if seen[repo] {
					continue
				}
				seen[repo] = true
				if err := planRepo(plan, m, id, ops, repo); err != nil {
					plan.Warnings = append(plan.Warnings, fmt.Sprintf("could not inspect %s: %v", repo, err))
				}
			}
		}
	}

	return plan, nil
}

func planRepo(plan *Plan, m *identity.Model, owner *identity.Identity, ops gitops.Ops, repo string) error {
	remotes, err := ops.ListRemotes(repo)
	if err != nil {
		return err
	}

	for _, remote := range remotes {
		url, err := ops.RemoteURL(repo, remote)
		if err != nil {
			return err
		}

		host, ok := giturl.ResolveHost(m, url)
		if !ok {
			logging.Debug("remote host not managed, skipping", "repo", repo, "remote", remote, "url", url)
			plan.Skipped++
			continue
		}
		if !owner.HasHost(host) {
			logging.Debug("host not configured for owning identity, skipping", "repo", repo, "host", host, "identity", owner.Label)
			plan.Skipped++
			continue
		}

		slug, ok := giturl.ExtractSlug(url)
		if !ok {
			plan.Skipped++
			continue
		}

		target := giturl.TargetURL(owner.Label, host, slug)
		if target == url {
			plan.Skipped++
			continue
		}

		plan.Changes = append(plan.Changes, Change{
			Repo:   repo,
			Remote: remote,
			Label:  owner.Label,
			OldURL: url,
			NewURL: target,
		})
	}

	return nil
}

// Apply executes every change in the plan. Individual failures do not stop
// the batch; the failed count is returned so the caller can report it.
func Apply(plan *Plan, ops gitops.Ops) (applied, failed int) {
	for _, change := range plan.Changes {
		if err := ops.SetRemoteURL(change.Repo, change.Remote, change.NewURL); err != nil {
			logging.Warn("remote update failed", "repo", change.Repo, "remote", change.Remote, "err", err)
			failed++
			continue
		}
		applied++
	}
	return applied, failed
}
