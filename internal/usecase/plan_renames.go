package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/runoshun/jira-attach/internal/domain"
	"gopkg.in/yaml.v3"
)

// RenamePlan is a batch of renames read from a file.
//
//	renames:
//	  alps.jpg: mountains.jpg
//	  scan 1.pdf: invoice
type RenamePlan struct {
	Renames map[string]string `yaml:"renames"`
}

// ParseRenamePlan decodes a YAML rename plan.
func ParseRenamePlan(r io.Reader) (*RenamePlan, error) {
	var plan RenamePlan
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&plan); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse rename plan: empty document")
		}
		return nil, fmt.Errorf("parse rename plan: %w", err)
	}
	if len(plan.Renames) == 0 {
		return nil, fmt.Errorf("parse rename plan: %w", domain.ErrNoChanges)
	}
	return &plan, nil
}

// PlanRenamesInput contains renames to apply to a rename set.
type PlanRenamesInput struct {
	Set     *domain.RenameSet
	Renames   map[string]string // current name -> new name (a matching suffix is dropped)
	SaveDraft bool              // Persist the resulting pending renames as the issue's draft
}

// PlanRenamesOutput contains the pending changes after planning.
type PlanRenamesOutput struct {
	Changes []domain.Change
}

// PlanRenames applies several renames to a rename set in name order and,
// when asked, saves the result as a draft. Every rename is attempted;
// failures are joined.
type PlanRenames struct {
	drafts domain.DraftRepository
	clock  domain.Clock
}

// NewPlanRenames creates a new PlanRenames use case.
func NewPlanRenames(drafts domain.DraftRepository, clock domain.Clock) *PlanRenames {
	return &PlanRenames{drafts: drafts, clock: clock}
}

// Execute renames by name. Names are matched against the names the set had
// before this call. Chains such as a->b, b->c succeed in any order; a cycle
// such as a swap is reported as ErrDuplicateName.
func (uc *PlanRenames) Execute(_ context.Context, in PlanRenamesInput) (*PlanRenamesOutput, error) {
	if in.Set == nil {
		return nil, domain.ErrNotLoggedIn
	}

	names := make([]string, 0, len(in.Renames))
	for name := range in.Renames {
		names = append(names, name)
	}
	slices.Sort(names)

	// Resolve names first so earlier renames do not shadow later lookups.
	ids := make(map[string]string, len(names))
	var errs []error
	for _, name := range names {
		att, ok := in.Set.Lookup(name)
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s", domain.ErrAttachmentNotFound, name))
			continue
		}
		ids[name] = att.ID
	}

	// Retry failed renames until no progress is made.
	pending := slices.DeleteFunc(slices.Clone(names), func(n string) bool { _, ok := ids[n]; return !ok })
	for len(pending) > 0 {
		var next []string
		var lastErrs []error
		for _, name := range pending {
			if _, err := in.Set.RenameByID(ids[name], in.Renames[name]); err != nil {
				next = append(next, name)
				lastErrs = append(lastErrs, fmt.Errorf("%s: %w", name, err))
			}
		}
		if len(next) == len(pending) {
			errs = append(errs, lastErrs...)
			break
		}
		pending = next
	}

	if in.SaveDraft {
		if err := saveDraft(uc.drafts, in.Set, uc.clock); err != nil {
			errs = append(errs, err)
		}
	}
	return &PlanRenamesOutput{Changes: in.Set.Changes()}, errors.Join(errs...)
}
