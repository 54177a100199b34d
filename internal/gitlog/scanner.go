// Package gitlog mines commit history for references to pull requests and issues.
package gitlog

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"

	"github.com/chainguard-dev/clog"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
)

var ErrTagNotFound = errors.New("tag not found")

// RefScanner extracts `#<number>` references from the commits between two tags.
type RefScanner interface {
	CommitRefs(ctx context.Context, repoURL, fromTag, toTag string) ([]int, error)
}

// Miner is the go-git implementation of RefScanner.
type Miner struct {
	logger *clog.Logger
	open   func(ctx context.Context, repoURL string) (*git.Repository, error)
}

// NewMiner returns a Miner that clones repositories into memory.
func NewMiner(logger *clog.Logger) *Miner {
	return &Miner{
		logger: logger,
		open:   cloneInMemory,
	}
}

func cloneInMemory(ctx context.Context, repoURL string) (*git.Repository, error) {
	return git.CloneContext(ctx, memory.NewStorage(), nil, &git.CloneOptions{
		URL:  repoURL,
		Tags: git.AllTags,
	})
}

var refPattern = regexp.MustCompile(`#\d+`)

// ExtractRefs returns the numbers of every `#<digits>` substring of msg, in order of appearance.
func ExtractRefs(msg string) []int {
	var refs []int
	for _, m := range refPattern.FindAllString(msg, -1) {
		n, err := strconv.Atoi(m[1:])
		if err != nil {
			continue // overflows int
		}
		refs = append(refs, n)
	}
	return refs
}

// CommitRefs walks the commits reachable from toTag but not from fromTag
// and returns the deduplicated references found in their messages, sorted ascending.
func (m *Miner) CommitRefs(ctx context.Context, repoURL, fromTag, toTag string) ([]int, error) {
	m.logger.Infof("Fetching commits between tags %s...%s", fromTag, toTag)

	repo, err := m.open(ctx, repoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository %s: %w", repoURL, err)
	}

	from, err := tagCommit(repo, fromTag)
	if err != nil {
		return nil, err
	}
	to, err := tagCommit(repo, toTag)
	if err != nil {
		return nil, err
	}

	excluded := make(map[plumbing.Hash]struct{})
	if err := walk(repo, from.Hash, func(c *object.Commit) error {
		excluded[c.Hash] = struct{}{}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("failed to walk history of %s: %w", fromTag, err)
	}

	seen := make(map[int]struct{})
	var commits int
	if err := walk(repo, to.Hash, func(c *object.Commit) error {
		if _, ok := excluded[c.Hash]; ok {
			return nil
		}
		commits++
		for _, ref := range ExtractRefs(c.Message) {
			seen[ref] = struct{}{}
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("failed to walk history of %s: %w", toTag, err)
	}

	refs := make([]int, 0, len(seen))
	for ref := range seen {
		refs = append(refs, ref)
	}
	slices.Sort(refs)
	m.logger.Debugf("Scanned %d commits, found references: %v", commits, refs)
	return refs, nil
}

func walk(repo *git.Repository, from plumbing.Hash, fn func(*object.Commit) error) error {
	iter, err := repo.Log(&git.LogOptions{From: from})
	if err != nil {
		return err
	}
	defer iter.Close()
	return iter.ForEach(fn)
}

// tagCommit resolves a lightweight or annotated tag to the commit it points at.
func tagCommit(repo *git.Repository, name string) (*object.Commit, error) {
	ref, err := repo.Tag(name)
	if err != nil {
		if errors.Is(err, git.ErrTagNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrTagNotFound, name)
		}
		return nil, fmt.Errorf("failed to resolve tag %s: %w", name, err)
	}

	tag, err := repo.TagObject(ref.Hash())
	switch {
	case err == nil:
		return tag.Commit()
	case errors.Is(err, plumbing.ErrObjectNotFound):
		return repo.CommitObject(ref.Hash())
	default:
		return nil, fmt.Errorf("failed to read tag %s: %w", name, err)
	}
}
