package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/oasislmf/release-notes/internal/domain"
	"github.com/oasislmf/release-notes/internal/gateway"
)

var ErrInvalidTag = errors.New("tag not found")

// ValidateRange checks that both tags of r are published tags of its repository.
// The error names every valid option.
func ValidateRange(ctx context.Context, tags gateway.TagLister, r domain.TagRange) error {
	published, err := tags.ListTags(ctx, r.Repository)
	if err != nil {
		return err
	}
	if !slices.Contains(published, r.From) {
		return fmt.Errorf("%w: from-tag=%s, not found in the %s repository\nValid options: %v", ErrInvalidTag, r.From, r.Repository, published)
	}
	if !slices.Contains(published, r.To) {
		return fmt.Errorf("%w: to-tag=%s, not found in the %s repository\nValid options: %v", ErrInvalidTag, r.To, r.Repository, published)
	}
	return nil
}

// DefaultRange fills the empty tags of r: To defaults to the latest tag, From to the one before it.
func DefaultRange(ctx context.Context, tags gateway.TagLister, r domain.TagRange) (domain.TagRange, error) {
	var err error
	if r.From == "" {
		if r.From, err = tags.Tag(ctx, r.Repository, 1); err != nil {
			return r, err
		}
	}
	if r.To == "" {
		if r.To, err = tags.Tag(ctx, r.Repository, 0); err != nil {
			return r, err
		}
	}
	return r, nil
}
