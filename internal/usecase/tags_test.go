package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oasislmf/release-notes/internal/domain"
)

// mockTagLister is a mock implementation of the gateway.TagLister interface.
type mockTagLister struct {
	mock.Mock
}

func (m *mockTagLister) ListTags(ctx context.Context, repo string) ([]string, error) {
	args := m.Called(ctx, repo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockTagLister) Tag(ctx context.Context, repo string, idx int) (string, error) {
	args := m.Called(ctx, repo, idx)
	return args.String(0), args.Error(1)
}

func TestValidateRange(t *testing.T) {
	published := []string{"1.16.0", "1.15.0"}
	testCases := []struct {
		name          string
		tagRange      domain.TagRange
		listErr       error
		expectedError error
		errContains   string
	}{
		{
			name:     "both tags published",
			tagRange: domain.TagRange{Repository: "ktools", From: "1.15.0", To: "1.16.0"},
		},
		{
			name:          "unknown from tag names the valid options",
			tagRange:      domain.TagRange{Repository: "ktools", From: "1.14.0", To: "1.16.0"},
			expectedError: ErrInvalidTag,
			errContains:   "Valid options: [1.16.0 1.15.0]",
		},
		{
			name:          "unknown to tag",
			tagRange:      domain.TagRange{Repository: "ktools", From: "1.15.0", To: "2.0.0"},
			expectedError: ErrInvalidTag,
			errContains:   "to-tag=2.0.0",
		},
		{
			name:        "tag list fails",
			tagRange:    domain.TagRange{Repository: "ktools", From: "1.15.0", To: "1.16.0"},
			listErr:     errors.New("403 Forbidden"),
			errContains: "403 Forbidden",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tags := new(mockTagLister)
			if tc.listErr != nil {
				tags.On("ListTags", mock.Anything, "ktools").Return(nil, tc.listErr)
			} else {
				tags.On("ListTags", mock.Anything, "ktools").Return(published, nil)
			}

			err := ValidateRange(context.Background(), tags, tc.tagRange)
			if tc.errContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errContains)
			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
			}
		})
	}
}

func TestDefaultRange(t *testing.T) {
	tags := new(mockTagLister)
	tags.On("Tag", mock.Anything, "OasisLMF", 0).Return("1.16.0", nil)
	tags.On("Tag", mock.Anything, "OasisLMF", 1).Return("1.15.0", nil)

	got, err := DefaultRange(context.Background(), tags, domain.TagRange{Repository: "OasisLMF"})
	require.NoError(t, err)
	assert.Equal(t, domain.TagRange{Repository: "OasisLMF", From: "1.15.0", To: "1.16.0"}, got)

	// explicit tags are kept and the tag list is not consulted again
	explicit := domain.TagRange{Repository: "OasisLMF", From: "1.10.0", To: "1.12.0"}
	got, err = DefaultRange(context.Background(), tags, explicit)
	require.NoError(t, err)
	assert.Equal(t, explicit, got)
	tags.AssertNumberOfCalls(t, "Tag", 2)
}
