package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tagsResponse = `[
	{"name": "1.16.0", "commit": {"sha": "c3"}},
	{"name": "1.15.1", "commit": {"sha": "c2"}},
	{"name": "1.15.0", "commit": {"sha": "c1"}}
]`

func setupTagServer(t *testing.T, status int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/OasisLMF/ktools/tags", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
}

func TestTagClient_ListTags(t *testing.T) {
	testCases := []struct {
		name           string
		status         int
		body           string
		expected       []string
		expectError    bool
		expectedErrMsg string
	}{
		{
			name:     "happy path - API order is kept",
			status:   http.StatusOK,
			body:     tagsResponse,
			expected: []string{"1.16.0", "1.15.1", "1.15.0"},
		},
		{
			name:     "no tags",
			status:   http.StatusOK,
			body:     `[]`,
			expected: nil,
		},
		{
			name:           "error case - non 2xx aborts",
			status:         http.StatusForbidden,
			body:           `{"message": "API rate limit exceeded"}`,
			expectError:    true,
			expectedErrMsg: "failed to list tags of ktools",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := setupTagServer(t, tc.status, tc.body)
			defer server.Close()

			tags, err := NewTagClient(server.URL+"/", "OasisLMF", discardLogger()).ListTags(context.Background(), "ktools")
			if tc.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedErrMsg)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, tags)
			}
		})
	}
}

func TestTagClient_Tag(t *testing.T) {
	server := setupTagServer(t, http.StatusOK, tagsResponse)
	defer server.Close()
	client := NewTagClient(server.URL, "OasisLMF", discardLogger())

	latest, err := client.Tag(context.Background(), "ktools", 0)
	require.NoError(t, err)
	assert.Equal(t, "1.16.0", latest)

	previous, err := client.Tag(context.Background(), "ktools", 1)
	require.NoError(t, err)
	assert.Equal(t, "1.15.1", previous)

	_, err = client.Tag(context.Background(), "ktools", 3)
	assert.ErrorIs(t, err, ErrTagIndexOutOfRange)
}
