package selfupdate

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkAgainst(t *testing.T, tag, current string) *CheckResult {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"tag_name":%q,"html_url":"https://example.com/%s"}`, tag, tag)
	}))
	defer server.Close()

	checker := NewChecker(WithBaseURL(server.URL))
	result, err := checker.Check(context.Background(), &CheckInput{Version: current})
	require.NoError(t, err)
	return result
}

func TestCheckNewerVersionAvailable(t *testing.T) {
	result := checkAgainst(t, "v2.1.0", "v2.0.3")
	assert.True(t, result.UpdateAvailable)
	assert.Equal(t, "v2.1.0", result.LatestVersion)
}

func TestCheckOlderOrEqualIsNotAnUpdate(t *testing.T) {
	assert.False(t, checkAgainst(t, "v1.0.0", "v1.0.0").UpdateAvailable)
	assert.False(t, checkAgainst(t, "v0.9.0", "v1.0.0").UpdateAvailable)
}

func TestCheckNormalizesBareTags(t *testing.T) {
	assert.True(t, checkAgainst(t, "2.0.0", "v1.5.0").UpdateAvailable)
}

func TestCheckErrorsOnMissingTag(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	checker := NewChecker(WithBaseURL(server.URL))
	_, err := checker.Check(context.Background(), &CheckInput{Version: "v1.0.0"})
	assert.Error(t, err)
}
