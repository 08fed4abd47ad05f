package e2e

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)
	server, marked := startMailServer(t)

	_, stderr, err := runMW(t, binaryPath, home,
		"login",
		"--base-url", server.URL,
		"--username", "agent@example.com",
		"--password", "pw",
	)
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err := runMW(t, binaryPath, home, "inbox")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "standup notes")

	stdout, stderr, err = runMW(t, binaryPath, home, "read", "7")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Marked message 7 read")

	marked.mu.Lock()
	defer marked.mu.Unlock()
	assert.Equal(t, []string{"7"}, marked.ids)
}

type markedIDs struct {
	mu  sync.Mutex
	ids []string
}

func startMailServer(t *testing.T) (*httptest.Server, *markedIDs) {
	t.Helper()

	marked := &markedIDs{}
	mux := http.NewServeMux()

	mux.HandleFunc("POST /login", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprintf(w, `{"token":"token-1","expiresAt":%q}`,
			time.Now().Add(time.Hour).Format(time.RFC3339))
	})
	mux.HandleFunc("GET /messages", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		_, _ = fmt.Fprint(w, `{"messages":[{"id":7,"from":"boss@example.com","to":"agent@example.com","subject":"standup notes","body":"hello","isRead":false,"receivedAt":"2026-08-30T09:00:00Z"}],"count":1,"hasMore":false}`)
	})
	mux.HandleFunc("PUT /messages/{id}/read", func(w http.ResponseWriter, r *http.Request) {
		marked.mu.Lock()
		marked.ids = append(marked.ids, r.PathValue("id"))
		marked.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, marked
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "mw-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/mw")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build mw binary: %s", string(output))
	return binaryPath
}

func runMW(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}
