//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/mitchellh/go-ps"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/paper-updater/internal/domain/artifact"
)

// TestGet verifies headers are sent and non-200 answers are rejected.
func TestGet(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(r.Header.Get("Accept") + "|" + r.Header.Get("User-Agent")))
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	ts := httptest.NewServer(mux)
	defer ts.Close()

	client := NewHTTPClient(0)

	response, err := Get(context.Background(), client, ts.URL+"/ok", "application/json", "tester")
	require.NoError(t, err)

	body, err := io.ReadAll(response.Body)
	require.NoError(t, err)
	require.NoError(t, response.Body.Close())
	require.Equal(t, "application/json|tester", string(body))

	_, err = Get(context.Background(), client, ts.URL+"/missing", "", "")
	require.ErrorIs(t, err, ErrBadHTTPStatus)
}

// TestRenderVersionInfo checks that all artifact fields end up in the table.
func TestRenderVersionInfo(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	info := artifact.NewVersionInfo(artifact.NewTemplate("", ""), "1.20.2", 11)
	RenderVersionInfo(&buf, info)

	out := buf.String()
	require.Contains(t, out, "1.20.2")
	require.Contains(t, out, "11")
	require.Contains(t, out, info.FileName)
	require.Contains(t, out, info.DownloadURL)
}

// TestProgressNilSafe ensures a disabled Progress can be started and stopped.
func TestProgressNilSafe(t *testing.T) {
	t.Parallel()

	var p *Progress

	p.Start("working")
	p.Stop()

	p = &Progress{}
	p.Start("working")
	p.Stop()
}

// TestNewProgressChecksItsOwnWriter ensures redirected writers never get spinner frames.
func TestNewProgressChecksItsOwnWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	p := NewProgress(&buf)
	require.Nil(t, p.loader)
	p.Start("working")
	p.Stop()
	require.Empty(t, buf.String())

	f, err := os.CreateTemp(t.TempDir(), "progress-*.log")
	require.NoError(t, err)

	defer func() {
		_ = f.Close()
	}()

	require.False(t, IsTerminal(f))
	require.Nil(t, NewProgress(f).loader)
}

type fakeProcess struct {
	pid        int
	executable string
}

func (p fakeProcess) Pid() int           { return p.pid }
func (p fakeProcess) PPid() int          { return 1 }
func (p fakeProcess) Executable() string { return p.executable }

// TestFilterJava verifies java detection ignores this process and other binaries.
func TestFilterJava(t *testing.T) {
	t.Parallel()

	processList := []ps.Process{
		fakeProcess{pid: 10, executable: "java"},
		fakeProcess{pid: 11, executable: "bash"},
		fakeProcess{pid: 12, executable: "JAVA.EXE"},
		fakeProcess{pid: 13, executable: "java"},
	}

	require.Equal(t, []int{10, 12}, filterJava(processList, 13))
	require.Empty(t, filterJava(nil, 1))
}
