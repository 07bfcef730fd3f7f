package updater

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/paper-updater/internal/config"
)

// TestOutputDirectory covers the default, explicit and fallback cases.
func TestOutputDirectory(t *testing.T) {
	t.Parallel()

	workingDirectory, err := os.Getwd()
	require.NoError(t, err)

	dir, err := OutputDirectory("")
	require.NoError(t, err)
	require.Equal(t, workingDirectory, dir)

	existing := t.TempDir()
	dir, err = OutputDirectory(existing)
	require.NoError(t, err)
	require.Equal(t, existing, dir)

	missing := filepath.Join(existing, "missing")
	dir, err = OutputDirectory(missing)
	require.ErrorIs(t, err, ErrInvalidOutputDirectory)
	require.Contains(t, err.Error(), missing)
	require.Equal(t, workingDirectory, dir)

	file := filepath.Join(existing, "server.jar")
	require.NoError(t, os.WriteFile(file, []byte("jar"), 0o600))

	dir, err = OutputDirectory(file)
	require.ErrorIs(t, err, ErrInvalidOutputDirectory)
	require.Equal(t, workingDirectory, dir)
}

// TestLatest verifies the resolved artifact is printed and nothing is downloaded.
func TestLatest(t *testing.T) {
	t.Parallel()

	var downloads atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/v2/projects/paper", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"versions":["1.20.1","1.20.2"]}`))
	})
	mux.HandleFunc("/v2/projects/paper/versions/1.20.2/builds", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"builds":[{"build":10},{"build":11}]}`))
	})
	mux.HandleFunc("/v2/projects/paper/versions/1.20.2/builds/11/downloads/", func(w http.ResponseWriter, _ *http.Request) {
		downloads.Add(1)

		_, _ = w.Write([]byte("jar"))
	})

	ts := httptest.NewServer(mux)
	defer ts.Close()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "settings.yaml")

	contents, err := yaml.Marshal(&config.Config{APIURL: ts.URL})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(cfgPath, contents, 0o600))

	var out bytes.Buffer

	info, err := Latest(context.Background(), &Options{ConfigPath: cfgPath, Output: &out})
	require.NoError(t, err)
	require.Equal(t, "paper-1.20.2-11.jar", info.FileName)
	require.Contains(t, out.String(), "paper-1.20.2-11.jar")
	require.Zero(t, downloads.Load())
}

// TestRunBadConfig ensures an unreadable configuration aborts before any request.
func TestRunBadConfig(t *testing.T) {
	t.Parallel()

	err := Run(context.Background(), &Options{ConfigPath: filepath.Join(t.TempDir(), "missing.yaml")})
	require.ErrorIs(t, err, os.ErrNotExist)
}

// noopDownloader reports success without writing anything.
type noopDownloader struct {
	calls int
}

func (d *noopDownloader) DownloadFile(context.Context, string, string) error {
	d.calls++

	return nil
}

// TestRunRequiresInstalledFile ensures a run only succeeds when the output file exists afterwards.
func TestRunRequiresInstalledFile(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/v2/projects/paper", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"versions":["1.20.2"]}`))
	})
	mux.HandleFunc("/v2/projects/paper/versions/1.20.2/builds", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"builds":[{"build":11}]}`))
	})

	ts := httptest.NewServer(mux)
	defer ts.Close()

	cfgPath := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("api_url: "+ts.URL+"\n"), 0o600))

	r, err := newRunner(&Options{ConfigPath: cfgPath})
	require.NoError(t, err)

	fake := new(noopDownloader)
	r.downloader = fake

	dir := t.TempDir()

	_, err = r.Run(context.Background(), dir)
	require.ErrorIs(t, err, errInstalledFileMissing)
	require.Equal(t, 1, fake.calls)

	// A directory in place of the jar does not count as installed either.
	require.NoError(t, os.Mkdir(filepath.Join(dir, config.DefaultOutputFile), 0o750))

	_, err = r.Run(context.Background(), dir)
	require.ErrorIs(t, err, errInstalledFileMissing)

	// Once a regular file is present the run succeeds.
	other := t.TempDir()
	target := filepath.Join(other, config.DefaultOutputFile)
	require.NoError(t, os.WriteFile(target, []byte("jar"), 0o600))

	installed, err := r.Run(context.Background(), other)
	require.NoError(t, err)
	require.Equal(t, target, installed)
}

// TestIsRegularFile covers missing paths, directories and files.
func TestIsRegularFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.False(t, isRegularFile(filepath.Join(dir, "missing.jar")))
	require.False(t, isRegularFile(dir))

	file := filepath.Join(dir, "server.jar")
	require.NoError(t, os.WriteFile(file, []byte("jar"), 0o600))
	require.True(t, isRegularFile(file))
}
