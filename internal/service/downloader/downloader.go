package downloader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	goupdate "github.com/doitdistributed/go-update"

	"github.com/oshokin/paper-updater/internal/config"
	"github.com/oshokin/paper-updater/internal/logger"
	"github.com/oshokin/paper-updater/internal/service/common"
)

// ErrTransferFailed is returned when the artifact could not be fetched or written.
var ErrTransferFailed = errors.New("transfer failed")

// DefaultFileMode is applied to the installed artifact.
const DefaultFileMode os.FileMode = 0o644

// Downloader fetches artifacts over HTTP.
type Downloader struct {
	client    common.Doer
	timeout   time.Duration
	userAgent string
}

// Option configures a Downloader.
type Option func(*Downloader)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client common.Doer) Option {
	return func(d *Downloader) {
		if client != nil {
			d.client = client
		}
	}
}

// New returns a Downloader using the download timeout and user agent from cfg.
func New(cfg *config.Config, opts ...Option) *Downloader {
	d := &Downloader{
		// The transfer is bounded by the request context, not by the client.
		client:    common.NewHTTPClient(0),
		timeout:   cfg.DownloadTimeout,
		userAgent: cfg.UserAgent,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// DownloadFile fetches url and installs the body at destinationPath.
func (d *Downloader) DownloadFile(ctx context.Context, url, destinationPath string) error {
	if d.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	data, err := d.fetch(ctx, url)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransferFailed, err)
	}

	logger.DebugKV(ctx, "Artifact fetched", "url", url, "bytes", len(data))

	if err = install(data, destinationPath); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrTransferFailed, destinationPath, err)
	}

	return nil
}

// fetch reads the full response body for url.
func (d *Downloader) fetch(ctx context.Context, url string) ([]byte, error) {
	response, err := common.Get(ctx, d.client, url, "", d.userAgent)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = response.Body.Close()
	}()

	return io.ReadAll(response.Body)
}

// install replaces destinationPath with data through go-update.
func install(data []byte, destinationPath string) error {
	destinationPath = filepath.Clean(destinationPath)

	// go-update renames the current target aside, so it has to exist.
	placeholder := false

	if _, err := os.Stat(destinationPath); errors.Is(err, os.ErrNotExist) {
		f, createErr := os.OpenFile(destinationPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, DefaultFileMode)
		if createErr != nil {
			return createErr
		}

		if createErr = f.Close(); createErr != nil {
			return createErr
		}

		placeholder = true
	} else if err != nil {
		return err
	}

	options := goupdate.Options{
		TargetPath: destinationPath,
		TargetMode: DefaultFileMode,
	}

	if err := goupdate.Apply(bytes.NewReader(data), options); err != nil {
		if placeholder {
			_ = os.Remove(destinationPath)
		}

		return err
	}

	dir, name := filepath.Split(destinationPath)
	for _, oldFileName := range []string{destinationPath + ".old", filepath.Join(dir, "."+name+".old")} {
		if _, err := os.Stat(oldFileName); err == nil {
			_ = os.Remove(oldFileName)
		}
	}

	return nil
}
