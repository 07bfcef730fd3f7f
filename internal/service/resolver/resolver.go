package resolver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/oshokin/paper-updater/internal/config"
	"github.com/oshokin/paper-updater/internal/domain/artifact"
	"github.com/oshokin/paper-updater/internal/logger"
	"github.com/oshokin/paper-updater/internal/service/common"
)

var (
	// ErrVersionListUnavailable is returned when the latest version cannot be determined.
	ErrVersionListUnavailable = errors.New("version list unavailable")
	// ErrBuildListUnavailable is returned when the latest build of a version cannot be determined.
	ErrBuildListUnavailable = errors.New("build list unavailable")

	errEmptyList     = errors.New("empty list")
	errMissingLatest = errors.New("latest entry has no value")
)

// acceptJSON is sent with metadata requests.
const acceptJSON = "application/json"

// versionsResponse is the body of the project endpoint.
type versionsResponse struct {
	Versions []string `json:"versions"`
}

// buildsResponse is the body of the builds endpoint.
type buildsResponse struct {
	Builds []struct {
		Build *int `json:"build"`
	} `json:"builds"`
}

// Resolver queries the distribution API for the newest artifact.
type Resolver struct {
	client    common.Doer
	template  artifact.Template
	userAgent string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithHTTPClient replaces the HTTP client built from the configured timeout.
func WithHTTPClient(client common.Doer) Option {
	return func(r *Resolver) {
		if client != nil {
			r.client = client
		}
	}
}

// New returns a Resolver for the API and project named in cfg.
func New(cfg *config.Config, opts ...Option) *Resolver {
	r := &Resolver{
		client:    common.NewHTTPClient(cfg.Timeout),
		template:  cfg.Template(),
		userAgent: cfg.UserAgent,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// ResolveLatestArtifact returns the newest build of the newest version.
func (r *Resolver) ResolveLatestArtifact(ctx context.Context) (*artifact.VersionInfo, error) {
	version, err := r.LatestVersion(ctx)
	if err != nil {
		return nil, err
	}

	build, err := r.LatestBuild(ctx, version)
	if err != nil {
		return nil, err
	}

	info := artifact.NewVersionInfo(r.template, version, build)
	logger.DebugKV(ctx, "Artifact located", "file", info.FileName, "url", info.DownloadURL)

	return info, nil
}

// LatestVersion returns the last entry of the project's version list.
func (r *Resolver) LatestVersion(ctx context.Context) (string, error) {
	var body versionsResponse
	if err := r.getJSON(ctx, r.template.VersionsURL(), &body); err != nil {
		return "", fmt.Errorf("%w: %w", ErrVersionListUnavailable, err)
	}

	if len(body.Versions) == 0 {
		return "", fmt.Errorf("%w: %w", ErrVersionListUnavailable, errEmptyList)
	}

	latest := strings.TrimSpace(body.Versions[len(body.Versions)-1])
	if latest == "" {
		return "", fmt.Errorf("%w: %w", ErrVersionListUnavailable, errMissingLatest)
	}

	if i := firstVersionOutOfOrder(body.Versions); i > 0 {
		logger.WarnKV(ctx, "Version list is not in ascending order, using its last entry anyway",
			"previous", body.Versions[i-1], "next", body.Versions[i])
	}

	logger.DebugKV(ctx, "Resolved latest version", "version", latest, "total", len(body.Versions))

	return latest, nil
}

// LatestBuild returns the last build number listed for version.
func (r *Resolver) LatestBuild(ctx context.Context, version string) (int, error) {
	var body buildsResponse
	if err := r.getJSON(ctx, r.template.BuildsURL(version), &body); err != nil {
		return 0, fmt.Errorf("%w: version %s: %w", ErrBuildListUnavailable, version, err)
	}

	if len(body.Builds) == 0 {
		return 0, fmt.Errorf("%w: version %s: %w", ErrBuildListUnavailable, version, errEmptyList)
	}

	last := body.Builds[len(body.Builds)-1].Build
	if last == nil {
		return 0, fmt.Errorf("%w: version %s: %w", ErrBuildListUnavailable, version, errMissingLatest)
	}

	builds := make([]int, 0, len(body.Builds))
	for _, b := range body.Builds {
		if b.Build != nil {
			builds = append(builds, *b.Build)
		}
	}

	if i := firstBuildOutOfOrder(builds); i > 0 {
		logger.WarnKV(ctx, "Build list is not in ascending order, using its last entry anyway",
			"version", version, "previous", builds[i-1], "next", builds[i])
	}

	logger.DebugKV(ctx, "Resolved latest build", "version", version, "build", *last)

	return *last, nil
}

// getJSON fetches rawURL and decodes its body into target.
func (r *Resolver) getJSON(ctx context.Context, rawURL string, target any) error {
	response, err := common.Get(ctx, r.client, rawURL, acceptJSON, r.userAgent)
	if err != nil {
		return err
	}

	defer func() {
		_ = response.Body.Close()
	}()

	data, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("read %s: %w", rawURL, err)
	}

	if err = json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decode %s: %w", rawURL, err)
	}

	return nil
}
