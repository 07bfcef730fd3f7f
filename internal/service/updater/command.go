package updater

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/oshokin/paper-updater/internal/config"
	"github.com/oshokin/paper-updater/internal/domain/artifact"
	"github.com/oshokin/paper-updater/internal/logger"
	"github.com/oshokin/paper-updater/internal/service/common"
	"github.com/oshokin/paper-updater/internal/service/downloader"
	"github.com/oshokin/paper-updater/internal/service/resolver"
)

var (
	// ErrInvalidOutputDirectory is reported when the requested directory does not exist.
	// The run continues in the working directory.
	ErrInvalidOutputDirectory = errors.New("no such directory")

	errInstalledFileMissing = errors.New("installed file is missing")
)

// Options are inputs accepted by the updater entry points.
type Options struct {
	// ConfigPath is the optional path to a settings YAML file.
	ConfigPath string
	// Directory is where the artifact is installed; empty means the working directory.
	Directory string
	// Output receives the table printed by Latest; nil means os.Stdout.
	Output io.Writer
}

// fileDownloader installs the body of a URL at a path.
type fileDownloader interface {
	DownloadFile(ctx context.Context, url, destinationPath string) error
}

// runner holds the collaborators for a single run.
type runner struct {
	cfg        *config.Config
	resolver   *resolver.Resolver
	downloader fileDownloader
	progress   *common.Progress
}

// Run installs the latest build and is the public entry point for the CLI.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "paper-updater")

	r, err := newRunner(opts)
	if err != nil {
		return err
	}

	// The caller reports the failure.
	target, err := r.Run(ctx, opts.Directory)
	if err != nil {
		return err
	}

	logger.InfoKV(ctx, "Done.", "path", target)

	return nil
}

// Latest resolves the newest build and prints it without downloading.
func Latest(ctx context.Context, opts *Options) (*artifact.VersionInfo, error) {
	ctx = logger.WithName(ctx, "paper-updater")

	r, err := newRunner(opts)
	if err != nil {
		return nil, err
	}

	info, err := r.resolve(ctx)
	if err != nil {
		return nil, err
	}

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	common.RenderVersionInfo(out, info)

	return info, nil
}

// newRunner loads the settings and wires the services.
func newRunner(opts *Options) (*runner, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	return &runner{
		cfg:        cfg,
		resolver:   resolver.New(cfg),
		downloader: downloader.New(cfg),
		progress:   common.NewProgress(os.Stderr),
	}, nil
}

// Run performs one update and returns the path of the installed file:
// 1) Pick the output directory.
// 2) Resolve the latest artifact.
// 3) Download it over the output file.
// 4) Confirm the file exists.
func (u *runner) Run(ctx context.Context, requestedDirectory string) (string, error) {
	directory, err := OutputDirectory(requestedDirectory)
	if errors.Is(err, ErrInvalidOutputDirectory) {
		logger.WarnKV(ctx, "Falling back to the working directory", "error", err)
	} else if err != nil {
		return "", fmt.Errorf("determine output directory: %w", err)
	}

	target := filepath.Join(directory, u.cfg.OutputFile)
	logger.InfoKV(ctx, "Writing server to directory", "directory", directory)

	u.warnIfServerRunning(ctx)

	info, err := u.resolve(ctx)
	if err != nil {
		return "", err
	}

	logger.InfoKV(ctx, "Downloading server JAR", "path", target, "url", info.DownloadURL)

	u.progress.Start("Downloading " + info.FileName + "...")
	err = u.downloader.DownloadFile(ctx, info.DownloadURL, target)
	u.progress.Stop()

	if err != nil {
		return "", err
	}

	if !isRegularFile(target) {
		return "", fmt.Errorf("%s: %w", target, errInstalledFileMissing)
	}

	return target, nil
}

// resolve finds the latest artifact while the spinner runs.
func (u *runner) resolve(ctx context.Context) (*artifact.VersionInfo, error) {
	logger.InfoKV(ctx, "Finding latest server version", "project", u.cfg.Project, "api", u.cfg.APIURL)

	u.progress.Start("Finding latest server version...")
	info, err := u.resolver.ResolveLatestArtifact(ctx)
	u.progress.Stop()

	if err != nil {
		return nil, fmt.Errorf("find latest server version: %w", err)
	}

	logger.InfoKV(ctx, "Ok.", "latest", info.Version, "build", info.BuildNumber)

	return info, nil
}

// warnIfServerRunning logs a warning when a java process may hold the jar open.
func (u *runner) warnIfServerRunning(ctx context.Context) {
	pids, err := common.RunningJavaProcesses()
	if err != nil {
		logger.DebugKV(ctx, "Unable to list processes", "error", err)
		return
	}

	if len(pids) > 0 {
		logger.WarnKV(ctx, "A java process is running, restart the server after the update", "pids", pids)
	}
}

// OutputDirectory returns requested when it is an existing directory and the
// working directory otherwise. When it falls back because requested is not a
// directory, the working directory is returned together with an error
// wrapping ErrInvalidOutputDirectory.
func OutputDirectory(requested string) (string, error) {
	workingDirectory, err := os.Getwd()
	if err != nil {
		return "", err
	}

	if requested == "" {
		return workingDirectory, nil
	}

	info, err := os.Stat(requested)
	if err != nil || !info.IsDir() {
		return workingDirectory, fmt.Errorf("%s: %w", requested, ErrInvalidOutputDirectory)
	}

	return requested, nil
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.Mode().IsRegular()
}
