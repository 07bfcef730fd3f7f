package artifact

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultBaseURL is the root of the PaperMC build-distribution API.
	DefaultBaseURL = "https://api.papermc.io"
	// DefaultProject is the project whose builds are installed.
	DefaultProject = "paper"

	// apiPrefix is the versioned path every endpoint lives under.
	apiPrefix = "v2/projects"
	// jarExtension is appended to every published artifact name.
	jarExtension = ".jar"
)

// VersionInfo describes the artifact chosen for a run.
type VersionInfo struct {
	// Version is the upstream release identifier, e.g. "1.20.2".
	Version string
	// BuildNumber is the build within Version.
	BuildNumber int
	// FileName is the artifact name as published, e.g. "paper-1.20.2-11.jar".
	FileName string
	// DownloadURL is where FileName can be fetched from.
	DownloadURL string
}

// Template builds endpoint and download locations for one project.
type Template struct {
	// BaseURL is the API root without a trailing slash.
	BaseURL string
	// Project is the project slug, e.g. "paper".
	Project string
}

// NewTemplate returns a Template, filling empty fields with the defaults.
func NewTemplate(baseURL, project string) Template {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	if project == "" {
		project = DefaultProject
	}

	return Template{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Project: project,
	}
}

// VersionsURL returns the endpoint listing every version of the project.
func (t Template) VersionsURL() string {
	return t.join(apiPrefix, url.PathEscape(t.Project))
}

// BuildsURL returns the endpoint listing every build of version.
func (t Template) BuildsURL(version string) string {
	return t.join(apiPrefix, url.PathEscape(t.Project), "versions", url.PathEscape(version), "builds")
}

// Locate returns the download URL and file name for version and build.
// The result depends only on the template and its arguments.
func (t Template) Locate(version string, build int) (downloadURL, fileName string) {
	buildNumber := strconv.Itoa(build)
	fileName = fmt.Sprintf("%s-%s-%s%s", t.Project, version, buildNumber, jarExtension)

	downloadURL = t.join(
		apiPrefix, url.PathEscape(t.Project),
		"versions", url.PathEscape(version),
		"builds", buildNumber,
		"downloads", url.PathEscape(fileName),
	)

	return downloadURL, fileName
}

// NewVersionInfo locates the artifact for version and build.
func NewVersionInfo(t Template, version string, build int) *VersionInfo {
	downloadURL, fileName := t.Locate(version, build)

	return &VersionInfo{
		Version:     version,
		BuildNumber: build,
		FileName:    fileName,
		DownloadURL: downloadURL,
	}
}

func (t Template) join(segments ...string) string {
	return t.BaseURL + "/" + strings.Join(segments, "/")
}
