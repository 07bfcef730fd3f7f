//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/oshokin/paper-updater/internal/domain/artifact"
)

// RenderVersionInfo prints the resolved artifact as a table.
func RenderVersionInfo(w io.Writer, info *artifact.VersionInfo) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Version", "Build", "File", "URL"})
	t.AppendRow(table.Row{info.Version, info.BuildNumber, info.FileName, info.DownloadURL})
	t.SetStyle(table.StyleRounded)
	t.Render()
}
