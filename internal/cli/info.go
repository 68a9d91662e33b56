package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forgecut/forgecut/internal/persist"
)

// NewInfoCommand creates the info command.
func NewInfoCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "info <project-file>",
		Short:         "Summarize a project file",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(rootOpts, cmd, args[0])
		},
	}

	return cmd
}

type trackInfo struct {
	Kind  string `json:"kind"`
	Items int    `json:"items"`
}

type projectInfo struct {
	Name     string      `json:"name"`
	ID       string      `json:"id"`
	Width    int         `json:"width"`
	Height   int         `json:"height"`
	FPS      float64     `json:"fps"`
	Duration string      `json:"duration"`
	Assets   int         `json:"assets"`
	Markers  int         `json:"markers"`
	Tracks   []trackInfo `json:"tracks"`
}

func runInfo(opts *RootOptions, cmd *cobra.Command, path string) error {
	formatter := formatterFor(opts, cmd)

	p, err := persist.LoadFile(path)
	if err != nil {
		_ = formatter.Error("E_LOAD", err.Error(), nil)
		return WrapExitError(ExitCommandError, "load project", err)
	}

	touchCatalog(opts, p, path)

	info := projectInfo{
		Name:     p.Name,
		ID:       p.ID.String(),
		Width:    p.Settings.Width,
		Height:   p.Settings.Height,
		FPS:      p.Settings.FPS,
		Duration: p.End().String(),
		Assets:   len(p.Assets),
		Markers:  len(p.Timeline.Markers),
	}
	for _, track := range p.Timeline.Tracks {
		info.Tracks = append(info.Tracks, trackInfo{
			Kind:  string(track.Kind),
			Items: len(track.Items),
		})
	}

	if formatter.Format == "json" {
		return formatter.Success(info)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "%s (%s)\n", info.Name, info.ID)
	fmt.Fprintf(w, "  %dx%d @ %.4g fps\n", info.Width, info.Height, info.FPS)
	fmt.Fprintf(w, "  duration: %s\n", info.Duration)
	fmt.Fprintf(w, "  assets: %d, markers: %d\n", info.Assets, info.Markers)
	for i, t := range info.Tracks {
		fmt.Fprintf(w, "  track %d: %s (%d item(s))\n", i, t.Kind, t.Items)
	}
	return nil
}
