package cli

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/forgecut/forgecut/internal/persist"
	"github.com/forgecut/forgecut/internal/timeline"
)

// presets maps flag values to project settings.
var presets = map[string]func() timeline.ProjectSettings{
	"1080p":   timeline.Preset1080p,
	"1080p60": timeline.Preset1080p60,
	"720p":    timeline.Preset720p,
	"4k":      timeline.Preset4K,
	"shorts":  timeline.PresetShorts,
}

// NewNewCommand creates the new command.
func NewNewCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		name   string
		preset string
	)

	cmd := &cobra.Command{
		Use:   "new <path>",
		Short: "Create a new project file",
		Long: `Create a new project file with default Video and Audio tracks.

The preset selects output resolution and frame rate.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(rootOpts, cmd, args[0], name, preset)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "project name (defaults to the file name)")
	cmd.Flags().StringVar(&preset, "preset", "1080p", "settings preset ("+strings.Join(presetNames(), "|")+")")

	return cmd
}

func runNew(opts *RootOptions, cmd *cobra.Command, path, name, preset string) error {
	formatter := formatterFor(opts, cmd)

	settingsFn, ok := presets[strings.ToLower(preset)]
	if !ok {
		msg := fmt.Sprintf("unknown preset %q: must be one of %v", preset, presetNames())
		_ = formatter.Error("E_PRESET", msg, nil)
		return NewExitError(ExitCommandError, msg)
	}

	path = persist.EnsureExtension(path)
	if name == "" {
		base := filepath.Base(path)
		name = strings.TrimSuffix(base, persist.Extension)
	}

	p := timeline.NewProject(name, settingsFn())
	p.InitDefaultTracks()

	if err := persist.SaveFile(p, path); err != nil {
		_ = formatter.Error("E_WRITE", err.Error(), nil)
		return WrapExitError(ExitCommandError, "create project", err)
	}

	touchCatalog(opts, p, path)

	return formatter.Success(map[string]any{
		"path":   path,
		"name":   p.Name,
		"id":     p.ID.String(),
		"preset": strings.ToLower(preset),
	})
}

func presetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
