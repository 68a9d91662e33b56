package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forgecut/forgecut/internal/probe"
)

// NewProbeCommand creates the probe command.
func NewProbeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "probe <media-file>",
		Short:         "Probe a media file's technical metadata",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProbe(rootOpts, cmd, args[0])
		},
	}

	return cmd
}

func runProbe(opts *RootOptions, cmd *cobra.Command, path string) error {
	formatter := formatterFor(opts, cmd)

	cfg, err := loadConfig(opts)
	if err != nil {
		_ = formatter.Error("E_CONFIG", err.Error(), nil)
		return WrapExitError(ExitCommandError, "load config", err)
	}

	prober := &probe.FFProbe{Binary: cfg.FFProbeBinary}
	result, err := prober.ProbeContext(cmd.Context(), path)
	if err != nil {
		_ = formatter.Error("E_PROBE", err.Error(), nil)
		return WrapExitError(ExitCommandError, "probe media", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "duration: %s\n", result.Duration)
	if result.Width > 0 {
		fmt.Fprintf(w, "video: %dx%d @ %.4g fps (%s)\n", result.Width, result.Height, result.FPS, result.Codec)
	}
	if result.AudioChannels > 0 {
		fmt.Fprintf(w, "audio: %d channel(s) @ %d Hz\n", result.AudioChannels, result.AudioSampleRate)
	}
	return nil
}
