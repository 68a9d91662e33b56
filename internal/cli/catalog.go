package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/forgecut/forgecut/internal/persist"
	"github.com/forgecut/forgecut/internal/store"
	"github.com/forgecut/forgecut/internal/timeline"
)

// touchCatalog records a project open/save in the catalog when one is
// configured. Catalog faults are logged, never fatal: the catalog is an
// index, not the source of truth.
func touchCatalog(opts *RootOptions, p *timeline.Project, path string) {
	cfg, err := loadConfig(opts)
	if err != nil || cfg.CatalogPath == "" {
		return
	}

	s, err := store.Open(cfg.CatalogPath)
	if err != nil {
		slog.Warn("catalog unavailable", "path", cfg.CatalogPath, "error", err)
		return
	}
	defer s.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	fp, err := persist.Fingerprint(p)
	if err != nil {
		slog.Warn("fingerprint failed", "error", err)
		return
	}

	entry := store.Entry{
		ID:          p.ID,
		Name:        p.Name,
		Path:        abs,
		Fingerprint: fp,
		LastOpened:  time.Now(),
	}
	if err := s.Touch(context.Background(), entry); err != nil {
		slog.Warn("catalog update failed", "error", err)
	}
}

// NewRecentCommand creates the recent command.
func NewRecentCommand(rootOpts *RootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:           "recent",
		Short:         "List recently opened projects",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecent(rootOpts, cmd, limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "maximum entries to list")

	return cmd
}

type recentEntry struct {
	Name       string `json:"name"`
	Path       string `json:"path"`
	LastOpened string `json:"last_opened"`
}

func runRecent(opts *RootOptions, cmd *cobra.Command, limit int) error {
	formatter := formatterFor(opts, cmd)

	cfg, err := loadConfig(opts)
	if err != nil {
		_ = formatter.Error("E_CONFIG", err.Error(), nil)
		return WrapExitError(ExitCommandError, "load config", err)
	}
	if cfg.CatalogPath == "" {
		msg := "no catalog configured: set catalog_path in the config file"
		_ = formatter.Error("E_CATALOG", msg, nil)
		return NewExitError(ExitCommandError, msg)
	}

	s, err := store.Open(cfg.CatalogPath)
	if err != nil {
		_ = formatter.Error("E_CATALOG", err.Error(), nil)
		return WrapExitError(ExitCommandError, "open catalog", err)
	}
	defer s.Close()

	entries, err := s.Recent(cmd.Context(), limit)
	if err != nil {
		_ = formatter.Error("E_CATALOG", err.Error(), nil)
		return WrapExitError(ExitCommandError, "list recent projects", err)
	}

	out := make([]recentEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, recentEntry{
			Name:       e.Name,
			Path:       e.Path,
			LastOpened: e.LastOpened.Format(time.RFC3339),
		})
	}

	if formatter.Format == "json" {
		return formatter.Success(out)
	}
	if len(out) == 0 {
		return formatter.Success("no recent projects")
	}
	for _, e := range out {
		fmt.Fprintf(formatter.Writer, "%s\t%s\t%s\n", e.LastOpened, e.Name, e.Path)
	}
	return nil
}
