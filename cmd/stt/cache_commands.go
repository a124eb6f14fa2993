package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"parakeet-stt/internal/config"
	"parakeet-stt/internal/fileutil"
	"parakeet-stt/internal/transcriptcache"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the transcript cache",
	}
	cacheCmd.AddCommand(newCacheListCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))
	return cacheCmd
}

func newCacheListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached transcripts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !cfg.Cache.Enabled {
				fmt.Fprintln(out, "Transcript cache is disabled (set [cache] enabled = true)")
			}
			if !fileutil.Exists(cfg.Cache.Path) {
				fmt.Fprintf(out, "No cached transcripts (%s)\n", cfg.Cache.Path)
				return nil
			}

			store, err := transcriptcache.Open(cfg.Cache.Path)
			if err != nil {
				return fmt.Errorf("open transcript cache: %w", err)
			}
			defer store.Close()

			entries, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintf(out, "No cached transcripts (%s)\n", cfg.Cache.Path)
				return nil
			}
			fmt.Fprintln(out, renderCacheTable(entries))
			return nil
		},
	}
}

func renderCacheTable(entries []transcriptcache.Entry) string {
	columns := []tableColumn{
		{header: "Created"},
		{header: "Source", maxWidth: 40},
		{header: "Model"},
		{header: "Size", numeric: true},
		{header: "Hits", numeric: true},
		{header: "Digest"},
	}
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		digest := entry.SHA256
		if len(digest) > 12 {
			digest = digest[:12]
		}
		rows = append(rows, []string{
			formatCacheTime(entry.CreatedAt),
			filepath.Base(entry.SourcePath),
			entry.Model,
			humanize.IBytes(uint64(max(entry.SourceSize, 0))),
			strconv.Itoa(entry.Hits),
			digest,
		})
	}
	return renderTable(columns, rows)
}

func formatCacheTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	var purge bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached transcripts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if purge {
				return purgeCache(cfg, out)
			}
			if !fileutil.Exists(cfg.Cache.Path) {
				fmt.Fprintln(out, "Transcript cache is already empty")
				return nil
			}

			store, err := transcriptcache.Open(cfg.Cache.Path)
			if err != nil {
				return fmt.Errorf("open transcript cache: %w (use --purge to delete the database)", err)
			}
			defer store.Close()

			removed, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Removed %d cached transcript(s)\n", removed)
			return nil
		},
	}
	cmd.Flags().BoolVar(&purge, "purge", false, "Delete the cache database file instead of emptying it")
	return cmd
}

func purgeCache(cfg *config.Config, out io.Writer) error {
	if err := transcriptcache.Purge(cfg.Cache.Path); err != nil {
		return err
	}
	fmt.Fprintf(out, "Deleted %s\n", cfg.Cache.Path)
	return nil
}
