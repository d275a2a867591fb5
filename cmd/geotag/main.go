// Command geotag fills missing gallery coordinates from the GPS tags of the
// images themselves and rewrites the metadata file when anything changed.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/samirrijal/skyatlas/internal/adapters/exifgps"
	"github.com/samirrijal/skyatlas/internal/adapters/filestore"
	"github.com/samirrijal/skyatlas/internal/core/usecases"
	"github.com/samirrijal/skyatlas/internal/pkg/config"
	"github.com/samirrijal/skyatlas/internal/pkg/logging"
)

func main() {
	cfg, err := config.Load("skyatlas-geotag")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(cfg).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	var (
		metaFile  string
		publicDir string
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "geotag",
		Short: "Fill missing gallery coordinates from image GPS metadata",
		Long: `Reads the gallery metadata file, looks up every item without coordinates
under the public directory (first at <public>/<src>, then <public>/images/<name>)
and copies the EXIF GPS position into the item. The file is rewritten only if
at least one item was updated.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := cfg.Log.Level
			if verbose {
				level = "debug"
			}
			logging.Setup(level, "text")

			store, err := filestore.Open(metaFile)
			if err != nil {
				return fmt.Errorf("gallery: %w", err)
			}

			svc := usecases.NewGeotagService(store, exifgps.New(publicDir))
			report, err := svc.Fill(cmd.Context())
			if err != nil {
				return fmt.Errorf("geotag: %w", err)
			}

			slog.Info("geotag finished",
				"updated", report.Updated,
				"already_tagged", report.Complete,
				"no_gps", report.NoGPS,
				"missing", report.Missing,
				"failed", report.Failed,
			)
			if report.Updated > 0 {
				cmd.Printf("Updated %d entries in %s\n", report.Updated, metaFile)
			} else {
				cmd.Println("No updates necessary.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&metaFile, "meta", cfg.Gallery.MetaFile, "gallery metadata JSON file")
	cmd.Flags().StringVar(&publicDir, "public", cfg.Gallery.PublicDir, "directory the image src paths are relative to")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log every image looked up")
	return cmd
}
