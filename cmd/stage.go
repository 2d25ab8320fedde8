package cmd

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/Rana718/winegen/internal/storage"
	"github.com/Rana718/winegen/internal/types"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var stageCmd = &cobra.Command{
	Use:   "stage [files...]",
	Short: "Upload generated files to an S3-compatible bucket",
	Long: `
Upload generated files under <prefix>/<run id>/ in the configured bucket.
Without arguments every file under the output directory is uploaded.

Keys come from the variables named by storage.access_key_env and
storage.secret_key_env, or the default AWS credential chain.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := newRun()
		if err != nil {
			return err
		}
		defer r.close()
		ctx := cmd.Context()

		files := args
		if len(files) == 0 {
			if files, err = listFiles(r.cfg.OutDir); err != nil {
				return err
			}
		}
		if len(files) == 0 {
			return fmt.Errorf("%w: no files under %s", types.ErrMissingInput, r.cfg.OutDir)
		}

		sc := r.cfg.Storage
		accessKey, secretKey := sc.Credentials()
		stager, err := storage.New(ctx, storage.Config{
			Bucket:       stringFlag(cmd, "bucket", sc.Bucket),
			Region:       sc.Region,
			Endpoint:     sc.Endpoint,
			Prefix:       stringFlag(cmd, "prefix", sc.Prefix),
			AccessKey:    accessKey,
			SecretKey:    secretKey,
			UsePathStyle: sc.UsePathStyle,
		}, storage.WithLogger(r.log))
		if err != nil {
			return err
		}

		if create, _ := cmd.Flags().GetBool("create-bucket"); create {
			if err := stager.EnsureBucket(ctx); err != nil {
				return err
			}
		}

		keys, err := stager.Stage(ctx, r.id, r.cfg.OutDir, files)
		for i, key := range keys {
			color.Green("☁️  %s → %s", files[i], key)
		}
		if err != nil {
			return err
		}
		color.Cyan("📦 Staged %d files under run %s", len(keys), r.id)
		return nil
	},
}

func listFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list %s: %v", types.ErrMissingInput, dir, err)
	}
	return files, nil
}

func init() {
	rootCmd.AddCommand(stageCmd)

	stageCmd.Flags().String("bucket", "", "bucket name (default storage.bucket)")
	stageCmd.Flags().String("prefix", "", "key prefix (default storage.prefix)")
	stageCmd.Flags().Bool("create-bucket", false, "create the bucket if it does not exist")
}
