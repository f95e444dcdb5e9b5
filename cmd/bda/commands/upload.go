package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/bdaresume/display"
	"github.com/teranos/bdaresume/errors"
	"github.com/teranos/bdaresume/upload"
)

// UploadCmd uploads resumes to the input prefix
var UploadCmd = &cobra.Command{
	Use:   "upload <file>...",
	Short: "Upload resumes to the input prefix",
	Long: `Upload local resumes under storage.input_prefix. The bucket notification
starts processing as soon as each object lands.

Files with unsupported extensions or over storage.max_file_size_mb are
rejected before any upload.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUpload,
}

// WatchCmd uploads resumes as they appear in a directory
var WatchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Upload resumes dropped into a directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	UploadCmd.Flags().String("bucket", "", "Bucket name (default: from stack outputs)")
	WatchCmd.Flags().String("bucket", "", "Bucket name (default: from stack outputs)")
}

type uploadResult struct {
	File  string `json:"file"`
	Key   string `json:"key,omitempty"`
	Error string `json:"error,omitempty"`
}

func newUploader(cmd *cobra.Command) (*upload.Uploader, error) {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	ids, err := resolveOutputs(ctx, cmd, cfg, hasBucket)
	if err != nil {
		return nil, err
	}
	if err := requireBucket(ids); err != nil {
		return nil, err
	}
	awsCfg, err := awsConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return upload.New(s3.NewFromConfig(awsCfg), ids.BucketName, cfg.Storage), nil
}

func runUpload(cmd *cobra.Command, args []string) error {
	up, err := newUploader(cmd)
	if err != nil {
		return err
	}

	var results []uploadResult
	failed := 0
	for _, path := range args {
		key, err := up.Upload(cmd.Context(), path)
		r := uploadResult{File: path, Key: key}
		if err != nil {
			failed++
			r.Error = err.Error()
		}
		results = append(results, r)
	}

	if display.ShouldOutputJSON(cmd) {
		if err := display.OutputJSON(results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if r.Error != "" {
				pterm.Error.Printfln("%s: %s", r.File, r.Error)
			} else {
				pterm.Success.Printfln("%s -> %s", r.File, r.Key)
			}
		}
	}

	if failed > 0 {
		return errors.Newf("%d of %d uploads failed", failed, len(args))
	}
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	up, err := newUploader(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := upload.NewWatcher(up, args[0])
	w.OnUpload = func(path, key string, err error) {
		if err != nil {
			pterm.Error.Printfln("%s: %s", path, err)
			return
		}
		pterm.Success.Printfln("%s -> %s", path, key)
	}
	pterm.Info.Printfln("Watching %s (Ctrl-C to stop)", args[0])
	return w.Run(ctx)
}
