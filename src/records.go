package mambo

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"cloud.google.com/go/storage"
	"github.com/hashicorp/go-hclog"
)

const recordsUploadTimeout = 30 * time.Second

// RunRecorder accumulates per-run loss rows in a local CSV cache and ships
// them to a GCS bucket when the run terminates. Failures here never fail a
// run; trainers log and move on.
type RunRecorder struct {
	bucket string
	path   string
	log    hclog.Logger
}

func NewRunRecorder(bucket string, log hclog.Logger) *RunRecorder {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	return &RunRecorder{
		bucket: bucket,
		path:   filepath.Join(cwd, "run_records.csv"),
		log:    log.Named("records"),
	}
}

// Append writes one "runID,step,loss,unixnano" row to the local cache.
func (r *RunRecorder) Append(runID string, step int64, loss float64) error {
	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	row := fmt.Sprintf("%s,%d,%g,%d\n", runID, step, loss, time.Now().UnixNano())
	_, err = f.WriteString(row)
	return err
}

// Upload copies the cached rows to gs://<bucket>/<runID>.csv and clears the
// cache.
func (r *RunRecorder) Upload(ctx context.Context, runID string) error {
	f, err := os.Open(r.path)
	if err != nil {
		return err
	}
	defer f.Close()

	client, err := storage.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("creating storage client: %w", err)
	}
	defer client.Close()

	objectName := fmt.Sprintf("%s.csv", runID)
	writer := client.Bucket(r.bucket).Object(objectName).NewWriter(ctx)
	if _, err := io.Copy(writer, f); err != nil {
		writer.Close()
		return fmt.Errorf("copying records to GCS: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("closing GCS writer: %w", err)
	}

	if err := os.WriteFile(r.path, []byte(""), 0644); err != nil {
		return fmt.Errorf("clearing records cache: %w", err)
	}
	r.log.Info("run records uploaded", "run", runID, "bucket", r.bucket)
	return nil
}
