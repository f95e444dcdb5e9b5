package bda

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/teranos/bdaresume/errors"
)

const (
	// MetadataFile is what the service reports as a job's output location
	MetadataFile = "job_metadata.json"
	// ResultPath is the custom-output result relative to the metadata prefix
	ResultPath = "0/custom_output/0/result.json"
)

var (
	ErrMissingOutputLocation = errors.Mark(errors.New("status response has no output location"), errors.ErrMalformedResponse)
	ErrMalformedLocation     = errors.Mark(errors.New("output location is not a job_metadata.json or prefix"), errors.ErrMalformedResponse)
	ErrMalformedResult       = errors.Mark(errors.New("result is not well-formed JSON"), errors.ErrMalformedResponse)
)

// ResultLocation maps a job_metadata.json location to the structured result
// under the same prefix. A prefix ending in "/" gets ResultPath appended.
func ResultLocation(metadataURI string) (string, error) {
	if _, _, err := ParseS3URI(metadataURI); err != nil {
		return "", errors.WithSecondaryError(errors.Wrapf(ErrMalformedLocation, "%q", metadataURI), err)
	}
	switch {
	case strings.HasSuffix(metadataURI, "/"+MetadataFile):
		return strings.TrimSuffix(metadataURI, MetadataFile) + ResultPath, nil
	case strings.HasSuffix(metadataURI, "/"):
		return metadataURI + ResultPath, nil
	}
	return "", errors.Wrapf(ErrMalformedLocation, "%q", metadataURI)
}

// resultBase names the local copy after the directory holding the metadata
func resultBase(metadataURI string) string {
	prefix := strings.TrimSuffix(strings.TrimSuffix(metadataURI, MetadataFile), "/")
	_, key, _ := strings.Cut(strings.TrimPrefix(prefix, s3Scheme), "/")
	if key == "" {
		return "result"
	}
	return path.Base(key)
}

// ObjectGetter is the subset of the S3 client used to download results
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// StatusReader reports job status
type StatusReader interface {
	Status(ctx context.Context, h Handle) (Status, error)
}

// Result is a downloaded and parsed extraction result
type Result struct {
	Handle    Handle
	SourceURI string
	LocalPath string
	Data      map[string]any
}

// Fetcher downloads extraction results
type Fetcher struct {
	jobs    StatusReader
	objects ObjectGetter
}

// NewFetcher creates a Fetcher
func NewFetcher(jobs StatusReader, objects ObjectGetter) *Fetcher {
	return &Fetcher{jobs: jobs, objects: objects}
}

// Fetch locates h's result, saves it to dir/<base>.json and parses it
func (f *Fetcher) Fetch(ctx context.Context, h Handle, dir string) (*Result, error) {
	st, err := f.jobs.Status(ctx, h)
	if err != nil {
		return nil, err
	}
	if st.OutputLocation == "" {
		return nil, errors.Wrapf(ErrMissingOutputLocation, "%s (status %s)", h, st.State)
	}

	uri, err := ResultLocation(st.OutputLocation)
	if err != nil {
		return nil, err
	}
	bucket, key, err := ParseS3URI(uri)
	if err != nil {
		return nil, err
	}

	obj, err := f.objects.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "download %s", uri)
	}
	defer obj.Body.Close()

	body, err := io.ReadAll(obj.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", uri)
	}

	var data map[string]any
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, errors.WithSecondaryError(errors.Wrapf(ErrMalformedResult, "%s", uri), err)
	}
	if data == nil {
		return nil, errors.Wrapf(ErrMalformedResult, "%s is null", uri)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "create results directory %s", dir)
	}
	localPath := filepath.Join(dir, resultBase(st.OutputLocation)+".json")
	if err := os.WriteFile(localPath, body, 0644); err != nil {
		return nil, errors.Wrapf(err, "write %s", localPath)
	}

	return &Result{Handle: h, SourceURI: uri, LocalPath: localPath, Data: data}, nil
}
