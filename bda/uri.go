package bda

import (
	"strings"

	"github.com/teranos/bdaresume/errors"
)

const s3Scheme = "s3://"

// S3URI formats an s3:// location
func S3URI(bucket, key string) string {
	return s3Scheme + bucket + "/" + key
}

// ParseS3URI splits an s3:// location into bucket and key
func ParseS3URI(uri string) (bucket, key string, err error) {
	if !strings.HasPrefix(uri, s3Scheme) {
		return "", "", errors.NewInvalidRequestError("not an s3 uri: %q", uri)
	}
	bucket, key, ok := strings.Cut(strings.TrimPrefix(uri, s3Scheme), "/")
	if !ok || bucket == "" || key == "" {
		return "", "", errors.NewInvalidRequestError("s3 uri needs a bucket and key: %q", uri)
	}
	return bucket, key, nil
}
