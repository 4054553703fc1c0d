package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetry(t *testing.T) {
	calls := 0
	got, err := retry(3, func() (string, error) {
		calls++
		if calls < 2 {
			return "", errors.New("transient")
		}
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 2, calls)
}

func TestRetryGivesUp(t *testing.T) {
	errBoom := errors.New("boom")
	calls := 0
	got, err := retry(2, func() (int, error) {
		calls++
		return 42, errBoom
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)
	assert.Zero(t, got)
	assert.Equal(t, 2, calls)
}

func newTestBucket(t *testing.T, handler http.HandlerFunc) *r2Bucket {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := s3.New(s3.Options{
		BaseEndpoint: aws.String(srv.URL),
		Region:       "auto",
		Credentials:  credentials.NewStaticCredentialsProvider("access", "secret", ""),
		UsePathStyle: true,
	})
	return &r2Bucket{client: client, name: "resumes"}
}

func TestR2BucketFetch(t *testing.T) {
	var gotPath string
	bucket := newTestBucket(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4 resume"))
	})

	data, err := bucket.Fetch(context.Background(), "uploads/jane.pdf")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 resume", string(data))
	assert.Equal(t, "/resumes/uploads/jane.pdf", gotPath)
}

func TestR2BucketFetchMissingObject(t *testing.T) {
	bucket := newTestBucket(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>missing</Message></Error>`))
	})

	_, err := bucket.Fetch(context.Background(), "uploads/missing.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "uploads/missing.pdf")
}
