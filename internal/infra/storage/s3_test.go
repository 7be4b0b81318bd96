package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/glamconnect/internal/config"
)

type fakeS3 struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, f.err
}

func TestPublicBase(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com", publicBase(config.S3Config{PublicBaseURL: "https://cdn.example.com/"}))
	assert.Equal(t, "http://minio:9000/img", publicBase(config.S3Config{Endpoint: "http://minio:9000", Bucket: "img"}))
	assert.Equal(t, "https://img.s3.eu-west-1.amazonaws.com", publicBase(config.S3Config{Bucket: "img", Region: "eu-west-1"}))
}

func TestS3Store_Put(t *testing.T) {
	fake := &fakeS3{}
	s := &S3Store{client: fake, bucket: "img", publicBase: "https://cdn.example.com"}

	u, err := s.Put(context.Background(), "services/3/a b.webp", "image/webp", []byte("data"))
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/services/3/a%20b.webp", u)
	assert.Equal(t, "img", *fake.input.Bucket)
	assert.Equal(t, "image/webp", *fake.input.ContentType)
	assert.Equal(t, []byte("data"), fake.body)
}

func TestS3Store_PutError(t *testing.T) {
	s := &S3Store{client: &fakeS3{err: errors.New("denied")}, bucket: "img", publicBase: "x"}
	_, err := s.Put(context.Background(), "k", "image/webp", nil)
	assert.Error(t, err)
}
