package file_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sigkit/pkg/file"
)

// MockS3Client is a mock implementation of the S3Client interface
type MockS3Client struct {
	mock.Mock
}

func (m *MockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func (m *MockS3Client) HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.HeadObjectOutput), args.Error(1)
}

func (m *MockS3Client) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.DeleteObjectOutput), args.Error(1)
}

func newS3(t *testing.T, client *MockS3Client, cfg file.S3Config) *file.S3Storage {
	t.Helper()
	if cfg.Bucket == "" {
		cfg.Bucket = "sigs"
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	store, err := file.NewS3Storage(context.Background(), cfg, file.WithS3Client(client))
	require.NoError(t, err)
	return store
}

func TestNewS3Storage(t *testing.T) {
	t.Parallel()

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()
		store, err := file.NewS3Storage(context.Background(), file.S3Config{
			Bucket:      "sigs",
			Region:      "us-east-1",
			AccessKeyID: "key",
			SecretKey:   "secret",
		})
		require.NoError(t, err)
		assert.Equal(t, "https://sigs.s3.us-east-1.amazonaws.com/a.png", store.URL("a.png"))
	})

	t.Run("custom endpoint", func(t *testing.T) {
		t.Parallel()
		store := newS3(t, &MockS3Client{}, file.S3Config{Endpoint: "http://localhost:9000/", ForcePathStyle: true})
		assert.Equal(t, "http://localhost:9000/sigs/a.png", store.URL("a.png"))
	})

	t.Run("missing bucket or region", func(t *testing.T) {
		t.Parallel()
		_, err := file.NewS3Storage(context.Background(), file.S3Config{Region: "us-east-1"})
		assert.ErrorIs(t, err, file.ErrInvalidConfig)
		_, err = file.NewS3Storage(context.Background(), file.S3Config{Bucket: "sigs"})
		assert.ErrorIs(t, err, file.ErrInvalidConfig)
	})
}

func TestS3Storage_Put(t *testing.T) {
	t.Parallel()

	t.Run("uploads with prefix", func(t *testing.T) {
		t.Parallel()
		client := &MockS3Client{}
		store := newS3(t, client, file.S3Config{Prefix: "/exports/", BaseURL: "https://cdn.example.com"})

		client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
			rs, ok := in.Body.(io.ReadSeeker)
			if !ok {
				return false
			}
			body, _ := io.ReadAll(rs)
			_, _ = rs.Seek(0, io.SeekStart)
			return *in.Bucket == "sigs" &&
				*in.Key == "exports/ws/jane-lee.png" &&
				*in.ContentType == "image/png" &&
				*in.ContentLength == 3 &&
				string(body) == "png"
		}), mock.Anything).Return(&s3.PutObjectOutput{}, nil).Once()

		obj, err := store.Put(context.Background(), "ws/jane-lee.png", "image/png", []byte("png"))
		require.NoError(t, err)
		assert.Equal(t, "exports/ws/jane-lee.png", obj.Key)
		assert.Equal(t, int64(3), obj.Size)
		assert.Empty(t, obj.Location)
		assert.Equal(t, "https://cdn.example.com/exports/ws/jane-lee.png", store.URL(obj.Key))
		assert.Equal(t, "https://cdn.example.com/exports/other.png", store.URL("other.png"))
		client.AssertExpectations(t)
	})

	t.Run("rejects traversal", func(t *testing.T) {
		t.Parallel()
		client := &MockS3Client{}
		store := newS3(t, client, file.S3Config{})
		_, err := store.Put(context.Background(), "../x.png", "image/png", []byte("png"))
		assert.ErrorIs(t, err, file.ErrInvalidPath)
		client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("classifies errors", func(t *testing.T) {
		t.Parallel()
		tests := []struct {
			name string
			err  error
			want error
		}{
			{"access denied", &smithy.GenericAPIError{Code: "AccessDenied"}, file.ErrAccessDenied},
			{"slow down", &smithy.GenericAPIError{Code: "SlowDown"}, file.ErrServiceUnavailable},
			{"no bucket", &types.NoSuchBucket{}, file.ErrBucketNotFound},
			{"deadline", context.DeadlineExceeded, file.ErrOperationTimeout},
			{"canceled", context.Canceled, file.ErrOperationCanceled},
		}
		for _, tt := range tests {
			client := &MockS3Client{}
			store := newS3(t, client, file.S3Config{})
			client.On("PutObject", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)
			_, err := store.Put(context.Background(), "a.html", "text/html", []byte("<p>"))
			assert.ErrorIs(t, err, tt.want, tt.name)
		}
	})

	t.Run("unknown error keeps cause", func(t *testing.T) {
		t.Parallel()
		client := &MockS3Client{}
		store := newS3(t, client, file.S3Config{})
		cause := errors.New("boom")
		client.On("PutObject", mock.Anything, mock.Anything, mock.Anything).Return(nil, cause)
		_, err := store.Put(context.Background(), "a.html", "text/html", []byte("<p>"))
		assert.ErrorIs(t, err, cause)
	})
}

func TestS3Storage_DeleteExists(t *testing.T) {
	t.Parallel()

	t.Run("deletes existing object", func(t *testing.T) {
		t.Parallel()
		client := &MockS3Client{}
		store := newS3(t, client, file.S3Config{})
		key := mock.MatchedBy(func(in *s3.HeadObjectInput) bool { return *in.Key == "a.png" })
		client.On("HeadObject", mock.Anything, key, mock.Anything).Return(&s3.HeadObjectOutput{}, nil)
		client.On("DeleteObject", mock.Anything, mock.MatchedBy(func(in *s3.DeleteObjectInput) bool {
			return *in.Key == "a.png" && *in.Bucket == "sigs"
		}), mock.Anything).Return(&s3.DeleteObjectOutput{}, nil).Once()

		assert.True(t, store.Exists(context.Background(), "a.png"))
		require.NoError(t, store.Delete(context.Background(), "/a.png"))
		client.AssertExpectations(t)
	})

	t.Run("missing object", func(t *testing.T) {
		t.Parallel()
		client := &MockS3Client{}
		store := newS3(t, client, file.S3Config{})
		client.On("HeadObject", mock.Anything, mock.Anything, mock.Anything).Return(nil, &types.NotFound{})

		assert.False(t, store.Exists(context.Background(), "gone.png"))
		assert.ErrorIs(t, store.Delete(context.Background(), "gone.png"), file.ErrFileNotFound)
		client.AssertNotCalled(t, "DeleteObject", mock.Anything, mock.Anything, mock.Anything)
	})
}
