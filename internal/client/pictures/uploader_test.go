package pictures

import (
	"context"
	"errors"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/qrcontacts/internal/client/config"
)

func writePicture(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("\x89PNG fake"), 0o600))
	return path
}

func TestNew_PicksUploader(t *testing.T) {
	assert.IsType(t, LocalUploader{}, New(config.S3{}, ""))
	assert.IsType(t, &S3Uploader{}, New(config.S3{Bucket: "pics"}, ""))
}

func TestLocalUploader(t *testing.T) {
	path := writePicture(t, "me.PNG")
	dir := t.TempDir()

	ref, err := LocalUploader{Dir: dir}.Upload(context.Background(), "u1", path)
	require.NoError(t, err)

	u, err := url.Parse(ref)
	require.NoError(t, err)
	assert.Equal(t, "file", u.Scheme)
	assert.True(t, strings.HasPrefix(filepath.FromSlash(u.Path), filepath.Join(dir, "u1")), ref)
	assert.True(t, strings.HasSuffix(u.Path, ".png"), ref)

	b, err := os.ReadFile(filepath.FromSlash(u.Path))
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG fake", string(b))
}

func TestLocalUploader_SignedOutUsesLocalDir(t *testing.T) {
	dir := t.TempDir()

	ref, err := LocalUploader{Dir: dir}.Upload(context.Background(), "", writePicture(t, "me.gif"))
	require.NoError(t, err)
	assert.Contains(t, ref, "/local/")
}

func TestLocalUploader_Errors(t *testing.T) {
	ctx := context.Background()

	local := LocalUploader{Dir: t.TempDir()}

	_, err := local.Upload(ctx, "u1", writePicture(t, "notes.txt"))
	require.ErrorIs(t, err, ErrNotImage)

	_, err = local.Upload(ctx, "u1", filepath.Join(t.TempDir(), "missing.png"))
	require.ErrorIs(t, err, os.ErrNotExist)

	dir := filepath.Join(t.TempDir(), "dir.png")
	require.NoError(t, os.Mkdir(dir, 0o700))
	_, err = local.Upload(ctx, "u1", dir)
	require.Error(t, err)
}

func stubS3(t *testing.T) *s3.PutObjectInput {
	t.Helper()

	origLoad, origNew, origPut := loadDefaultAWSConfig, newS3ClientFromConfig, putObject
	t.Cleanup(func() {
		loadDefaultAWSConfig, newS3ClientFromConfig, putObject = origLoad, origNew, origPut
	})

	loadDefaultAWSConfig = func(_ context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Equal(t, "eu-west-1", lo.Region)
		require.NotNil(t, lo.Credentials)
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(_ aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		var opts s3.Options
		for _, fn := range optFns {
			fn(&opts)
		}
		require.NotNil(t, opts.BaseEndpoint)
		assert.Equal(t, "http://127.0.0.1:9000", *opts.BaseEndpoint)
		assert.True(t, opts.UsePathStyle)
		return &s3.Client{}
	}

	captured := &s3.PutObjectInput{}
	putObject = func(_ *s3.Client, _ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		body, err := io.ReadAll(in.Body)
		require.NoError(t, err)
		assert.Equal(t, "\x89PNG fake", string(body))
		*captured = *in
		return &s3.PutObjectOutput{}, nil
	}
	return captured
}

func testS3Config() config.S3 {
	return config.S3{
		Endpoint:  "http://127.0.0.1:9000",
		Region:    "eu-west-1",
		Bucket:    "pics",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
	}
}

func TestS3Uploader_Upload(t *testing.T) {
	captured := stubS3(t)

	u := NewS3Uploader(testS3Config())
	u.now = func() time.Time { return time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC) }

	ref, err := u.Upload(context.Background(), "u1", writePicture(t, "me.jpg"))
	require.NoError(t, err)

	require.NotNil(t, captured.Key)
	assert.True(t, strings.HasPrefix(*captured.Key, "users/u1/2025/3/4/"), *captured.Key)
	assert.True(t, strings.HasSuffix(*captured.Key, ".jpg"))
	assert.Equal(t, "pics", aws.ToString(captured.Bucket))
	assert.Equal(t, "image/jpeg", aws.ToString(captured.ContentType))
	assert.Equal(t, "s3://pics/"+*captured.Key, ref)
}

func TestS3Uploader_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("not an image", func(t *testing.T) {
		_, err := NewS3Uploader(testS3Config()).Upload(ctx, "u1", writePicture(t, "a.pdf"))
		require.ErrorIs(t, err, ErrNotImage)
	})

	t.Run("config error", func(t *testing.T) {
		orig := loadDefaultAWSConfig
		t.Cleanup(func() { loadDefaultAWSConfig = orig })
		loadDefaultAWSConfig = func(context.Context, ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
			return aws.Config{}, errors.New("boom")
		}

		_, err := NewS3Uploader(testS3Config()).Upload(ctx, "u1", writePicture(t, "a.png"))
		require.ErrorContains(t, err, "s3 config")
	})

	t.Run("put error", func(t *testing.T) {
		stubS3(t)
		putObject = func(*s3.Client, context.Context, *s3.PutObjectInput, ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
			return nil, errors.New("denied")
		}

		_, err := NewS3Uploader(testS3Config()).Upload(ctx, "u1", writePicture(t, "a.png"))
		require.ErrorContains(t, err, "denied")
	})
}
