package pictures

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/qrcontacts/internal/client/config"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}
)

// S3Uploader puts pictures into an S3-compatible bucket (MinIO in
// development) and references them as s3://bucket/key.
type S3Uploader struct {
	cfg config.S3
	now func() time.Time
}

func NewS3Uploader(cfg config.S3) *S3Uploader {
	return &S3Uploader{cfg: cfg, now: time.Now}
}

// StorageKey builds a unique object key under the user's prefix.
func StorageKey(userID, ext string, d time.Time) string {
	return fmt.Sprintf("users/%s/%d/%d/%d/%v%s", userID, d.Year(), d.Month(), d.Day(), uuid.New(), strings.ToLower(ext))
}

func (u *S3Uploader) client(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(u.cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			u.cfg.AccessKey,
			u.cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if u.cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(u.cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

func (u *S3Uploader) Upload(ctx context.Context, userID, path string) (string, error) {
	ct, err := contentType(path)
	if err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("picture: %w", err)
	}
	defer f.Close()

	c, err := u.client(ctx)
	if err != nil {
		return "", fmt.Errorf("s3 config: %w", err)
	}

	key := StorageKey(userID, filepath.Ext(path), u.now())
	_, err = putObject(c, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.cfg.Bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(ct),
	})
	if err != nil {
		return "", fmt.Errorf("upload picture: %w", err)
	}

	return fmt.Sprintf("s3://%s/%s", u.cfg.Bucket, key), nil
}
