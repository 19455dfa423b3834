package s3

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"bouncer-service/internal/config"
)

const (
	emptyAWSSessionToken = ""
	avatarKeyPrefix      = "avatars/"

	errFailedCreateAWSSessionFmt          = "failed to create AWS session: %w"
	errFailedGeneratePresignedUploadFmt   = "failed to generate presigned upload URL: %w"
	errFailedGeneratePresignedDownloadFmt = "failed to generate presigned download URL: %w"
)

// Client issues presigned URLs for user avatar objects. Uploads go
// straight to S3; the service only stores the resulting object URL.
type Client struct {
	svc       *s3.S3
	bucket    string
	urlExpiry time.Duration
}

func NewClient(cfg *config.AWSConfig, urlExpiry time.Duration) (*Client, error) {
	awsConfig := &aws.Config{Region: aws.String(cfg.Region)}
	if cfg.AccessKeyID != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			emptyAWSSessionToken,
		)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf(errFailedCreateAWSSessionFmt, err)
	}

	return &Client{
		svc:       s3.New(sess),
		bucket:    cfg.AvatarBucket,
		urlExpiry: urlExpiry,
	}, nil
}

// AvatarUploadURL returns a presigned PUT URL and the object key for the
// user's avatar.
func (c *Client) AvatarUploadURL(ctx context.Context, userID, contentType string) (string, string, error) {
	key := avatarKeyPrefix + userID

	req, _ := c.svc.PutObjectRequest(&s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	})
	req.SetContext(ctx)

	url, err := req.Presign(c.urlExpiry)
	if err != nil {
		return "", "", fmt.Errorf(errFailedGeneratePresignedUploadFmt, err)
	}

	return url, key, nil
}

// AvatarDownloadURL returns a presigned GET URL for the user's avatar
func (c *Client) AvatarDownloadURL(ctx context.Context, userID string) (string, error) {
	req, _ := c.svc.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(avatarKeyPrefix + userID),
	})
	req.SetContext(ctx)

	url, err := req.Presign(c.urlExpiry)
	if err != nil {
		return "", fmt.Errorf(errFailedGeneratePresignedDownloadFmt, err)
	}

	return url, nil
}
