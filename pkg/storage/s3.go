package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/viper"
)

// Client uploads site assets (product images, datasheets) to S3 and serves
// them through the bucket's public URL.
type Client struct {
	s3     *s3.Client
	bucket string
	region string
}

// NewClient builds an S3 client from AWS_REGION, AWS_ACCESS_KEY,
// AWS_SECRET_KEY and S3_BUCKET_NAME.
func NewClient(ctx context.Context) (*Client, error) {
	region := viper.GetString("AWS_REGION")
	bucket := viper.GetString("S3_BUCKET_NAME")
	if region == "" || bucket == "" {
		return nil, fmt.Errorf("storage: AWS_REGION and S3_BUCKET_NAME must be set")
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			viper.GetString("AWS_ACCESS_KEY"),
			viper.GetString("AWS_SECRET_KEY"),
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: load aws config: %w", err)
	}

	return &Client{
		s3:     s3.NewFromConfig(cfg),
		bucket: bucket,
		region: region,
	}, nil
}

// Upload stores content under key and returns the public object URL.
func (c *Client) Upload(ctx context.Context, key, contentType string, content []byte) (string, error) {
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("storage: upload %s: %w", key, err)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.bucket, c.region, key), nil
}

// Delete removes the object under key.
func (c *Client) Delete(ctx context.Context, key string) error {
	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("storage: delete %s: %w", key, err)
	}
	return nil
}
