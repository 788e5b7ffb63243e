package minio

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	appconfig "github.com/mareknov/lab-strava/internal/config"
)

const bucketCheckTimeout = 5 * time.Second

type uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

type objectDeleter interface {
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Client хранит файлы (аватары) в S3-совместимом хранилище и реализует ports.FileStorage
type Client struct {
	uploader      uploader
	deleter       objectDeleter
	bucketName    string
	publicBaseURL string
	logger        *slog.Logger
}

// NewMinioClient создает клиент по конфигурации и при необходимости создает бакет
func NewMinioClient(ctx context.Context, cfg *appconfig.Config, logger *slog.Logger) (*Client, error) {
	s3cfg := cfg.S3
	if s3cfg.AccessKeyID == "" || s3cfg.SecretAccessKey == "" {
		return nil, fmt.Errorf("S3_ACCESS_KEY_ID and S3_SECRET_ACCESS_KEY must be set when S3_ENDPOINT is configured")
	}

	endpointURL := endpointURL(s3cfg.Endpoint, s3cfg.UseSSL)

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(s3cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(s3cfg.AccessKeyID, s3cfg.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config for object storage: %w", err)
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpointURL)
		o.UsePathStyle = true
	})

	if err := ensureBucket(ctx, s3Client, s3cfg.BucketName, s3cfg.Region, logger); err != nil {
		return nil, err
	}

	publicBase := s3cfg.PublicBaseURL
	if publicBase == "" {
		publicBase = endpointURL
	}

	return &Client{
		uploader:      manager.NewUploader(s3Client),
		deleter:       s3Client,
		bucketName:    s3cfg.BucketName,
		publicBaseURL: strings.TrimRight(publicBase, "/"),
		logger:        logger,
	}, nil
}

func endpointURL(endpoint string, useSSL bool) string {
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	if useSSL {
		return "https://" + endpoint
	}
	return "http://" + endpoint
}

func ensureBucket(ctx context.Context, client *s3.Client, bucket, region string, logger *slog.Logger) error {
	checkCtx, cancel := context.WithTimeout(ctx, bucketCheckTimeout)
	defer cancel()

	if _, err := client.HeadBucket(checkCtx, &s3.HeadBucketInput{Bucket: aws.String(bucket)}); err == nil {
		logger.Info("bucket already exists", "bucket", bucket)
		return nil
	}

	logger.Info("bucket not found, creating", "bucket", bucket)
	input := &s3.CreateBucketInput{Bucket: aws.String(bucket)}
	// us-east-1 не принимает явный LocationConstraint
	if region != "" && region != "us-east-1" {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(region),
		}
	}
	if _, err := client.CreateBucket(ctx, input); err != nil {
		return fmt.Errorf("failed to create bucket '%s': %w", bucket, err)
	}

	waiter := s3.NewBucketExistsWaiter(client)
	if err := waiter.Wait(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)}, 30*time.Second); err != nil {
		return fmt.Errorf("failed waiting for bucket '%s' to be created: %w", bucket, err)
	}
	logger.Info("bucket created", "bucket", bucket)
	return nil
}

// UploadFile загружает объект и возвращает его публичный URL
func (c *Client) UploadFile(ctx context.Context, objectKey string, fileContent io.Reader, contentType string) (string, error) {
	_, err := c.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucketName),
		Key:         aws.String(objectKey),
		Body:        fileContent,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file %s to bucket %s: %w", objectKey, c.bucketName, err)
	}

	url := c.publicURL(objectKey)
	c.logger.Info("file uploaded", "bucket", c.bucketName, "key", objectKey)
	return url, nil
}

// DeleteFile удаляет объект из бакета
func (c *Client) DeleteFile(ctx context.Context, objectKey string) error {
	_, err := c.deleter.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file %s from bucket %s: %w", objectKey, c.bucketName, err)
	}
	return nil
}

func (c *Client) publicURL(objectKey string) string {
	return fmt.Sprintf("%s/%s/%s", c.publicBaseURL, c.bucketName, objectKey)
}
