package mediastore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// S3Config holds settings for the self-hosted media store backend.
type S3Config struct {
	Region    string
	Bucket    string
	Endpoint  string // MinIO/R2 endpoint; empty for AWS
	AccessKey string
	SecretKey string
	PublicURL string
}

// S3Store implements Store on top of an S3-compatible bucket. Unlike the
// hosted backend there is no server-side transformation, so limit
// directives are applied locally before the write.
type S3Store struct {
	client    *s3.Client
	bucket    string
	endpoint  string
	publicURL string
}

// NewS3Store creates an S3/MinIO-backed media store.
func NewS3Store(cfg S3Config) (*S3Store, error) {
	customResolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		if cfg.Endpoint != "" {
			return aws.Endpoint{
				URL:               cfg.Endpoint,
				HostnameImmutable: true,
				SigningRegion:     cfg.Region,
			}, nil
		}
		return aws.Endpoint{}, &aws.EndpointNotFoundError{}
	})

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
		awsconfig.WithEndpointResolverWithOptions(customResolver),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true // Required for MinIO
	})

	return &S3Store{
		client:    client,
		bucket:    cfg.Bucket,
		endpoint:  cfg.Endpoint,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
	}, nil
}

// Query lists one page of objects under the folder prefix, newest first.
// The continuation token doubles as the cursor.
func (s *S3Store) Query(ctx context.Context, folder string, cursor string) (*QueryPage, error) {
	if strings.TrimSpace(folder) == "" {
		return nil, ErrEmptyFolder
	}

	input := &s3.ListObjectsV2Input{
		Bucket:  aws.String(s.bucket),
		Prefix:  aws.String(folder + "/"),
		MaxKeys: aws.Int32(int32(PageSize)),
	}
	if cursor != "" {
		input.ContinuationToken = aws.String(cursor)
	}

	out, err := s.client.ListObjectsV2(ctx, input)
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("media list failed: %s: %s", apiErr.ErrorCode(), apiErr.ErrorMessage())
		}
		return nil, fmt.Errorf("media list failed: %w", err)
	}

	page := &QueryPage{}
	for _, obj := range out.Contents {
		key := aws.ToString(obj.Key)
		createdAt := time.Time{}
		if obj.LastModified != nil {
			createdAt = *obj.LastModified
		}
		page.Resources = append(page.Resources, Descriptor{
			ID:        key,
			URL:       s.objectURL(key),
			SecureURL: s.objectURL(key),
			Bytes:     aws.ToInt64(obj.Size),
			Format:    formatFromKey(key),
			CreatedAt: createdAt,
		})
	}

	// Listing order is lexicographic; the contract is newest first.
	sort.Slice(page.Resources, func(i, j int) bool {
		return page.Resources[i].CreatedAt.After(page.Resources[j].CreatedAt)
	})

	if aws.ToBool(out.IsTruncated) {
		page.NextCursor = aws.ToString(out.NextContinuationToken)
	}
	return page, nil
}

// Ingest decodes the payload, applies the limit directives locally and
// writes the result under a fresh key in the folder.
func (s *S3Store) Ingest(ctx context.Context, payload []byte, folder string, opts IngestOptions) (*Descriptor, error) {
	if strings.TrimSpace(folder) == "" {
		return nil, ErrEmptyFolder
	}

	img, _, err := image.Decode(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("media upload failed: not a decodable image: %w", err)
	}

	width := img.Bounds().Dx()
	height := img.Bounds().Dy()
	if (opts.MaxWidth > 0 && width > opts.MaxWidth) || (opts.MaxHeight > 0 && height > opts.MaxHeight) {
		img = imaging.Fit(img, opts.MaxWidth, opts.MaxHeight, imaging.Lanczos)
		width = img.Bounds().Dx()
		height = img.Bounds().Dy()
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("media upload failed: encode: %w", err)
	}

	key := fmt.Sprintf("%s/%s.jpg", folder, uuid.New().String())
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("image/jpeg"),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("media upload failed: %s: %s", apiErr.ErrorCode(), apiErr.ErrorMessage())
		}
		return nil, fmt.Errorf("media upload failed: %w", err)
	}

	return &Descriptor{
		ID:        key,
		URL:       s.objectURL(key),
		SecureURL: s.objectURL(key),
		Width:     width,
		Height:    height,
		Bytes:     int64(buf.Len()),
		Format:    "jpg",
		CreatedAt: time.Now().UTC(),
	}, nil
}

func (s *S3Store) objectURL(key string) string {
	if s.publicURL != "" {
		return fmt.Sprintf("%s/%s", s.publicURL, key)
	}
	if s.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key)
}

func formatFromKey(key string) string {
	idx := strings.LastIndex(key, ".")
	if idx < 0 || idx == len(key)-1 {
		return ""
	}
	return strings.ToLower(key[idx+1:])
}
