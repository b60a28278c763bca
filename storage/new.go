package storage

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rpupo63/diaver-site-backend/config"
	"github.com/rs/zerolog/log"
)

const (
	BackendDisk = "disk"
	BackendS3   = "s3"
)

// New builds the file store selected by UPLOAD_BACKEND.
func New(ctx context.Context, c map[string]string) (FileStore, error) {
	backend := config.GetString(c, "UPLOAD_BACKEND", BackendDisk)
	switch backend {
	case BackendDisk:
		dir := config.GetString(c, "UPLOAD_DIR", "frontend/assets/presentations")
		log.Info().Str("backend", backend).Str("dir", dir).Msg("Using disk file storage")
		return NewDiskStore(dir), nil
	case BackendS3:
		bucket := config.GetString(c, "S3_BUCKET", "")
		if bucket == "" {
			return nil, fmt.Errorf("S3_BUCKET is required when UPLOAD_BACKEND=s3")
		}
		var opts []func(*awsconfig.LoadOptions) error
		if region := config.GetString(c, "AWS_REGION", ""); region != "" {
			opts = append(opts, awsconfig.WithRegion(region))
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("loading aws config: %w", err)
		}
		prefix := config.GetString(c, "S3_PREFIX", "presentations")
		log.Info().Str("backend", backend).Str("bucket", bucket).Str("prefix", prefix).Msg("Using S3 file storage")
		return NewS3Store(s3.NewFromConfig(awsCfg), bucket, prefix), nil
	default:
		return nil, fmt.Errorf("unknown UPLOAD_BACKEND %q", backend)
	}
}
