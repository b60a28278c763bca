package config

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog/log"
)

// ParameterAPI is the subset of the SSM client used to read parameters.
type ParameterAPI interface {
	GetParametersByPath(ctx context.Context, params *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error)
}

// LoadSSM reads every parameter stored under prefix and returns them keyed by
// the last path segment, so /diaver/prod/JWT_SECRET becomes JWT_SECRET.
func LoadSSM(ctx context.Context, client ParameterAPI, prefix string) (map[string]string, error) {
	if prefix == "" {
		return map[string]string{}, nil
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}

	values := make(map[string]string)
	var nextToken *string
	for {
		out, err := client.GetParametersByPath(ctx, &ssm.GetParametersByPathInput{
			Path:           aws.String(prefix),
			Recursive:      aws.Bool(true),
			WithDecryption: aws.Bool(true),
			NextToken:      nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("reading ssm parameters under %s: %w", prefix, err)
		}

		for _, p := range out.Parameters {
			name := aws.ToString(p.Name)
			if name == "" {
				continue
			}
			values[path.Base(name)] = aws.ToString(p.Value)
		}

		if out.NextToken == nil || *out.NextToken == "" {
			break
		}
		nextToken = out.NextToken
	}

	log.Info().Str("prefix", prefix).Int("count", len(values)).Msg("Loaded parameters from SSM")
	return values, nil
}

// WithSSM overlays SSM parameters onto config when SSM_PARAMETER_PREFIX is set.
func WithSSM(ctx context.Context, c map[string]string) (map[string]string, error) {
	prefix := GetString(c, "SSM_PARAMETER_PREFIX", "")
	if prefix == "" {
		return c, nil
	}

	opts := []func(*awsconfig.LoadOptions) error{}
	if region := GetString(c, "AWS_REGION", ""); region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return c, fmt.Errorf("loading aws config: %w", err)
	}

	params, err := LoadSSM(ctx, ssm.NewFromConfig(awsCfg), prefix)
	if err != nil {
		return c, err
	}
	return Merge(c, params), nil
}
