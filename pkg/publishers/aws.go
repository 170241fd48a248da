package publishers

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// loadAWSConfig resolves the SDK config for a sink. Static keys, when set,
// replace the default credential chain.
func loadAWSConfig(ctx context.Context, access AWSAccess) (aws.Config, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	opts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(access.Region),
	}
	if access.AccessKeyID != "" {
		opts = append(opts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(access.AccessKeyID, access.SecretAccessKey, access.SessionToken),
		))
	}

	cfg, err := awscfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	return cfg, nil
}

// baseEndpoint returns the endpoint override or nil.
func baseEndpoint(endpoint string) *string {
	if endpoint == "" {
		return nil
	}
	return aws.String(endpoint)
}

// eventAttributes lets consumers route on source or drop redeliveries without
// decoding the body.
func eventAttributes(evt Event) map[string]string {
	return map[string]string{
		"source_id": evt.SourceID,
		"event_id":  evt.EventID,
	}
}

// isFIFO reports whether a queue URL or topic ARN names a FIFO resource.
func isFIFO(target string) bool {
	return strings.HasSuffix(target, ".fifo")
}
