// internal/common/aws/clients.go
package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// Clients holds the SES and SNS clients built from one shared AWS config.
type Clients struct {
	SES *ses.Client
	SNS *sns.Client
}

// NewClients resolves credentials through the default chain (env, shared config, instance role).
func NewClients(ctx context.Context, region string) (*Clients, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return &Clients{
		SES: ses.NewFromConfig(cfg),
		SNS: sns.NewFromConfig(cfg),
	}, nil
}
