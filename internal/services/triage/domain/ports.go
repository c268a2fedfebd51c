package domain

import "context"

// ServicePort is the interface implemented by the triage service
type ServicePort interface {
	Preprocess(ctx context.Context, in PreprocessInput) (PreprocessOutput, error)
	Webhook(ctx context.Context, in WebhookInput) (WebhookOutput, error)
	Metrics(ctx context.Context) (MetricsOutput, error)
}
