package llm

import "context"

type purposeKey struct{}

// UnlabeledPurpose is recorded for calls made without WithPurpose.
const UnlabeledPurpose = "unknown"

// WithPurpose labels the model calls made with ctx. The label groups the
// request log, e.g. "mcq" or "study-plan". An empty label is ignored.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	if purpose == "" {
		return ctx
	}
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or UnlabeledPurpose.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok {
		return v
	}
	return UnlabeledPurpose
}
