package llm

import "context"

// Purpose labels tag each request in the event log so usage can be split
// by feature.
const (
	PurposeQuestion = "question-gen"
	PurposeExplore  = "explore"
	purposeUnknown  = "unknown"
)

type purposeCtxKey struct{}

func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeCtxKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	p, _ := ctx.Value(purposeCtxKey{}).(string)
	if p == "" {
		return purposeUnknown
	}
	return p
}
