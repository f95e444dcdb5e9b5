package bda

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/teranos/bdaresume/errors"
)

// IdentityAPI is the subset of the STS client we call
type IdentityAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// ProfileARN formats a data automation profile ARN
func ProfileARN(region, account, profileID string) string {
	return fmt.Sprintf("arn:aws:bedrock:%s:%s:data-automation-profile/%s", region, account, profileID)
}

// ProfileResolver derives the profile ARN from the caller's account.
// The account is looked up once per process.
type ProfileResolver struct {
	api       IdentityAPI
	region    string
	profileID string

	mu  sync.Mutex
	arn string
}

// NewProfileResolver returns a resolver for profileID in region
func NewProfileResolver(api IdentityAPI, region, profileID string) *ProfileResolver {
	return &ProfileResolver{api: api, region: region, profileID: profileID}
}

// FixedProfile is a ProfileSource for an explicitly configured ARN
type FixedProfile string

func (p FixedProfile) ProfileARN(context.Context) (string, error) { return string(p), nil }

// ProfileARN implements ProfileSource
func (r *ProfileResolver) ProfileARN(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.arn != "" {
		return r.arn, nil
	}

	out, err := r.api.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", errors.Wrap(err, "get caller identity")
	}
	if out == nil || out.Account == nil || *out.Account == "" {
		return "", errors.Wrap(errors.ErrMalformedResponse, "caller identity has no account")
	}

	r.arn = ProfileARN(r.region, *out.Account, r.profileID)
	return r.arn, nil
}
