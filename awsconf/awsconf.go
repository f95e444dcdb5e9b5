// Package awsconf builds AWS SDK configuration from an explicit credential source.
//
// Binaries pick the source: the processor function runs with HostIdentity,
// the operator CLI with Profile(--profile). Nothing here inspects the
// environment to guess where it is running.
package awsconf

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"

	"github.com/teranos/bdaresume/errors"
	"github.com/teranos/bdaresume/version"
)

type sourceKind int

const (
	kindHost sourceKind = iota
	kindProfile
	kindStatic
)

// CredentialSource selects where AWS credentials come from
type CredentialSource struct {
	kind     sourceKind
	profile  string
	provider aws.CredentialsProvider
}

// HostIdentity uses the credentials assigned to the host (Lambda execution role,
// instance profile, or the default chain on a workstation).
func HostIdentity() CredentialSource {
	return CredentialSource{kind: kindHost}
}

// Profile uses a named profile from the shared config/credentials files.
// An empty or "default" name falls back to HostIdentity, whose chain already
// reads the default profile without failing when it is absent.
func Profile(name string) CredentialSource {
	if name == "" || name == "default" {
		return HostIdentity()
	}
	return CredentialSource{kind: kindProfile, profile: name}
}

// Static uses fixed keys. Intended for local endpoints and tests.
func Static(accessKeyID, secretAccessKey, sessionToken string) CredentialSource {
	return CredentialSource{
		kind:     kindStatic,
		provider: credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, sessionToken),
	}
}

// String describes the source for logs and `bda am show`
func (s CredentialSource) String() string {
	switch s.kind {
	case kindProfile:
		return "profile:" + s.profile
	case kindStatic:
		return "static"
	default:
		return "host-identity"
	}
}

func (s CredentialSource) options() []func(*config.LoadOptions) error {
	switch s.kind {
	case kindProfile:
		return []func(*config.LoadOptions) error{config.WithSharedConfigProfile(s.profile)}
	case kindStatic:
		return []func(*config.LoadOptions) error{config.WithCredentialsProvider(s.provider)}
	default:
		return nil
	}
}

// Load resolves an aws.Config for region using src
func Load(ctx context.Context, region string, src CredentialSource) (aws.Config, error) {
	if region == "" {
		return aws.Config{}, errors.NewInvalidRequestError("aws region is required")
	}

	opts := append([]func(*config.LoadOptions) error{
		config.WithRegion(region),
		config.WithAppID(version.Get().AppID()),
	}, src.options()...)
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		err = errors.Wrapf(err, "load aws config (%s, %s)", region, src)
		if src.kind == kindProfile {
			err = errors.WithHintf(err, "check that profile %q exists in ~/.aws/config or ~/.aws/credentials", src.profile)
		}
		return aws.Config{}, err
	}
	return cfg, nil
}
