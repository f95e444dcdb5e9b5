package bda

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockdataautomationruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockdataautomationruntime/types"
	"github.com/aws/smithy-go"

	"github.com/teranos/bdaresume/errors"
)

// RuntimeAPI is the subset of the bedrockdataautomationruntime client we call
type RuntimeAPI interface {
	InvokeDataAutomationAsync(ctx context.Context, params *bedrockdataautomationruntime.InvokeDataAutomationAsyncInput, optFns ...func(*bedrockdataautomationruntime.Options)) (*bedrockdataautomationruntime.InvokeDataAutomationAsyncOutput, error)
	GetDataAutomationStatus(ctx context.Context, params *bedrockdataautomationruntime.GetDataAutomationStatusInput, optFns ...func(*bedrockdataautomationruntime.Options)) (*bedrockdataautomationruntime.GetDataAutomationStatusOutput, error)
}

// JobService submits jobs and reports their status
type JobService interface {
	Submit(ctx context.Context, req Request) (Handle, error)
	Status(ctx context.Context, h Handle) (Status, error)
}

// ProfileSource yields the data automation profile ARN for submissions
type ProfileSource interface {
	ProfileARN(ctx context.Context) (string, error)
}

// Request describes one extraction job
type Request struct {
	InputURI       string
	OutputURI      string
	BlueprintARN   string // optional
	BlueprintStage string // optional, e.g. LIVE
	ProjectARN     string // optional
	ProfileARN     string // optional, resolved through the client's ProfileSource when empty
}

// Client implements JobService on the BDA runtime API
type Client struct {
	api      RuntimeAPI
	profiles ProfileSource
}

// NewClient wraps api. profiles may be nil if every Request carries a ProfileARN.
func NewClient(api RuntimeAPI, profiles ProfileSource) *Client {
	return &Client{api: api, profiles: profiles}
}

// NewClientFromConfig builds a Client on the runtime API from an aws.Config
func NewClientFromConfig(cfg aws.Config, profiles ProfileSource) *Client {
	return NewClient(bedrockdataautomationruntime.NewFromConfig(cfg), profiles)
}

// Submit starts an async extraction
func (c *Client) Submit(ctx context.Context, req Request) (Handle, error) {
	if req.InputURI == "" || req.OutputURI == "" {
		return "", errors.NewInvalidRequestError("input and output locations are required")
	}

	profileARN := req.ProfileARN
	if profileARN == "" {
		if c.profiles == nil {
			return "", errors.NewInvalidRequestError("no data automation profile configured")
		}
		var err error
		if profileARN, err = c.profiles.ProfileARN(ctx); err != nil {
			return "", errors.Wrap(err, "resolve data automation profile")
		}
	}

	input := &bedrockdataautomationruntime.InvokeDataAutomationAsyncInput{
		InputConfiguration:       &types.InputConfiguration{S3Uri: aws.String(req.InputURI)},
		OutputConfiguration:      &types.OutputConfiguration{S3Uri: aws.String(req.OutputURI)},
		DataAutomationProfileArn: aws.String(profileARN),
	}
	if req.BlueprintARN != "" {
		bp := types.Blueprint{BlueprintArn: aws.String(req.BlueprintARN)}
		if req.BlueprintStage != "" {
			bp.Stage = types.BlueprintStage(req.BlueprintStage)
		}
		input.Blueprints = []types.Blueprint{bp}
	}
	if req.ProjectARN != "" {
		input.DataAutomationConfiguration = &types.DataAutomationConfiguration{
			DataAutomationProjectArn: aws.String(req.ProjectARN),
		}
	}

	out, err := c.api.InvokeDataAutomationAsync(ctx, input)
	if err != nil {
		return "", errors.Wrapf(classify(err), "invoke data automation for %s", req.InputURI)
	}
	if out == nil || aws.ToString(out.InvocationArn) == "" {
		return "", errors.Wrap(errors.ErrMalformedResponse, "submit response has no invocation ARN")
	}
	return Handle(aws.ToString(out.InvocationArn)), nil
}

// Status queries the current state of a job
func (c *Client) Status(ctx context.Context, h Handle) (Status, error) {
	out, err := c.api.GetDataAutomationStatus(ctx, &bedrockdataautomationruntime.GetDataAutomationStatusInput{
		InvocationArn: aws.String(string(h)),
	})
	if err != nil {
		return Status{}, errors.Wrapf(classify(err), "get status of %s", h)
	}
	if out == nil || out.Status == "" {
		return Status{}, errors.Wrapf(errors.ErrMalformedResponse, "status response for %s has no status", h)
	}

	st := Status{
		State:        JobStatus(out.Status),
		ErrorMessage: aws.ToString(out.ErrorMessage),
		ErrorType:    aws.ToString(out.ErrorType),
	}
	if out.OutputConfiguration != nil {
		st.OutputLocation = aws.ToString(out.OutputConfiguration.S3Uri)
	}
	return st, nil
}

// classify marks service errors with the matching sentinel so callers can
// tell throttling from a bad request without parsing codes
func classify(err error) error {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	switch apiErr.ErrorCode() {
	case "ThrottlingException", "ServiceQuotaExceededException", "InternalServerException", "ServiceUnavailableException":
		return errors.Mark(err, errors.ErrServiceUnavailable)
	case "ResourceNotFoundException":
		return errors.Mark(err, errors.ErrNotFound)
	case "ValidationException":
		return errors.WithHint(errors.Mark(err, errors.ErrInvalidRequest),
			"check that the input object exists and the blueprint and project ARNs are in this region")
	case "AccessDeniedException":
		return errors.WithHint(err, "the caller needs bedrock:InvokeDataAutomationAsync and bedrock:GetDataAutomationStatus")
	}
	return err
}
