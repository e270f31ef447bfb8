// Package sounds hands out time-limited download links for the ambient
// sound assets kept in an S3-compatible bucket.
package sounds

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/senseandsay/internal/common"
	sc "github.com/dmitrijs2005/senseandsay/internal/server/config"
)

// URLExpiry is how long a presigned link stays valid.
const URLExpiry = 15 * time.Minute

var slugs = map[string]string{
	"Calm":        "calm",
	"White Noise": "white-noise",
	"Rain":        "rain",
}

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// Key returns the object key of a known sound, e.g. "sounds/white-noise.mp3".
func Key(name string) (string, error) {
	slug, ok := slugs[name]
	if !ok {
		return "", fmt.Errorf("%w: unknown sound %q", common.ErrorValidation, name)
	}
	return "sounds/" + slug + ".mp3", nil
}

type Presigner struct {
	config *sc.Config
}

func NewPresigner(cfg *sc.Config) *Presigner {
	return &Presigner{config: cfg}
}

func (p *Presigner) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(p.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			p.config.S3RootUser,
			p.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(p.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// URL returns a presigned GET link for the named sound.
func (p *Presigner) URL(ctx context.Context, name string) (string, error) {
	key, err := Key(name)
	if err != nil {
		return "", err
	}

	presignClient, err := p.getPresignClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := p.config.S3Bucket
	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(URLExpiry))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
