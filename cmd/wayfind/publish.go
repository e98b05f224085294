package main

import (
	"context"
	"log/slog"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/wayfind-dev/wayfind/internal/config"
	"github.com/wayfind-dev/wayfind/internal/errors"
	"github.com/wayfind-dev/wayfind/internal/publish"
)

func publishCmd() *cobra.Command {
	var (
		bucket string
		prefix string
		region string
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Upload the build output to S3",
		Long: `Upload the build output directory to the configured S3 bucket.

The bucket, key prefix, and region come from the publish section of
wayfind.json; flags override them. The route manifest is regenerated
into the output directory before uploading so the published site and
its manifest never drift apart.

Credentials come from the standard AWS chain (environment, shared
config, instance role).

Examples:
  wayfind publish
  wayfind publish --bucket=my-site --region=eu-west-1
  wayfind publish --prefix=previews/pr-42`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPublish(cmd.Context(), bucket, prefix, region)
		},
	}

	cmd.Flags().StringVarP(&bucket, "bucket", "b", "", "Destination bucket (default from wayfind.json)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Key prefix inside the bucket")
	cmd.Flags().StringVar(&region, "region", "", "Bucket region")

	return cmd
}

func runPublish(ctx context.Context, bucket, prefix, region string) error {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}

	if bucket == "" {
		bucket = cfg.Publish.Bucket
	}
	if prefix == "" {
		prefix = cfg.Publish.Prefix
	}
	if region == "" {
		region = cfg.Publish.Region
	}

	if bucket == "" {
		return errors.New("E081").
			WithSuggestion("Set publish.bucket in wayfind.json or pass --bucket")
	}

	outputDir := cfg.OutputPath()
	if _, err := os.Stat(outputDir); err != nil {
		return errors.New("E082").
			WithDetail("Output directory not found: " + outputDir).
			WithSuggestion("Build the app before publishing")
	}

	// Regenerate the manifest into the output so it ships alongside
	// the assets it describes.
	info("Refreshing route manifest...")
	if err := runGenManifest(""); err != nil {
		return err
	}

	info("Uploading %s to s3://%s/%s...", outputDir, bucket, prefix)

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return errors.New("E081").Wrap(err)
	}
	client := s3.NewFromConfig(awsCfg)

	uploader := publish.NewUploader(client, bucket, prefix, slog.Default())
	n, err := uploader.Upload(ctx, outputDir)
	if err != nil {
		return err
	}

	success("Published %d files to s3://%s/%s", n, bucket, prefix)
	return nil
}
