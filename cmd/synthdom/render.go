package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/vango-dev/synthdom/internal/config"
	"github.com/vango-dev/synthdom/internal/errors"
	"github.com/vango-dev/synthdom/pkg/render"
	"github.com/vango-dev/synthdom/pkg/sink"
	"github.com/vango-dev/synthdom/pkg/synthdom"
	"github.com/vango-dev/synthdom/pkg/treefile"
)

type renderOptions struct {
	configPath string
	format     string
	xhtml      bool
	document   bool
	doctype    string
	outDir     string
	name       string
	s3Bucket   string
	s3Prefix   string
	s3Region   string
}

func renderCmd() *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a tree document",
		Long: `Render a JSON or YAML tree document to markup.

The document is read from file, or from stdin when file is "-" or
omitted. Markup goes to stdout unless --out or --s3-bucket is set.

Examples:
  synthdom render page.json
  synthdom render --xhtml page.yaml
  cat page.json | synthdom render --document --out dist
  synthdom render page.json --s3-bucket my-site --s3-prefix pages/`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := "-"
			if len(args) == 1 {
				file = args[0]
			}
			return runRender(cmd.Context(), cmd, file, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to "+config.ConfigFileName)
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Document format for stdin (json or yaml)")
	cmd.Flags().BoolVar(&opts.xhtml, "xhtml", false, "Close self-closing elements with />")
	cmd.Flags().BoolVar(&opts.document, "document", false, "Prefix the output with the doctype")
	cmd.Flags().StringVar(&opts.doctype, "doctype", "", "Doctype written by --document")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "", "Write the markup into this directory")
	cmd.Flags().StringVar(&opts.name, "name", "", "Output file name (default derived from the input)")
	cmd.Flags().StringVar(&opts.s3Bucket, "s3-bucket", "", "Upload the markup to this S3 bucket")
	cmd.Flags().StringVar(&opts.s3Prefix, "s3-prefix", "", "Key prefix for --s3-bucket")
	cmd.Flags().StringVar(&opts.s3Region, "s3-region", "", "AWS region for --s3-bucket")

	return cmd
}

func runRender(ctx context.Context, cmd *cobra.Command, file string, opts renderOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadOrDefault(opts.configPath)
	if err != nil {
		return err
	}
	applyRenderFlags(cmd, cfg, opts)

	node, err := loadTree(cmd.InOrStdin(), file, opts.format)
	if err != nil {
		return err
	}

	renderer := render.NewRenderer(render.RendererConfig{
		XHTML:   cfg.Render.XHTML,
		Doctype: cfg.Render.Doctype,
	})

	var buf bytes.Buffer
	if opts.document {
		err = renderer.RenderDocument(ctx, &buf, node)
	} else {
		err = renderer.Render(ctx, &buf, node)
	}
	if err != nil {
		return err
	}

	name := outputName(file, opts.name, cfg.Render.XHTML)

	outputs, err := outputSinks(ctx, cmd, cfg)
	if err != nil {
		return err
	}
	for _, out := range outputs {
		if err := out.sink.Write(ctx, name, buf.Bytes()); err != nil {
			return err
		}
		if out.describe != nil {
			success("Wrote %s", out.describe(name))
		}
	}
	return nil
}

// applyRenderFlags lets explicitly set flags override the config file.
func applyRenderFlags(cmd *cobra.Command, cfg *config.Config, opts renderOptions) {
	flags := cmd.Flags()
	if flags.Changed("xhtml") {
		cfg.Render.XHTML = opts.xhtml
	}
	if flags.Changed("doctype") {
		cfg.Render.Doctype = opts.doctype
	}
	if flags.Changed("out") {
		cfg.Output.Dir = opts.outDir
	}
	if flags.Changed("s3-bucket") {
		cfg.Output.S3.Bucket = opts.s3Bucket
	}
	if flags.Changed("s3-prefix") {
		cfg.Output.S3.Prefix = opts.s3Prefix
	}
	if flags.Changed("s3-region") {
		cfg.Output.S3.Region = opts.s3Region
	}
}

// loadTree reads a tree document from file, or from stdin when file is "-".
func loadTree(stdin io.Reader, file, format string) (synthdom.Node, error) {
	if file != "-" {
		if format == "" {
			return treefile.Load(file)
		}
		f, err := os.Open(file)
		if err != nil {
			return nil, errors.New("E100").WithDetail("Cannot read " + file + ".").Wrap(err)
		}
		defer f.Close()
		return treefile.DecodeReader(f, treefile.Format(strings.ToLower(format)))
	}

	if format == "" {
		format = string(treefile.FormatJSON)
	}
	return treefile.DecodeReader(stdin, treefile.Format(strings.ToLower(format)))
}

// outputName derives the stored file name from the input path.
func outputName(file, name string, xhtml bool) string {
	if name != "" {
		return name
	}
	ext := ".html"
	if xhtml {
		ext = ".xhtml"
	}
	if file == "-" {
		return "index" + ext
	}
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ext
}

// output is a destination and, for non-stdout sinks, how to report it.
type output struct {
	sink     sink.Sink
	describe func(name string) string
}

// outputSinks returns the configured destinations. Stdout is used when
// no other destination is set.
func outputSinks(ctx context.Context, cmd *cobra.Command, cfg *config.Config) ([]output, error) {
	var outputs []output
	if dir := cfg.Output.Dir; dir != "" {
		outputs = append(outputs, output{
			sink:     sink.NewFileSink(dir),
			describe: func(name string) string { return filepath.Join(dir, name) },
		})
	}
	if s3cfg := cfg.Output.S3; s3cfg.Bucket != "" {
		client, err := newS3Client(ctx, s3cfg.Region)
		if err != nil {
			return nil, err
		}
		s3Sink := sink.NewS3Sink(client, s3cfg.Bucket, s3cfg.Prefix, cfg.Render.XHTML)
		outputs = append(outputs, output{
			sink:     s3Sink,
			describe: func(name string) string { return "s3://" + s3cfg.Bucket + "/" + s3Sink.Key(name) },
		})
	}
	if len(outputs) == 0 {
		outputs = append(outputs, output{sink: &sink.WriterSink{W: cmd.OutOrStdout()}})
	}
	return outputs, nil
}

// newS3Client builds an S3 client from the default AWS configuration
// chain: environment, shared config and credentials files, SSO and
// instance roles. A non-empty region overrides the resolved one.
func newS3Client(ctx context.Context, region string) (*s3.Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.New("E122").Wrap(err).
			WithSuggestion("Check AWS_PROFILE and the shared AWS config files")
	}
	return s3.NewFromConfig(awsCfg), nil
}
