package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/argus-sec/argus/pkg/cli/config"
	"github.com/argus-sec/argus/pkg/domain/types"
	"github.com/argus-sec/argus/pkg/repository/memory"
	"github.com/argus-sec/argus/pkg/usecase"
)

// cmdExtract runs the extraction pipeline once against a local file or
// stdin and prints the parsed report. Nothing is persisted beyond the
// process; it's a way to try prompts and models without a server.
func cmdExtract() *cli.Command {
	var inputPath string
	var llmCfg config.LLM
	var mitreCfg config.Mitre

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i"},
			Usage:       "Report text file to extract from (stdin when unset)",
			Destination: &inputPath,
		},
	}
	flags = append(flags, llmCfg.Flags()...)
	flags = append(flags, mitreCfg.Flags()...)

	return &cli.Command{
		Name:    "extract",
		Aliases: []string{"x"},
		Usage:   "Extract a single report from a file or stdin",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			var data []byte
			var err error
			if inputPath != "" {
				data, err = os.ReadFile(inputPath)
				if err != nil {
					return goerr.Wrap(err, "failed to read input file", goerr.V("path", inputPath))
				}
			} else {
				data, err = io.ReadAll(os.Stdin)
				if err != nil {
					return goerr.Wrap(err, "failed to read stdin")
				}
			}

			llmClient, err := llmCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure LLM provider")
			}

			catalog, err := mitreCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load MITRE catalog")
			}

			repo := memory.New()
			ucOpts := []usecase.Option{}
			if catalog != nil {
				ucOpts = append(ucOpts, usecase.WithMitreCatalog(catalog))
			}
			uc := usecase.New(repo, llmClient, ucOpts...)

			result, err := uc.Report.Extract(ctx, types.UserID("cli"), string(data))
			if err != nil {
				return err
			}

			report, err := uc.Report.GetReport(ctx, result.ReportID)
			if err != nil {
				return err
			}

			title := color.New(color.FgCyan, color.Bold)
			label := color.New(color.FgYellow)

			title.Println(report.Title)
			fmt.Println(report.Summary)
			fmt.Println()

			label.Println("IOCs:")
			if len(report.IOCs) == 0 {
				fmt.Println("  (none)")
			}
			for _, ioc := range report.IOCs {
				fmt.Printf("  - %s\n", ioc)
			}
			fmt.Println()

			label.Println("MITRE:")
			if len(report.MitreTags) == 0 {
				fmt.Println("  (none)")
			}
			for _, annotation := range uc.Report.AnnotateMitre(report) {
				if annotation.Name != "" {
					fmt.Printf("  - %s (%s)\n", annotation.Tag, annotation.Name)
				} else {
					fmt.Printf("  - %s\n", annotation.Tag)
				}
			}

			return nil
		},
	}
}
