package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/printraster/rasterpress/internal/pipeline"
	"github.com/printraster/rasterpress/internal/rasterize"
)

func newRenderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "render <input.pdf>",
		Short:        "Render a PDF to a PWG-Raster or URF byte stream",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         runRender,
	}

	cmd.Flags().StringP("output", "o", "", "output file path (default: input path with .pwg/.urf extension)")
	cmd.Flags().Int("dpi", 300, "resolution in DPI (300, 400, or 600)")
	cmd.Flags().String("format", "pwg", "output format: pwg or urf")
	cmd.Flags().String("chrome-bin", "", "path to the Chromium/Chrome executable to use")

	return cmd
}

func runRender(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	dpi, _ := cmd.Flags().GetInt("dpi")
	formatName, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")
	chromeBin, _ := cmd.Flags().GetString("chrome-bin")

	format, err := parseFormatFlag(formatName)
	if err != nil {
		return err
	}
	if output == "" {
		output = strings.TrimSuffix(inputPath, ".pdf") + extensionFor(format)
	}

	pdfBytes, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inputPath, err)
	}

	r := rasterize.ChromeRasterizer{ChromeBin: chromeBin}
	defer rasterize.Shutdown()

	out, err := pipeline.Render(context.Background(), r, pdfBytes, dpi, dpi, format)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", inputPath, err)
	}

	if err := os.WriteFile(output, out, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}

	fmt.Printf("Wrote %s (%d bytes)\n", output, len(out))
	return nil
}

func parseFormatFlag(s string) (pipeline.Format, error) {
	switch strings.ToLower(s) {
	case "pwg":
		return pipeline.PWG, nil
	case "urf":
		return pipeline.URF, nil
	default:
		return 0, fmt.Errorf("unknown format %q: must be pwg or urf", s)
	}
}

func extensionFor(f pipeline.Format) string {
	if f == pipeline.URF {
		return ".urf"
	}
	return ".pwg"
}
