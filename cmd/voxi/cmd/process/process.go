package process

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"voxi/internal/app"
	"voxi/internal/app/export"
	"voxi/internal/app/pipeline"
	"voxi/internal/config"
)

var (
	language    string
	noTranslate bool
	outDir      string
	format      string
)

func init() {
	Cmd.Flags().StringVarP(&language, "language", "l", "", "force the transcription language hint")
	Cmd.Flags().BoolVar(&noTranslate, "no-translate", false, "skip the English translation stage")
	Cmd.Flags().StringVarP(&outDir, "outDir", "o", "", "directory for transcript output (defaults to the input file's directory)")
	Cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or txt")
}

// Cmd represents the process command
var Cmd = &cobra.Command{
	Use:   "process [files...]",
	Short: "Process audio files into speaker-labeled transcripts",
	Long: `Process audio files into speaker-labeled transcripts

- Each file is diarized, transcribed, speaker-labeled and translated
- One transcript file is written per input next to it or under --outDir`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if format != "json" && format != "txt" {
			log.Fatalf("unsupported format %q (want json or txt)", format)
		}

		cfg, err := config.Load()
		if err != nil {
			log.Fatalf("configuration error: %v", err)
		}

		application, err := app.InitializeApp(cfg)
		if err != nil {
			log.Fatalf("initialization failed: %v", err)
		}
		defer application.Close()

		progress := mpb.New(
			mpb.WithOutput(os.Stderr),
			mpb.WithRefreshRate(120 * time.Millisecond),
		)
		bar := progress.AddBar(int64(len(args)),
			mpb.PrependDecorators(
				decor.Name("processing ", decor.WC{C: decor.DindentRight}),
				decor.CountersNoUnit("(%d/%d)", decor.WCSyncWidth),
			),
			mpb.AppendDecorators(
				decor.OnComplete(decor.EwmaETA(decor.ET_STYLE_GO, 30, decor.WCSyncWidth), "done"),
			),
		)

		opts := pipeline.Options{
			Language:  language,
			Translate: !noTranslate,
		}

		failed := 0
		for _, file := range args {
			start := time.Now()
			if err := processOne(application, file, opts); err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", file, err)
				failed++
			}
			bar.EwmaIncrement(time.Since(start))
		}
		progress.Wait()

		if failed > 0 {
			log.Fatalf("%d of %d files failed", failed, len(args))
		}
	},
}

func processOne(application *app.App, file string, opts pipeline.Options) error {
	result, err := application.Pipeline.Process(context.Background(), file, opts)
	if err != nil {
		return err
	}

	outPath := outputPath(file)
	if format == "txt" {
		return export.ToTXT(result, outPath)
	}
	return export.ToJSON(result, outPath)
}

func outputPath(file string) string {
	base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file)) + "." + format
	dir := filepath.Dir(file)
	if outDir != "" {
		dir = outDir
	}
	return filepath.Join(dir, base)
}
