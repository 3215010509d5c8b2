package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"voxi/cmd/voxi/cmd/export"
	"voxi/cmd/voxi/cmd/process"
	"voxi/cmd/voxi/cmd/serve"
	"voxi/cmd/voxi/cmd/version"
)

var Verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "voxi",
	Short: "Speaker-diarized audio transcription and translation",
	Long: `Voxi turns one audio file into a speaker-labeled transcript.
- Diarize the recording into speaker turns
- Transcribe and language-tag each turn
- Merge consecutive turns and translate to English`,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(process.Cmd)
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(export.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "V", false, "verbose output")
}
