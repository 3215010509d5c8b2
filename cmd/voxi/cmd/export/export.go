package export

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"voxi/internal/app"
	appexport "voxi/internal/app/export"
	"voxi/internal/config"
)

var (
	outputFilePath string
	limit          int
)

func init() {
	Cmd.Flags().StringVarP(&outputFilePath, "outputFilePath", "o", "", "set outputFilePath")
	Cmd.Flags().IntVarP(&limit, "limit", "n", 1000, "maximum number of transcripts to export")

	Cmd.MarkFlagRequired("outputFilePath")
}

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored transcripts to excel",
	Long: `Export stored transcripts to excel

- Writes the most recent transcripts from the database into one sheet`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			log.Fatalf("configuration error: %v", err)
		}

		application, err := app.InitializeApp(cfg)
		if err != nil {
			log.Fatalf("initialization failed: %v", err)
		}
		defer application.Close()

		records, err := application.DAO.List(context.Background(), limit, 0)
		if err != nil {
			log.Fatal(err)
		}

		if err := appexport.ToExcel(records, outputFilePath); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("export finished, exported file path: %v\n", outputFilePath)
	},
}
