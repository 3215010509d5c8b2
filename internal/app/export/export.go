package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/tealeg/xlsx"

	"voxi/internal/app/model"
	"voxi/internal/app/repository"
)

// ToExcel writes stored transcript records to an xlsx workbook.
func ToExcel(records []repository.Record, outputFilePath string) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Transcripts")
	if err != nil {
		return fmt.Errorf("adding sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	headerRow.AddCell().Value = "ID"
	headerRow.AddCell().Value = "File"
	headerRow.AddCell().Value = "Processed At"
	headerRow.AddCell().Value = "Duration"
	headerRow.AddCell().Value = "Language"
	headerRow.AddCell().Value = "Transcript"
	headerRow.AddCell().Value = "Translation"
	headerRow.AddCell().Value = "Error Message"

	for _, rec := range records {
		row := sheet.AddRow()
		row.AddCell().Value = fmt.Sprint(rec.ID)
		row.AddCell().Value = rec.FileName
		row.AddCell().Value = rec.CreatedAt.Format(time.RFC3339)
		row.AddCell().Value = fmt.Sprintf("%.2f", rec.Duration)
		row.AddCell().Value = rec.Language
		row.AddCell().Value = rec.Transcript
		row.AddCell().Value = rec.Translation
		row.AddCell().Value = rec.ErrorMessage
	}

	if err := file.Save(outputFilePath); err != nil {
		return fmt.Errorf("saving %s: %w", outputFilePath, err)
	}
	return nil
}

// ToJSON writes a transcript as indented JSON.
func ToJSON(t *model.Transcript, outputFilePath string) error {
	payload, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling transcript: %w", err)
	}
	if err := os.WriteFile(outputFilePath, payload, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outputFilePath, err)
	}
	return nil
}

// ToTXT writes a transcript as readable speaker turns with their English
// renditions.
func ToTXT(t *model.Transcript, outputFilePath string) error {
	f, err := os.Create(outputFilePath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outputFilePath, err)
	}
	defer f.Close()

	for _, seg := range t.Segments {
		if _, err := fmt.Fprintf(f, "[%s] (%.2f-%.2fs, %s): %s\n",
			seg.SpeakerLabel, seg.Start, seg.End, seg.Language, seg.Text); err != nil {
			return fmt.Errorf("writing %s: %w", outputFilePath, err)
		}
		if _, err := fmt.Fprintf(f, "    [EN]: %s\n", seg.Translation); err != nil {
			return fmt.Errorf("writing %s: %w", outputFilePath, err)
		}
	}
	return nil
}
