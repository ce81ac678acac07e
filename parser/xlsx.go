package parser

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// XLSXBackend extracts spreadsheet content (supplementary data tables often
// accompany papers) as pipe-separated rows, one block per sheet.
type XLSXBackend struct{}

func (b *XLSXBackend) Name() string { return "xlsx" }

func (b *XLSXBackend) Extract(ctx context.Context, path string) (string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return "", fmt.Errorf("opening XLSX: %w", err)
	}
	defer f.Close()

	var sb strings.Builder
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil || len(rows) == 0 {
			continue
		}
		sb.WriteString(sheet)
		sb.WriteString("\n\n")
		for _, row := range rows {
			sb.WriteString("| " + strings.Join(row, " | ") + " |\n")
		}
		sb.WriteString("\n")
	}

	if sb.Len() == 0 {
		return "", fmt.Errorf("no data found in workbook")
	}
	return sb.String(), nil
}
