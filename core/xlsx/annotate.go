package xlsx

import (
	"fmt"

	"license-reconciler/core/reconcile"

	"github.com/xuri/excelize/v2"
)

// outcomeColors maps each outcome to its fill color (ARGB without alpha).
// This is the only place colors exist; the engine deals in categories.
var outcomeColors = map[reconcile.Outcome]string{
	reconcile.OutcomeNotFound:         "FF0000",
	reconcile.OutcomeQuantityMismatch: "0000FF",
	reconcile.OutcomeDateIssue:        "FFFF00",
	reconcile.OutcomeOK:               "00FF00",
}

// Annotate colors every reconciled row of the PRE-EA sheet in place. The
// workbook otherwise keeps all of its original content, so the annotated copy
// stays usable as the source-of-record file. Callers save or stream the file
// afterwards.
func Annotate(f *excelize.File, results []reconcile.RowResult) error {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return fmt.Errorf("workbook has no sheets")
	}
	sheet := sheets[0]

	cols, err := f.GetCols(sheet)
	if err != nil {
		return fmt.Errorf("failed to inspect sheet %q: %w", sheet, err)
	}
	width := len(cols)
	if width == 0 {
		width = 1
	}

	styles := make(map[reconcile.Outcome]int, len(outcomeColors))
	for outcome, color := range outcomeColors {
		styleID, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
		})
		if err != nil {
			return fmt.Errorf("failed to create %s style: %w", outcome, err)
		}
		styles[outcome] = styleID
	}

	for _, r := range results {
		if r.Item.Row <= 0 {
			continue
		}
		start, err := excelize.CoordinatesToCellName(1, r.Item.Row)
		if err != nil {
			return err
		}
		end, err := excelize.CoordinatesToCellName(width, r.Item.Row)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, start, end, styles[r.Outcome]); err != nil {
			return fmt.Errorf("failed to color row %d: %w", r.Item.Row, err)
		}
	}

	return nil
}
