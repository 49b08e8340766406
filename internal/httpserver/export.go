// internal/httpserver/export.go
//
// GET /stats/me/export: the user's finished puzzles as an .xlsx workbook.

package httpserver

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/robalobadob/geodle/internal/store"
)

const (
	resultsSheet  = "Results"
	exportLimit   = 1000
	xlsxMediaType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var resultsHeader = []any{"Day", "Mode", "Answer", "Won", "Guesses", "Best %"}

// resultsWorkbook lays results out one per row under a header row.
func resultsWorkbook(results []store.Result) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", resultsSheet); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := f.SetSheetRow(resultsSheet, "A1", &resultsHeader); err != nil {
		_ = f.Close()
		return nil, err
	}
	for i, r := range results {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		row := []any{r.Day, r.Mode, r.Code, r.Won, r.Guesses, r.Best}
		if err := f.SetSheetRow(resultsSheet, cell, &row); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	return f, nil
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	me := currentUser(r)
	results, err := s.results.Results(r.Context(), me.ID, exportLimit)
	if err != nil {
		log.Error().Err(err).Str("user", me.ID).Msg("load results")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	f, err := resultsWorkbook(results)
	if err != nil {
		log.Error().Err(err).Msg("build workbook")
		writeError(w, http.StatusInternalServerError, "export_failed")
		return
	}
	defer f.Close()

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "geodle-"+me.Username+".xlsx"))
	w.Header().Set("Content-Type", xlsxMediaType)
	if err := f.Write(w); err != nil {
		log.Warn().Err(err).Msg("write workbook")
	}
}
