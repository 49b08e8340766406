package httpserver

import (
	"bytes"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/robalobadob/geodle/internal/store"
)

func TestResultsWorkbook(t *testing.T) {
	f, err := resultsWorkbook([]store.Result{
		{Day: "2022-04-26", Mode: "country", Code: "ML", Won: false, Guesses: 6, Best: 71},
		{Day: "2022-04-25", Mode: "county", Code: "GD", Won: true, Guesses: 1, Best: 100},
	})
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(resultsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Day", "Mode", "Answer", "Won", "Guesses", "Best %"}, rows[0])
	assert.Equal(t, []string{"2022-04-26", "country", "ML", "FALSE", "6", "71"}, rows[1])
	assert.Equal(t, []string{"2022-04-25", "county", "GD", "TRUE", "1", "100"}, rows[2])
}

func TestExportEndpoint(t *testing.T) {
	e := newTestEnv(t, nil)
	c := e.client(t)

	code, _ := e.get(t, c, "/stats/me/export")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = e.post(t, c, "/auth/signup", credentials{Username: "exporter", Password: "password123"})
	require.Equal(t, http.StatusCreated, code)
	code, _ = e.post(t, c, "/daily/guess", dailyGuessReq{Date: "2022-04-25", Code: "CF"})
	require.Equal(t, http.StatusOK, code)

	res, err := c.Get(e.ts.URL + "/stats/me/export")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, xlsxMediaType, res.Header.Get("Content-Type"))
	assert.Contains(t, res.Header.Get("Content-Disposition"), "geodle-exporter.xlsx")

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(resultsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "CF", rows[1][2])
}
