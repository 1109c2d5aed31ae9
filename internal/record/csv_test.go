package record

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	records := []Record{
		{ID: 2, StudentID: "S2", Name: "Bob", ClassName: "Class 2", Date: "2024-01-06"},
		{ID: 1, StudentID: "S1", Name: "Alice, Jr.", ClassName: "Class 1", Date: "2024-01-05"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, records))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, CSVHeader, rows[0])
	assert.Equal(t, []string{"2", "S2", "Bob", "Class 2", "2024-01-06"}, rows[1])
	assert.Equal(t, []string{"1", "S1", "Alice, Jr.", "Class 1", "2024-01-05"}, rows[2])
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1, "header only")
	assert.Equal(t, CSVHeader, rows[0])
}
