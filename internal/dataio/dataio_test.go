package dataio

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSVSkipsInvalidTokens(t *testing.T) {
	values, err := ReadCSV(strings.NewReader("1, 2.5,abc,,-3\n4e2,NaN,Infinity,7"))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2.5, -3, 400, 7}, values)
}

func TestReadCSVSeparators(t *testing.T) {
	values, err := ReadCSV(strings.NewReader("1;2\t3\r\n4,,\n,5"))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, values)
}

func TestReadCSVEmpty(t *testing.T) {
	values, err := ReadCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []float64{1, 2.5, -0.125, 1e21}))
	assert.Equal(t, "1,2.5,-0.125,1e+21", buf.String())
}

func TestCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	values := []float64{3.14159, -2, 0, 42}
	require.NoError(t, Export(path, values))

	got, err := Import(path)
	require.NoError(t, err)
	assert.Equal(t, values, got)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestXLSXRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.xlsx")
	values := []float64{1.5, 2, -7.25}
	require.NoError(t, Export(path, values))

	got, err := Import(path)
	require.NoError(t, err)
	assert.Equal(t, values, got)
}

func TestImportMissingFile(t *testing.T) {
	_, err := Import(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
