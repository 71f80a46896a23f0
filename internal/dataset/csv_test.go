package dataset

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swisscx/customer-insights/internal/domain"
	"github.com/swisscx/customer-insights/internal/generator"
)

func TestRoundTrip(t *testing.T) {
	ds, err := generator.Generate(200, 42)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, ds))

	back, err := Read(&buf)
	require.NoError(t, err)
	require.Len(t, back.Records, len(ds.Records))
	assert.Equal(t, ds.Records, back.Records)
	assert.Equal(t, 200, back.Size)
	assert.Equal(t, 2023, back.Year)
}

func TestWrite_HeaderAndMissing(t *testing.T) {
	ds, err := generator.Generate(300, 42)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, ds))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 301)
	assert.Equal(t, strings.Join(domain.Columns, ","), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "CUST_0001,"))

	for i, r := range ds.Records {
		if !r.HasSatisfaction() {
			fields := strings.Split(lines[i+1], ",")
			assert.Equal(t, "", fields[13], "missing score should be empty on %s", r.CustomerID)
			return
		}
	}
}

func TestRead_BOM(t *testing.T) {
	ds, err := generator.Generate(3, 1)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, ds))

	withBOM := append([]byte{0xEF, 0xBB, 0xBF}, buf.Bytes()...)
	back, err := Read(bytes.NewReader(withBOM))
	require.NoError(t, err)
	assert.Equal(t, ds.Records, back.Records)
}

func TestRead_Errors(t *testing.T) {
	header := strings.Join(domain.Columns, ",")
	good := "CUST_0001,30,F,Zurich,2023-01-05,3,245.5,12.5,9,0.2,2023-02-01,Basic,Mobile,7.5,1,Email"
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"empty", "", "no header"},
		{"wrong header", strings.Replace(header, "city", "town", 1) + "\n" + good, "line 1"},
		{"bad age", header + "\n" + strings.Replace(good, ",30,", ",thirty,", 1), "line 2: age"},
		{"bad date", header + "\n" + good + "\n" + strings.Replace(good, "2023-02-01", "01/02/2023", 1), "line 3: last_activity_date"},
		{"unknown city", header + "\n" + strings.Replace(good, "Zurich", "Paris", 1), "city: unknown value"},
		{"short row", header + "\n" + "CUST_0001,30", "wrong number of fields"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedRow)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestFiles(t *testing.T) {
	ds, err := generator.Generate(10, 5)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "customers.csv")
	require.NoError(t, WriteFile(path, ds))

	back, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ds.Records, back.Records)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
