package report_test

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/kurochkinivan/webpa_collector/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntriesFromDocument_SortedAndTyped(t *testing.T) {
	t.Parallel()

	doc := map[string]any{
		"Device.WiFi.Radio.1.Name":         "wifi0",
		"Device.WiFi.RadioNumberOfEntries": float64(2),
		"Device.DeviceInfo.Alias":          "",
	}

	entries, err := report.EntriesFromDocument(doc)
	require.NoError(t, err)

	assert.Equal(t, []report.Entry{
		{Name: "Device.DeviceInfo.Alias", Value: "", Type: "string"},
		{Name: "Device.WiFi.Radio.1.Name", Value: "wifi0", Type: "string"},
		{Name: "Device.WiFi.RadioNumberOfEntries", Value: "2", Type: "int"},
	}, entries)
}

func TestWriteTable_TSV(t *testing.T) {
	t.Parallel()

	entries := []report.Entry{
		{Name: "Device.WiFi.AccessPoint.1.SSID", Value: "home", Type: "string"},
		{Name: "Device.DeviceInfo.UpTime", Value: "4242", Type: "int"},
	}

	var buf bytes.Buffer
	require.NoError(t, report.WriteTable(&buf, entries, '\t'))

	want := "name\tvalue\ttype\n" +
		"Device.WiFi.AccessPoint.1.SSID\thome\tstring\n" +
		"Device.DeviceInfo.UpTime\t4242\tint\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteTable_CSV(t *testing.T) {
	t.Parallel()

	entries := []report.Entry{
		{Name: "Device.DeviceInfo.Description", Value: "a, b", Type: "string"},
	}

	var buf bytes.Buffer
	require.NoError(t, report.WriteTable(&buf, entries, ','))

	assert.Equal(t, "name,value,type\nDevice.DeviceInfo.Description,\"a, b\",string\n", buf.String())
}

func TestPDFGenerator_WritesFile(t *testing.T) {
	t.Parallel()

	entries := []report.Entry{
		{Name: "Device.WiFi.AccessPoint.1.SSID", Value: "home", Type: "string"},
	}

	path := filepath.Join(t.TempDir(), "B827EB5DF064.pdf")

	err := report.NewPDF().GenerateReport(path, "B827EB5DF064", time.Now(), entries)
	require.NoError(t, err)

	assert.FileExists(t, path)
}
