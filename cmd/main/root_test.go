package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/Esubaalew/2merkato/internal/config"
	"github.com/Esubaalew/2merkato/internal/domain"
	"github.com/Esubaalew/2merkato/internal/export"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_RejectsArguments(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetArgs([]string{"unexpected"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	assert.Error(t, cmd.Execute())
}

func TestRootCmd_CrawlsConfiguredSite(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/directory/":
			fmt.Fprint(w, `<div class="row-fluid mtree_category"><a href="/c">Trade</a><span class="count">(1)</span></div>`)
		case "/c":
			fmt.Fprint(w, `<div class="row-fluid mtree_sub_category"><ul class="pad10"><li><a href="/s">Import</a><span class="count">(1)</span></li></ul></div>`)
		case "/s":
			fmt.Fprint(w, `<div id="listings"><div class="span12 heading"><h4><a href="/b">Import Co</a></h4></div></div>`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	csvPath := filepath.Join(dir, "businesses.csv")
	content := fmt.Sprintf(`site:
  base_url: %s
  directory_url: %s/directory/
  timeout: 5
export:
  xlsx_path: ""
log:
  level: error
`, srv.URL, srv.URL)
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs([]string{"--config", configPath, "--output", csvPath})
	cmd.SetOut(&out)

	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Equal(t, "Business Name,Subcategory,Category,Details\nImport Co,Import,Trade,\n", string(data))
	assert.Contains(t, out.String(), "Category: Trade")
	assert.Contains(t, out.String(), "  Subcategory: Import")
}

func TestConvertCmd(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "in.csv")
	xlsxPath := filepath.Join(dir, "out.xlsx")
	require.NoError(t, export.WriteCSVFile(csvPath, []domain.Record{
		{BusinessName: "A", Subcategory: "B", Category: "C", Details: "D"},
	}))

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs([]string{"convert", csvPath, xlsxPath})
	cmd.SetOut(&out)

	require.NoError(t, cmd.Execute())
	assert.FileExists(t, xlsxPath)
	assert.Contains(t, out.String(), "(2 rows)")
}

func TestConvertCmd_RequiresTwoArgs(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetArgs([]string{"convert", "only-one.csv"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	assert.Error(t, cmd.Execute())
}

func TestConfigureLogging(t *testing.T) {
	t.Cleanup(func() {
		log.SetLevel(log.InfoLevel)
		log.SetFormatter(&log.TextFormatter{})
	})

	require.NoError(t, configureLogging(config.LogConfig{Level: "warn", Format: "json"}, false))
	assert.Equal(t, log.WarnLevel, log.GetLevel())

	require.NoError(t, configureLogging(config.LogConfig{Level: "warn", Format: "text"}, true))
	assert.Equal(t, log.DebugLevel, log.GetLevel(), "verbose wins over the configured level")

	assert.Error(t, configureLogging(config.LogConfig{Level: "loud"}, false))
	assert.Error(t, configureLogging(config.LogConfig{Level: "info", Format: "xml"}, false))
}
