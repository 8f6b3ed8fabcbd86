package cli

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsawler/docxhtml/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const testDocument = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
	`<w:p><w:pPr><w:jc w:val="center"/><w:spacing w:after="200"/></w:pPr><w:r><w:rPr><w:i/></w:rPr><w:t>Hello</w:t></w:r><w:r><w:t>World</w:t></w:r></w:p>` +
	`</w:body></w:document>`

func writeDOCX(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.docx")

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(testDocument))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	color.NoColor = true

	cmd := NewRootCommand("test")
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRoot_HTML(t *testing.T) {
	stdout, stderr, err := execute(t, writeDOCX(t))
	require.NoError(t, err)

	assert.Equal(t, `<p style="text-align:center;padding-bottom:20px;"><span><em>Hello</em></span><span>World</span></p>`, stdout)
	assert.Contains(t, stderr, "warning: word/styles.xml: part not found")
	assert.Equal(t, 3, strings.Count(stderr, "warning:"))
}

func TestRoot_Flags(t *testing.T) {
	stdout, _, err := execute(t, "--full", "--ignore-spacing", writeDOCX(t))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stdout, "<!DOCTYPE html>"))
	assert.Contains(t, stdout, `<p style="text-align:center;">`)
}

func TestRoot_ConfigFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("ignore_spacing: true\n"), 0o644))

	stdout, _, err := execute(t, "--config", cfgPath, writeDOCX(t))
	require.NoError(t, err)
	assert.NotContains(t, stdout, "padding-bottom")
}

func TestRoot_OutputFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.html")

	stdout, _, err := execute(t, "-o", out, writeDOCX(t))
	require.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<em>Hello</em>")
}

func TestText(t *testing.T) {
	stdout, _, err := execute(t, "text", writeDOCX(t))
	require.NoError(t, err)
	assert.Equal(t, "HelloWorld", strings.TrimSpace(stdout))
}

func TestMarkdown(t *testing.T) {
	stdout, _, err := execute(t, "markdown", writeDOCX(t))
	require.NoError(t, err)
	assert.Contains(t, stdout, "*Hello*")
	assert.Contains(t, stdout, "World")
}

func TestRoot_Errors(t *testing.T) {
	_, _, err := execute(t)
	assert.Error(t, err)

	_, _, err = execute(t, filepath.Join(t.TempDir(), "missing.docx"))
	assert.Error(t, err)
}

func TestPrintError(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	PrintError(&buf, errors.New("boom"))
	assert.Equal(t, "error: boom\n", buf.String())
}

func TestSetup_Logger(t *testing.T) {
	tests := []struct {
		name      string
		debug     bool
		wantDebug bool
	}{
		{"info by default", false, false},
		{"debug flag", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv("HOME", t.TempDir())

			a := &app{v: config.New(), logger: zap.NewNop()}
			a.v.Set("debug", tt.debug)
			require.NoError(t, a.setup())

			core := a.logger.Core()
			assert.True(t, core.Enabled(zapcore.InfoLevel))
			assert.Equal(t, tt.wantDebug, core.Enabled(zapcore.DebugLevel))
		})
	}
}

func TestBindFlags(t *testing.T) {
	cmd := NewRootCommand("test")
	v := config.New()

	require.NoError(t, bindFlags(v, cmd, configFlags))
	for key, name := range configFlags {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), key)
	}

	err := bindFlags(v, cmd, map[string]string{"debug": "verbose"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--verbose")

	require.NoError(t, cmd.PersistentFlags().Set("sanitize", "true"))
	assert.True(t, v.GetBool("sanitize"))
}
