package main

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivikasavnish/scriptgen/pkg/codegen"
	"github.com/ivikasavnish/scriptgen/pkg/mcp"
	"github.com/ivikasavnish/scriptgen/pkg/recordprocessor"
)

const quietConfig = `version: 1
logging:
  console:
    level: none
`

func run(t *testing.T, args ...string) error {
	t.Helper()
	ctx := contextWithEnv(context.Background())
	return newApp().Run(ctx, append([]string{appName}, args...))
}

func TestGenerateCommand(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(quietConfig), 0644))

	src := filepath.Join(dir, "rec.json")
	require.NoError(t, os.WriteFile(src, []byte(`[
		{"action": "click", "selector": "#a"},
		{"action": "click", "selector": "#b", "frameId": 2, "frameUrl": "https://f"}
	]`), 0644))

	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{
			name: "configured defaults",
			args: nil,
			expected: "  click '#a'\n" +
				"  let frames = await page.frames()\n" +
				"  const frame_2 = frames.find(f => f.url() === 'https://f')\n" +
				"  click '#b'\n",
		},
		{
			name: "overrides",
			args: []string{"--wrap-async=false", "--blank-lines"},
			expected: "\nclick '#a'\n\n" +
				"let frames = await page.frames()\n" +
				"const frame_2 = frames.find(f => f.url() === 'https://f')\n" +
				"click '#b'\n\n",
		},
		{
			name: "full script",
			args: []string{"--full", "--wrap-async=false"},
			expected: "set headless true\n" +
				"set wait-for-selector-on-click true\n" +
				"click '#a'\n" +
				"let frames = await page.frames()\n" +
				"const frame_2 = frames.find(f => f.url() === 'https://f')\n" +
				"click '#b'\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := filepath.Join(t.TempDir(), "out.txt")
			args := append([]string{"-c", cfg, "generate"}, tt.args...)
			args = append(args, src, dst)
			require.NoError(t, run(t, args...))

			out, err := os.ReadFile(dst)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(out))
		})
	}
}

func TestGenerateCommand_Template(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(quietConfig), 0644))

	src := filepath.Join(dir, "rec.yaml")
	require.NoError(t, os.WriteFile(src, []byte("- action: navigate\n  href: https://example.com\n"), 0644))
	tmpl := filepath.Join(dir, "script.tmpl")
	require.NoError(t, os.WriteFile(tmpl, []byte("// start\n{{ .Body }}// end\n"), 0644))

	dst := filepath.Join(dir, "out.txt")
	require.NoError(t, run(t, "-c", cfg, "generate", "--template", tmpl, "--wait-for-navigation=false", src, dst))

	out, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "// start\n  go-to-page 'https://example.com'\n// end\n", string(out))
}

func TestGenerateCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(quietConfig), 0644))

	require.Error(t, run(t, "-c", cfg, "generate"))
	require.Error(t, run(t, "-c", cfg, "generate", filepath.Join(dir, "missing.json")))
	require.Error(t, run(t, "-c", filepath.Join(dir, "missing.yaml"), "generate", "x.json"))
}

func TestDumpConfigCommand(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(quietConfig+"generator:\n  data_attribute: data-qa\n"), 0644))

	dst := filepath.Join(dir, "dump.yaml")
	require.NoError(t, run(t, "-c", cfg, "dumpconfig", dst))

	out, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Contains(t, string(out), "data_attribute: data-qa")
	assert.Contains(t, string(out), "level: none")
}

func TestUploadCommand(t *testing.T) {
	server := httptest.NewServer(mcp.NewServer(nil, mcp.WithOptions(codegen.Options{})))
	defer server.Close()

	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(quietConfig), 0644))

	src := filepath.Join(dir, "recordings")
	require.NoError(t, os.Mkdir(src, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "Sign In.json"), []byte(`[{"action": "click", "selector": "#login"}]`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "search.yaml"), []byte("- action: submit\n  selector: form\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "notes.txt"), []byte("not a recording"), 0644))

	single := filepath.Join(dir, "single.json")
	require.NoError(t, os.WriteFile(single, []byte(`[{"action": "navigate", "href": "https://example.com"}]`), 0644))

	require.NoError(t, run(t, "-c", cfg, "upload", "--server", server.URL, single))

	// the text file fails, the recordings still get uploaded
	err := run(t, "-c", cfg, "upload", "--server", server.URL, src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "notes.txt")

	client := recordprocessor.NewClient(server.URL)
	for id, expected := range map[string]string{
		"single":  "go-to-page 'https://example.com'\n",
		"sign-in": "click '#login'\n",
		"search":  "submit-form 'form'\n",
	} {
		script, err := client.Script(id, false)
		require.NoError(t, err, id)
		assert.Equal(t, expected, script, id)
	}

	// ids are taken
	require.Error(t, run(t, "-c", cfg, "upload", "--server", server.URL, single))
	require.Error(t, run(t, "-c", cfg, "upload", "--server", server.URL, filepath.Join(dir, "missing")))
	require.Error(t, run(t, "-c", cfg, "upload", "--server", server.URL))
}

func TestServeCommand(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(quietConfig), 0644))

	t.Run("stops on cancel", func(t *testing.T) {
		ctx, cancel := context.WithCancel(contextWithEnv(context.Background()))
		defer cancel()
		time.AfterFunc(100*time.Millisecond, cancel)

		err := newApp().Run(ctx, []string{appName, "-c", cfg, "serve", "--listen", "127.0.0.1:0"})
		require.NoError(t, err)
	})

	t.Run("bad address", func(t *testing.T) {
		require.Error(t, run(t, "-c", cfg, "serve", "--listen", "127.0.0.1:notaport"))
	})
}
