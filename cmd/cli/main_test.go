package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { developer = false })
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestOverview(t *testing.T) {
	out := run(t, "overview")
	assert.Contains(t, out, "== HiZollo 的幫助中心 ==")
	assert.Contains(t, out, "[help:main]")
	assert.NotContains(t, out, "開發者專用")
	assert.NotContains(t, out, "\u200b")
}

func TestCategory(t *testing.T) {
	out := run(t, "category", "information")
	assert.Contains(t, out, "`help`．`ping`")

	out = run(t, "category", "developer")
	assert.Contains(t, out, "這個指令不存在")

	out = run(t, "--developer", "category", "developer")
	assert.Contains(t, out, "`devdump`")
}

func TestShow(t *testing.T) {
	out := run(t, "show", "roll", "dice")
	assert.Contains(t, out, "算式")

	out = run(t, "show", "roll")
	assert.Contains(t, out, "roll coin")

	out = run(t, "show", "nothing")
	assert.Contains(t, out, "這個指令不存在")
}

func TestReadme(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "README.md")

	out := run(t, "readme", "--template", filepath.Join(dir, "none.tmpl"), "--out", outPath)
	assert.Contains(t, out, "wrote "+outPath)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "- **/choose** — 讓 HiZollo 來拯救你的選擇困難症")
	assert.Contains(t, string(data), "- **/roll dice** — 依照算式擲骰子")
}
