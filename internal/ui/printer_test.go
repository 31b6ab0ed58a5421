package ui_test

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/ffind/internal/proto"
	"github.com/bamsammich/ffind/internal/ui"
)

func TestPrinterMetadata(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	p := ui.NewPrinter(ui.PrinterConfig{Writer: &out})

	require.NoError(t, p.Print(proto.ResultMsg{Path: "/data/a.log"}))
	require.NoError(t, p.Print(proto.ResultMsg{Path: "/data/logs", IsDir: true}))

	assert.Equal(t, "/data/a.log\n/data/logs\n", out.String())
	assert.Equal(t, int64(2), p.Results())
}

func TestPrinterContentWithContext(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	p := ui.NewPrinter(ui.PrinterConfig{Writer: &out, Context: true})

	require.NoError(t, p.Print(proto.ResultMsg{Path: "/data/app.log", Lines: []proto.LineMsg{
		{Number: 2, Text: "two"},
		{Number: 3, Text: "ERROR three", Match: true},
		{Number: 4, Text: "four"},
	}}))
	require.NoError(t, p.Print(proto.ResultMsg{Path: "/data/app.log", Lines: []proto.LineMsg{
		{Number: 6, Text: "six"},
		{Number: 7, Text: "ERROR seven", Match: true},
		{Number: 8, Text: "eight"},
	}}))

	want := "/data/app.log-2-two\n" +
		"/data/app.log:3:ERROR three\n" +
		"/data/app.log-4-four\n" +
		"--\n" +
		"/data/app.log-6-six\n" +
		"/data/app.log:7:ERROR seven\n" +
		"/data/app.log-8-eight\n"
	assert.Equal(t, want, out.String())
}

func TestPrinterNoSeparatorWithoutContext(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	p := ui.NewPrinter(ui.PrinterConfig{Writer: &out})

	require.NoError(t, p.Print(proto.ResultMsg{Path: "/a", Lines: []proto.LineMsg{{Number: 1, Text: "x", Match: true}}}))
	require.NoError(t, p.Print(proto.ResultMsg{Path: "/b", Lines: []proto.LineMsg{{Number: 9, Text: "x", Match: true}}}))

	assert.Equal(t, "/a:1:x\n/b:9:x\n", out.String())
}

func TestPrinterWarningsGoToErrWriter(t *testing.T) {
	t.Parallel()
	var out, errOut bytes.Buffer
	p := ui.NewPrinter(ui.PrinterConfig{Writer: &out, ErrWriter: &errOut})

	require.NoError(t, p.Print(proto.ResultMsg{Path: "/data/secret", Warning: "permission denied"}))

	assert.Empty(t, out.String())
	assert.Equal(t, "ffind: /data/secret: permission denied\n", errOut.String())
	assert.Zero(t, p.Results())
	assert.Equal(t, int64(1), p.Warnings())
}

func TestPrinterHighlightKeepsText(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	re := regexp.MustCompile("ERR")
	p := ui.NewPrinter(ui.PrinterConfig{
		Writer:    &out,
		Color:     true,
		Highlight: func(line string) [][]int { return re.FindAllStringIndex(line, -1) },
	})

	require.NoError(t, p.Print(proto.ResultMsg{Path: "/x", Lines: []proto.LineMsg{{Number: 1, Text: "an ERR and ERR", Match: true}}}))

	// Styling may or may not emit escapes depending on the terminal; the
	// visible text is unchanged either way.
	plain := regexp.MustCompile(`\x1b\[[0-9;]*m`).ReplaceAllString(out.String(), "")
	assert.Equal(t, "/x:1:an ERR and ERR\n", plain)
}
