// Copyright 2026 The Pcaembed Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/xpedite/pcaembed/internal/testable"
)

const testTemplate = `<html>
<head>
  <script>
    base64_plot_ascii
  </script>
  <script>
		base64-pca-plot-all
  </script>
</head>
<body>
  totalHeight
    divBlock
  </DIV>
  <script>
    embedBlock
  </script>
</body>
</html>
`

const testPlotJS = "function embedPCAplus(target, kind, data, key) { return key; }\n"

// newTestCmd redirects the root command's output to buffers. Flags from
// earlier runs are reset first.
func newTestCmd(t *testing.T) (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	resetFlags()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	origExe := executable
	executable = func() (string, error) { return "", errors.New("no executable in tests") }
	t.Cleanup(func() { executable = origExe })

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd, stdout, stderr
}

func resetFlags() {
	reset := func(f *pflag.Flag) {
		f.Changed = false
		_ = f.Value.Set(f.DefValue)
	}
	rootCmd.PersistentFlags().VisitAll(reset)
	for _, c := range rootCmd.Commands() {
		c.Flags().VisitAll(reset)
	}
}

func withMockFS(t *testing.T, mock *testable.MockFileSystem) {
	t.Helper()
	orig := cmdFS
	cmdFS = mock
	t.Cleanup(func() { cmdFS = orig })
}

func writeTestFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

// fixture is a pipeline run folder plus an app folder holding the template
// and plot script.
type fixture struct {
	root     string
	app      string
	template string
	plotJS   string
}

func newFixture(t *testing.T, covariates ...string) fixture {
	t.Helper()
	base := t.TempDir()
	f := fixture{
		root: filepath.Join(base, "run1"),
		app:  filepath.Join(base, "app"),
	}
	f.template = filepath.Join(f.app, "pca-template.html")
	f.plotJS = filepath.Join(f.app, "pca-plot-all.js")

	writeTestFile(t, f.app, "pca-template.html", testTemplate)
	writeTestFile(t, f.app, "pca-plot-all.js", testPlotJS)
	writeTestFile(t, f.root, "metabatch/BatchData.tsv", "Sample\tBranch\nS1\tdefault\n")
	writeTestFile(t, f.root, "metabatch_batches/BatchData.tsv", "Sample\tBranch\nS1\tbatches\n")
	for _, cov := range covariates {
		dir := "PCA/"
		if strings.HasPrefix(cov, "batch_") {
			dir = "PCA_batches/"
		}
		writeTestFile(t, f.root, dir+cov+"/ManyToMany/PCAAnnotations.tsv", "Covariate\n"+cov+"\n")
		writeTestFile(t, f.root, dir+cov+"/ManyToMany/PCAValues.tsv", "Sample\tPC1\nS1\t1\nS2\t3\n")
	}
	return f
}

// embedArgs builds an embed invocation with explicit asset paths.
func (f fixture) embedArgs(covariates, output string, extra ...string) []string {
	args := []string{"embed", f.root, covariates, output, "--template", f.template, "--plot-js", f.plotJS}
	return append(args, extra...)
}

func (f fixture) read(t *testing.T, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(f.root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}
