// Copyright 2026 The Pcaembed Authors
// SPDX-License-Identifier: MIT

package payload

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xpedite/pcaembed/internal/layout"
	"github.com/xpedite/pcaembed/internal/testable"
	"github.com/xpedite/pcaembed/internal/tsv"
)

func writeTestFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

// writeCovariate lays out the three source files for cov under root.
func writeCovariate(t *testing.T, root, cov string) {
	t.Helper()
	batchDir, pcaDir := "metabatch", "PCA"
	if layout.IsBatch(cov) {
		batchDir, pcaDir = "metabatch_batches", "PCA_batches"
	}
	writeTestFile(t, root, batchDir+"/BatchData.tsv", "Sample\tBatch\nS1\tB1\nS2\tB2\n")
	writeTestFile(t, root, pcaDir+"/"+cov+"/ManyToMany/PCAAnnotations.tsv", "Id\tAnnotation\nPC1\t"+cov+" 40%\n")
	writeTestFile(t, root, pcaDir+"/"+cov+"/ManyToMany/PCAValues.tsv", "Id\tPC1\tPC2\nS1\t0.1\t0.2\nS2\t-0.3\t0.4\n")
}

func TestGenerate_RoundTrip(t *testing.T) {
	root := t.TempDir()
	writeCovariate(t, root, "age")

	block, err := Generate(nil, root, "age")
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(block)
	require.NoError(t, err)

	var doc map[string]map[string][]map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	require.Len(t, doc, 1)
	data := doc["data"]
	require.Len(t, data, 3)
	assert.Contains(t, data, "BatchData")
	assert.Contains(t, data, "PCAAnnotations")
	assert.Contains(t, data, "PCAValues")

	assert.Equal(t, []map[string]any{
		{"Sample": "S1", "Batch": "B1"},
		{"Sample": "S2", "Batch": "B2"},
	}, data["BatchData"])
	assert.Equal(t, []map[string]any{
		{"Id": "PC1", "Annotation": "age 40%"},
	}, data["PCAAnnotations"])
	assert.Equal(t, []map[string]any{
		{"Id": "S1", "PC1": "0.1", "PC2": "0.2"},
		{"Id": "S2", "PC1": "-0.3", "PC2": "0.4"},
	}, data["PCAValues"])
}

func TestGenerate_BatchCovariateReadsBatchBranch(t *testing.T) {
	root := t.TempDir()
	writeCovariate(t, root, "batch_lane")

	block, err := Generate(nil, root, "batch_lane")
	require.NoError(t, err)

	p, err := Decode(block)
	require.NoError(t, err)
	assert.Equal(t, "batch_lane 40%", p.Data["PCAAnnotations"][0]["Annotation"])
}

func TestGenerate_MissingFile(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "metabatch/BatchData.tsv", "a\n1\n")

	_, err := Generate(nil, root, "age")
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), `covariate "age"`)
}

func TestBuild_ReadErrorFromFS(t *testing.T) {
	mock := &testable.MockFileSystem{
		OpenFn: func(name string) (*os.File, error) {
			return nil, errors.New("mock open error")
		},
	}

	_, err := Build(mock, layout.Resolve("/r", "age"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mock open error")
}

func TestMarshalASCII_EscapesNonASCII(t *testing.T) {
	p := &Payload{Data: map[string]tsv.RecordSet{
		"BatchData": {{"name": "Müller", "sym": "µ", "emoji": "🧪"}},
	}}

	data, err := MarshalASCII(p)
	require.NoError(t, err)

	for _, c := range data {
		require.Less(t, c, byte(0x80), "output must be ASCII")
	}
	assert.Contains(t, string(data), `M\u00fcller`)
	assert.Contains(t, string(data), `\u00b5`)
	assert.Contains(t, string(data), `\ud83e\uddea`)

	var back Payload
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, "Müller", back.Data["BatchData"][0]["name"])
	assert.Equal(t, "🧪", back.Data["BatchData"][0]["emoji"])
}

func TestMarshalASCII_NoHTMLEscaping(t *testing.T) {
	p := &Payload{Data: map[string]tsv.RecordSet{"k": {{"v": "<a&b>"}}}}

	data, err := MarshalASCII(p)
	require.NoError(t, err)
	assert.Equal(t, `{"data":{"k":[{"v":"<a&b>"}]}}`, string(data))
}

func TestMarshalASCII_NullsAndExtras(t *testing.T) {
	rows, err := tsv.Read(strings.NewReader("a\tb\n1\n2\t3\t4\n"))
	require.NoError(t, err)
	p := &Payload{Data: map[string]tsv.RecordSet{"k": rows}}

	data, err := MarshalASCII(p)
	require.NoError(t, err)
	assert.Equal(t, `{"data":{"k":[{"a":"1","b":null},{"a":"2","b":"3","null":["4"]}]}}`, string(data))
}

func TestMarshalASCII_EmptyRecordSetIsArray(t *testing.T) {
	p := &Payload{Data: map[string]tsv.RecordSet{"k": {}}}

	data, err := MarshalASCII(p)
	require.NoError(t, err)
	assert.Equal(t, `{"data":{"k":[]}}`, string(data))
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode("***")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode base64")

	_, err = Decode(base64.StdEncoding.EncodeToString([]byte("not json")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode payload json")
}

func TestWriteJSON(t *testing.T) {
	root := t.TempDir()
	writeCovariate(t, root, "age")
	src := layout.Resolve(root, "age")

	p, err := Build(nil, src)
	require.NoError(t, err)

	dst, err := WriteJSON(nil, src, p)
	require.NoError(t, err)
	assert.Equal(t, filepath.ToSlash(filepath.Join(root, "PCA", "age", "allPCA.json")), filepath.ToSlash(dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	var back Payload
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Len(t, back.Data, 3)
}

func TestWriteJSON_WriteError(t *testing.T) {
	mock := &testable.MockFileSystem{
		WriteFileFn: func(string, []byte, os.FileMode) error {
			return errors.New("disk full")
		},
	}
	p := &Payload{Data: map[string]tsv.RecordSet{}}

	_, err := WriteJSON(mock, layout.Resolve("/r", "age"), p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
