// Copyright 2026 The Pcaembed Authors
// SPDX-License-Identifier: MIT

// Package layout maps covariate names onto the PCA pipeline's folder layout.
//
// A report root holds one batch-data file and one ManyToMany directory per
// covariate:
//
//	<root>/metabatch/BatchData.tsv
//	<root>/PCA/<covariate>/ManyToMany/PCAAnnotations.tsv
//	<root>/PCA/<covariate>/ManyToMany/PCAValues.tsv
//
// Covariates whose name starts with BatchPrefix live under metabatch_batches
// and PCA_batches instead.
package layout

import (
	"path"
	"strings"
)

// BatchPrefix marks a covariate produced by the batch-effect branch of the
// pipeline.
const BatchPrefix = "batch_"

// Fixed file and directory names of the upstream pipeline.
const (
	BatchDataFile      = "BatchData.tsv"
	AnnotationsFile    = "PCAAnnotations.tsv"
	ValuesFile         = "PCAValues.tsv"
	ManyToManyDir      = "ManyToMany"
	JSONDumpFile       = "allPCA.json"
	defaultBatchDir    = "metabatch"
	defaultPCADir      = "PCA"
	batchBranchBatches = "metabatch_batches"
	batchBranchPCADir  = "PCA_batches"
)

// Sources holds the three input files for one covariate.
type Sources struct {
	Covariate   string
	BatchData   string
	Annotations string
	Values      string
}

// Resolve returns the input paths for covariate under root. Paths are joined
// with forward slashes and are not cleaned beyond that, so a root of "" or a
// covariate containing separators resolves exactly as the pipeline spells it.
func Resolve(root, covariate string) Sources {
	batchDir, pcaDir := defaultBatchDir, defaultPCADir
	if IsBatch(covariate) {
		batchDir, pcaDir = batchBranchBatches, batchBranchPCADir
	}
	m2m := root + "/" + pcaDir + "/" + covariate + "/" + ManyToManyDir + "/"
	return Sources{
		Covariate:   covariate,
		BatchData:   root + "/" + batchDir + "/" + BatchDataFile,
		Annotations: m2m + AnnotationsFile,
		Values:      m2m + ValuesFile,
	}
}

// Files returns the source paths in payload order.
func (s Sources) Files() []string {
	return []string{s.BatchData, s.Annotations, s.Values}
}

// JSONDumpPath is where the plain JSON payload goes when dumping is enabled:
// the covariate directory, one level above ManyToMany.
func (s Sources) JSONDumpPath() string {
	return path.Join(path.Dir(path.Dir(s.Values)), JSONDumpFile)
}

// IsBatch reports whether covariate uses the batch-branch layout.
func IsBatch(covariate string) bool {
	return strings.HasPrefix(covariate, BatchPrefix)
}

// Key derives the payload key for a source file: the last path element with
// every ".tsv" removed.
func Key(file string) string {
	base := file
	if i := strings.LastIndex(base, "/"); i >= 0 {
		base = base[i+1:]
	}
	return strings.ReplaceAll(base, ".tsv", "")
}

// ParseCovariates splits a comma-separated covariate list. Entries are kept
// verbatim, including empty ones.
func ParseCovariates(list string) []string {
	return strings.Split(list, ",")
}
