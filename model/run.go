package model

import "time"

// Run represents a single benchmark run recorded in history.
type Run struct {
	// Unique ID for this run (16 random bytes, hex encoded)
	ID string `json:"id"`
	// Timestamp when the run started
	Timestamp time.Time `json:"timestamp"`
	// Command-line arguments (including command name)
	Args []string `json:"args"`
	// Working directory where the run was started
	WorkDir string `json:"workdir"`
	// Duration of the whole run
	Duration time.Duration `json:"duration"`
	// Operating system the run executed on
	OS string `json:"os,omitempty"`
	// CPU architecture the run executed on
	Arch string `json:"arch,omitempty"`
	// Selection and measurement policy used
	Selection Selection `json:"selection"`
	// Number of tuples scheduled
	Tuples int `json:"tuples"`
	// Number of tuples ending in a failure outcome
	Failures int `json:"failures"`
	// Artifacts generated during this run
	Artifacts []Artifact `json:"artifacts,omitempty"`
}

// Selection records the configuration the run executed under.
type Selection struct {
	Subjects           []string `json:"subjects,omitempty"`
	Operations         []string `json:"operations,omitempty"`
	Sizes              []int    `json:"sizes"`
	ElementKind        string   `json:"element_kind"`
	WarmupIterations   int      `json:"warmup_iterations"`
	MeasuredIterations int      `json:"measured_iterations"`
	Seed               int64    `json:"seed"`
}

// ArtifactType identifies the type of artifact
type ArtifactType uint8

const (
	// ArtifactTypeReport is the rendered comparison tables
	ArtifactTypeReport ArtifactType = iota
	// ArtifactTypeResults is the machine-readable record stream
	ArtifactTypeResults
	// ArtifactTypeCPUProfile is the pprof profile captured around the run
	ArtifactTypeCPUProfile
)

// Artifact represents a file generated during a run
type Artifact struct {
	Type ArtifactType `json:"type"`
	Size uint64       `json:"size"`
	File string       `json:"file"` // relative to run dir
}
