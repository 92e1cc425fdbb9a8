package reporter

import (
	"path/filepath"
	"strings"

	"github.com/yaklabco/msgmark/pkg/entity"
	"github.com/yaklabco/msgmark/pkg/runner"
)

// documentVersion is the version of the structured output schema.
const documentVersion = "1.0.0"

// Document is the structured output shared by the JSON, YAML and msgpack
// reporters.
type Document struct {
	Version string         `json:"version" msgpack:"version" yaml:"version"`
	Units   string         `json:"units"   msgpack:"units"   yaml:"units"`
	Files   []FileDocument `json:"files"   msgpack:"files"   yaml:"files"`
	Summary Summary        `json:"summary" msgpack:"summary" yaml:"summary"`
}

// FileDocument is one input's result.
type FileDocument struct {
	Path     string          `json:"path"               msgpack:"path"               yaml:"path"`
	Text     string          `json:"text"               msgpack:"text"               yaml:"text"`
	Entities []entity.Entity `json:"entities"           msgpack:"entities"           yaml:"entities"`
	Written  string          `json:"written,omitempty"  msgpack:"written,omitempty"  yaml:"written,omitempty"`
	Error    string          `json:"error,omitempty"    msgpack:"error,omitempty"    yaml:"error,omitempty"`
}

// Summary contains aggregate statistics.
type Summary struct {
	FilesConverted    int            `json:"filesConverted"    msgpack:"filesConverted"    yaml:"filesConverted"`
	FilesErrored      int            `json:"filesErrored"      msgpack:"filesErrored"      yaml:"filesErrored"`
	FilesWithEntities int            `json:"filesWithEntities" msgpack:"filesWithEntities" yaml:"filesWithEntities"`
	FilesWritten      int            `json:"filesWritten"      msgpack:"filesWritten"      yaml:"filesWritten"`
	EntitiesTotal     int            `json:"entitiesTotal"     msgpack:"entitiesTotal"     yaml:"entitiesTotal"`
	ByType            map[string]int `json:"byType"            msgpack:"byType"            yaml:"byType"`
}

// BuildDocument converts a runner result into a Document.
// Entities is always a non-nil list so consumers see [] rather than null.
func BuildDocument(result *runner.Result, opts Options) *Document {
	doc := &Document{
		Version: documentVersion,
		Units:   opts.Unit.String(),
		Files:   make([]FileDocument, 0),
		Summary: Summary{ByType: make(map[string]int)},
	}

	if result == nil {
		return doc
	}

	doc.Files = make([]FileDocument, 0, len(result.Files))
	for _, file := range result.Files {
		fileDoc := FileDocument{
			Path:     relPath(opts.WorkingDir, file.Path),
			Text:     file.Result.Text,
			Entities: file.Result.Entities,
			Written:  relPath(opts.WorkingDir, file.Written),
		}
		if fileDoc.Entities == nil {
			fileDoc.Entities = []entity.Entity{}
		}
		if file.Error != nil {
			fileDoc.Error = file.Error.Error()
		}
		doc.Files = append(doc.Files, fileDoc)
	}

	stats := result.Stats
	doc.Summary.FilesConverted = stats.FilesProcessed
	doc.Summary.FilesErrored = stats.FilesErrored
	doc.Summary.FilesWithEntities = stats.FilesWithEntities
	doc.Summary.FilesWritten = stats.FilesWritten
	doc.Summary.EntitiesTotal = stats.EntitiesTotal
	for entityType, n := range stats.EntitiesByType {
		doc.Summary.ByType[entityType.Short()] = n
	}

	return doc
}

// relPath makes an absolute path relative to workDir when it lies inside it.
func relPath(workDir, path string) string {
	if workDir == "" || path == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
