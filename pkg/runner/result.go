package runner

import "github.com/yaklabco/msgmark/pkg/entity"

// FileOutcome is the conversion result for one input.
type FileOutcome struct {
	// Path is the file path, or the input name for in-memory inputs.
	Path string

	// Result is the converted text. Zero if Error is set.
	Result entity.FormattedText

	// Error is set if the input could not be read or its result not written.
	Error error

	// Written is the result file path when the result was written to disk.
	Written string
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the number of inputs found.
	FilesDiscovered int

	// FilesProcessed is the number of inputs converted.
	FilesProcessed int

	// FilesErrored is the number of inputs that failed.
	FilesErrored int

	// FilesWithEntities is the number of inputs with at least one entity.
	FilesWithEntities int

	// FilesWritten is the number of result files written.
	FilesWritten int

	// EntitiesTotal is the number of entities across all inputs.
	EntitiesTotal int

	// EntitiesByType maps entity types to counts.
	EntitiesByType map[entity.Type]int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each input, in deterministic order:
	// sorted by path for discovered files, input order for in-memory inputs.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasErrors reports whether any input failed.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// HasEntities reports whether any formatting was found.
func (r *Result) HasEntities() bool {
	if r == nil {
		return false
	}
	return r.Stats.EntitiesTotal > 0
}

// newStats creates a new Stats with initialized maps.
func newStats() Stats {
	return Stats{
		EntitiesByType: make(map[entity.Type]int),
	}
}

// accumulate updates the result with an outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++

	if outcome.Written != "" {
		r.Stats.FilesWritten++
	}

	if !outcome.Result.HasEntities() {
		return
	}

	r.Stats.FilesWithEntities++
	r.Stats.EntitiesTotal += len(outcome.Result.Entities)
	for entityType, n := range outcome.Result.CountByType() {
		r.Stats.EntitiesByType[entityType] += n
	}
}
