package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldPanic      = "panic"

	// Configuration fields.
	FieldUnits  = "units"
	FieldFormat = "format"
	FieldFlavor = "flavor"
	FieldWrite  = "write"
	FieldJobs   = "jobs"

	// Pipeline fields.
	FieldInputLen = "input_len"
	FieldEntities = "entities"
	FieldLanguage = "language"
	FieldAgree    = "agree"

	// Statistics fields.
	FieldFilesDiscovered   = "files_discovered"
	FieldFilesProcessed    = "files_processed"
	FieldFilesWithEntities = "files_with_entities"
	FieldEntitiesTotal     = "entities_total"
	FieldFilesWritten      = "files_written"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
