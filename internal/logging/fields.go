// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldLanguage   = "language"
	FieldWorkingDir = "working_dir"

	// Parse-trace fields, emitted at debug level only: parsing is a hot
	// path and these fire per token.
	FieldState      = "state"
	FieldSymbol     = "symbol"
	FieldProduction = "production"
	FieldByteOffset = "byte_offset"
	FieldCharOffset = "char_offset"
	FieldNode       = "node"
	FieldReused     = "reused"
	FieldSkipped    = "skipped_bytes"

	// Document / incremental fields.
	FieldDocumentID   = "document_id"
	FieldEditStart    = "edit_start"
	FieldBytesRemoved = "bytes_removed"
	FieldBytesAdded   = "bytes_added"

	// Configuration fields.
	FieldJobs   = "jobs"
	FieldOutput = "output"
	FieldWrite  = "write"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesWithErrors = "files_with_errors"
	FieldErrorsTotal     = "errors_total"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
