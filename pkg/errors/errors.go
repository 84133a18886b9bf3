package errors

// Error message constants for the pyimports application
const (
	// Registry errors
	ErrMsgForbiddenWildcardImport = "wildcard imports are forbidden"

	// Manifest processing errors
	ErrMsgFailedToReadManifest  = "failed to read manifest"
	ErrMsgFailedToParseManifest = "failed to parse manifest"
	ErrMsgFailedToApplyManifest = "failed to apply manifest"
	ErrMsgFailedToWriteOutput   = "failed to write output"
	ErrMsgFailedToReadOutput    = "failed to read output"
	ErrMsgNoOutputConfigured    = "manifest has no output path"
	ErrMsgOutputOutOfDate       = "output is out of date"

	// Directory processing errors
	ErrMsgFailedToCheckPath       = "failed to check path"
	ErrMsgFailedToFindManifests   = "failed to find manifests in directory"
	ErrMsgFilesFailedToProcess    = "%d manifests failed to process"
	ErrMsgInvalidMaxLineLength    = "max_line_length must be positive, got %d"
	ErrMsgFailedToLoadConfig      = "failed to load config"
	ErrMsgFailedToUnmarshalConfig = "failed to unmarshal config"

	// Info/warning messages
	WarnMsgProcessingDirWithoutInPlace = "Warning: Processing directory without --in-place or --check flag. No files will be modified."
	InfoMsgUseInPlaceFlag              = "Use --in-place to write outputs, --check to verify them, or specify a single manifest for stdout output."
	InfoMsgNoManifestsFound            = "No manifests found in directory: %s"
	InfoMsgFoundManifests              = "Found %d manifests in directory: %s"
	InfoMsgProcessedFiles              = "Processed: %s"
	InfoMsgUpToDate                    = "Up to date: %s"
	InfoMsgOutOfDate                   = "Out of date: %s"
	InfoMsgErrorProcessing             = "Error processing %s: %v"
	InfoMsgProcessedCount              = "\nProcessed %d manifests successfully"
	InfoMsgErrorCount                  = ", %d manifests had errors"
)
