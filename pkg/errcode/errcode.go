package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	ReadFileError
	WriteFileError
	LockError

	// Logging errors
	CreateLogFileError

	// Input errors
	GenomeListError
	ListingError
	RulesError
	InputFormatError

	// Taxonomy errors
	TaxonomyDBError
	TaxonomyImportError
	TaxonomyNotFoundError

	// Portal errors
	CredentialsError
	LoginError
	HTTPError

	// Download errors
	DownloadCopyError
	DownloadReportError

	// Database errors
	DBConnectionError
	DBSchemaError
	DBExportError
)
