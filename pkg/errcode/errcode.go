package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Config errors
	ConfigLoadError
	ConfigGenerateError

	// Sources errors
	SourcesConfigError
	SourcesUnknownIDError

	// Structural errors, raised only while building a taxonomy tree
	TreeInvalidRecordError
	TreeNoRootError
	TreeMultipleRootsError
	TreeUnknownParentError
	TreeCycleError
	TreeRankOrderError
	TreeDuplicateNameError
	TreeTypeSpecimenRankError

	// Linkage errors, raised only at publish time
	GraphUnknownEndpointError
	GraphSameTaxonomyEdgeError
	GraphEdgeConflictError

	// Query errors
	QueryNotFoundError
	QueryInvalidParameterError

	// Ingest errors
	IngestReadError
	IngestDecodeError
	IngestAllSourcesFailedError

	// Store errors
	StoreOpenError
	StoreSaveError
	StoreRestoreError
)
