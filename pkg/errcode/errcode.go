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

	// Logging errors
	CreateLogFileError

	// Server address errors
	ServerAddressError
	ServerURIError

	// Remote catalog errors
	CatalogRequestError
	CatalogStatusError
	CatalogDecodeError
	CatalogRecordError

	// Reachability errors
	ProbeError

	// Cache store errors
	StoreConnectionError
	StoreNotConnectedError
	StoreUnknownBackendError
	StoreMigrateError
	StoreQueryError
	StoreInsertError
	StoreDeleteError
	StoreRebuildError

	// Sync errors
	SyncUnreachableError
	SyncFetchError
	SyncCancelledError
	SyncEmptyCacheError

	// Browsing errors
	CoffeeNotFoundError
	SizeNotFoundError
	OutputFormatError
)
