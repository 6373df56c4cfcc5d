package helpers

import "errors"

var (
	// ErrOfflineResolution indicates a resolution was attempted in offline mode without a cached URL.
	ErrOfflineResolution = errors.New("offline mode: artifact URL not cached and network access is disabled")
	// ErrArtifactNotFound indicates an artifact was not found in any remote source.
	ErrArtifactNotFound = errors.New("artifact not found in any remote repository")
	// ErrNoRemoteSources indicates no remote repositories are configured.
	ErrNoRemoteSources = errors.New("no remote repositories configured")
	// ErrDownloadFailed indicates a download failed.
	ErrDownloadFailed = errors.New("download failed")

	// ErrMissingCacheFile indicates a required cache database file is absent.
	ErrMissingCacheFile = errors.New("required cache file is missing")
	// ErrCacheDirEmpty indicates the cache directory is empty.
	ErrCacheDirEmpty = errors.New("cache directory is empty")
	// ErrCorruptCacheFile indicates a cache database could not be read.
	ErrCorruptCacheFile = errors.New("cache file is corrupt")
	// ErrUnsupportedSchemaVersion indicates the cache database schema version is unsupported.
	ErrUnsupportedSchemaVersion = errors.New("unsupported cache schema version")
	// ErrAnotherInstanceIsRunning indicates another instance holds the cache lock.
	ErrAnotherInstanceIsRunning = errors.New("another instance is running")
	// ErrDbNil indicates a nil Bolt DB was provided.
	ErrDbNil = errors.New("bolt DB is nil")
	// ErrStoreNil indicates a nil store was provided.
	ErrStoreNil = errors.New("store is nil")

	// ErrMissingChecksum indicates a file reached manifest synthesis without a cached checksum.
	ErrMissingChecksum = errors.New("no cached checksum for file, run the verify step first")
	// ErrMissingFlintVersion indicates the project does not declare a flint version.
	ErrMissingFlintVersion = errors.New("flint_version is not set in the project file")
	// ErrNoMinecraftVersions indicates the project declares no game versions.
	ErrNoMinecraftVersions = errors.New("no minecraft versions declared in the project file")
	// ErrInvalidCoordinate indicates a dependency coordinate could not be parsed.
	ErrInvalidCoordinate = errors.New("invalid artifact coordinate")
	// ErrInvalidVersion indicates a version string is not valid semver.
	ErrInvalidVersion = errors.New("invalid version")
	// ErrInvalidStaticFile indicates a static file descriptor is incomplete.
	ErrInvalidStaticFile = errors.New("invalid static file description")
	// ErrInvalidJSONPatch indicates a JSON patch description is incomplete.
	ErrInvalidJSONPatch = errors.New("invalid json patch description")

	// ErrMalformedMappings indicates a mapping file could not be parsed.
	ErrMalformedMappings = errors.New("malformed mapping file")
	// ErrNoMappingsURL indicates no mappings URL template is configured.
	ErrNoMappingsURL = errors.New("mappings url template is not configured")
	// ErrInstallationFailed indicates a version installation failed.
	ErrInstallationFailed = errors.New("version installation failed")
	// ErrFunctionOutputMissing indicates a pipeline function finished without writing its output.
	ErrFunctionOutputMissing = errors.New("pipeline function produced no output")
	// ErrFileIsEmpty indicates a file is empty.
	ErrFileIsEmpty = errors.New("file is empty")

	// ErrArchiveEntryHasEmptyName indicates an archive entry has an empty name.
	ErrArchiveEntryHasEmptyName = errors.New("archive entry has empty name")
	// ErrArchiveEntryIsAbsolutePath indicates an archive entry uses an absolute path.
	ErrArchiveEntryIsAbsolutePath = errors.New("archive entry is absolute path")
	// ErrArchiveEntryEscapesDestination indicates an archive entry escapes the destination.
	ErrArchiveEntryEscapesDestination = errors.New("archive entry escapes destination")
	// ErrArchiveEntryHasNegativeSize indicates an archive entry has a negative size.
	ErrArchiveEntryHasNegativeSize = errors.New("archive entry has negative size")
	// ErrArchiveEntryIsTooLarge indicates an archive entry is too large.
	ErrArchiveEntryIsTooLarge = errors.New("archive entry is too large")
	// ErrArchiveExceedsMaxSize indicates an archive exceeds the maximum total size.
	ErrArchiveExceedsMaxSize = errors.New("archive exceeds maximum total size")

	// ErrJavaExecFailed indicates an external java process exited with an error.
	ErrJavaExecFailed = errors.New("java process failed")
)
