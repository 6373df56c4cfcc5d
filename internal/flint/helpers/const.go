package helpers

import "time"

const (
	// DirMod is the default permission for created directories.
	DirMod = 0o755
	// FileMod is the default permission for created files.
	FileMod = 0o644

	// DefaultChannel is the distribution channel used when none is configured.
	DefaultChannel = "development"
	// DefaultDescription is the package description used when none is set.
	DefaultDescription = "A flint project"

	// LibraryDirToken is the installer-side placeholder for the shared library directory.
	LibraryDirToken = "${FLINT_LIBRARY_DIR}"
	// PackageDirToken is the installer-side placeholder for the package directory.
	PackageDirToken = "${FLINT_PACKAGE_DIR}"
	// DistributorURLToken is the installer-side placeholder for the distributor base URL.
	DistributorURLToken = "${FLINT_DISTRIBUTOR_URL}"

	// JarExtension is the archive extension treated as code on the classpath.
	JarExtension = ".jar"
	// AssetsPrefix marks archive entries exempt from class filtering.
	AssetsPrefix = "assets/"

	// MinecraftGroup is the maven group of the raw game artifacts.
	MinecraftGroup = "net.minecraft"
	// MinecraftMaven is the default repository for game libraries.
	MinecraftMaven = "https://libraries.minecraft.net/"
	// MavenCentral is the default fallback repository.
	MavenCentral = "https://repo.maven.apache.org/maven2/"

	// FetchDefaultTimeout is the overall HTTP client timeout.
	FetchDefaultTimeout = 30 * time.Second
	// FetchDialContextTimeout is the dial timeout for outbound connections.
	FetchDialContextTimeout = 10 * time.Second
	// FetchDialContextKeepAlive is the TCP keep-alive for dials.
	FetchDialContextKeepAlive = 30 * time.Second
	// FetchForceAttemptHTTP2 enables HTTP/2 attempts when possible.
	FetchForceAttemptHTTP2 = true
	// FetchMaxIdleConns is the maximum number of idle connections.
	FetchMaxIdleConns = 100
	// FetchMaxIdleConnsPerHost limits idle connections per host.
	FetchMaxIdleConnsPerHost = 10
	// FetchIdleConnTimeout is the idle connection timeout.
	FetchIdleConnTimeout = 30 * time.Second
	// FetchTLSHandshakeTimeout is the TLS handshake timeout.
	FetchTLSHandshakeTimeout = 3 * time.Second
	// FetchExpectContinueTimeout is the expect-continue timeout.
	FetchExpectContinueTimeout = 1 * time.Second

	// ArchiveMaxEntrySize caps a single archive entry size during extraction.
	ArchiveMaxEntrySize = int64(512 << 20) // 512 MiB per file
	// ArchiveMaxTotalSize caps total extracted bytes per archive.
	ArchiveMaxTotalSize = int64(4 << 30) // 4 GiB per archive

	// StoreSchemaVersion is the current cache database schema version.
	StoreSchemaVersion = 1

	// StoreDBLock is the cache lock file name.
	StoreDBLock = ".flint-gradle.lock"
	// StoreDBArtifactURLs is the resolved artifact URL cache database filename.
	StoreDBArtifactURLs = "flint-artifact-urls.db"
	// StoreDBChecksums is the static file checksum cache database filename.
	StoreDBChecksums = "flint-checksums.db"

	// StoreBucketMeta is the bucket name for database metadata.
	StoreBucketMeta = "meta"
	// StoreBucketArtifactURLs is the bucket name for resolved artifact URLs.
	StoreBucketArtifactURLs = "artifact_urls"
	// StoreBucketChecksums is the bucket name for file checksums.
	StoreBucketChecksums = "checksums"

	// StoreMetaSchemaVersion is the metadata key for the schema version.
	StoreMetaSchemaVersion = "schema_version"
	// StoreMetaLastSave is the metadata key for the last save time.
	StoreMetaLastSave = "last_save"

	// EnvironmentDirName is the cache subdirectory for pipeline work files.
	EnvironmentDirName = "environment"
	// MappingsDirName is the environment cache subdirectory for mapping files.
	MappingsDirName = "mappings"
	// MinecraftRepositoryDirName is the cache subdirectory for game artifacts.
	MinecraftRepositoryDirName = "minecraft-repository"
	// InternalRepositoryDirName is the cache subdirectory for pipeline by-products.
	InternalRepositoryDirName = "internal-repository"
	// ManifestFileName is the generated manifest filename.
	ManifestFileName = "manifest.json"
	// ProjectFileName is the default project descriptor filename.
	ProjectFileName = "flint.yml"
)
