package env

import (
	"net/http"

	"github.com/lukeha98/flint-gradle/internal/flint/javaexec"
	"github.com/lukeha98/flint-gradle/internal/flint/maven"
	"github.com/lukeha98/flint-gradle/internal/flint/output"
	"github.com/lukeha98/flint-gradle/internal/flint/store"
)

// Utilities bundles the shared collaborators every pipeline function may need.
//
// One instance is built at process start and threaded explicitly through the
// environment; functions never reach for ambient global state. HTTP is nil in
// offline mode.
type Utilities struct {
	Downloader    *maven.Downloader
	MinecraftRepo *maven.Repository
	InternalRepo  *maven.Repository
	HTTP          *http.Client
	Store         *store.Store
	Exec          *javaexec.Helper
	Output        output.Printer
}
