// Package generator produces synthetic telemetry for both metric registries.
// The draws behind every sample come from a Source, so tests can script
// exact sequences and seeded runs are reproducible.
package generator

// Sample counts for one full generation pass.
const (
	DefaultHTTPCount     = 50
	DefaultDatabaseCount = 30
	DefaultPayloadCount  = 20
)

var (
	httpMethods   = []string{"GET", "POST", "PUT", "DELETE"}
	httpEndpoints = []string{"/users", "/orders", "/products", "/auth"}
	queryTypes    = []string{"SELECT", "INSERT", "UPDATE", "DELETE"}
	queryTables   = []string{"users", "orders", "products"}

	protocols     = []string{"http", "grpc", "websocket"}
	memoryRegions = []string{"heap", "stack", "cache"}
	queueNames    = []string{"high_priority", "normal", "low_priority"}
)

// Report sums up one generation pass for logging and confirmation pages.
type Report struct {
	HTTPSamples     int
	DatabaseSamples int
	PayloadSamples  int
	BytesProcessed  int64
}
