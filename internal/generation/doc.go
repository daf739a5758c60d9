// Package generation defines the boundary between the application core and
// external language-model services: the interfaces the services implement,
// the shared error taxonomy, and the pure request/response contract for
// term definitions. Nothing in this package performs network calls.
package generation
