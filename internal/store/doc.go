// Package store defines the persistence interfaces the services depend
// on, along with shared error values and the transaction helper. Concrete
// implementations live under internal/platform.
package store
