// Package ports declares the driven-side interfaces of the engine: where
// storylines live and where play progress is persisted. Adapters (memory,
// redis, loam) implement these so the core never depends on a concrete
// backend.
package ports
