// Package repository defines the data access interfaces for flowstate.
//
// The editor state itself lives in memory and is never loaded from storage.
// What is persisted is the action journal: an append-only record of every
// action dispatched through the editor service, its resulting version and
// any error. The journal is a diagnostic trail; nothing replays it into a
// store.
//
// # SQLite Implementation
//
// The sqlite subpackage implements Journal on modernc.org/sqlite with WAL
// mode. The schema is created on startup. Tests use in-memory databases.
package repository
