// Package history persists one row per conversion run in a SQLite database
// under the state directory.
//
// The Store backs "itlexport history" and lets a later run report what the
// previous one produced. Schema changes bump schemaVersion in schema.go;
// users delete history.db to adopt the new schema.
package history
