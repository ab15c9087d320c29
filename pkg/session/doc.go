/*
Package session implements session management and persistence orchestration.

It provides high-level abstractions for handling concurrent access to
calculator session states, serializing read-modify-write cycles per session
on top of the pluggable storage adapters.
*/
package session
