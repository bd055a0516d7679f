// Package store holds the readings exported by the storage collaborator in
// memory and keeps them in sync with the file on disk. It never assigns ids
// and never writes back.
package store
