// Package tracker exposes the leadership tracker store over HTTP: snapshot
// import and export, read queries for projects and commitments, and project
// deletion with its ownership cascade.
package tracker
