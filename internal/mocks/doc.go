// Package mocks provides hand-written test doubles for the store and service
// interfaces. Each mock exposes function fields so tests can override just the
// behavior they care about, with simple in-memory defaults otherwise.
package mocks
