// Package mycocosm declares the collaborators that talk to the JGI portal
// and to the export database. Implementations live in internal/io*
// packages.
package mycocosm

import (
	"context"

	"github.com/gnames/gnmyco/pkg/project"
)

// Authenticator opens a portal session.
type Authenticator interface {
	// Login authenticates the user. After a successful login the session
	// cookie is used by all other portal requests.
	Login(ctx context.Context) error
}

// Transfer downloads a file from the portal.
type Transfer interface {
	// Fetch saves the file found at a portal-relative URL to dest.
	// Transient failures are retried a fixed number of times.
	Fetch(ctx context.Context, url, dest string) error
}

// Portal provides the portal metadata downloads.
type Portal interface {
	Authenticator
	Transfer

	// FetchGenomeList saves the MycoCosm genome list CSV to dest.
	FetchGenomeList(ctx context.Context, dest string) error

	// FetchListing returns the XML file listing of one project.
	FetchListing(ctx context.Context, code string) ([]byte, error)
}

// Exporter stores a reconciled catalog in a database.
type Exporter interface {
	// Export replaces previously exported data with the catalog.
	Export(ctx context.Context, cat *project.Catalog) error
}
