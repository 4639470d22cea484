// Package htmldoc implements host.Host over an in-memory document parsed
// and serialized with golang.org/x/net/html. It is the reference
// implementation used by this repository's own tests and by the CLI's
// offline "-fixture" mode, where no real browser is available.
package htmldoc
