// Package hostmock provides a go.uber.org/mock (gomock) mock of host.Host,
// used by internal/activation and internal/envelope tests that need to
// assert exact DOM-operation call counts and arguments without running
// against htmldoc's real tree or a live wsbridge connection.
//
// This file is written in the shape `mockgen` produces for an interface
// named Host in package host; it is checked in directly rather than
// generated on the fly so the test suite has no build-time dependency on
// the mockgen binary.
package hostmock
