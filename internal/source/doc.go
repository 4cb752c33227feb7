// Package source provides the content sources an application payload is
// installed from.
//
// A [Source] reports the version it currently offers and opens a [Snapshot]:
// a read-only view of one payload version that stays valid until closed.
// Three sources are provided:
//
//   - [Local] serves a directory on disk with a configured version string.
//   - [Archive] downloads a zip or tarball over HTTP and reads its version
//     from a second URL.
//   - [GitHub] uses the latest release of a repository: the tag is the
//     version and a named release asset is the payload.
//
// Remote sources retry transient HTTP failures with exponential backoff
// (github.com/cenkalti/backoff/v4) and extract archives with
// github.com/mholt/archiver.
package source
