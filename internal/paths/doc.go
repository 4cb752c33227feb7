// Package paths resolves where quail keeps things on the host.
//
// Payloads are installed under a per-application directory in the quail
// root (~/.quail/<name> by default). Host integration files follow the XDG
// Base Directory Specification through github.com/adrg/xdg:
//
//	| What                 | Location                                |
//	|----------------------|-----------------------------------------|
//	| install root         | ~/.quail/                               |
//	| desktop entries      | $XDG_DATA_HOME/applications/            |
//	| install receipts     | $XDG_DATA_HOME/quail/receipts/          |
//	| download cache       | $XDG_CACHE_HOME/quail/downloads/        |
//	| configuration        | $XDG_CONFIG_HOME/quail/quail.yaml       |
//
// Tests can point XDG lookups at a temporary directory by setting the XDG_*
// environment variables and calling [Reload].
package paths
