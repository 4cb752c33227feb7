// Package config loads the quail.yaml that describes the packaged application.
//
// A config names the application, the binary and icon inside its payload, how
// it should be registered on the host, and where its payload comes from:
//
//	version: 1
//	name: Allum1
//	binary: allum1
//	icon: icon.jpeg
//	publisher: Quail
//	console: false
//	integrity: true
//	registrar: auto            # auto, desktop, windows, receipt
//	source:
//	  type: github             # local, archive, github
//	  repo: owner/allum1
//	  asset: allum1-linux.zip
//
// Every key can be overridden from the environment with the QUAIL_ prefix,
// nested keys joined by underscores (QUAIL_SOURCE_TOKEN).
//
// # Loading Configuration
//
//	config.Init()
//	cfg, err := config.Load("")
//
// [Load] validates the result and reports every problem at once; the returned
// error wraps each [FieldError].
package config
