// Package server holds the HTTP server configuration and constants.
//
// While the main application entry point handles the server startup, this package
// defines the configuration structures and valid values for server settings,
// such as the upload size cap for workbook submissions.
//
// # Configuration
//
// The Config struct defines the HTTP port, API key, and the body limit
// applied to multipart workbook uploads.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server
// settings and by the start command when constructing the Fiber application.
package server
