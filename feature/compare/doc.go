// Package compare implements the workbook comparison feature.
//
// It accepts a PRE-EA and a CSSM workbook upload, runs the reconciliation
// engine over them, and returns either a JSON report (summary, per-row
// outcomes, decision log) or the annotated PRE-EA workbook with the
// RED/BLUE/YELLOW/GREEN row coloring.
//
// When the run archive is configured, every comparison is persisted under
// runs/<run-id>/ in object storage (compared workbook + decision log) so past
// runs can be listed, re-downloaded, and deleted.
//
// # Components
//
//   - Service: parses uploads, runs core/reconcile, annotates, archives.
//   - Handler: exposes the HTTP endpoints.
//   - Loader: registers the feature with the application.
//
// # HTTP Endpoints
//
//   - POST   /compare                    : run a comparison (multipart upload)
//   - GET    /compare/runs               : list archived runs
//   - GET    /compare/runs/:id/workbook  : download an annotated workbook
//   - GET    /compare/runs/:id/log       : download a decision log
//   - DELETE /compare/runs/:id           : remove an archived run
package compare
