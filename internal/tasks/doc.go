// Package tasks runs long-running library operations with real-time progress reporting.
//
// # Bulk export
//
// [Exporter.BulkExport] writes the favorites and history of many partitions (registered users and the
// anonymous partition) to disk concurrently:
//   - a producer reads each partition straight from the store, so the active session is never switched
//   - a bounded worker pool renders and writes the files through the formatter package
//   - an export_manifest.json summarizes successes and failures
//
// # Progress Reporting
//
// Operations report through a non-blocking channel of [ProgressUpdate] values. Updates are sent with
// select/default so a slow consumer never stalls an export.
package tasks
