// Package services holds the business services behind the HTTP layer.
//
// # Services
//
//   - DatasetService: owns the current dataset snapshot. Uploads run the
//     full processing pipeline and atomically replace the snapshot; all
//     reads (KPIs, tables, analytics views) serve from it.
//   - HealthService: process health plus a summary of the loaded dataset.
//
// Services hold no persistent state. Restarting the process drops the
// snapshot; clients re-upload to repopulate.
package services
