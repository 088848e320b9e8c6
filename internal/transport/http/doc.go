// Package http contains the HTTP transport layer: chi handlers that
// translate between the JSON API and the service layer.
//
// # Handlers
//
//   - DatasetHandler: workbook upload plus every dataset read: KPIs,
//     tables, named analytics views and chart render configuration.
//   - HealthHandler: process and dataset health.
//
// All error responses are RFC 7807 problem documents produced by
// internal/errors. Handlers expose a Routes() chi.Router and are mounted
// by the application under /api.
package http
