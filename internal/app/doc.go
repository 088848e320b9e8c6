// Package app wires the application together: configuration, logging,
// Prometheus registry, services, middleware chain and the chi router,
// plus HTTP server lifecycle with graceful shutdown.
//
// Route map:
//
//	POST /api/dataset                    upload a workbook, run the pipeline
//	GET  /api/dataset/kpis               headline KPI scalars
//	GET  /api/dataset/line-items         expanded line-item table
//	GET  /api/dataset/orders             deduplicated order table
//	GET  /api/dataset/render-config      chart rendering configuration
//	GET  /api/dataset/analytics          list of analytics views
//	GET  /api/dataset/analytics/{view}   one named analytics view
//	GET  /api/healthz                    process and dataset health
//	GET  /metrics                        Prometheus metrics
package app
