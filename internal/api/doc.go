// Package api serves query results over HTTP and provides a client for them.
//
// # Endpoints
//
//	GET /api/logs?path=FILE&filter=&level=&start=&end=
//	GET /api/folder-logs?folder=DIR&filter=&level=&start=&end=
//	GET /health
//
// Successful queries return query.Result as JSON. Failures return
// {"error": "..."} with a status derived from the query error kind:
// 400 for bad input or a missing source, 404 when a folder holds no log
// file, 500 for I/O failures. Requests are rate limited per client address
// (429) and only GET is accepted (405).
//
// The Client mirrors these endpoints and converts error replies back into
// *query.Error so callers handle remote and local failures the same way.
package api
