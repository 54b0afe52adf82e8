// Package httputil provides HTTP response helpers for the lookup server.
//
// Every response body is JSON. Errors use one envelope:
//
//	{"error": "no root \"User.findMany\"", "code": "NOT_FOUND"}
//
// [StatusFor] maps the error codes of [errors.Code] onto HTTP status codes so
// handlers can return the same coded errors the CLI prints.
package httputil
