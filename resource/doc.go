// Package resource holds the plain data definitions carried across the process
// boundary: URLs, resource kinds, request status, upload bodies, host/port pairs,
// response headers, load timing, dev-tools info and file metadata.
//
// Imports are limited to the standard library and samber/lo.
package resource
