// Package pagination provides shared sorting and paging for list output.
//
// It contains:
//   - Params: limit/offset or page/page-size flags and query parameters, with validation
//   - Meta: response metadata for paginated results
//   - FactorSorter: field-validated sorting of emission factors
//
// The CLI's "factors list" and the HTTP API's GET /v1/factors use it so both
// page and sort the same way.
package pagination
