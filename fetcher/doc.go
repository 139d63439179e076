// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package fetcher is the client side of the catalog API.

Fetch issues exactly one GET per call:

	GET {base}/api/pokemon/list?page=N&filters=Q

and returns the decoded models.PageResult. Page and query go through
unchanged; the server alone decides num_pages.

Failures come back as errors, never as a partial result:

  - transport errors are returned wrapped
  - non-2xx responses wrap ErrStatus
  - undecodable bodies, a missing data array or num_pages < 1 wrap ErrMalformed

There are no retries. Random and ByID serve the fight view.
*/
package fetcher
