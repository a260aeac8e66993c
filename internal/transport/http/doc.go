// Package http implements HTTP request handlers for the ingestion service.
// It provides a thin layer between HTTP transport and business logic,
// keeping handlers focused solely on HTTP concerns.
//
// Handlers in this package follow these principles:
//
//	1. Thin handlers - minimal logic, delegate to services
//	2. HTTP-only concerns - request parsing, response formatting
//	3. Error transformation - convert service errors to RFC 7807 responses
//	4. No business logic - all logic belongs in the service layer
//
// All errors follow RFC 7807 Problem Details:
//
//	{
//	    "type": "/errors/validation",
//	    "title": "Validation Error",
//	    "status": 400,
//	    "detail": "Date must be in YYYY-MM-DD format",
//	    "instance": "/api/ledger"
//	}
package http
