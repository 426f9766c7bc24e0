// Package core provides the business logic for marketplace export summaries.
//
// This package holds all domain logic independent of any transport or storage
// backend. Web handlers, tests and background jobs use it through [Service].
//
// # Architecture
//
// The package is organized around a small pipeline:
//
//   - Platform registry: a fixed table mapping each supported marketplace to
//     the source column names of its export (sku, quantity, value, status,
//     date). See [Schemas] and [SchemaFor].
//   - Detection: [DetectPlatform] classifies a file by filename keywords.
//   - Loading: [LoadTable] decodes raw bytes into a [Table], trying the
//     spreadsheet decoder first and delimited text second.
//   - Normalization: [NormalizeAndFilter] resolves platform columns, applies
//     the date window and drops cancelled orders.
//   - Aggregation: [Aggregate] sums quantity and value per (platform, SKU).
//   - Single-file summary: [SummarizeSingle] and [Describe] report totals for
//     a freshly uploaded file.
//
// # Storage
//
// Raw files live in a [BlobStore] injected into [NewService]. The core never
// caches decoded tables or computed summaries; every summary request decodes
// the stored bytes again.
//
// # Tolerant Parsing
//
// Per-cell conversion failures never fail a request. [CoerceNumber] turns
// malformed quantities and values into zero and [ParseDate] reports
// unparseable dates as missing.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - FILE001-FILE008: File errors (size, decoding, format, missing file)
//   - VAL001-VAL002: Validation errors (dates and date ranges)
//   - STO001-STO004: Storage backend errors
//   - UPL002-UPL005: Upload errors (busy, cancelled, timeout)
package core
