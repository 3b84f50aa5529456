// Package importers loads external representations of the program hierarchy
// into the store.
//
// # Architecture
//
//	External bytes → Decoder → Batch → Orchestrator → Store
//	                                      ↑
//	                          ReconciliationMap + DedupFilter
//
// A Decoder turns one serialization (json document, sectioned delimited text,
// xlsx workbook) into a Batch of positioned rows. The Orchestrator imports
// programs, then workouts, then exercises, strictly in input order, so that
// later rows can reference parents created by earlier rows through their
// source-local ids.
//
// # Failure policy
//
// Only structural problems (unparseable payload, unknown format) are returned
// as errors. Everything else is a row error: it is recorded with the row's
// 1-based position and the run continues with the next row.
//
// # Catalogs
//
// CatalogImporter ingests third-party exercise catalogs with a fixed column
// Layout. Each Layout has a pure Extractor; rows whose exercise name already
// exists anywhere in the store are skipped.
//
// # Example Usage
//
//	orch := importers.NewOrchestrator(repo, importers.DefaultOptions())
//	dec, err := importers.NewRequestDecoder(interchange.FormatCSV, body.Data)
//	result, err := orch.Import(dec, interchange.TypeAll)
package importers
