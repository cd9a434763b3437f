// Package store implements the data access layer for the statistics service.
//
// The only table is the nutrition dataset, loaded by DuckDB's read_csv into
// an in-memory database at startup:
//
//	dataset (
//	    state     VARCHAR,  -- LocationDesc
//	    question  VARCHAR,  -- Question
//	    value     DOUBLE,   -- Data_Value (rows with NULL dropped at load)
//	    category  VARCHAR,  -- StratificationCategory1
//	    segment   VARCHAR   -- Stratification1
//	)
//
// The table is never written after Load, so aggregation queries run
// concurrently from all workers without synchronization beyond what
// database/sql provides.
//
// # Aggregations
//
// Every statistical operation is a single SQL aggregation built with
// squirrel: AVG + GROUP BY for the means, ORDER BY + LIMIT 5 for the
// rankings, and a scalar subquery for the difference-from-average family.
// Results preserve their sort order through models.OrderedMap.
//
// DatasetStore.Compute dispatches a RequestSpec to the matching query; it is
// the computation capability the worker pool executes.
package store
