package store

// Dataset load. Only the columns the aggregations need are kept, and rows
// without a data value are dropped, mirroring the published dataset's usage.
const (
	queryLoadDataset = `
		CREATE TABLE dataset AS
		SELECT
			"LocationDesc" AS state,
			"Question" AS question,
			"Data_Value" AS value,
			"StratificationCategory1" AS category,
			"Stratification1" AS segment
		FROM read_csv(?, header = true)
		WHERE "Data_Value" IS NOT NULL`

	queryCountDataset = `SELECT COUNT(*) FROM dataset`
)
