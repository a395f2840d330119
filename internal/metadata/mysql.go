package metadata

// MySQL databases are reported as catalogs; there is no schema level.
var mysqlQueries = queries{
	catalogs: `
		SELECT schema_name
		FROM information_schema.schemata
		ORDER BY schema_name`,

	tables: `
		SELECT
			table_schema AS table_cat,
			''           AS table_schem,
			table_name,
			CASE
				WHEN table_schema IN ('mysql', 'sys', 'performance_schema', 'information_schema') THEN 'SYSTEM TABLE'
				WHEN table_type = 'BASE TABLE' THEN 'TABLE'
				ELSE table_type
			END AS table_type
		FROM information_schema.tables`,

	columns: `
		SELECT
			table_schema AS table_cat,
			''           AS table_schem,
			table_name,
			column_name,
			UPPER(data_type) AS type_name,
			COALESCE(character_maximum_length, numeric_precision, datetime_precision, 0) AS column_size,
			10 AS num_prec_radix,
			is_nullable,
			column_default AS column_def,
			ordinal_position
		FROM information_schema.columns`,

	primaryKeys: `
		SELECT
			table_schema AS table_cat,
			''           AS table_schem,
			table_name,
			column_name,
			constraint_name  AS pk_name,
			ordinal_position AS key_seq
		FROM information_schema.key_column_usage
		WHERE constraint_name = 'PRIMARY'`,

	importedKeys: `
		SELECT
			table_schema AS table_cat,
			''           AS table_schem,
			table_name,
			constraint_name         AS fk_name,
			column_name             AS fkcolumn_name,
			referenced_table_schema AS pktable_cat,
			''                      AS pktable_schem,
			referenced_table_name   AS pktable_name,
			referenced_column_name  AS pkcolumn_name,
			ordinal_position        AS key_seq
		FROM information_schema.key_column_usage
		WHERE referenced_table_name IS NOT NULL`,
}
