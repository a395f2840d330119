package metadata

// SQL Server's INFORMATION_SCHEMA covers the connected database only.
// KEY_COLUMN_USAGE has no POSITION_IN_UNIQUE_CONSTRAINT, so referenced
// columns are paired by ordinal position.
var sqlServerQueries = queries{
	catalogs: `
		SELECT name
		FROM sys.databases
		ORDER BY name`,

	tables: `
		SELECT
			TABLE_CATALOG AS table_cat,
			TABLE_SCHEMA  AS table_schem,
			TABLE_NAME    AS table_name,
			CASE
				WHEN TABLE_SCHEMA IN ('sys', 'INFORMATION_SCHEMA') THEN 'SYSTEM TABLE'
				WHEN TABLE_TYPE = 'BASE TABLE' THEN 'TABLE'
				ELSE TABLE_TYPE
			END AS table_type
		FROM INFORMATION_SCHEMA.TABLES`,

	columns: `
		SELECT
			TABLE_CATALOG AS table_cat,
			TABLE_SCHEMA  AS table_schem,
			TABLE_NAME    AS table_name,
			COLUMN_NAME   AS column_name,
			DATA_TYPE     AS type_name,
			COALESCE(CHARACTER_MAXIMUM_LENGTH, NUMERIC_PRECISION, DATETIME_PRECISION, 0) AS column_size,
			COALESCE(NUMERIC_PRECISION_RADIX, 10) AS num_prec_radix,
			IS_NULLABLE    AS is_nullable,
			COLUMN_DEFAULT AS column_def,
			ORDINAL_POSITION AS ordinal_position
		FROM INFORMATION_SCHEMA.COLUMNS`,

	primaryKeys: `
		SELECT
			kcu.TABLE_CATALOG AS table_cat,
			kcu.TABLE_SCHEMA  AS table_schem,
			kcu.TABLE_NAME    AS table_name,
			kcu.COLUMN_NAME   AS column_name,
			tc.CONSTRAINT_NAME AS pk_name,
			kcu.ORDINAL_POSITION AS key_seq
		FROM INFORMATION_SCHEMA.TABLE_CONSTRAINTS tc
		JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE kcu
			ON  kcu.CONSTRAINT_CATALOG = tc.CONSTRAINT_CATALOG
			AND kcu.CONSTRAINT_SCHEMA  = tc.CONSTRAINT_SCHEMA
			AND kcu.CONSTRAINT_NAME    = tc.CONSTRAINT_NAME
		WHERE tc.CONSTRAINT_TYPE = 'PRIMARY KEY'`,

	importedKeys: `
		SELECT
			kcu.TABLE_CATALOG AS table_cat,
			kcu.TABLE_SCHEMA  AS table_schem,
			kcu.TABLE_NAME    AS table_name,
			rc.CONSTRAINT_NAME AS fk_name,
			kcu.COLUMN_NAME    AS fkcolumn_name,
			pk.TABLE_CATALOG   AS pktable_cat,
			pk.TABLE_SCHEMA    AS pktable_schem,
			pk.TABLE_NAME      AS pktable_name,
			pk.COLUMN_NAME     AS pkcolumn_name,
			kcu.ORDINAL_POSITION AS key_seq
		FROM INFORMATION_SCHEMA.REFERENTIAL_CONSTRAINTS rc
		JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE kcu
			ON  kcu.CONSTRAINT_CATALOG = rc.CONSTRAINT_CATALOG
			AND kcu.CONSTRAINT_SCHEMA  = rc.CONSTRAINT_SCHEMA
			AND kcu.CONSTRAINT_NAME    = rc.CONSTRAINT_NAME
		JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE pk
			ON  pk.CONSTRAINT_CATALOG = rc.UNIQUE_CONSTRAINT_CATALOG
			AND pk.CONSTRAINT_SCHEMA  = rc.UNIQUE_CONSTRAINT_SCHEMA
			AND pk.CONSTRAINT_NAME    = rc.UNIQUE_CONSTRAINT_NAME
			AND pk.ORDINAL_POSITION   = kcu.ORDINAL_POSITION`,
}
