package metadata

// PostgreSQL reports the connected database as the only catalog in
// information_schema; pg_database lists the others.
var postgresQueries = queries{
	catalogs: `
		SELECT datname
		FROM pg_catalog.pg_database
		WHERE datallowconn AND NOT datistemplate
		ORDER BY datname`,

	tables: `
		SELECT
			table_catalog AS table_cat,
			table_schema  AS table_schem,
			table_name,
			CASE
				WHEN table_schema IN ('pg_catalog', 'information_schema') THEN 'SYSTEM TABLE'
				WHEN table_type = 'BASE TABLE' THEN 'TABLE'
				ELSE table_type
			END AS table_type
		FROM information_schema.tables`,

	columns: `
		SELECT
			table_catalog AS table_cat,
			table_schema  AS table_schem,
			table_name,
			column_name,
			udt_name AS type_name,
			COALESCE(character_maximum_length, numeric_precision, datetime_precision, 0) AS column_size,
			COALESCE(numeric_precision_radix, 10) AS num_prec_radix,
			is_nullable,
			column_default AS column_def,
			ordinal_position
		FROM information_schema.columns`,

	primaryKeys: `
		SELECT
			kcu.table_catalog AS table_cat,
			kcu.table_schema  AS table_schem,
			kcu.table_name,
			kcu.column_name,
			tc.constraint_name AS pk_name,
			kcu.ordinal_position AS key_seq
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
			ON  kcu.constraint_catalog = tc.constraint_catalog
			AND kcu.constraint_schema  = tc.constraint_schema
			AND kcu.constraint_name    = tc.constraint_name
		WHERE tc.constraint_type = 'PRIMARY KEY'`,

	importedKeys: `
		SELECT
			kcu.table_catalog AS table_cat,
			kcu.table_schema  AS table_schem,
			kcu.table_name,
			rc.constraint_name AS fk_name,
			kcu.column_name    AS fkcolumn_name,
			pk.table_catalog   AS pktable_cat,
			pk.table_schema    AS pktable_schem,
			pk.table_name      AS pktable_name,
			pk.column_name     AS pkcolumn_name,
			kcu.ordinal_position AS key_seq
		FROM information_schema.referential_constraints rc
		JOIN information_schema.key_column_usage kcu
			ON  kcu.constraint_catalog = rc.constraint_catalog
			AND kcu.constraint_schema  = rc.constraint_schema
			AND kcu.constraint_name    = rc.constraint_name
		JOIN information_schema.key_column_usage pk
			ON  pk.constraint_catalog = rc.unique_constraint_catalog
			AND pk.constraint_schema  = rc.unique_constraint_schema
			AND pk.constraint_name    = rc.unique_constraint_name
			AND pk.ordinal_position   = kcu.position_in_unique_constraint`,
}
