package metadata

// Oracle has no catalogs; the owning user is the schema. DATA_DEFAULT is a
// LONG and cannot be selected from a derived table, so the VARCHAR2 copy
// (12.2+) is used instead.
var oracleQueries = queries{
	tables: `
		SELECT
			NULL  AS table_cat,
			owner AS table_schem,
			table_name,
			CASE WHEN owner IN ('SYS', 'SYSTEM') THEN 'SYSTEM TABLE' ELSE 'TABLE' END AS table_type
		FROM all_tables
		UNION ALL
		SELECT NULL, owner, view_name, 'VIEW'
		FROM all_views`,

	columns: `
		SELECT
			NULL  AS table_cat,
			owner AS table_schem,
			table_name,
			column_name,
			data_type AS type_name,
			COALESCE(data_precision, char_length, data_length) AS column_size,
			10 AS num_prec_radix,
			nullable AS is_nullable,
			data_default_vc AS column_def,
			column_id AS ordinal_position
		FROM all_tab_columns`,

	primaryKeys: `
		SELECT
			NULL    AS table_cat,
			c.owner AS table_schem,
			c.table_name,
			cc.column_name,
			c.constraint_name AS pk_name,
			cc.position       AS key_seq
		FROM all_constraints c
		JOIN all_cons_columns cc
			ON  cc.owner = c.owner
			AND cc.constraint_name = c.constraint_name
		WHERE c.constraint_type = 'P'`,

	importedKeys: `
		SELECT
			NULL    AS table_cat,
			c.owner AS table_schem,
			c.table_name,
			c.constraint_name AS fk_name,
			cc.column_name    AS fkcolumn_name,
			NULL              AS pktable_cat,
			r.owner           AS pktable_schem,
			r.table_name      AS pktable_name,
			rc.column_name    AS pkcolumn_name,
			cc.position       AS key_seq
		FROM all_constraints c
		JOIN all_cons_columns cc
			ON  cc.owner = c.owner
			AND cc.constraint_name = c.constraint_name
		JOIN all_constraints r
			ON  r.owner = c.r_owner
			AND r.constraint_name = c.r_constraint_name
		JOIN all_cons_columns rc
			ON  rc.owner = r.owner
			AND rc.constraint_name = r.constraint_name
			AND rc.position = cc.position
		WHERE c.constraint_type = 'R'`,
}
