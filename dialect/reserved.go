package dialect

import "strings"

// Reserved reports whether ident is a reserved word of the dialect name,
// that is a word the dialect rejects as an unquoted table or column name.
// Identifiers are compared case-insensitively.
func Reserved(name, ident string) bool {
	words, ok := reserved[name]
	if !ok {
		return false
	}
	_, ok = words[strings.ToUpper(ident)]
	return ok
}

// ReservedIn returns the dialects, in the order of Names, that reserve
// ident.
func ReservedIn(ident string) []string {
	var in []string
	for _, name := range Names {
		if Reserved(name, ident) {
			in = append(in, name)
		}
	}
	return in
}

var reserved = map[string]map[string]struct{}{
	// Keywords the SQLite parser does not fall back to identifiers for.
	SQLite: words(`
		ADD ALL ALTER AND AS AUTOINCREMENT BETWEEN CASE CHECK COLLATE COMMIT
		CONSTRAINT CREATE CROSS DEFAULT DEFERRABLE DELETE DISTINCT DROP ELSE
		ESCAPE EXCEPT EXISTS FOREIGN FROM FULL GROUP HAVING IN INDEX INDEXED
		INNER INSERT INTERSECT INTO IS ISNULL JOIN LEFT LIMIT NATURAL NOT
		NOTHING NOTNULL NULL ON OR ORDER OUTER PRIMARY REFERENCES RIGHT SELECT
		SET TABLE THEN TO TRANSACTION UNION UNIQUE UPDATE USING VALUES WHEN
		WHERE`),
	// Key words marked reserved, including those that can be function or
	// type names.
	Postgres: words(`
		ALL ANALYSE ANALYZE AND ANY ARRAY AS ASC ASYMMETRIC AUTHORIZATION
		BINARY BOTH CASE CAST CHECK COLLATE COLLATION COLUMN CONCURRENTLY
		CONSTRAINT CREATE CROSS CURRENT_CATALOG CURRENT_DATE CURRENT_ROLE
		CURRENT_SCHEMA CURRENT_TIME CURRENT_TIMESTAMP CURRENT_USER DEFAULT
		DEFERRABLE DESC DISTINCT DO ELSE END EXCEPT FALSE FETCH FOR FOREIGN
		FREEZE FROM FULL GRANT GROUP HAVING ILIKE IN INITIALLY INNER INTERSECT
		INTO IS ISNULL JOIN LATERAL LEADING LEFT LIKE LIMIT LOCALTIME
		LOCALTIMESTAMP NATURAL NOT NOTNULL NULL OFFSET ON ONLY OR ORDER OUTER
		OVERLAPS PLACING PRIMARY REFERENCES RETURNING RIGHT SELECT
		SESSION_USER SIMILAR SOME SYMMETRIC SYSTEM_USER TABLE TABLESAMPLE THEN
		TO TRAILING TRUE UNION UNIQUE USER USING VARIADIC VERBOSE WHEN WHERE
		WINDOW WITH`),
	// Reserved words of MySQL 8.
	MySQL: words(`
		ACCESSIBLE ADD ALL ALTER ANALYZE AND AS ASC ASENSITIVE BEFORE BETWEEN
		BIGINT BINARY BLOB BOTH BY CALL CASCADE CASE CHANGE CHAR CHARACTER
		CHECK COLLATE COLUMN CONDITION CONSTRAINT CONTINUE CONVERT CREATE
		CROSS CUBE CUME_DIST CURRENT_DATE CURRENT_TIME CURRENT_TIMESTAMP
		CURRENT_USER CURSOR DATABASE DATABASES DAY_HOUR DAY_MICROSECOND
		DAY_MINUTE DAY_SECOND DEC DECIMAL DECLARE DEFAULT DELAYED DELETE
		DENSE_RANK DESC DESCRIBE DETERMINISTIC DISTINCT DISTINCTROW DIV DOUBLE
		DROP DUAL EACH ELSE ELSEIF EMPTY ENCLOSED ESCAPED EXCEPT EXISTS EXIT
		EXPLAIN FALSE FETCH FIRST_VALUE FLOAT FLOAT4 FLOAT8 FOR FORCE FOREIGN
		FROM FULLTEXT FUNCTION GENERATED GET GRANT GROUP GROUPING GROUPS
		HAVING HIGH_PRIORITY HOUR_MICROSECOND HOUR_MINUTE HOUR_SECOND IF
		IGNORE IN INDEX INFILE INNER INOUT INSENSITIVE INSERT INT INT1 INT2
		INT3 INT4 INT8 INTEGER INTERSECT INTERVAL INTO IO_AFTER_GTIDS
		IO_BEFORE_GTIDS IS ITERATE JOIN JSON_TABLE KEY KEYS KILL LAG
		LAST_VALUE LATERAL LEAD LEADING LEAVE LEFT LIKE LIMIT LINEAR LINES
		LOAD LOCALTIME LOCALTIMESTAMP LOCK LONG LONGBLOB LONGTEXT LOOP
		LOW_PRIORITY MASTER_BIND MASTER_SSL_VERIFY_SERVER_CERT MATCH MAXVALUE
		MEDIUMBLOB MEDIUMINT MEDIUMTEXT MIDDLEINT MINUTE_MICROSECOND
		MINUTE_SECOND MOD MODIFIES NATURAL NOT NO_WRITE_TO_BINLOG NTH_VALUE
		NTILE NULL NUMERIC OF ON OPTIMIZE OPTIMIZER_COSTS OPTION OPTIONALLY
		OR ORDER OUT OUTER OUTFILE OVER PARTITION PERCENT_RANK PRECISION
		PRIMARY PROCEDURE PURGE RANGE RANK READ READS READ_WRITE REAL
		RECURSIVE REFERENCES REGEXP RELEASE RENAME REPEAT REPLACE REQUIRE
		RESIGNAL RESTRICT RETURN REVOKE RIGHT RLIKE ROW ROWS ROW_NUMBER SCHEMA
		SCHEMAS SECOND_MICROSECOND SELECT SENSITIVE SEPARATOR SET SHOW SIGNAL
		SMALLINT SPATIAL SPECIFIC SQL SQLEXCEPTION SQLSTATE SQLWARNING
		SQL_BIG_RESULT SQL_CALC_FOUND_ROWS SQL_SMALL_RESULT SSL STARTING
		STORED STRAIGHT_JOIN SYSTEM TABLE TERMINATED THEN TINYBLOB TINYINT
		TINYTEXT TO TRAILING TRIGGER TRUE UNDO UNION UNIQUE UNLOCK UNSIGNED
		UPDATE USAGE USE USING UTC_DATE UTC_TIME UTC_TIMESTAMP VALUES
		VARBINARY VARCHAR VARCHARACTER VARYING VIRTUAL WHEN WHERE WHILE WINDOW
		WITH WRITE XOR YEAR_MONTH ZEROFILL`),
}

func words(s string) map[string]struct{} {
	fields := strings.Fields(s)
	m := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		m[f] = struct{}{}
	}
	return m
}
