/*
Package archive records generation runs in a SQLite database so earlier output
can be listed and read back later.

The package only uses database/sql. Callers open the database with a driver of
their choice (mattn/go-sqlite3 or modernc.org/sqlite), call SetupSchema once,
and then create a Store.
*/
package archive
