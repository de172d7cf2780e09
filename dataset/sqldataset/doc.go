/*
Package sqldataset reads and writes samples in SQL databases.

The samples are stored using 2 database tables:
  - One for storing discrete values
  - One for the samples

Samples are stored on the samples table, with a column per attribute
feature plus one for the class feature, holding references to values in
the discrete value table.

Access to each database engine goes through an Adapter; see the
sqlite3adapter and pgadapter packages.
*/
package sqldataset
