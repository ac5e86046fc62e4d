/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
* Each bucket contains only one type of object.
* It has a primary key and may possess secondary indexes (1:1 or 1:N).
* Models are serialized with the application amino codec.

Indexes are compact: all primary keys referenced by an index value are kept
in a single MultiRef record, so lookups never need to iterate the store.
*/
package orm
