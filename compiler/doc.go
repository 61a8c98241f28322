/*
Package compiler turns human-authored DNS zone source into strictly valid,
canonical RFC 1035 zone text.

The pipeline runs strictly left to right: tokenizer, parser with include
expansion, name and default resolution, rdata validation against a fixed
per-type grammar table, serial resolution and finally emission. No stage
depends on one to its right, and a zone either compiles completely or
fails with positioned diagnostics; a partially valid zone is never
emitted.

Compile is a pure function of the source bytes and an include resolver
callback. It performs no file system or network access of its own, so
callers can drive it from files, from stdin as a git filter, or from
tests with in-memory sources. Compilations of independent zones are safe
to run concurrently; the grammar table is read-only and all other state
is call-scoped.
*/
package compiler
