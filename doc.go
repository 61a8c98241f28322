/*
Zonec compiles human-authored DNS zone source - with $INCLUDE, $ORIGIN,
$TTL, shorthand record forms and relative names - into strictly valid,
canonical RFC 1035 zone text suitable for a nameserver to load.

Each zone compiles completely or fails with positioned diagnostics; a
partial zone is never written. The SOA serial can pass through unchanged
or be managed automatically (autoincrement or datestamp), bumping only
when the zone content actually changed. Multiple zones compile in
parallel, and --filter turns the program into a git clean filter so
compiled zones can be committed without compiling locally.
*/
package main
