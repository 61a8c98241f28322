/*
Package log provides global output control for the whole program. Logging
comes in four levels: Silent, Major, Minor and Debug, each more detailed
than the previous. Levels are inclusive, so setting MinorLevel implies
MajorLevel logging as well.

Once command-line parsing has succeeded all program output should go via
this package, usage and error reporting included, so that tests can
capture everything by redirecting a single io.Writer with SetOut.

The Print and Printf style functions differ from their fmt counterparts
in two small ways: multi-line output has the level prefix applied to
every line, and a trailing newline is supplied automatically with excess
ones trimmed.
*/
package log
