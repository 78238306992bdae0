/*
Package logging offers a client for emitting log entries from explay guest
applications to the host runtime.

The package exposes a small interface with convenience methods for common log
levels (Info, Warn, Error, Debug, Trace). A client instance handles the host
interaction behind the scenes, so guest code can focus on writing logs. Every
line is prefixed with the SDK tag so host-side consoles can attribute it.
*/
package logging
