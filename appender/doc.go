/*
Package appender implements a sequence type combining cheap appends with
cheap indexed reads.

Appender is tailored to the needs of parser chains: items are appended and
dropped at the right end while a chain runs, and read by index when the
chain backtracks. Appends and drops go to a linked list. Reads go to a slice,
which is re-synchronized with the list on the first read after a write.

Appenders are not safe for concurrent use.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package appender
