// Package script runs the keyline startup script.
//
// The script is Lua, executed in a sandboxed gopher-lua state that opens
// only the base, table, string and math libraries. File loading functions
// and require are removed. The script configures the shell through three
// globals:
//
//	alias(owner, source, target)   -- define an alias; "" removes it
//	history_size(n [, buffers])    -- commands per history, pool size
//	log(msg)                       -- write an info line to the log
//
// Example:
//
//	alias("cmd", "ll", "dir /w $*")
//	alias("ftp", "o", "open $1")
//	history_size(100, 8)
//	log("aliases loaded")
package script
