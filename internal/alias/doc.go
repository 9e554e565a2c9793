// Package alias stores per-program command aliases and expands them.
//
// Each owner (a client program name) has its own table of source to
// target mappings. Sources and owners compare case-insensitively. The most
// recently used entry of a table is kept at its front.
//
// # Expansion
//
// When a line is submitted its first space-delimited token is looked up in
// the owner's table. If it names an alias, the target is copied with these
// substitutions:
//
//	$1..$9  the Nth space-delimited argument after the token
//	$*      everything after the token, verbatim
//	$L $G   the characters < and >
//	$B      the character |
//	$T      a line break; the alias expands to one more command
//
// Any other character after a $ is copied together with the $. Every
// produced line ends with CRLF. An expansion that does not fit the
// destination capacity is rejected as a whole.
package alias
