// Package token implements the 128-bit identifier used as the primary and
// foreign key of every nuScenes table.
//
// A Token is stored as 16 raw bytes and rendered in its canonical textual form:
// exactly 32 lowercase hexadecimal characters with no separators.
//
// # Optional references
//
// Chain links (prev/next) may be empty strings in the source files. Optional
// decodes "" and null as an absent reference, and encodes an absent reference
// back to "".
//
// # Usage
//
//	tok, err := token.Parse("3e8750f331d7499e9b5123e9eb70f2e2")
//	if errors.Is(err, token.ErrMalformed) {
//	    // wrong length or non-hex input
//	}
//	fmt.Println(tok) // 3e8750f331d7499e9b5123e9eb70f2e2
package token
