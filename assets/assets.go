// Package assets holds static resources embedded into the binary.
package assets

import _ "embed"

// SystemInstruction is the Czech system directive prepended to every
// model call. It is never stored in conversation history.
//
//go:embed system_instruction.txt
var SystemInstruction string
