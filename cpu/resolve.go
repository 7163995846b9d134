package cpu

import (
	"strconv"
	"strings"
)

// Value is an operand that names a register or holds an integer literal.
// Which one it is depends on the register file at the time it is read.
type Value string

// Resolve returns the register value if the operand names a register,
// otherwise the integer literal it spells.
func (val Value) Resolve(register map[string]int64) (value int64, err error) {
	value, ok := register[string(val)]
	if ok {
		return
	}

	value, err = parseNumber(string(val))
	if err != nil {
		err = ErrParseValue(val)
	}

	return
}

// Address is a memory address expression: base, base+offset or base-offset.
type Address struct {
	Text   string // Source text.
	Base   string // Register name or integer literal.
	Offset int64  // Signed offset added to a register base.
}

// ParseAddress splits an address expression.
//
// A '+' split is tried first, then a '-' split. A split only counts when it
// yields exactly two parts with an integer right hand side; a failed '+'
// split still narrows the base to its left hand side before the '-' split is
// tried. Register names containing '+' or '-' are therefore misparsed.
func ParseAddress(text string) (addr Address, err error) {
	addr = Address{Text: text, Base: text}

	for _, sep := range []string{"+", "-"} {
		parts := strings.Split(addr.Base, sep)
		if len(parts) != 2 {
			continue
		}
		addr.Base = parts[0]
		offset, perr := parseNumber(parts[1])
		if perr != nil {
			continue
		}
		if sep == "-" {
			offset = -offset
		}
		addr.Offset = offset
		break
	}

	if isDigits(addr.Base) {
		_, err = strconv.ParseInt(addr.Base, 10, 64)
		if err != nil {
			err = ErrParseNumber(addr.Base)
		}
	}

	return
}

// Literal is true when the base is a plain integer address.
func (addr Address) Literal() bool {
	return isDigits(addr.Base)
}

// Resolve computes the address. A literal base is used as is, and
// ignores the offset; a register base has the offset applied.
func (addr Address) Resolve(register map[string]int64) (value int64, err error) {
	if addr.Literal() {
		value, err = strconv.ParseInt(addr.Base, 10, 64)
		if err != nil {
			err = ErrParseNumber(addr.Base)
		}
		return
	}

	base, ok := register[addr.Base]
	if !ok {
		err = ErrRegisterUnset(addr.Base)
		return
	}

	value, ok = addInt(base, addr.Offset)
	if !ok {
		err = ErrOverflow
	}

	return
}

func (addr Address) String() string {
	return addr.Text
}

// parseNumber parses a base 10 integer. Surrounding whitespace, a leading
// sign, and single underscores between digits are accepted.
func parseNumber(text string) (value int64, err error) {
	str := strings.TrimSpace(text)

	digits := str
	if len(digits) > 0 && (digits[0] == '+' || digits[0] == '-') {
		digits = digits[1:]
	}
	if len(digits) == 0 || digits[0] == '_' || digits[len(digits)-1] == '_' || strings.Contains(digits, "__") {
		err = ErrParseNumber(text)
		return
	}

	value, err = strconv.ParseInt(strings.ReplaceAll(str, "_", ""), 10, 64)
	if err != nil {
		err = ErrParseNumber(text)
	}

	return
}

// isDigits is true for a non-empty string of ASCII digits.
func isDigits(text string) bool {
	if len(text) == 0 {
		return false
	}
	for _, ch := range []byte(text) {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}
