// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"bufio"
	"errors"
	"io"
	"iter"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/regvm/internal"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

var reParen = regexp.MustCompile(`\$\([^\$]*\)`)

// Tokenizer converts assembly source text into a token stream.
type Tokenizer struct {
	Verbose bool              // If set, logs each source line as it is read.
	Equate  map[string]string // Map of equates visible to $(...) expressions.

	predefine map[string]string
}

// Predefine defines a new equate or redefines an existing one for
// subsequent calls to Parse.
func (tok *Tokenizer) Predefine(equ string, value string) {
	if tok.predefine == nil {
		tok.predefine = map[string]string{equ: value}
	} else {
		tok.predefine[equ] = value
	}
}

// Defines returns an iterator over the system equates and the predefines.
func (tok *Tokenizer) Defines() iter.Seq2[string, string] {
	return internal.Concat(internal.Sorted(sysEquate), internal.Sorted(tok.predefine))
}

// Parse tokenizes an input stream. Blank and comment-only lines produce no token.
func (tok *Tokenizer) Parse(input io.Reader) (tokens []Token, err error) {
	scanner := bufio.NewScanner(input)

	var text string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: text, Err: err}
		}
	}()

	tok.Equate = maps.Clone(sysEquate)
	for attr, val := range tok.predefine {
		tok.Equate[attr] = val
	}

	for scanner.Scan() {
		text = scanner.Text()
		lineno += 1

		if tok.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		var token Token
		var ok bool
		token, ok, err = tok.ParseLine(text, lineno)
		if err != nil {
			return
		}
		if ok {
			tokens = append(tokens, token)
		}
	}

	err = scanner.Err()

	return
}

// ParseLine tokenizes a single source line. ok is false when the line
// carries no token.
func (tok *Tokenizer) ParseLine(text string, lineno int) (token Token, ok bool, err error) {
	line, _, _ := strings.Cut(text, ";")
	line = strings.TrimSpace(line)
	if len(line) == 0 {
		return
	}

	if tok.Equate == nil {
		tok.Equate = maps.Clone(sysEquate)
	}
	tok.Equate["LINENO"] = strconv.Itoa(lineno)

	command, contents, has_args := cutSpace(line)

	// .equ NAME VALUE
	if command == ".equ" {
		err = tok.equate(contents)
		return
	}

	if !has_args {
		if strings.HasSuffix(line, ":") || line == "end" || line == "ret" {
			token = Token{LineNo: lineno, Line: line, Command: line}
			ok = true
			return
		}
		err = ErrOperandMissing
		return
	}

	// Exactly one comma separates two operands. Anything else stays whole.
	var args []string
	parts := strings.Split(contents, ",")
	if len(parts) == 2 {
		args = []string{strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])}
	} else {
		args = []string{strings.TrimSpace(contents)}
	}

	if command != "msg" {
		for n, arg := range args {
			args[n], err = tok.expand(arg)
			if err != nil {
				return
			}
		}
	}

	token = Token{LineNo: lineno, Line: line, Command: command, Args: args}
	ok = true

	return
}

// equate handles the body of a .equ directive.
func (tok *Tokenizer) equate(contents string) (err error) {
	contents, err = tok.expand(contents)
	if err != nil {
		return
	}

	words := strings.Fields(contents)
	if len(words) != 2 {
		err = ErrEquateSyntax
		return
	}

	_, ok := tok.Equate[words[0]]
	if ok {
		err = ErrEquateDuplicate
		return
	}

	tok.Equate[words[0]] = words[1]

	return
}

// expand replaces every $(...) with its decimal value.
func (tok *Tokenizer) expand(text string) (out string, err error) {
	out = reParen.ReplaceAllStringFunc(text, func(str string) string {
		value, _err := tok.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
			return str
		}
		return strconv.FormatInt(value, 10)
	})

	return
}

// parenEval does compile-time $(...) evaluations
func (tok *Tokenizer) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{Name: "asm"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range tok.Equate {
		v64, perr := strconv.ParseInt(str, 0, 64)
		if perr != nil {
			// Not an integer, leave it out of scope.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = errors.Join(ErrParseExpression(expr), err)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// cutSpace splits a trimmed line at its first run of whitespace.
func cutSpace(line string) (command, contents string, found bool) {
	n := strings.IndexFunc(line, unicode.IsSpace)
	if n < 0 {
		return line, "", false
	}

	return line[:n], strings.TrimLeftFunc(line[n:], unicode.IsSpace), true
}
