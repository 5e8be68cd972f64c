// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":      "0",
	"ARENA_ROM":   fmt.Sprintf("%#x", ARENA_ROM),
	"ARENA_STACK": fmt.Sprintf("%#x", ARENA_STACK),
	"ARENA_IO":    fmt.Sprintf("%#x", ARENA_IO),
	"MEMORY_SIZE": fmt.Sprintf("%#x", MEMORY_SIZE),
}

// mnemonicMap maps mnemonics to the descriptors sharing them.
var mnemonicMap = func() map[string][]*Descriptor {
	mnemonics := map[string][]*Descriptor{}
	for desc := range Descriptors() {
		mnemonics[desc.Mnemonic] = append(mnemonics[desc.Mnemonic], desc)
	}
	return mnemonics
}()

var reLabel = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)

// Assembler is a single pass macro assembler for the Chip16 system.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string   // Predefines
	Label     map[string]int      // Map of labels to addresses.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.

	addr       int      // Location counter.
	expansion  int      // Count of macro expansions, for '@' local labels.
	conditions CondMode // COND_MODE_FLAGS once a condition suffix is used.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// splitWords splits a line on spaces, tabs and commas.
func splitWords(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

// registerOf returns the register index of a word like "r12".
func registerOf(word string) (reg uint8, ok bool) {
	if len(word) < 2 || (word[0] != 'r' && word[0] != 'R') {
		return
	}
	v, err := strconv.ParseUint(word[1:], 10, 8)
	if err != nil || v >= REGISTER_COUNT {
		return
	}
	reg = uint8(v)
	ok = true
	return
}

func isSp(word string) bool {
	return strings.EqualFold(word, "sp")
}

// valueOf returns the 16-bit value of a simple word.
func (asm *Assembler) valueOf(word string) (value uint16, err error) {
	invert := false
	if word[0] == '~' {
		invert = true
		word = word[1:]
	}
	if len(word) > 0 && word[0] == '\'' {
		// Character quotes should have been expanded into
		// values in parseLine()
		err = ErrParseCharacter(strings.Trim(word, "'"))
		return
	}
	v64, err := strconv.ParseInt(word, 0, 33)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	switch {
	case v64 < -0x8000 || v64 > 0xffff:
		err = ErrValueRange
		return
	case v64 < 0:
		value = uint16(0x10000 + v64)
	default:
		value = uint16(v64)
	}

	if invert {
		value = ^value
	}

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value uint16, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var value16 uint16
		value16, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt(int(value16))
	}
	for key, addr := range asm.Label {
		pred[key] = starlark.MakeInt(addr)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
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
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = uint16(st_int64)
	return
}

// parseLine parses a single line into words, handling equates, labels
// and macro expansion.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	re := regexp.MustCompile(`'\\?[^']'`)
	line = re.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "e":
				str = "\033"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	re = regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%#x", value)
	})
	if err != nil {
		return
	}

	words = splitWords(line)

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]int, 16)
		}
		asm.Label[label] = asm.addr
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	// .macro processing
	macro, ok := asm.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = words[1+n]
		}
		defer func() { asm.Equate = old_equate }()

		// '@' is unique to each expansion.
		asm.expansion++
		local := fmt.Sprintf("%v_%v_", name, asm.expansion)

		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			line = strings.ReplaceAll(line, "@", local)
			words, err = asm.parseLine(line, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}

			err = asm.parseWords(words, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// Parse parses an input stream into a Program containing opcodes.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.Opcode = asm.Opcode[:0]
	asm.addr = ARENA_ROM
	asm.expansion = 0
	asm.conditions = COND_MODE_NONZERO
	if asm.Macro == nil {
		asm.Macro = make(map[string](*Macro))
	}
	clear(asm.Macro)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])
		words := splitWords(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	// Final linking of labels.
	for n := range asm.Opcode {
		op := &asm.Opcode[n]

		for _, link := range op.Links {
			addr, ok := asm.Label[link.Label]
			if !ok {
				lineno = op.LineNo
				line = strings.Join(op.Words, " ")
				err = ErrLabelMissing(link.Label)
				return
			}
			if link.Offset+1 >= len(op.Bytes) {
				log.Fatalf("Unable to link label '%s' to line %d: %v", link.Label, op.LineNo, op.Words)
			}
			op.Bytes[link.Offset] = uint8(addr & 0xff)
			op.Bytes[link.Offset+1] = uint8((addr >> 8) & 0xff)
		}
	}

	prog = &Program{
		Opcodes:    slices.Clone(asm.Opcode),
		Conditions: asm.conditions,
	}

	return
}

// emit appends generated bytes at the location counter.
func (asm *Assembler) emit(lineno int, words []string, data []uint8, links []Link) (err error) {
	if asm.addr+len(data) > MEMORY_SIZE {
		err = ErrProgramTooLarge
		return
	}

	opcode := Opcode{LineNo: lineno, Addr: asm.addr, Words: words, Bytes: data, Links: links}
	asm.Opcode = append(asm.Opcode, opcode)
	asm.addr += len(data)

	return
}

// dataOf evaluates data directive arguments of the given width in bytes.
// Labels are only permitted for words.
func (asm *Assembler) dataOf(width int, args []string) (data []uint8, links []Link, err error) {
	if len(args) == 0 {
		err = ErrOpcodeValueMissing
		return
	}

	for _, arg := range args {
		var value uint16
		value, err = asm.valueOf(arg)
		if err != nil {
			if width != 2 || !reLabel.MatchString(arg) {
				return
			}
			err = nil
			links = append(links, Link{Offset: len(data), Label: arg})
		}
		switch width {
		case 1:
			if value > 0xff && value < 0xff80 {
				err = ErrValueRange
				return
			}
			data = append(data, uint8(value))
		case 2:
			data = append(data, uint8(value&0xff), uint8(value>>8))
		}
	}

	return
}

// matchOperands binds the instruction arguments to the operands of desc.
func (asm *Assembler) matchOperands(desc *Descriptor, args []string) (values []uint16, label string, ok bool, err error) {
	if len(args) != len(desc.Operands) {
		return
	}

	values = make([]uint16, len(args))
	for n, operand := range desc.Operands {
		arg := args[n]
		reg, is_reg := registerOf(arg)
		switch {
		case operand.IsRegister():
			if !is_reg {
				return
			}
			values[n] = uint16(reg)
		case operand == OPERAND_SP:
			if !isSp(arg) {
				return
			}
		case is_reg || isSp(arg):
			return
		default:
			var value uint16
			value, err = asm.valueOf(arg)
			if err != nil {
				if operand != OPERAND_HHLL || !reLabel.MatchString(arg) {
					return
				}
				err = nil
				label = arg
			}
			values[n] = value
		}
	}

	ok = true
	return
}

// lookupMnemonic returns the candidate descriptors for a mnemonic, and the
// condition code if the mnemonic is a conditional.
func lookupMnemonic(mnemonic string) (descs []*Descriptor, cond Cond, ok bool) {
	mnemonic = strings.ToUpper(mnemonic)

	descs, ok = mnemonicMap[mnemonic]
	if ok && !descs[0].Conditional {
		return
	}

	for _, prefix := range []string{"J", "C"} {
		suffix, found := strings.CutPrefix(mnemonic, prefix)
		if !found {
			continue
		}
		cond, found = condByName[suffix]
		if !found {
			continue
		}
		descs, ok = mnemonicMap[prefix]
		if ok {
			return
		}
	}

	ok = false
	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	// no-op
	if len(words) == 0 {
		return
	}

	initial_words := words

	switch strings.ToLower(words[0]) {
	case ".org":
		if len(words) != 2 {
			err = ErrOrgSyntax
			return
		}
		var addr uint16
		addr, err = asm.valueOf(words[1])
		if err != nil {
			return
		}
		if int(addr) < asm.addr {
			err = ErrOrgBackwards
			return
		}
		asm.addr = int(addr)
		return
	case "db":
		var data []uint8
		data, _, err = asm.dataOf(1, words[1:])
		if err != nil {
			return
		}
		err = asm.emit(lineno, initial_words, data, nil)
		return
	case "dw":
		var data []uint8
		var links []Link
		data, links, err = asm.dataOf(2, words[1:])
		if err != nil {
			return
		}
		err = asm.emit(lineno, initial_words, data, links)
		return
	}

	descs, cond, ok := lookupMnemonic(words[0])
	if !ok {
		err = ErrInstructionInvalid
		return
	}

	args := words[1:]
	for _, desc := range descs {
		var values []uint16
		var label string
		values, label, ok, err = asm.matchOperands(desc, args)
		if err != nil {
			return
		}
		if !ok {
			continue
		}

		var word [INSTRUCTION_SIZE]uint8
		word, err = desc.Encode(values, cond)
		if err != nil {
			return
		}

		// Suffixes name flag predicates, ie JNZ.
		if desc.Conditional {
			asm.conditions = COND_MODE_FLAGS
		}

		var links []Link
		if len(label) != 0 {
			links = []Link{{Offset: 2, Label: label}}
		}

		err = asm.emit(lineno, initial_words, word[:], links)
		return
	}

	maxArgs := 0
	for _, desc := range descs {
		maxArgs = max(maxArgs, len(desc.Operands))
	}
	switch {
	case len(args) > maxArgs:
		err = ErrOpcodeExtraArgs
	case len(args) == 0 && maxArgs > 0:
		err = ErrOpcodeMissing
	default:
		err = ErrOpcodeInvalid
	}

	return
}
