package interp

import (
	"fmt"
	"strings"

	"github.com/MW0MWZ/Microsoft-6502-Basic-C-Port/token"
	"github.com/MW0MWZ/Microsoft-6502-Basic-C-Port/tokenizer"
	"github.com/MW0MWZ/Microsoft-6502-Basic-C-Port/value"
	"github.com/MW0MWZ/Microsoft-6502-Basic-C-Port/vars"
)

// This file is the Go counterpart of statements.c and execute.c's
// dispatch switch: one method per opcode, each consuming exactly its own
// statement's tokens from c and reporting whether it jumped execution to
// a different line. Every handler that can fail returns an *Error (or,
// for END/STOP, one of the driver's two control sentinels) instead of
// unwinding via longjmp.

// execStatement dispatches the single statement at c, consuming it; an
// identifier that isn't a keyword is an implicit LET, matching
// execute_statement's IS_ALPHA fallback.
func (in *Instance) execStatement(c *Cursor) (bool, error) {
	c.skipSpaces()
	if c.atEnd() {
		return false, nil
	}
	b := c.peek()
	if b == ':' {
		return false, nil
	}
	if b < token.FirstToken {
		if isAlpha(b) {
			return in.doLet(c)
		}
		return false, Err(Syntax)
	}

	op := c.peekOpcode()
	c.next()
	switch op {
	case token.END:
		return in.doEnd(c)
	case token.FOR:
		return in.doFor(c)
	case token.NEXT:
		return in.doNext(c)
	case token.DATA:
		c.skipToEOL()
		return false, nil
	case token.INPUT:
		return in.doInput(c)
	case token.DIM:
		return in.doDim(c)
	case token.READ:
		return in.doRead(c)
	case token.LET:
		return in.doLet(c)
	case token.GOTO:
		return in.doGoto(c)
	case token.RUN:
		return in.doRunStmt(c)
	case token.IF:
		return in.doIf(c)
	case token.RESTORE:
		return in.doRestore(c)
	case token.GOSUB:
		return in.doGosub(c)
	case token.RETURN:
		return in.doReturn(c)
	case token.REM:
		c.skipToEOL()
		return false, nil
	case token.STOP:
		return in.doStop(c)
	case token.ON:
		return in.doOn(c)
	case token.WAIT:
		c.skipToEOL()
		return false, nil
	case token.DEF:
		return in.doDef(c)
	case token.POKE:
		return in.doPoke(c)
	case token.PRINT:
		return in.doPrint(c)
	case token.CONT:
		return in.doCont(c)
	case token.LIST:
		return in.doList(c)
	case token.CLEAR:
		in.Reset()
		return false, nil
	case token.GET:
		return in.doGet(c)
	case token.NEW:
		in.NewProgram()
		return false, nil
	case token.LOAD:
		return in.doLoad(c)
	case token.SAVE:
		return in.doSave(c)
	default:
		return false, Err(Syntax)
	}
}

func (in *Instance) doEnd(c *Cursor) (bool, error) {
	return true, errHalt
}

func (in *Instance) doStop(c *Cursor) (bool, error) {
	in.haveCont = true
	in.contLine = in.curLine
	in.contCur = *c
	in.stopLine = in.curLine
	return true, &StopSignal{Line: in.curLine}
}

func (in *Instance) doCont(c *Cursor) (bool, error) {
	if !in.haveCont {
		return false, Err(CantContinue)
	}
	in.haveCont = false
	in.curLine = in.contLine
	*c = in.contCur
	return true, nil
}

// doRunStmt is RUN used as a statement (as opposed to Instance.Run, the
// programmatic entry point); it resets state and repositions the cursor,
// letting the surrounding driver loop pick up execution from there.
func (in *Instance) doRunStmt(c *Cursor) (bool, error) {
	c.skipSpaces()
	start := 0
	if isDigit(c.peek()) {
		start = int(parseNumber(c))
	}
	in.Reset()
	num, tokens, ok := in.firstRunLine(start)
	if !ok {
		return true, errHalt
	}
	in.curLine = num
	*c = Cursor{LineNum: num, Tokens: tokens}
	return true, nil
}

func (in *Instance) doGoto(c *Cursor) (bool, error) {
	n, err := in.EvalInteger(c)
	if err != nil {
		return false, err
	}
	tokens, ok := in.Program.Find(n)
	if !ok {
		return false, Err(UndefinedStatement)
	}
	in.curLine = n
	*c = Cursor{LineNum: n, Tokens: tokens}
	return true, nil
}

func (in *Instance) doGosub(c *Cursor) (bool, error) {
	n, err := in.EvalInteger(c)
	if err != nil {
		return false, err
	}
	tokens, ok := in.Program.Find(n)
	if !ok {
		return false, Err(UndefinedStatement)
	}
	if len(in.gosubStack) >= maxStackDepth {
		return false, Err(OutOfMemory)
	}
	in.gosubStack = append(in.gosubStack, gosubFrame{ret: *c, line: in.curLine})
	in.curLine = n
	*c = Cursor{LineNum: n, Tokens: tokens}
	return true, nil
}

func (in *Instance) doReturn(c *Cursor) (bool, error) {
	if len(in.gosubStack) == 0 {
		return false, Err(ReturnWithoutGosub)
	}
	frame := in.gosubStack[len(in.gosubStack)-1]
	in.gosubStack = in.gosubStack[:len(in.gosubStack)-1]
	in.curLine = frame.line
	*c = frame.ret
	return true, nil
}

func (in *Instance) doFor(c *Cursor) (bool, error) {
	key, _, err := in.parseVarName(c)
	if err != nil {
		return false, err
	}
	if key.Str {
		return false, Err(Syntax)
	}
	if !c.match('=') {
		return false, Err(Syntax)
	}
	start, err := in.EvalNumeric(c)
	if err != nil {
		return false, err
	}
	in.Vars.Set(key, value.Num(start))

	if !c.matchOpcode(token.TO) {
		return false, Err(Syntax)
	}
	limit, err := in.EvalNumeric(c)
	if err != nil {
		return false, err
	}

	step := 1.0
	if c.matchOpcode(token.STEP) {
		step, err = in.EvalNumeric(c)
		if err != nil {
			return false, err
		}
	}

	if len(in.forStack) >= maxStackDepth {
		return false, Err(OutOfMemory)
	}
	in.forStack = append(in.forStack, forFrame{ret: *c, line: in.curLine, v: key, limit: limit, step: step})
	return false, nil
}

func (in *Instance) doNext(c *Cursor) (bool, error) {
	var key vars.Key
	hasVar := false
	c.skipSpaces()
	if isAlpha(c.peek()) {
		k, _, err := in.parseVarName(c)
		if err != nil {
			return false, err
		}
		key = k
		hasVar = true
	}

	idx := -1
	for i := len(in.forStack) - 1; i >= 0; i-- {
		if !hasVar || in.forStack[i].v == key {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, Err(NextWithoutFor)
	}

	in.forStack = in.forStack[:idx+1] // drop any loops nested inside this one
	frame := in.forStack[idx]
	next := in.Vars.Get(frame.v).Num + frame.step
	in.Vars.Set(frame.v, value.Num(next))

	done := (frame.step >= 0 && next > frame.limit) || (frame.step < 0 && next < frame.limit)
	if done {
		in.forStack = in.forStack[:idx]
		return false, nil
	}

	in.curLine = frame.line
	*c = frame.ret
	return true, nil
}

func (in *Instance) doIf(c *Cursor) (bool, error) {
	cond, err := in.EvalNumeric(c)
	if err != nil {
		return false, err
	}
	c.matchOpcode(token.THEN)
	c.skipSpaces()

	if cond == 0 {
		c.skipToEOL()
		return false, nil
	}

	if isDigit(c.peek()) {
		n := int(parseNumber(c))
		tokens, ok := in.Program.Find(n)
		if !ok {
			return false, Err(UndefinedStatement)
		}
		in.curLine = n
		*c = Cursor{LineNum: n, Tokens: tokens}
		return true, nil
	}
	return false, nil
}

func (in *Instance) doOn(c *Cursor) (bool, error) {
	n, err := in.EvalInteger(c)
	if err != nil {
		return false, err
	}
	c.skipSpaces()
	isGosub := false
	switch {
	case c.matchOpcode(token.GOTO):
	case c.matchOpcode(token.GOSUB):
		isGosub = true
	default:
		return false, Err(Syntax)
	}

	var targets []int
	for {
		c.skipSpaces()
		v, err := in.EvalInteger(c)
		if err != nil {
			return false, err
		}
		targets = append(targets, v)
		if c.match(',') {
			continue
		}
		break
	}

	if n < 1 || n > len(targets) {
		return false, nil // silent fallthrough to the next statement
	}
	target := targets[n-1]
	tokens, ok := in.Program.Find(target)
	if !ok {
		return false, Err(UndefinedStatement)
	}
	if isGosub {
		if len(in.gosubStack) >= maxStackDepth {
			return false, Err(OutOfMemory)
		}
		in.gosubStack = append(in.gosubStack, gosubFrame{ret: *c, line: in.curLine})
	}
	in.curLine = target
	*c = Cursor{LineNum: target, Tokens: tokens}
	return true, nil
}

func (in *Instance) doDim(c *Cursor) (bool, error) {
	for {
		c.skipSpaces()
		key, _, err := in.parseVarName(c)
		if err != nil {
			return false, err
		}
		c.skipSpaces()
		if c.peek() != '(' {
			return false, Err(Syntax)
		}
		dims, err := in.parseIndices(c)
		if err != nil {
			return false, err
		}
		sized := make([]int, len(dims))
		for i, d := range dims {
			sized[i] = d + 1
		}
		if err := in.Arrays.Dim(key, sized); err != nil {
			return false, Err(Redimensioned)
		}
		if c.match(',') {
			continue
		}
		break
	}
	return false, nil
}

func (in *Instance) doRead(c *Cursor) (bool, error) {
	for {
		c.skipSpaces()
		key, _, err := in.parseVarName(c)
		if err != nil {
			return false, err
		}
		c.skipSpaces()
		var indices []int
		if c.peek() == '(' {
			indices, err = in.parseIndices(c)
			if err != nil {
				return false, err
			}
		}
		v, err := in.NextDatum(key.Str)
		if err != nil {
			return false, err
		}
		if indices != nil {
			if key.Str {
				err = in.Arrays.SetStr(key, indices, v.Str)
			} else {
				err = in.Arrays.SetNum(key, indices, v.Num)
			}
			if err != nil {
				return false, subscriptErr(err)
			}
		} else {
			in.Vars.Set(key, v)
		}
		if c.match(',') {
			continue
		}
		break
	}
	return false, nil
}

func (in *Instance) doRestore(c *Cursor) (bool, error) {
	c.skipSpaces()
	if isDigit(c.peek()) {
		in.RestoreDataAt(int(parseNumber(c)))
	} else {
		in.RestoreData()
	}
	return false, nil
}

func (in *Instance) doInput(c *Cursor) (bool, error) {
	c.skipSpaces()
	prompt := ""
	if c.peek() == '"' {
		prompt = parseStringLiteral(c)
		c.skipSpaces()
		c.match(';')
	}

	var keys []vars.Key
	var indicesList [][]int
	for {
		c.skipSpaces()
		key, _, err := in.parseVarName(c)
		if err != nil {
			return false, err
		}
		var indices []int
		if c.peek() == '(' {
			indices, err = in.parseIndices(c)
			if err != nil {
				return false, err
			}
		}
		keys = append(keys, key)
		indicesList = append(indicesList, indices)
		if c.match(',') {
			continue
		}
		break
	}

	in.writeOut(prompt + "? ")
	line, ok := in.ReadLine()
	if !ok {
		return false, errHalt
	}

	parts := strings.Split(line, ",")
	for i, key := range keys {
		raw := ""
		if i < len(parts) {
			raw = strings.TrimSpace(parts[i])
		}
		var v value.Value
		if key.Str {
			v = value.Str(raw)
		} else {
			v = value.Num(fnVal(raw))
		}
		if indicesList[i] != nil {
			if key.Str {
				if err := in.Arrays.SetStr(key, indicesList[i], v.Str); err != nil {
					return false, subscriptErr(err)
				}
			} else {
				if err := in.Arrays.SetNum(key, indicesList[i], v.Num); err != nil {
					return false, subscriptErr(err)
				}
			}
		} else {
			in.Vars.Set(key, v)
		}
	}
	return false, nil
}

func (in *Instance) doLet(c *Cursor) (bool, error) {
	key, _, err := in.parseVarName(c)
	if err != nil {
		return false, err
	}
	c.skipSpaces()
	var indices []int
	if c.peek() == '(' {
		indices, err = in.parseIndices(c)
		if err != nil {
			return false, err
		}
	}
	if !c.match('=') {
		return false, Err(Syntax)
	}

	if key.Str {
		s, err := in.EvalString(c)
		if err != nil {
			return false, err
		}
		if len(s) > value.MaxStringLen {
			return false, Err(StringTooLong)
		}
		if indices != nil {
			if err := in.Arrays.SetStr(key, indices, s); err != nil {
				return false, subscriptErr(err)
			}
		} else {
			in.Vars.Set(key, value.Str(s))
		}
		return false, nil
	}

	n, err := in.EvalNumeric(c)
	if err != nil {
		return false, err
	}
	if indices != nil {
		if err := in.Arrays.SetNum(key, indices, n); err != nil {
			return false, subscriptErr(err)
		}
	} else {
		in.Vars.Set(key, value.Num(n))
	}
	return false, nil
}

// doDef parses and discards a DEF FN declaration; a full FN evaluator is
// out of scope (a call to any FN name raises UndefinedFunction, since
// none is ever actually defined), but the statement's own grammar still
// has to be consumed so program text after it tokenizes and LISTs
// correctly.
func (in *Instance) doDef(c *Cursor) (bool, error) {
	if in.curLine < 0 {
		return false, Err(IllegalDirect)
	}
	c.skipToEOL()
	return false, nil
}

func (in *Instance) doPoke(c *Cursor) (bool, error) {
	if _, err := in.EvalInteger(c); err != nil {
		return false, err
	}
	c.skipSpaces()
	c.match(',')
	if _, err := in.EvalInteger(c); err != nil {
		return false, err
	}
	return false, nil
}

// doGet answers "no key pressed" unconditionally: the REPL reads whole
// lines, not individual characters, so there is nothing for GET to
// return without blocking.
func (in *Instance) doGet(c *Cursor) (bool, error) {
	key, _, err := in.parseVarName(c)
	if err != nil {
		return false, err
	}
	if key.Str {
		in.Vars.Set(key, value.Str(""))
	} else {
		in.Vars.Set(key, value.Num(0))
	}
	return false, nil
}

func (in *Instance) doLoad(c *Cursor) (bool, error) {
	c.skipSpaces()
	name, err := in.EvalString(c)
	if err != nil {
		return false, err
	}
	if in.files == nil {
		return false, Err(Syntax)
	}
	lines, ferr := in.files.Load(name)
	if ferr != nil {
		return false, ferr
	}
	in.NewProgram()
	for _, raw := range lines {
		num, rest, ok := ParseLineNumber(raw)
		if !ok {
			continue // load_file silently skips lines with no line number
		}
		if err := in.Program.Insert(num, tokenizer.Tokenize(rest)); err != nil {
			return false, Err(OutOfMemory)
		}
	}
	return false, nil
}

func (in *Instance) doSave(c *Cursor) (bool, error) {
	c.skipSpaces()
	name, err := in.EvalString(c)
	if err != nil {
		return false, err
	}
	if in.files == nil {
		return false, Err(Syntax)
	}
	var lines []string
	in.Program.List(0, MaxLineNumber, func(num int, tokens []byte) {
		lines = append(lines, fmt.Sprintf("%d %s", num, strings.TrimRight(tokenizer.Detokenize(tokens), " ")))
	})
	return false, in.files.Save(name, lines)
}

func (in *Instance) doList(c *Cursor) (bool, error) {
	c.skipSpaces()
	lo, hi := 0, MaxLineNumber
	if isDigit(c.peek()) {
		lo = int(parseNumber(c))
		hi = lo
	}
	c.skipSpaces()
	if c.peek() == '-' {
		c.next()
		c.skipSpaces()
		if isDigit(c.peek()) {
			hi = int(parseNumber(c))
		} else {
			hi = MaxLineNumber
		}
	}
	in.Program.List(lo, hi, func(num int, tokens []byte) {
		fmt.Fprintf(in.ew, "%d %s\n", num, strings.TrimRight(tokenizer.Detokenize(tokens), " "))
	})
	return false, in.ew.Err
}

// doPrint implements PRINT's column-aware layout: "," advances to the
// next 14-column print zone, ";" abuts the next item with no separator,
// TAB(n)/SPC(n) pad explicitly, and a trailing "," or ";" suppresses the
// newline (so the next PRINT continues the same output line).
func (in *Instance) doPrint(c *Cursor) (bool, error) {
	trailingSep := false
	for {
		c.skipSpaces()
		if c.atEnd() || c.peek() == ':' {
			break
		}
		trailingSep = false

		switch {
		case c.peekOpcode() == token.TAB:
			c.next()
			n, err := in.evalParenInt(c)
			if err != nil {
				return false, err
			}
			in.printPad(n)
			continue
		case c.peekOpcode() == token.SPC:
			c.next()
			n, err := in.evalParenInt(c)
			if err != nil {
				return false, err
			}
			in.printSpaces(n)
			continue
		case c.peek() == ',':
			c.next()
			in.printZone()
			trailingSep = true
			continue
		case c.peek() == ';':
			c.next()
			trailingSep = true
			continue
		}

		s, err := in.evalPrintItem(c)
		if err != nil {
			return false, err
		}
		in.writeOut(s)
	}
	if !trailingSep {
		in.writeOut("\n")
	}
	return false, in.ew.Err
}

// evalPrintItem evaluates one PRINT operand, choosing the string or
// numeric sub-grammar by looking ahead at the next token rather than
// trying one and falling back, since the cursor can't be un-consumed
// past a multi-token expression.
func (in *Instance) evalPrintItem(c *Cursor) (string, error) {
	if looksLikeString(c) {
		return in.EvalString(c)
	}
	v, err := in.EvalNumeric(c)
	if err != nil {
		return "", err
	}
	return value.FormatPrint(v), nil
}

func looksLikeString(c *Cursor) bool {
	if c.peek() == '"' {
		return true
	}
	switch c.peekOpcode() {
	case token.CHR, token.STR, token.LEFT, token.RIGHT, token.MID:
		return true
	}
	if isAlpha(c.peek()) {
		i := c.Pos
		for i < len(c.Tokens) && i < c.Pos+2 && isAlnum(c.Tokens[i]) {
			i++
		}
		return i < len(c.Tokens) && c.Tokens[i] == '$'
	}
	return false
}

// writeOut sends s through the sticky-error writer and keeps the column
// counter PRINT and POS() depend on in sync. A write failure latches in
// in.ew.Err; doPrint reports it once the statement's items are done
// rather than aborting mid-item.
func (in *Instance) writeOut(s string) {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			in.col = 0
		} else {
			in.col++
		}
	}
	in.ew.Write([]byte(s))
}

const printZoneWidth = 14

func (in *Instance) printZone() {
	pad := printZoneWidth - (in.col % printZoneWidth)
	in.writeOut(strings.Repeat(" ", pad))
}

// printPad implements TAB(n): pad to column n-1 (TAB(1) is a no-op at
// the start of a line), never backing up if already past that column.
func (in *Instance) printPad(n int) {
	target := n - 1
	if target > in.col {
		in.writeOut(strings.Repeat(" ", target-in.col))
	}
}

func (in *Instance) printSpaces(n int) {
	if n > 0 {
		in.writeOut(strings.Repeat(" ", n))
	}
}

// ReadLine pulls one line from the configured input. INPUT uses it to
// read a response; the REPL uses the same method (not a second scanner
// of its own) to read program lines and direct commands, since both
// consume the one input stream in sequence.
func (in *Instance) ReadLine() (string, bool) {
	if in.in.Scan() {
		return in.in.Text(), true
	}
	return "", false
}
