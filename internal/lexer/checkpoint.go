package lexer

import "nodelang/internal/token"

// Checkpoint captures the complete lexer state for backtracking.
type Checkpoint struct {
	end          int
	pos          int
	fullStartPos int
	tokenPos     int
	tok          token.Kind
	value        string
	flags        token.Flags
}

// Checkpoint saves the current state.
func (l *Lexer) Checkpoint() Checkpoint {
	return Checkpoint{
		end:          l.end,
		pos:          l.pos,
		fullStartPos: l.fullStartPos,
		tokenPos:     l.tokenPos,
		tok:          l.tok,
		value:        l.value,
		flags:        l.flags,
	}
}

// Restore rewinds the lexer to c.
func (l *Lexer) Restore(c Checkpoint) {
	l.end = c.end
	l.pos = c.pos
	l.fullStartPos = c.fullStartPos
	l.tokenPos = c.tokenPos
	l.tok = c.tok
	l.value = c.value
	l.flags = c.flags
}

// speculate runs cb and rewinds afterwards unless it is a successful TryScan. The rewind is
// deferred so that it also happens when cb panics.
func (l *Lexer) speculate(cb func() bool, lookAhead bool) (result bool) {
	saved := l.Checkpoint()
	defer func() {
		if lookAhead || !result {
			l.Restore(saved)
		}
	}()
	return cb()
}

// TryScan runs cb and keeps its progress only if cb returns true.
func (l *Lexer) TryScan(cb func() bool) bool {
	return l.speculate(cb, false)
}

// LookAhead runs cb and always rewinds, returning cb's result.
func (l *Lexer) LookAhead(cb func() bool) bool {
	return l.speculate(cb, true)
}

// ScanRange narrows the lexer to [start, start+length), runs cb, and restores
// the previous range and position.
func (l *Lexer) ScanRange(start, length int, cb func() bool) bool {
	saved := l.Checkpoint()
	defer l.Restore(saved)
	l.SetTextRange(start, length)
	return cb()
}
