// Package log provides a minimal leveled logger used for the interpreter's
// ambient diagnostics (invalid jumps, reverts, sub-call failures). It is not
// on any hot path: the interpreter loop calls it only on its already-slow
// error branch.
package log

import (
	"fmt"
	"os"
	"time"

	"github.com/go-stack/stack"
)

// Lvl is a logging level, ordered from most to least severe.
type Lvl int

const (
	LvlCrit Lvl = iota
	LvlError
	LvlWarn
	LvlInfo
	LvlDebug
	LvlTrace
)

func (l Lvl) String() string {
	switch l {
	case LvlCrit:
		return "CRIT"
	case LvlError:
		return "ERROR"
	case LvlWarn:
		return "WARN"
	case LvlInfo:
		return "INFO"
	case LvlDebug:
		return "DEBUG"
	case LvlTrace:
		return "TRACE"
	default:
		return "UNKNOWN"
	}
}

// root is the package-level logger, mutable only via SetLevel.
var root = &logger{level: LvlInfo}

// SetLevel sets the minimum level the root logger will emit.
func SetLevel(l Lvl) { root.level = l }

type logger struct {
	level Lvl
}

func (lg *logger) write(lvl Lvl, msg string, ctx ...interface{}) {
	if lvl > lg.level {
		return
	}
	call := stack.Caller(2)
	line := fmt.Sprintf("%s[%s] %s %v (%+v)", time.Now().UTC().Format(time.RFC3339), lvl, msg, ctx, call)
	fmt.Fprintln(os.Stderr, line)
}

func Trace(msg string, ctx ...interface{}) { root.write(LvlTrace, msg, ctx...) }
func Debug(msg string, ctx ...interface{}) { root.write(LvlDebug, msg, ctx...) }
func Info(msg string, ctx ...interface{})  { root.write(LvlInfo, msg, ctx...) }
func Warn(msg string, ctx ...interface{})  { root.write(LvlWarn, msg, ctx...) }
func Error(msg string, ctx ...interface{}) { root.write(LvlError, msg, ctx...) }
func Crit(msg string, ctx ...interface{})  { root.write(LvlCrit, msg, ctx...) }
