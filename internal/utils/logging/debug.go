package logging

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// E prints and logs an error message with caller attribution.
func E(format string, args ...interface{}) string {
	mu.Lock()
	defer mu.Unlock()

	_, file, line, _ := runtime.Caller(1)
	file = filepath.Base(file)

	var b strings.Builder
	b.Grow(len(redError) + len(format) + (len(args) * 32))

	b.WriteString(redError)

	if len(args) != 0 {
		fmt.Fprintf(&b, format, args...)
	} else {
		b.WriteString(format)
	}

	b.WriteString(" [")
	b.WriteString(ColorBlue)
	b.WriteString("File: ")
	b.WriteString(ColorReset)
	b.WriteString(file)
	b.WriteString(" : ")
	b.WriteString(ColorBlue)
	b.WriteString("Line: ")
	b.WriteString(ColorReset)
	b.WriteString(strconv.Itoa(line))
	b.WriteString("]\n")

	msg := b.String()

	fmt.Print(msg)
	writeLog(zerolog.ErrorLevel, msg)

	return msg
}

// W prints and logs a warning message.
func W(format string, args ...interface{}) string {
	mu.Lock()
	defer mu.Unlock()

	var b strings.Builder
	b.Grow(len(yellowWarning) + len(format) + len("\n") + (len(args) * 32))
	b.WriteString(yellowWarning)

	if len(args) != 0 {
		fmt.Fprintf(&b, format, args...)
	} else {
		b.WriteString(format)
	}

	b.WriteString("\n")
	msg := b.String()
	fmt.Print(msg)
	writeLog(zerolog.WarnLevel, msg)

	return msg
}

// S prints and logs a success message.
func S(format string, args ...interface{}) string {
	mu.Lock()
	defer mu.Unlock()

	var b strings.Builder
	b.Grow(len(greenSuccess) + len(format) + len("\n") + (len(args) * 32))
	b.WriteString(greenSuccess)

	if len(args) != 0 {
		fmt.Fprintf(&b, format, args...)
	} else {
		b.WriteString(format)
	}

	b.WriteString("\n")
	msg := b.String()
	fmt.Print(msg)
	writeLog(zerolog.InfoLevel, msg)

	return msg
}

// D prints and logs a debug message with caller attribution, shown when the
// debug level is at or above l.
func D(l int, format string, args ...interface{}) string {
	if l > Level {
		return ""
	}

	mu.Lock()
	defer mu.Unlock()

	_, file, line, _ := runtime.Caller(1)
	file = filepath.Base(file)

	var b strings.Builder
	b.Grow(len(yellowDebug) + len(format) + (len(args) * 32))
	b.WriteString(yellowDebug)

	if len(args) != 0 {
		fmt.Fprintf(&b, format, args...)
	} else {
		b.WriteString(format)
	}

	b.WriteString(" [")
	b.WriteString(ColorBlue)
	b.WriteString("File: ")
	b.WriteString(ColorReset)
	b.WriteString(file)
	b.WriteString(" : ")
	b.WriteString(ColorBlue)
	b.WriteString("Line: ")
	b.WriteString(ColorReset)
	b.WriteString(strconv.Itoa(line))
	b.WriteString("]\n")

	msg := b.String()

	fmt.Print(msg)
	writeLog(zerolog.DebugLevel, msg)

	return msg
}

// I prints and logs an info message.
func I(format string, args ...interface{}) string {
	mu.Lock()
	defer mu.Unlock()

	var b strings.Builder
	b.Grow(len(blueInfo) + len(format) + len("\n") + (len(args) * 32))
	b.WriteString(blueInfo)

	if len(args) != 0 {
		fmt.Fprintf(&b, format, args...)
	} else {
		b.WriteString(format)
	}

	b.WriteString("\n")
	msg := b.String()
	fmt.Print(msg)
	writeLog(zerolog.InfoLevel, msg)

	return msg
}

// P prints and logs a plain message with no level tag.
func P(format string, args ...interface{}) string {
	mu.Lock()
	defer mu.Unlock()

	var b strings.Builder
	b.Grow(len(format) + len("\n") + (len(args) * 32))

	if len(args) != 0 {
		fmt.Fprintf(&b, format, args...)
	} else {
		b.WriteString(format)
	}

	b.WriteString("\n")
	msg := b.String()
	fmt.Print(msg)
	writeLog(zerolog.InfoLevel, msg)

	return msg
}
