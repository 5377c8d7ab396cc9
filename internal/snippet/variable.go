// Package snippet evaluates the #{...} variables a combo snippet may embed:
// dates with optional timeshifts, environment variables, the clipboard,
// references to other combos, and interactive input prompts. The expansion
// engine that matches typed keywords and injects the result lives outside this
// repository; this package only renders snippet text.
package snippet

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
)

// ErrInputCancelled reports that the user dismissed an #{input:} prompt.
var ErrInputCancelled = errors.New("input variable cancelled")

// Variable name prefixes.
const (
	customDateTimeVariable = "dateTime:"
	inputVariable          = "input:"
	envVarVariable         = "envVar:"
)

// Default layouts used when a dateTime variable carries no explicit format.
const (
	dateLayout     = "2006-01-02"
	timeLayout     = "15:04:05"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// timeShiftRe matches one individual shift such as +1d or -4w.
var timeShiftRe = regexp.MustCompile(`^([+-])(\d+)([yMwdhmsz])$`)

// dateTimeRe splits a dateTime variable into its optional shift block and format.
var dateTimeRe = regexp.MustCompile(`^dateTime(:((?:[+-]\d+[yMwdhmsz])+))?:(.*)$`)

// Env supplies the ambient dependencies a snippet may reach for. The zero
// value uses the real clock, process environment, and system clipboard, and
// cancels every input prompt.
type Env struct {
	// Clock returns the current time. Defaults to time.Now.
	Clock func() time.Time
	// Getenv resolves #{envVar:} lookups. Defaults to os.Getenv.
	Getenv func(string) string
	// ReadClipboard resolves #{clipboard}. Defaults to the system clipboard.
	ReadClipboard func() (string, error)
	// Prompt resolves #{input:} variables; returning false cancels the whole
	// evaluation. A nil Prompt cancels immediately.
	Prompt func(description string) (string, bool)
	// LookupCombo resolves #{combo:} references to another combo's snippet.
	LookupCombo func(name string) (string, bool)
}

func (e Env) clock() time.Time {
	if e.Clock != nil {
		return e.Clock()
	}
	return time.Now()
}

func (e Env) getenv(name string) string {
	if e.Getenv != nil {
		return e.Getenv(name)
	}
	return os.Getenv(name)
}

func (e Env) readClipboard() string {
	read := e.ReadClipboard
	if read == nil {
		read = clipboard.ReadAll
	}
	text, err := read()
	if err != nil {
		return ""
	}
	return text
}

// Render substitutes every #{...} variable in the snippet. Unknown variables
// stay verbatim in the output. A cancelled input prompt aborts the whole
// render with ErrInputCancelled.
func Render(snippet string, env Env) (string, error) {
	known := map[string]string{}
	return render(snippet, env, map[string]struct{}{}, known)
}

// render evaluates one snippet level, carrying the recursion guard and the
// already-answered input prompts.
func render(snippet string, env Env, forbidden map[string]struct{}, known map[string]string) (string, error) {
	var out strings.Builder
	rest := snippet
	for {
		start := strings.Index(rest, "#{")
		if start < 0 {
			out.WriteString(rest)
			return out.String(), nil
		}
		out.WriteString(rest[:start])
		rest = rest[start+2:]

		variable, remainder, ok := scanVariable(rest)
		if !ok {
			// Unterminated variable: keep the literal text.
			out.WriteString("#{")
			out.WriteString(rest)
			return out.String(), nil
		}
		rest = remainder

		value, err := evaluate(variable, env, forbidden, known)
		if err != nil {
			return "", err
		}
		out.WriteString(value)
	}
}

// scanVariable reads a variable body up to its closing brace. Backslash
// escapes the next character, so \} does not terminate the variable.
func scanVariable(s string) (variable, rest string, ok bool) {
	var body strings.Builder
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if i+1 < len(s) {
				body.WriteByte(s[i])
				body.WriteByte(s[i+1])
				i++
				continue
			}
			body.WriteByte(s[i])
		case '}':
			return body.String(), s[i+1:], true
		default:
			body.WriteByte(s[i])
		}
	}
	return "", "", false
}

// resolveEscaping resolves the \\ and \} escapes inside a variable parameter.
func resolveEscaping(param string) string {
	param = strings.ReplaceAll(param, `\\`, `\`)
	param = strings.ReplaceAll(param, `\}`, `}`)
	return param
}

// caseChange selects the transform applied to a combo reference.
type caseChange int

const (
	caseNoChange caseChange = iota
	caseToUpper
	caseToLower
)

// evaluate resolves one variable body (without the enclosing #{}).
func evaluate(variable string, env Env, forbidden map[string]struct{}, known map[string]string) (string, error) {
	switch {
	case variable == "clipboard":
		return env.readClipboard(), nil
	case variable == "date":
		return env.clock().Format(dateLayout), nil
	case variable == "time":
		return env.clock().Format(timeLayout), nil
	case variable == "dateTime":
		return env.clock().Format(dateTimeLayout), nil
	case strings.HasPrefix(variable, customDateTimeVariable):
		return evaluateDateTime(variable, env), nil
	case strings.HasPrefix(variable, "combo:"):
		return evaluateCombo(variable, caseNoChange, false, env, forbidden, known)
	case strings.HasPrefix(variable, "upper:"):
		return evaluateCombo(variable, caseToUpper, false, env, forbidden, known)
	case strings.HasPrefix(variable, "lower:"):
		return evaluateCombo(variable, caseToLower, false, env, forbidden, known)
	case strings.HasPrefix(variable, "trim:"):
		return evaluateCombo(variable, caseNoChange, true, env, forbidden, known)
	case strings.HasPrefix(variable, inputVariable):
		return evaluateInput(variable, env, known)
	case strings.HasPrefix(variable, envVarVariable):
		return env.getenv(resolveEscaping(strings.TrimPrefix(variable, envVarVariable))), nil
	default:
		// Unrecognized variable: put it back into the result untouched.
		return fmt.Sprintf("#{%s}", variable), nil
	}
}

// evaluateDateTime resolves a dateTime variable with optional timeshifts and
// an optional Go reference layout.
func evaluateDateTime(variable string, env Env) string {
	match := dateTimeRe.FindStringSubmatch(variable)
	if match == nil {
		return ""
	}
	ts := env.clock()
	if match[2] != "" {
		ts = shiftedTime(ts, match[2])
	}
	layout := resolveEscaping(match[3])
	if layout == "" {
		layout = dateTimeLayout
	}
	return ts.Format(layout)
}

// splitTimeShifts splits a shift string like +1d-4w+11h into its parts.
func splitTimeShifts(shifts string) []string {
	var out []string
	var acc strings.Builder
	for _, r := range shifts {
		if (r == '+' || r == '-') && acc.Len() > 0 {
			out = append(out, acc.String())
			acc.Reset()
		}
		acc.WriteRune(r)
	}
	if acc.Len() > 0 {
		out = append(out, acc.String())
	}
	return out
}

// shiftedTime applies the shift units (y M w d h m s z) to the base time.
// Malformed shifts are skipped.
func shiftedTime(base time.Time, shifts string) time.Time {
	result := base
	for _, shift := range splitTimeShifts(shifts) {
		match := timeShiftRe.FindStringSubmatch(shift)
		if match == nil {
			continue
		}
		value, err := strconv.ParseInt(match[2], 10, 64)
		if err != nil {
			continue
		}
		if match[1] == "-" {
			value = -value
		}
		switch match[3] {
		case "y":
			result = result.AddDate(int(value), 0, 0)
		case "M":
			result = result.AddDate(0, int(value), 0)
		case "w":
			result = result.AddDate(0, 0, int(value)*7)
		case "d":
			result = result.AddDate(0, 0, int(value))
		case "h":
			result = result.Add(time.Duration(value) * time.Hour)
		case "m":
			result = result.Add(time.Duration(value) * time.Minute)
		case "s":
			result = result.Add(time.Duration(value) * time.Second)
		case "z":
			result = result.Add(time.Duration(value) * time.Millisecond)
		}
	}
	return result
}

// evaluateCombo resolves a combo reference, guarding against reference cycles
// with the forbidden set: a combo already on the evaluation path falls back to
// its literal #{...} form instead of recursing forever.
func evaluateCombo(variable string, change caseChange, trim bool, env Env, forbidden map[string]struct{}, known map[string]string) (string, error) {
	fallback := fmt.Sprintf("#{%s}", variable)
	sep := strings.Index(variable, ":")
	if sep < 0 {
		return "", nil
	}
	name := resolveEscaping(variable[sep+1:])
	if _, ok := forbidden[name]; ok {
		return fallback, nil
	}
	if env.LookupCombo == nil {
		return fallback, nil
	}
	referenced, ok := env.LookupCombo(name)
	if !ok {
		return fallback, nil
	}

	nested := make(map[string]struct{}, len(forbidden)+1)
	for k := range forbidden {
		nested[k] = struct{}{}
	}
	nested[name] = struct{}{}
	value, err := render(referenced, env, nested, known)
	if err != nil {
		return "", err
	}
	switch change {
	case caseToUpper:
		value = strings.ToUpper(value)
	case caseToLower:
		value = strings.ToLower(value)
	}
	if trim {
		value = strings.TrimSpace(value)
	}
	return value, nil
}

// evaluateInput resolves an #{input:} variable, reusing answers already given
// for the same description during this evaluation.
func evaluateInput(variable string, env Env, known map[string]string) (string, error) {
	description := resolveEscaping(strings.TrimPrefix(variable, inputVariable))
	if answer, ok := known[description]; ok {
		return answer, nil
	}
	if env.Prompt == nil {
		return "", ErrInputCancelled
	}
	answer, ok := env.Prompt(description)
	if !ok {
		return "", ErrInputCancelled
	}
	known[description] = answer
	return answer, nil
}
