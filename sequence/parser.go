package sequence

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/moffa90/go-lcd1602/protocol"
)

// Parse loads a sequence from the file at path.
// Files ending in .yaml or .yml are decoded as YAML, anything else as a script.
//
// Example:
//
//	steps, err := sequence.Parse("demo.lcd")
//	if err != nil {
//	    log.Fatal(err)
//	}
func Parse(path string) ([]Step, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(f)
	default:
		return ParseReader(f)
	}
}

// ParseReader parses a line-oriented script from any io.Reader.
//
// Example:
//
//	steps, err := sequence.ParseReader(strings.NewReader("clear\nwrite hi\n"))
func ParseReader(r io.Reader) ([]Step, error) {
	scanner := bufio.NewScanner(r)

	var steps []Step
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || line[0] == '#' {
			continue
		}

		step, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		steps = append(steps, step)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}

	if len(steps) == 0 {
		return nil, fmt.Errorf("no steps found in script")
	}

	return steps, nil
}

// parseLine parses one script line. The keyword is separated from its
// arguments by whitespace; "write" keeps the rest of the line intact.
func parseLine(line string) (Step, error) {
	keyword, rest := line, ""
	if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
		keyword, rest = line[:i], strings.TrimSpace(line[i:])
	}

	if strings.ToLower(keyword) == "write" {
		text, err := unquoteText(rest)
		if err != nil {
			return Step{}, err
		}
		return buildStep("write", text, nil)
	}

	return buildStep(keyword, "", strings.Fields(rest))
}

// unquoteText interprets a double-quoted argument with Go escapes.
func unquoteText(s string) (string, error) {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		text, err := strconv.Unquote(s)
		if err != nil {
			return "", fmt.Errorf("invalid quoted text %s: %w", s, err)
		}
		return text, nil
	}
	return s, nil
}

// buildStep turns a keyword and its arguments into a validated Step.
func buildStep(keyword, text string, args []string) (Step, error) {
	switch strings.ToLower(keyword) {
	case "clear":
		return noArgs(args, Cmd(protocol.CmdClearScreen))

	case "read":
		return noArgs(args, Cmd(protocol.CmdReadText))

	case "return", "home":
		return noArgs(args, Cmd(protocol.CmdCursorReturn))

	case "write":
		if _, err := protocol.EncodeWriteText([]byte(text)); err != nil {
			return Step{}, err
		}
		return WriteText(text), nil

	case "backlight":
		if len(args) != 1 {
			return Step{}, fmt.Errorf("backlight expects on or off")
		}
		switch strings.ToLower(args[0]) {
		case "on":
			return Cmd(protocol.CmdBacklightOn), nil
		case "off":
			return Cmd(protocol.CmdBacklightOff), nil
		default:
			return Step{}, fmt.Errorf("backlight expects on or off, got %q", args[0])
		}

	case "shift":
		return parseShift(args)

	case "wait", "sleep":
		switch len(args) {
		case 0:
			return Wait(), nil
		case 1:
			d, err := time.ParseDuration(args[0])
			if err != nil {
				return Step{}, fmt.Errorf("invalid wait duration: %w", err)
			}
			if d < 0 {
				return Step{}, fmt.Errorf("wait duration must not be negative, got %s", d)
			}
			return WaitFor(d), nil
		default:
			return Step{}, fmt.Errorf("wait expects at most one duration")
		}

	default:
		return Step{}, fmt.Errorf("unknown step %q", keyword)
	}
}

// parseShift accepts "display|cursor left|right" or the raw "<sc> <rl>" flags.
func parseShift(args []string) (Step, error) {
	if len(args) != 2 {
		return Step{}, fmt.Errorf("shift expects a target and a direction")
	}

	var sc, rl bool
	switch strings.ToLower(args[0]) {
	case "display", "1":
		sc = true
	case "cursor", "0":
		sc = false
	default:
		return Step{}, fmt.Errorf("shift target must be display or cursor, got %q", args[0])
	}
	switch strings.ToLower(args[1]) {
	case "right", "1":
		rl = true
	case "left", "0":
		rl = false
	default:
		return Step{}, fmt.Errorf("shift direction must be left or right, got %q", args[1])
	}

	return Shift(sc, rl), nil
}

func noArgs(args []string, step Step) (Step, error) {
	if len(args) != 0 {
		return Step{}, fmt.Errorf("%s takes no arguments", step.Command)
	}
	return step, nil
}
