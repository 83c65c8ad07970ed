package command

import (
	"context"
	"errors"
	"strings"

	"github.com/felixgeelhaar/converge/internal/ports"
)

// ErrEmptyCommand is returned when a command line has no words.
var ErrEmptyCommand = errors.New("command line is empty")

// SplitLine splits a command line on whitespace.
// There is no quoting: an argument cannot contain spaces.
func SplitLine(line string) (string, []string, error) {
	words := strings.Fields(line)
	if len(words) == 0 {
		return "", nil, ErrEmptyCommand
	}
	return words[0], words[1:], nil
}

// RunLine splits line on whitespace and runs it.
// ok reports a zero exit; output is stdout on success and stderr otherwise.
// err is only set when the command could not be started.
func RunLine(ctx context.Context, runner ports.CommandRunner, line string) (ok bool, output string, err error) {
	name, args, err := SplitLine(line)
	if err != nil {
		return false, "", err
	}

	result, err := runner.Run(ctx, name, args...)
	if err != nil {
		return false, "", err
	}
	return result.Success(), result.Output(), nil
}

// RunWords runs an already split command, skipping empty words.
// Unlike RunLine, arguments may contain spaces.
func RunWords(ctx context.Context, runner ports.CommandRunner, words ...string) (ok bool, output string, err error) {
	kept := nonEmpty(words)
	if len(kept) == 0 {
		return false, "", ErrEmptyCommand
	}

	result, err := runner.Run(ctx, kept[0], kept[1:]...)
	if err != nil {
		return false, "", err
	}
	return result.Success(), result.Output(), nil
}

// Join builds a command line from words, skipping empty ones.
// An empty privilege prefix therefore disappears from the line.
func Join(words ...string) string {
	return strings.Join(nonEmpty(words), " ")
}

func nonEmpty(words []string) []string {
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if w != "" {
			kept = append(kept, w)
		}
	}
	return kept
}
