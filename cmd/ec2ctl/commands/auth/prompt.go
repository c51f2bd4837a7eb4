package auth

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// prompter reads answers from the command's input
type prompter struct {
	in     io.Reader
	out    io.Writer
	reader *bufio.Reader
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: in, out: out, reader: bufio.NewReader(in)}
}

// prompt prompts the user for input
func (p *prompter) prompt(message string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", message)
	input, err := p.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && input != "") {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(message), err)
	}
	return strings.TrimSpace(input), nil
}

// promptSecret prompts without echoing when the input is a terminal
func (p *prompter) promptSecret(message string) (string, error) {
	f, ok := p.in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return p.prompt(message)
	}

	fmt.Fprintf(p.out, "%s: ", message)
	secret, err := term.ReadPassword(int(f.Fd()))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(message), err)
	}

	fmt.Fprintln(p.out)
	return string(secret), nil
}
