package menu

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// readLine prints prompt and returns the next line without its line
// terminator. Surrounding spaces are kept. If EOF occurs after some input was
// read, the partial line is returned.
func (s *Session) readLine(prompt string) (string, error) {
	if _, err := fmt.Fprint(s.out, prompt); err != nil {
		return "", err
	}
	line, err := s.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ask is readLine with surrounding whitespace trimmed.
func (s *Session) ask(prompt string) (string, error) {
	line, err := s.readLine(prompt)
	return strings.TrimSpace(line), err
}

// confirm accepts only a lowercase "y".
func (s *Session) confirm(prompt string) (bool, error) {
	answer, err := s.ask(prompt + " [y/N]: ")
	if err != nil {
		return false, err
	}
	return answer == "y", nil
}
