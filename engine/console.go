package engine

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Input yields one line of player input per prompt. It returns io.EOF once
// the player has nothing more to say.
type Input interface {
	ReadLine(prompt string) (string, error)
}

// Output receives narration, option lists and the final inventory, one line
// at a time.
type Output interface {
	WriteLine(line string) error
}

// Console is an Input and Output over a terminal or any reader/writer pair.
type Console struct {
	reader *bufio.Reader
	w      io.Writer
}

func NewConsole(r io.Reader, w io.Writer) *Console {
	return &Console{
		reader: bufio.NewReader(r),
		w:      w,
	}
}

func (c *Console) WriteLine(line string) error {
	_, err := fmt.Fprintln(c.w, line)
	return err
}

func (c *Console) ReadLine(prompt string) (string, error) {
	if _, err := fmt.Fprint(c.w, prompt); err != nil {
		return "", err
	}
	line, err := c.reader.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}
