package parser

import (
	"bufio"
	"io"
	"os"
	"strings"
)

const (
	frontPrefix = "Q:"
	backPrefix  = "A:"
	separator   = "---"
)

// Note is one front/back pair read from a markdown file.
type Note struct {
	Front string
	Back  string
}

type state int

const (
	seeking state = iota
	readingFront
	readingBack
)

// ParseFile reads a file from the given path and extracts all notes.
func ParseFile(path string) ([]Note, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads Q:/A: blocks from r. A block runs until the next prefix, a
// "---" line or the end of input; trailing blank lines are dropped. Notes
// without a front or a back are skipped.
func Parse(r io.Reader) ([]Note, error) {
	scanner := bufio.NewScanner(r)
	var (
		notes   []Note
		current Note
		block   []string
	)
	currentState := seeking

	flushBlock := func() {
		if len(block) == 0 {
			return
		}
		content := strings.TrimRight(strings.Join(block, "\n"), "\n ")
		switch currentState {
		case readingFront:
			current.Front = content
		case readingBack:
			current.Back = content
		}
		block = nil
	}

	finishNote := func() {
		flushBlock()
		if current.Front != "" && current.Back != "" {
			notes = append(notes, current)
		}
		current = Note{}
		currentState = seeking
	}

	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")

		switch {
		case line == separator:
			finishNote()

		case strings.HasPrefix(line, frontPrefix):
			if currentState != seeking { // A new front always starts a new note
				finishNote()
			}
			currentState = readingFront
			block = append(block, strings.TrimPrefix(line[len(frontPrefix):], " "))

		case strings.HasPrefix(line, backPrefix):
			flushBlock()
			currentState = readingBack
			block = append(block, strings.TrimPrefix(line[len(backPrefix):], " "))

		case currentState != seeking:
			block = append(block, line)
		}
	}

	finishNote() // Finish the very last note in the file

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return notes, nil
}
