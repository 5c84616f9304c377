package network

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Parse reads a network in the text format:
//
//	# comment
//	name:Paris
//	station:VBA:Villiers
//	line:Green:0:1:VBA-VBB-VBC
//
// The two flags of a line record are circular and one-way ("1" = set).
// Stations must be declared before any line that stops at them.
// Records with an unknown kind are skipped.
func Parse(r io.Reader) (*Network, error) {
	n := New("")
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		kind, rest, _ := strings.Cut(text, ":")
		switch kind {
		case "name":
			n.SetName(rest)
		case "station":
			if err := parseStation(n, rest); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
		case "line":
			if err := parseLine(n, rest); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read network: %w", err)
	}
	return n, nil
}

// ParseFile opens and parses a network file
func ParseFile(path string) (*Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open network file: %w", err)
	}
	defer f.Close()

	n, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return n, nil
}

func parseStation(n *Network, rest string) error {
	code, name, ok := strings.Cut(rest, ":")
	if !ok {
		return fmt.Errorf("%w: expected station:<code>:<name>", ErrInvalidStation)
	}
	s, err := NewStation(code, name)
	if err != nil {
		return err
	}
	return n.AddStation(s)
}

func parseLine(n *Network, rest string) error {
	fields := strings.SplitN(rest, ":", 4)
	if len(fields) < 3 {
		return fmt.Errorf("%w: expected line:<code>:<circular>:<oneway>:<stops>", ErrInvalidLine)
	}
	l, err := NewLine(fields[0], fields[1] == "1", fields[2] == "1")
	if err != nil {
		return err
	}
	if len(fields) == 4 && fields[3] != "" {
		for _, code := range strings.Split(fields[3], "-") {
			s := n.Station(code)
			if s == nil {
				return fmt.Errorf("%w: %s on line %s", ErrUnknownStation, code, l.code)
			}
			if err := l.Add(s); err != nil {
				return err
			}
		}
	}
	return n.AddLine(l)
}

// Format writes the network in the text format read by Parse
func (n *Network) Format(w io.Writer) error {
	_, err := io.WriteString(w, n.String())
	return err
}

func (n *Network) String() string {
	var b strings.Builder
	b.WriteString("name:" + n.name + "\n")
	for _, s := range n.stations {
		b.WriteString("station:" + s.code + ":" + s.name + "\n")
	}
	for _, l := range n.lines {
		b.WriteString("line:" + l.code + ":" + flag(l.circular) + ":" + flag(l.oneWay) + ":")
		for i, s := range l.stops {
			if i > 0 {
				b.WriteString("-")
			}
			b.WriteString(s.code)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
