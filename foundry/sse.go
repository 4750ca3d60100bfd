package foundry

import (
	"bufio"
	"bytes"
	"io"
	"strings"
)

// maxEventSize bounds a single data line; run step payloads with tool output can be large.
const maxEventSize = 4 << 20

// ServerEvent is one dispatched server-sent event.
type ServerEvent struct {
	Name string
	Data []byte
}

// ReadEvents decodes a text/event-stream body and calls fn per event until EOF or fn errors.
// Events without a name are reported as "message".
func ReadEvents(r io.Reader, fn func(ServerEvent) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxEventSize)

	var (
		name string
		data bytes.Buffer
		has  bool
	)
	dispatch := func() error {
		if !has {
			name = ""
			return nil
		}
		ev := ServerEvent{Name: name, Data: bytes.Clone(data.Bytes())}
		if ev.Name == "" {
			ev.Name = "message"
		}
		name, has = "", false
		data.Reset()
		return fn(ev)
	}

	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			if err := dispatch(); err != nil {
				return err
			}
			continue
		}
		if strings.HasPrefix(line, ":") {
			continue
		}
		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")
		switch field {
		case "event":
			name = value
		case "data":
			if has {
				data.WriteByte('\n')
			}
			data.WriteString(value)
			has = true
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return dispatch()
}
