package audio

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// SelectDevice presents an interactive device picker on the terminal and
// returns the chosen device. With a single device it returns that device
// without prompting; when stdin is not a terminal it returns nil, meaning
// the system default.
func SelectDevice(ctx Context) (*DeviceInfo, error) {
	devices, err := ctx.Devices()
	if err != nil {
		return nil, fmt.Errorf("enumerating devices: %w", err)
	}
	if len(devices) == 0 {
		return nil, ErrNoDevices
	}
	if len(devices) == 1 {
		return &devices[0], nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, nil
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("setting raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	idx, err := pickDevice(os.Stdin, os.Stdout, devices)
	if err != nil {
		return nil, err
	}
	if idx < 0 {
		return nil, nil
	}
	return &devices[idx], nil
}

// pickDevice drives the picker from raw key input. It returns the chosen
// index, or -1 when the user cancels with Esc or Ctrl+C.
func pickDevice(in io.Reader, out io.Writer, devices []DeviceInfo) (int, error) {
	cursor := 0
	render := func() {
		fmt.Fprint(out, "\r\x1b[J")
		fmt.Fprint(out, "Select input device (↑/↓, Enter to confirm):\r\n\r\n")
		for i, d := range devices {
			btTag := ""
			if IsBluetooth(d.Name) {
				btTag = " \x1b[33m[lower quality mic]\x1b[0m"
			}
			if i == cursor {
				fmt.Fprintf(out, "  \x1b[1;36m▶ %s%s\x1b[0m\r\n", d.Name, btTag)
			} else {
				fmt.Fprintf(out, "    %s%s\r\n", d.Name, btTag)
			}
		}
	}

	render()

	buf := make([]byte, 3)
	for {
		n, err := in.Read(buf)
		if err != nil {
			return -1, fmt.Errorf("reading input: %w", err)
		}

		switch {
		case n == 1 && (buf[0] == '\r' || buf[0] == '\n'):
			fmt.Fprint(out, "\r\n")
			return cursor, nil
		case n == 1 && (buf[0] == 3 || buf[0] == 0x1b):
			fmt.Fprint(out, "\r\n")
			return -1, nil
		case n == 1 && buf[0] == 'j', n == 3 && buf[0] == 0x1b && buf[1] == '[' && buf[2] == 'B':
			if cursor < len(devices)-1 {
				cursor++
			}
		case n == 1 && buf[0] == 'k', n == 3 && buf[0] == 0x1b && buf[1] == '[' && buf[2] == 'A':
			if cursor > 0 {
				cursor--
			}
		}

		fmt.Fprintf(out, "\x1b[%dA", len(devices)+2)
		render()
	}
}
