package main

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// readExpression returns the expression named by args: the joined
// arguments, or standard input when there are none or the only one is "-".
func readExpression(args []string) (string, error) {
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	}
	return strings.Join(args, " "), nil
}
