// Reads page text from stdin and prints every time the parser extracts, in
// page order, on a 24-hour clock.
//
// Usage: cat testPage.txt | go run ./cmd/extract-times
package main

import (
	"fmt"
	"io"
	"os"

	"nextbus/internal/schedule"
)

func main() {
	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", err)
		os.Exit(1)
	}

	if err := printTimes(os.Stdout, string(input)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printTimes(w io.Writer, text string) error {
	times := schedule.ParseTimes(text)
	if len(times) == 0 {
		fmt.Fprintln(os.Stderr, "no times found")
		return nil
	}
	for _, t := range times {
		if _, err := fmt.Fprintln(w, t); err != nil {
			return err
		}
	}
	return nil
}
