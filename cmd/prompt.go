package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// promptCount asks for an integer in [1, max] on in, re-prompting after
// every invalid entry. It fails only if input runs out.
func promptCount(in *bufio.Scanner, out io.Writer, label, sym string, max int) (int, error) {
	fmt.Fprintf(out, "Enter number of %s (%s): ", label, sym)
	for in.Scan() {
		v, err := strconv.Atoi(strings.TrimSpace(in.Text()))
		if err == nil && v >= 1 && v <= max {
			return v, nil
		}
		fmt.Fprintf(out, "Invalid entry. Please enter an integer (0 < %s <= %d): ", sym, max)
	}
	if err := in.Err(); err != nil {
		return 0, err
	}
	return 0, fmt.Errorf("no value entered for %s: %w", label, io.ErrUnexpectedEOF)
}

// promptFleet reads the truck and station counts interactively.
func promptFleet(r io.Reader, out io.Writer, maxTrucks, maxStations int) (trucks, stations int, err error) {
	in := bufio.NewScanner(r)
	if trucks, err = promptCount(in, out, "mining trucks", "n", maxTrucks); err != nil {
		return 0, 0, err
	}
	if stations, err = promptCount(in, out, "unloading stations", "m", maxStations); err != nil {
		return 0, 0, err
	}
	fmt.Fprintln(out)
	return trucks, stations, nil
}
