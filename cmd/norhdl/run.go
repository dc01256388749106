package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vic/norhdl/pkg/query"
)

// newRunCmd elaborates a source path and drives it through a script of
// query/mutation commands: a non-interactive batch driver over the same
// command surface an interactive session would expose.
func newRunCmd() *cobra.Command {
	var scriptPath string
	var count int

	cmd := &cobra.Command{
		Use:   "run <path>",
		Short: "elaborate a .hdl source file or directory and execute a command script against it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mods, err := loadSource(args[0])
			if err != nil {
				return err
			}
			design, err := query.BuildModules(mods)
			if err != nil {
				return err
			}

			if count == 0 {
				count = cfg.DefaultSimulateCount
			}
			design.Simulate(count)

			var script *os.File
			if scriptPath == "" || scriptPath == "-" {
				script = os.Stdin
			} else {
				script, err = os.Open(scriptPath)
				if err != nil {
					return errors.Wrapf(err, "opening script %s", scriptPath)
				}
				defer script.Close()
			}

			return runScript(cmd, design, script)
		},
	}

	cmd.Flags().StringVarP(&scriptPath, "script", "s", "", "command script path (defaults to stdin)")
	cmd.Flags().IntVarP(&count, "count", "c", 0, "events to run before the script (0 = until stable, from config if unset)")
	return cmd
}

// runScript executes one command per non-blank, non-comment line:
//
//	get <path>
//	set <path> <bits>
//	width <path>
//	describe <path>
//	sim [count]
//
// Every line is independent and errors are reported per-line rather
// than aborting the whole script: query/mutation failures are
// recoverable, never fatal to the running design.
func runScript(cmd *cobra.Command, design *query.Design, r *os.File) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch strings.ToLower(fields[0]) {
		case "get":
			if len(fields) != 2 {
				log.Errorf("get: want 1 argument, got %d", len(fields)-1)
				continue
			}
			bits := design.GetValue(fields[1])
			if bits == nil {
				log.Errorf("get %s: unresolved path", fields[1])
				continue
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderBits(bits))
		case "set":
			if len(fields) != 3 {
				log.Errorf("set: want 2 arguments, got %d", len(fields)-1)
				continue
			}
			bits, err := parseBits(fields[2])
			if err != nil {
				log.Errorf("set %s: %v", fields[1], err)
				continue
			}
			ok, short := design.SetValue(fields[1], bits)
			if !ok {
				log.Errorf("set %s: unresolved path", fields[1])
				continue
			}
			if short {
				log.Warnf("set %s: fewer bits than wire width, high bits unchanged", fields[1])
			}
		case "width":
			if len(fields) != 2 {
				log.Errorf("width: want 1 argument, got %d", len(fields)-1)
				continue
			}
			fmt.Fprintln(cmd.OutOrStdout(), design.GetWidth(fields[1]))
		case "describe":
			if len(fields) != 2 {
				log.Errorf("describe: want 1 argument, got %d", len(fields)-1)
				continue
			}
			desc, err := design.GetDescription(fields[1])
			if err != nil {
				log.Errorf("describe %s: %v", fields[1], err)
				continue
			}
			fmt.Fprintln(cmd.OutOrStdout(), desc)
		case "sim":
			n := 0
			if len(fields) == 2 {
				parsed, err := strconv.Atoi(fields[1])
				if err != nil {
					log.Errorf("sim: %v", err)
					continue
				}
				n = parsed
			}
			design.Simulate(n)
		default:
			log.Errorf("unknown command %q", fields[0])
		}
	}
	return scanner.Err()
}

// renderBits prints a bit vector MSB-first, mirroring
// sim.Simulator.DisplayWire's "0b..." convention.
func renderBits(bits []bool) string {
	var b strings.Builder
	b.WriteString("0b")
	for i := len(bits) - 1; i >= 0; i-- {
		if bits[i] {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// parseBits accepts "0b..." or "0x..." literals, MSB-first, and expands
// them to a little-endian bool vector — the script-level counterpart of
// hdl's hexBits/binBits literal parsing.
func parseBits(lit string) ([]bool, error) {
	switch {
	case strings.HasPrefix(lit, "0b"):
		digits := lit[2:]
		bits := make([]bool, len(digits))
		for i, c := range digits {
			bits[len(digits)-1-i] = c == '1'
		}
		return bits, nil
	case strings.HasPrefix(lit, "0x"):
		digits := lit[2:]
		bits := make([]bool, 0, len(digits)*4)
		for i := len(digits) - 1; i >= 0; i-- {
			v, err := strconv.ParseUint(string(digits[i]), 16, 8)
			if err != nil {
				return nil, errors.Wrapf(err, "invalid hex digit %q", digits[i])
			}
			for b := 0; b < 4; b++ {
				bits = append(bits, v&(1<<uint(b)) != 0)
			}
		}
		return bits, nil
	default:
		return nil, errors.Errorf("bit literal must start with 0b or 0x: %q", lit)
	}
}
