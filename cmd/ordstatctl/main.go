// Command ordstatctl is the tabular-input test driver for the order-
// statistic containers: it reads whitespace-separated integer tokens
// from stdin, applies each as an insert or erase, and checks every
// invariant either after each record or once at EOF.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/flier/ordstat/pkg/ordmap"
	"github.com/flier/ordstat/pkg/ordset"
	"github.com/flier/ordstat/pkg/ordstat"
	"github.com/flier/ordstat/pkg/untrust"
	"github.com/flier/ordstat/pkg/xerrors"
)

var (
	kind       = flag.String("kind", "set", `container flavor to drive: "set" or "map"`)
	checkAtEOF = flag.Bool("c", false, "check invariants once at EOF instead of after every record")
	tolerance  = flag.Float64("tolerance", 0, "sum-check tolerance")
	compact    = flag.Bool("compact", false, "use the compact-arena allocator instead of the pointer allocator")
)

// driver is the minimal surface the record loop needs from either
// container flavor, letting it stay blind to which one it's driving.
type driver interface {
	Insert(key int64) error
	Erase(key int64) error
	Check(tolerance float64) error
}

type setDriver struct {
	s interface {
		Insert(int64) (bool, error)
		Erase(int64) (bool, error)
		Check(float64) error
	}
}

func (d setDriver) Insert(key int64) error        { _, err := d.s.Insert(key); return err }
func (d setDriver) Erase(key int64) error         { _, err := d.s.Erase(key); return err }
func (d setDriver) Check(tolerance float64) error { return d.s.Check(tolerance) }

type mapDriver struct {
	m interface {
		Insert(int64, int64) (bool, error)
		Erase(int64) (bool, error)
		Check(float64) error
	}
}

func (d mapDriver) Insert(key int64) error        { _, err := d.m.Insert(key, key); return err }
func (d mapDriver) Erase(key int64) error         { _, err := d.m.Erase(key); return err }
func (d mapDriver) Check(tolerance float64) error { return d.m.Check(tolerance) }

func newDriver(kind string) (driver, error) {
	less := func(a, b int64) bool { return a < b }
	setWeight := func(k int64) []int64 { return []int64{1} }
	mapWeight := func(k, v int64) []int64 { return []int64{1} }

	switch kind {
	case "set":
		if *compact {
			return setDriver{ordset.NewCompact(less, setWeight, 1)}, nil
		}
		return setDriver{ordset.New(less, setWeight, 1)}, nil
	case "map":
		if *compact {
			return mapDriver{ordmap.NewCompact(less, mapWeight, 1)}, nil
		}
		return mapDriver{ordmap.New(less, mapWeight, 1)}, nil
	default:
		return nil, fmt.Errorf("unknown -kind %q: want \"set\" or \"map\"", kind)
	}
}

func main() {
	flag.Parse()

	if err := run(os.Stdin); err != nil {
		if oerr, ok := xerrors.AsA[*ordstat.Error](err); ok {
			fmt.Fprintf(os.Stderr, "ordstatctl: %v: %v\n", oerr.Kind, err)
		} else {
			fmt.Fprintln(os.Stderr, "ordstatctl:", err)
		}
		os.Exit(1)
	}
}

func run(stdin io.Reader) error {
	d, err := newDriver(*kind)
	if err != nil {
		return err
	}

	buf, err := io.ReadAll(stdin)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	r := untrust.NewReader(untrust.Input(buf))
	input, err := r.ReadBytesToEnd()
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	for i, tok := range bytes.Fields(input.AsSliceLessSafe()) {
		key, err := strconv.ParseInt(string(tok), 10, 64)
		if err != nil {
			return fmt.Errorf("record %d: parsing %q: %w", i, tok, err)
		}

		if key < 0 {
			if err := d.Erase(-key); err != nil {
				return fmt.Errorf("record %d: erase %d: %w", i, -key, err)
			}
		} else if err := d.Insert(key); err != nil {
			return fmt.Errorf("record %d: insert %d: %w", i, key, err)
		}

		if !*checkAtEOF {
			if err := d.Check(*tolerance); err != nil {
				return fmt.Errorf("record %d: %w", i, err)
			}
		}
	}

	if *checkAtEOF {
		if err := d.Check(*tolerance); err != nil {
			return fmt.Errorf("final check: %w", err)
		}
	}

	return nil
}
