package rejewski

import (
	"errors"
	"runtime"
	"sync"

	"github.com/bgallie/enigma/cryptors"
	"github.com/bgallie/enigma/enigma"
	"github.com/bgallie/enigma/internal/logger"
)

// DefaultBudget is the number of message keys tried per setting before it is
// given up as unresolved.
const DefaultBudget = 10000

// Result is the outcome of a build.
type Result struct {
	Table *Table
	// Unresolved lists the settings whose permutations were still incomplete
	// when the budget ran out, in enumeration order.
	Unresolved   []Setting
	Combinations int
}

// Builder enumerates rotor orders and day keys and indexes every setting by
// its chain index.
//
// Settings are numbered key first: setting k*len(Orders)+o is day key
// Keys[k] with rotor order Orders[o].  The table lists the candidates of each
// index in that order whatever the number of workers.
type Builder struct {
	Orders  [][]string // default RotorOrders(DefaultRotorTypes)
	Keys    []string   // default AllKeys()
	Workers int        // default runtime.NumCPU()
	Budget  int        // default DefaultBudget
	Seed    int64
	// NewSource returns the message key source for a setting number.  The
	// default is a RandomSource seeded with Seed plus the setting number.
	NewSource func(setting int) KeySource
	// Progress is called from the collecting goroutine after every setting.
	Progress func(done, total int)
}

// DefaultRotorTypes are the rotors the builder draws orders from.
var DefaultRotorTypes = []string{"I", "II", "III"}

// AllKeys returns the 17576 day keys AAA through ZZZ.
func AllKeys() []string {
	keys := make([]string, 0, cryptors.AlphabetSize*cryptors.AlphabetSize*cryptors.AlphabetSize)
	for a := 0; a < cryptors.AlphabetSize; a++ {
		for b := 0; b < cryptors.AlphabetSize; b++ {
			for c := 0; c < cryptors.AlphabetSize; c++ {
				keys = append(keys, string([]byte{cryptors.Letter(a), cryptors.Letter(b), cryptors.Letter(c)}))
			}
		}
	}
	return keys
}

// RotorOrders returns every ordered choice of three distinct rotors from
// types, in lexicographic order of their positions in types.
func RotorOrders(types []string) [][]string {
	var orders [][]string
	for i := range types {
		for j := range types {
			if j == i {
				continue
			}
			for k := range types {
				if k == i || k == j {
					continue
				}
				orders = append(orders, []string{types[i], types[j], types[k]})
			}
		}
	}
	return orders
}

type outcome struct {
	setting int
	index   string
	err     error
}

func (b *Builder) setting(n int) Setting {
	return Setting{
		DayKey: b.Keys[n/len(b.Orders)],
		Order:  b.Orders[n%len(b.Orders)],
	}
}

func (b *Builder) defaults() {
	if b.Orders == nil {
		b.Orders = RotorOrders(DefaultRotorTypes)
	}
	if b.Keys == nil {
		b.Keys = AllKeys()
	}
	if b.Workers < 1 {
		b.Workers = runtime.NumCPU()
	}
	if b.Budget < 1 {
		b.Budget = DefaultBudget
	}
	if b.NewSource == nil {
		seed := b.Seed
		b.NewSource = func(n int) KeySource {
			return NewRandomSource(seed + int64(n))
		}
	}
}

// Build runs every setting through its own machine and returns the table of
// chain indices.  A configuration error in any setting aborts the build.
func (b *Builder) Build() (*Result, error) {
	b.defaults()
	if len(b.Orders) == 0 {
		return nil, enigma.ErrRotorCount
	}
	for _, order := range b.Orders {
		if _, err := enigma.New(enigma.DefaultKey, order, nil); err != nil {
			return nil, err
		}
	}
	total := len(b.Keys) * len(b.Orders)
	logger.Info("build.start", "settings", total, "orders", len(b.Orders), "workers", b.Workers, "budget", b.Budget)

	jobs := make(chan int, b.Workers)
	results := make(chan outcome, b.Workers)
	var wg sync.WaitGroup
	for w := 0; w < b.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m, err := enigma.New(enigma.DefaultKey, b.Orders[0], nil)
			for n := range jobs {
				if err != nil {
					results <- outcome{setting: n, err: err}
					continue
				}
				results <- b.run(m, n)
			}
		}()
	}
	go func() {
		for n := 0; n < total; n++ {
			jobs <- n
		}
		close(jobs)
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	indices := make([]string, total)
	errs := make([]error, total)
	done := 0
	for o := range results {
		indices[o.setting], errs[o.setting] = o.index, o.err
		done++
		if b.Progress != nil {
			b.Progress(done, total)
		}
	}

	res := &Result{Table: NewTable(), Combinations: total}
	for n := 0; n < total; n++ {
		s := b.setting(n)
		switch {
		case errs[n] == nil:
			res.Table.Add(indices[n], s)
		case errors.Is(errs[n], ErrBudget):
			logger.Warn("build.unresolved", "setting", s.String(), "err", errs[n])
			res.Unresolved = append(res.Unresolved, s)
		default:
			return nil, errs[n]
		}
	}
	logger.Info("build.done", "indices", res.Table.Len(), "settings", res.Table.Settings(), "unresolved", len(res.Unresolved))
	return res, nil
}

func (b *Builder) run(m *enigma.Machine, n int) outcome {
	s := b.setting(n)
	if err := m.SetRotorPosition(s.DayKey); err != nil {
		return outcome{setting: n, err: err}
	}
	if err := m.SetRotorOrder(s.Order); err != nil {
		return outcome{setting: n, err: err}
	}
	perms, err := collect(m, b.NewSource(n), b.Budget)
	if err != nil {
		return outcome{setting: n, err: err}
	}
	index, err := IndexOf(perms)
	return outcome{setting: n, index: index, err: err}
}
