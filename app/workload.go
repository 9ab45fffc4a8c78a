package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/airt/lru"
)

var ErrBadOp = errors.New("bad op")

// Workload is the TOML document replayed against a cache.
type Workload struct {
	Capacity int      `toml:"capacity"`
	Ops      []string `toml:"ops"`
}

type Verb string

const (
	VerbSet    Verb = "set"
	VerbGet    Verb = "get"
	VerbPeek   Verb = "peek"
	VerbHas    Verb = "has"
	VerbDel    Verb = "del"
	VerbResize Verb = "resize"
	VerbClear  Verb = "clear"
)

var arity = map[Verb]int{
	VerbSet:    2,
	VerbGet:    1,
	VerbPeek:   1,
	VerbHas:    1,
	VerbDel:    1,
	VerbResize: 1,
	VerbClear:  0,
}

type Op struct {
	Verb  Verb
	Key   string
	Value string
	Size  int
}

func (o Op) String() string {
	switch o.Verb {
	case VerbSet:
		return fmt.Sprintf("set %s %s", o.Key, o.Value)
	case VerbResize:
		return fmt.Sprintf("resize %d", o.Size)
	case VerbClear:
		return "clear"
	}
	return fmt.Sprintf("%s %s", o.Verb, o.Key)
}

// Result is what one op did to the cache.
type Result struct {
	Op       Op
	Found    bool
	Value    string
	Previous string
	Evicted  []string
	Keys     []string
}

func LoadWorkload(path string) (*Workload, error) {
	var w Workload
	if _, err := toml.DecodeFile(path, &w); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &w, nil
}

func DecodeWorkload(data string) (*Workload, error) {
	var w Workload
	if _, err := toml.Decode(data, &w); err != nil {
		return nil, fmt.Errorf("decode workload: %w", err)
	}
	return &w, nil
}

// ParseOps validates every op up front so a replay never stops half way.
func (w *Workload) ParseOps() ([]Op, error) {
	ops := make([]Op, 0, len(w.Ops))
	for i, raw := range w.Ops {
		op, err := parseOp(raw)
		if err != nil {
			return nil, fmt.Errorf("op %d %q: %w", i+1, raw, err)
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func parseOp(raw string) (Op, error) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return Op{}, fmt.Errorf("%w: empty", ErrBadOp)
	}
	verb := Verb(strings.ToLower(fields[0]))
	n, ok := arity[verb]
	if !ok {
		return Op{}, fmt.Errorf("%w: unknown verb %q", ErrBadOp, fields[0])
	}
	if len(fields)-1 != n {
		return Op{}, fmt.Errorf("%w: %s takes %d argument(s), got %d", ErrBadOp, verb, n, len(fields)-1)
	}
	op := Op{Verb: verb}
	switch verb {
	case VerbClear:
	case VerbResize:
		size, err := strconv.Atoi(fields[1])
		if err != nil {
			return Op{}, fmt.Errorf("%w: resize: %w", ErrBadOp, err)
		}
		op.Size = size
	case VerbSet:
		op.Key, op.Value = fields[1], fields[2]
	default:
		op.Key = fields[1]
	}
	return op, nil
}

// Replayer applies ops to a cache it owns, recording what each one evicted.
type Replayer struct {
	cache   *lru.Cache[string, string]
	evicted []string
}

func NewReplayer(config *lru.Configuration[string, string], onEvict func(key, value string)) (*Replayer, error) {
	r := &Replayer{}
	config.OnEvict(func(key, value string) {
		r.evicted = append(r.evicted, key)
		if onEvict != nil {
			onEvict(key, value)
		}
	})
	cache, err := lru.New(config)
	if err != nil {
		return nil, err
	}
	r.cache = cache
	return r, nil
}

func (r *Replayer) Cache() *lru.Cache[string, string] {
	return r.cache
}

func (r *Replayer) Apply(op Op) (Result, error) {
	r.evicted = nil
	res := Result{Op: op}
	switch op.Verb {
	case VerbSet:
		res.Previous, res.Found = r.cache.Insert(op.Key, op.Value)
		res.Value = op.Value
	case VerbGet:
		res.Value, res.Found = r.cache.Get(op.Key)
	case VerbPeek:
		res.Value, res.Found = r.cache.Peek(op.Key)
	case VerbHas:
		res.Found = r.cache.Contains(op.Key)
	case VerbDel:
		res.Value, res.Found = r.cache.Remove(op.Key)
	case VerbResize:
		if _, err := r.cache.Resize(op.Size); err != nil {
			return res, fmt.Errorf("%s: %w", op, err)
		}
	case VerbClear:
		r.cache.Clear()
	}
	res.Evicted = r.evicted
	res.Keys = r.cache.Keys()
	return res, nil
}

func (r *Replayer) Run(ops []Op) ([]Result, error) {
	results := make([]Result, 0, len(ops))
	for _, op := range ops {
		res, err := r.Apply(op)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}
