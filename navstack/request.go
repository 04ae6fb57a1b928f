package navstack

import "fmt"

// Op is the kind of a transition request.
type Op int

const (
	OpSetInitial Op = iota
	OpPush
	OpPop
	OpReplace
)

var opNames = [...]string{
	OpSetInitial: "set-initial",
	OpPush:       "push",
	OpPop:        "pop",
	OpReplace:    "replace",
}

func (o Op) String() string {
	if o < OpSetInitial || o > OpReplace {
		return fmt.Sprintf("op(%d)", int(o))
	}
	return opNames[o]
}

// ParseOp accepts the names returned by String.
func ParseOp(name string) (Op, error) {
	for i, n := range opNames {
		if n == name {
			return Op(i), nil
		}
	}
	return 0, fmt.Errorf("navstack: unknown op %q", name)
}

// Request names one transition. Target is ignored for pops.
type Request struct {
	Op     Op
	Target State
}

func Push(target State) Request       { return Request{Op: OpPush, Target: target} }
func Pop() Request                    { return Request{Op: OpPop} }
func Replace(target State) Request    { return Request{Op: OpReplace, Target: target} }
func SetInitial(target State) Request { return Request{Op: OpSetInitial, Target: target} }

func (r Request) String() string {
	if r.Op == OpPop {
		return r.Op.String()
	}
	return fmt.Sprintf("%s(%s)", r.Op, r.Target)
}
