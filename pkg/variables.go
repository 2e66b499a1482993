package reco

// Variable names a hit column whose total is conserved when hits are dropped.
type Variable string

const (
	VarE  Variable = "E"
	VarEc Variable = "Ec"
	VarQ  Variable = "Q"
	VarQc Variable = "Qc"
	VarEp Variable = "Ep"
)

var DefaultRedistributeVars = []string{"E", "Ec"}

func ParseVariables(names []string) ([]Variable, error) {
	vars := make([]Variable, len(names))
	for i, name := range names {
		v := Variable(name)
		switch v {
		case VarE, VarEc, VarQ, VarQc, VarEp:
			vars[i] = v
		default:
			return nil, &ErrUnknownVariable{Name: name}
		}
	}
	return vars, nil
}

func (v Variable) Get(h *Hit) float64 {
	switch v {
	case VarE:
		return h.E
	case VarEc:
		return h.Ec
	case VarQ:
		return h.Q
	case VarQc:
		return h.Qc
	case VarEp:
		return h.Ep
	}
	panic("unknown variable " + string(v))
}

func (v Variable) Set(h *Hit, value float64) {
	switch v {
	case VarE:
		h.E = value
	case VarEc:
		h.Ec = value
	case VarQ:
		h.Q = value
	case VarQc:
		h.Qc = value
	case VarEp:
		h.Ep = value
	default:
		panic("unknown variable " + string(v))
	}
}
