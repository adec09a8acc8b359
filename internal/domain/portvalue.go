package domain

// PortValue is the value carried by an edge during a run. A dead value means
// the producing branch was pruned by a switch decision; it is deliberately a
// distinct state rather than a nil payload so consumers can tell "skipped"
// apart from "legitimately null".
type PortValue struct {
	Data interface{} `json:"data,omitempty"`
	Dead bool        `json:"dead,omitempty"`
}

func LiveValue(data interface{}) PortValue {
	return PortValue{Data: data}
}

func DeadBranch() PortValue {
	return PortValue{Dead: true}
}

// Get returns the payload and whether it is live.
func (v PortValue) Get() (interface{}, bool) {
	if v.Dead {
		return nil, false
	}
	return v.Data, true
}
