package report

// State 流水线状态
type State string

const (
	StateIdle             State = "idle"
	StateComposing        State = "composing"
	StateGenerating       State = "generating"
	StateValidating       State = "validating"
	StateValid            State = "valid"
	StatePersisting       State = "persisting"
	StatePersisted        State = "persisted"
	StatePersistFailed    State = "persist_failed"
	StateInvalid          State = "invalid"
	StateGenerationFailed State = "generation_failed"
)

// transitions 合法的状态迁移，严格顺序推进
var transitions = map[State][]State{
	StateIdle:       {StateComposing},
	StateComposing:  {StateGenerating, StateGenerationFailed},
	StateGenerating: {StateValidating, StateGenerationFailed},
	StateValidating: {StateValid, StateInvalid},
	StateValid:      {StatePersisting},
	StatePersisting: {StatePersisted, StatePersistFailed},
}

// Terminal 是否终态
// 不落库的报告类型在 valid 处结束
func (s State) Terminal() bool {
	switch s {
	case StatePersisted, StatePersistFailed, StateInvalid, StateGenerationFailed, StateValid:
		return true
	}
	return false
}

// Succeeded 结果是否可展示给调用方
func (s State) Succeeded() bool {
	return s == StatePersisted || s == StatePersistFailed || s == StateValid
}

func canTransition(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
