package worker

// State is a drop event's position in its lifecycle:
//
//	Idle -> Validating -> (Rejected | Dispatching) -> Encoding -> (Delivered | Failed) -> Idle
type State string

const (
	StateIdle        State = "idle"
	StateValidating  State = "validating"
	StateRejected    State = "rejected"
	StateDispatching State = "dispatching"
	StateEncoding    State = "encoding"
	StateDelivered   State = "delivered"
	StateFailed      State = "failed"
)

// Terminal reports whether s ends a drop event before the return to Idle.
func (s State) Terminal() bool {
	return s == StateRejected || s == StateDelivered || s == StateFailed
}

var transitions = map[State][]State{
	StateIdle:        {StateValidating},
	StateValidating:  {StateRejected, StateDispatching},
	StateRejected:    {StateIdle},
	StateDispatching: {StateEncoding, StateFailed},
	StateEncoding:    {StateDelivered, StateFailed},
	StateDelivered:   {StateIdle},
	StateFailed:      {StateIdle},
}

// CanTransition reports whether from -> to is a legal step.
func CanTransition(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
