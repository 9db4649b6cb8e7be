package ecs

import "iter"

// iComponentStorage is an interface for a type-erased component storage.
// Every occupied slot carries its ComponentTicks next to the value.
type iComponentStorage interface {
	Append(item any, ticks ComponentTicks) int
	Delete(index int)
	Get(index int) any
	Ticks(index int) *ComponentTicks
	Has(index int) bool
	Len() int
	Compact() map[int]int
	Iter() iter.Seq[int]
}
