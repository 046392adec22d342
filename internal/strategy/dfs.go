package strategy

import (
	"fmt"
)

// DFS is a last-in first-out worklist.
type DFS[T any] struct {
	items []T
}

func NewDFS[T any]() *DFS[T] {
	return &DFS[T]{
		items: make([]T, 0),
	}
}

func (dfs *DFS[T]) Size() int {
	return len(dfs.items)
}

func (dfs *DFS[T]) HasNext() bool {
	return len(dfs.items) > 0
}

func (dfs *DFS[T]) Pop() (T, error) {
	var item T
	if len(dfs.items) <= 0 {
		return item, fmt.Errorf("worklist is empty")
	}
	item = dfs.items[len(dfs.items)-1]
	dfs.items = dfs.items[:len(dfs.items)-1]
	return item, nil
}

// Push adds items so that the first argument is popped first.
func (dfs *DFS[T]) Push(items ...T) error {
	for i := len(items) - 1; i >= 0; i-- {
		dfs.items = append(dfs.items, items[i])
	}
	return nil
}
