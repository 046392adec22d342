// Package strategy holds the worklists used to walk trees.
package strategy

type Strategy[T any] interface {
	Size() int
	HasNext() bool
	Pop() (T, error)
	Push(...T) error
}
