package rbtree

import "github.com/flier/ordstat/pkg/ordstat"

func errInvalidHandle() error {
	return ordstat.New(ordstat.InvalidHandle, nil)
}
