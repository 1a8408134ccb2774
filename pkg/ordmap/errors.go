package ordmap

import "github.com/flier/ordstat/pkg/ordstat"

func keyAbsent() error {
	return ordstat.New(ordstat.KeyAbsent, nil)
}
