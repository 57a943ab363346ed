//go:build !cgo

package window

import (
	"errors"

	"coverflow/hal"
)

func Run(_ func(hal.HAL) (func() error, error), _ Config) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
