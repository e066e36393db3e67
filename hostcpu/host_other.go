//go:build !linux

package hostcpu

import "errors"

var errUnsupported = errors.New("host CPU introspection requires Linux procfs")

// VendorID fails on non-Linux platforms.
func (h *Host) VendorID() (string, error) {
	return "", errUnsupported
}

// Model fails on non-Linux platforms.
func (h *Host) Model() (Model, error) {
	return Model{}, errUnsupported
}
