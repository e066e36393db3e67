//go:build linux

package hostcpu

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

// VendorID returns the vendor_id field from /proc/cpuinfo.
func (h *Host) VendorID() (string, error) {
	if err := requireX86(); err != nil {
		return "", err
	}
	return h.cpuinfoField("vendor_id")
}

// Model returns the cpu family / model / stepping triple from /proc/cpuinfo.
func (h *Host) Model() (Model, error) {
	if err := requireX86(); err != nil {
		return Model{}, err
	}

	family, err := h.cpuinfoUint("cpu family")
	if err != nil {
		return Model{}, err
	}
	model, err := h.cpuinfoUint("model")
	if err != nil {
		return Model{}, err
	}
	stepping, err := h.cpuinfoUint("stepping")
	if err != nil {
		return Model{}, err
	}
	return Model{Family: family, Model: model, Stepping: stepping}, nil
}

// requireX86 rejects hosts whose kernel does not report an x86_64 machine:
// /proc/cpuinfo has a different field layout on every other architecture.
func requireX86() error {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return fmt.Errorf("uname: %w", err)
	}
	machine := unix.ByteSliceToString(uts.Machine[:])
	if machine != "x86_64" {
		return fmt.Errorf("unsupported host architecture %q", machine)
	}
	return nil
}

func (h *Host) procRoot() string {
	if h.ProcRoot != "" {
		return h.ProcRoot
	}
	return "/proc"
}

// cpuinfoField returns the value of the first occurrence of a /proc/cpuinfo
// field. Field names are matched whole, so "model" does not match
// "model name".
func (h *Host) cpuinfoField(field string) (string, error) {
	path := filepath.Join(h.procRoot(), "cpuinfo")
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		name, value, found := strings.Cut(scanner.Text(), ":")
		if !found {
			continue
		}
		if strings.TrimSpace(name) == field {
			return strings.TrimSpace(value), nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return "", fmt.Errorf("field %q not found in %s", field, path)
}

func (h *Host) cpuinfoUint(field string) (uint32, error) {
	text, err := h.cpuinfoField(field)
	if err != nil {
		return 0, err
	}
	value, err := strconv.ParseUint(text, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("malformed cpuinfo field %q = %q: %w", field, text, err)
	}
	return uint32(value), nil
}
