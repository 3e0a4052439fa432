package target

import (
	"errors"
	"os"
	"strings"

	"github.com/Manu343726/escarabajo/pkg/utils"
	"gopkg.in/yaml.v3"
)

var ErrBadProfile = errors.New("bad hardware profile")

// Info holds the hardware parameters probed (or declared) at connect time,
// plus the user's extra-CSR configuration. Lengths are in bytes, as reported
// by the vlenb/mlenb/mrlenb registers.
type Info struct {
	// Width of the integer registers in bits, 32 or 64
	XLen uint `yaml:"xlen"`

	// Width of the floating point registers in bits; 0 without F/D
	FLen uint `yaml:"flen"`

	// Vector register byte length; 0 without the vector extension
	Vlenb uint `yaml:"vlenb"`

	// Matrix tile byte length, row byte length and accumulator multiplier;
	// mrlenb == 0 means no matrix extension
	Mlenb  uint `yaml:"mlenb"`
	Mrlenb uint `yaml:"mrlenb"`
	Mamul  uint `yaml:"mamul"`

	// Single-letter ISA extensions, e.g. "imafdc"
	Extensions string `yaml:"extensions"`

	// Extra CSRs to expose or hide, by name or numeric address
	ExposeCsrs []string `yaml:"expose_csrs"`
	HideCsrs   []string `yaml:"hide_csrs"`
}

// SupportsExtension reports whether the target implements the single-letter
// ISA extension.
func (i Info) SupportsExtension(ext rune) bool {
	return strings.ContainsRune(strings.ToLower(i.Extensions), ext)
}

// normalize fills derivable defaults and rejects inconsistent profiles
func (i Info) normalize() (Info, error) {
	if i.XLen == 0 {
		i.XLen = 32
	}
	if i.XLen != 32 && i.XLen != 64 {
		return i, utils.MakeError(ErrBadProfile, "xlen %d, want 32 or 64", i.XLen)
	}

	if i.FLen == 0 {
		switch {
		case i.SupportsExtension('d'):
			i.FLen = 64
		case i.SupportsExtension('f'):
			i.FLen = 32
		}
	}

	if i.Mrlenb > 0 {
		if i.Mlenb%i.Mrlenb != 0 {
			return i, utils.MakeError(ErrBadProfile, "mlenb %d not a multiple of mrlenb %d", i.Mlenb, i.Mrlenb)
		}
		if i.Mamul == 0 {
			i.Mamul = 1
		}
	}

	return i, nil
}

// LoadProfile reads a hardware profile from a YAML file
func LoadProfile(path string) (Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Info{}, err
	}

	var info Info
	if err := yaml.Unmarshal(data, &info); err != nil {
		return Info{}, utils.MakeError(ErrBadProfile, "%s: %v", path, err)
	}

	return info, nil
}
