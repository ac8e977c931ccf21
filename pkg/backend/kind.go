package backend

import (
	"strings"

	"github.com/arthur-debert/yuma/pkg/errors"
)

// Kind tags a package-manager adapter
type Kind string

const (
	KindParu  Kind = "paru"
	KindBrew  Kind = "brew"
	KindCargo Kind = "cargo"
	KindFake  Kind = "fake"
)

// Kinds lists every known backend kind
func Kinds() []Kind {
	return []Kind{KindParu, KindBrew, KindCargo, KindFake}
}

// ParseKind turns a user-facing name into a Kind
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	// paur is a spelling older configs still carry
	case "paru", "paur":
		return KindParu, nil
	case "brew", "homebrew":
		return KindBrew, nil
	case "cargo":
		return KindCargo, nil
	case "fake":
		return KindFake, nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "unknown package backend: %s", name)
	}
}

func (k Kind) String() string {
	return string(k)
}
