//go:build !windows

package providers

import (
	"fmt"
	"runtime"

	"github.com/ja-he/winlux/internal/storage"
)

func newRegistryProvider() (storage.Provider, error) {
	return nil, fmt.Errorf("registry store is not available on %s, use the files store", runtime.GOOS)
}
