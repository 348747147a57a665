package providers

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/ja-he/winlux/internal/model"
)

// stateDocument is the on-disk format of a FilesProvider.
type stateDocument struct {
	Theme   *model.ThemeState   `yaml:"theme,omitempty"`
	Solar   model.SolarSettings `yaml:"solar"`
	Startup model.StartupState  `yaml:"startup"`
}

type fileHandler struct {
	mutex sync.Mutex

	filename string
}

func newFileHandler(filename string) *fileHandler {
	return &fileHandler{filename: filename}
}

// read reads the document from disk; a missing file reads as the empty
// document.
func (h *fileHandler) read() (stateDocument, error) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return h.readLocked()
}

// update applies f to the document on disk, holding the lock over the whole
// read-modify-write.
func (h *fileHandler) update(f func(*stateDocument)) error {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	doc, err := h.readLocked()
	if err != nil {
		return err
	}
	f(&doc)
	return h.writeLocked(doc)
}

func (h *fileHandler) readLocked() (stateDocument, error) {
	doc := stateDocument{}
	data, err := os.ReadFile(h.filename)
	if errors.Is(err, fs.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return doc, fmt.Errorf("could not read file '%s' (%w)", h.filename, err)
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("could not parse file '%s' (%w)", h.filename, err)
	}
	return doc, nil
}

// writeLocked writes via a temporary file and a rename so that readers never
// see a partially written document.
func (h *fileHandler) writeLocked(doc stateDocument) error {
	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("could not marshal state (%w)", err)
	}

	dir := filepath.Dir(h.filename)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("could not create directory '%s' (%w)", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".state-*.yaml")
	if err != nil {
		return fmt.Errorf("could not create temporary file in '%s' (%w)", dir, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("could not write file '%s' (%w)", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not close file '%s' (%w)", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), h.filename); err != nil {
		return fmt.Errorf("could not replace file '%s' (%w)", h.filename, err)
	}
	return nil
}
