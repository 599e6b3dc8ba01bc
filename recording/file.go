package recording

import (
	"os"

	"github.com/golang/snappy"
	"github.com/oomph-ac/charsim/game"
	"github.com/oomph-ac/charsim/oerror"
)

// WriteFile stores the recording snappy-compressed at path.
func (rec *Recording) WriteFile(path string) error {
	if err := os.WriteFile(path, snappy.Encode(nil, rec.Encode()), 0644); err != nil {
		return oerror.New("unable to write recording %s: %v", path, err)
	}
	return nil
}

// ReadFile loads a recording written by WriteFile.
func ReadFile(path string) (*Recording, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, oerror.New("unable to read recording %s: %v", path, err)
	}
	dat, err = snappy.Decode(nil, dat)
	if err != nil {
		return nil, oerror.New(game.ErrorRecordingTruncated, 0, err)
	}
	return Decode(dat)
}
