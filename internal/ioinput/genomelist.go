package ioinput

import (
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// GenomeListFile is the default name of the MycoCosm genome list.
const GenomeListFile = "MycoCosm_Genome_list.csv"

type decodedFile struct {
	io.Reader
	f *os.File
}

func (d decodedFile) Close() error {
	return d.f.Close()
}

// OpenGenomeList opens the MycoCosm genome list. The portal does not
// guarantee UTF-8, so invalid bytes are replaced with U+FFFD.
func OpenGenomeList(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ReadInputError(path, err)
	}
	r := transform.NewReader(f, unicode.UTF8.NewDecoder())
	return decodedFile{Reader: r, f: f}, nil
}
