package importer

import (
	"io"

	"github.com/hvaldez/gestorpro/internal/catalog"
)

// Format names a supported spreadsheet layout.
type Format string

const (
	FormatCatalog Format = "catalog"
)

type Importer interface {
	Parse(r io.Reader) ([]catalog.CreateParams, error)
}
