package importer

import (
	"fmt"
	"io"

	"github.com/hvaldez/gestorpro/internal/catalog"
	"github.com/hvaldez/gestorpro/internal/importer/catalogcsv"
)

type Service struct {
	catalogImporter Importer
}

func NewService() *Service {
	return &Service{
		catalogImporter: catalogcsv.New(),
	}
}

func (s *Service) Import(format Format, r io.Reader) ([]catalog.CreateParams, error) {
	var imp Importer

	switch format {
	case FormatCatalog:
		imp = s.catalogImporter
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}

	return imp.Parse(r)
}
